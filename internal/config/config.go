package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	// HTTP Server Configuration
	HTTPPort int `yaml:"http_port"`

	// Database Configuration
	DatabaseURL string `yaml:"database_url"`

	// Generative backend configuration
	GeminiAPIKey string `yaml:"gemini_api_key"`

	// Slack verdict delivery (disabled unless both are set)
	SlackBotToken string `yaml:"slack_bot_token"`
	SlackChannel  string `yaml:"slack_channel"`
}

// Load reads configuration from environment variables, with an optional
// YAML file overlay. File values fill in what the environment leaves
// unset; environment variables always win.
func Load() (*Config, error) {
	cfg := &Config{}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		fileCfg, err := loadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
		*cfg = *fileCfg
		log.Printf("Loaded config overlay from %s", path)
	}

	cfg.HTTPPort = getEnvAsIntOrDefault("HTTP_PORT", firstNonZero(cfg.HTTPPort, 3000))
	cfg.DatabaseURL = getEnvOrDefault("DATABASE_URL", firstNonEmpty(cfg.DatabaseURL, "warroom.db"))
	cfg.GeminiAPIKey = getEnvOrDefault("GEMINI_API_KEY", cfg.GeminiAPIKey)
	cfg.SlackBotToken = getEnvOrDefault("SLACK_BOT_TOKEN", cfg.SlackBotToken)
	cfg.SlackChannel = getEnvOrDefault("SLACK_CHANNEL", cfg.SlackChannel)

	return cfg, nil
}

// SlackEnabled reports whether verdicts should be delivered to Slack.
func (c *Config) SlackEnabled() bool {
	return c.SlackBotToken != "" && c.SlackChannel != ""
}

// loadFile parses a YAML config file.
func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstNonZero(values ...int) int {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}

// getEnvOrDefault returns the value of an environment variable or a default value
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the value of an environment variable as an integer or a default value
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
