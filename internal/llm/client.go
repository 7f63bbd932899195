// Package llm provides the generative backend used by the specialist and
// judge agents. The backend contract is structured JSON output: callers
// supply a prompt plus a response schema and get back raw JSON text.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Client is the generative backend contract. Implementations return the raw
// response text; parsing and validation stay with the caller.
type Client interface {
	GenerateContent(ctx context.Context, prompt string, responseSchema map[string]interface{}) (string, error)
}

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// preferredModels is the ordered preference list for model auto-detection.
// Only models known to support structured generateContent reliably.
var preferredModels = []string{
	"gemini-pro",
	"gemini-1.5-pro",
	"gemini-1.0-pro",
}

// GeminiClient calls the Google Generative Language REST API.
// The model is resolved once per client lifetime by listing available
// models and picking the first usable candidate from the preference list.
type GeminiClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client

	resolveOnce sync.Once
	model       string
	resolveErr  error
}

// NewGeminiClient creates a client for the given API key.
func NewGeminiClient(apiKey string) *GeminiClient {
	return &GeminiClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// NewGeminiClientWithBaseURL creates a client against a custom API base URL
// (used by tests and local gateways).
func NewGeminiClientWithBaseURL(apiKey, baseURL string) *GeminiClient {
	c := NewGeminiClient(apiKey)
	c.baseURL = strings.TrimSuffix(baseURL, "/")
	return c
}

// API request/response structures

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string                 `json:"responseMimeType,omitempty"`
	ResponseSchema   map[string]interface{} `json:"responseSchema,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	Error *apiError `json:"error"`
}

type listModelsResponse struct {
	Models []struct {
		Name                       string   `json:"name"`
		SupportedGenerationMethods []string `json:"supportedGenerationMethods"`
	} `json:"models"`
	Error *apiError `json:"error"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// Model returns the resolved model name, triggering resolution on first use.
func (c *GeminiClient) Model() (string, error) {
	c.resolveOnce.Do(func() {
		c.model, c.resolveErr = c.resolveModel()
		if c.resolveErr == nil {
			log.Printf("Generative backend model resolved: %s", c.model)
		}
	})
	return c.model, c.resolveErr
}

// resolveModel lists available models and picks the first usable one from
// the preference list, falling back to the first listed model.
func (c *GeminiClient) resolveModel() (string, error) {
	if c.apiKey == "" {
		return "", errors.New("generative backend API key is not set")
	}

	url := fmt.Sprintf("%s/models?key=%s", c.baseURL, c.apiKey)
	resp, err := c.httpClient.Get(url)
	if err != nil {
		return "", fmt.Errorf("failed to list models: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read model list: %w", err)
	}

	var listResp listModelsResponse
	if err := json.Unmarshal(body, &listResp); err != nil {
		return "", fmt.Errorf("failed to parse model list: %w", err)
	}
	if listResp.Error != nil {
		return "", fmt.Errorf("model list request rejected: %s", listResp.Error.Message)
	}

	var available []string
	for _, m := range listResp.Models {
		if !supportsGenerateContent(m.SupportedGenerationMethods) {
			continue
		}
		// Strip the "models/" prefix.
		name := m.Name
		if idx := strings.LastIndex(name, "/"); idx >= 0 {
			name = name[idx+1:]
		}
		available = append(available, name)
	}

	if len(available) == 0 {
		return "", errors.New("no models support generateContent; verify the API key has model access")
	}

	for _, preferred := range preferredModels {
		for _, name := range available {
			if name == preferred {
				return name, nil
			}
		}
	}

	log.Printf("No preferred model available, using first available: %s", available[0])
	return available[0], nil
}

func supportsGenerateContent(methods []string) bool {
	for _, m := range methods {
		if m == "generateContent" {
			return true
		}
	}
	return false
}

// GenerateContent issues a structured-output request and returns the raw
// response text. The schema is cleaned of unsupported keywords before being
// sent; transport errors, API errors, and empty responses are returned as
// errors for the caller's retry loop.
func (c *GeminiClient) GenerateContent(ctx context.Context, prompt string, responseSchema map[string]interface{}) (string, error) {
	model, err := c.Model()
	if err != nil {
		return "", err
	}

	reqBody := generateRequest{
		Contents: []content{
			{Parts: []part{{Text: prompt}}},
		},
	}
	if responseSchema != nil {
		reqBody.GenerationConfig = &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   CleanSchema(responseSchema),
		}
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("generate request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var genResp generateResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if genResp.Error != nil {
		return "", fmt.Errorf("generate request rejected (%d %s): %s",
			genResp.Error.Code, genResp.Error.Status, genResp.Error.Message)
	}
	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("response contained no candidates")
	}

	var sb strings.Builder
	for _, p := range genResp.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", errors.New("response text was empty")
	}
	return text, nil
}
