package agents

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/warroom/warroom/internal/llm"
)

// Specialist retry/timeout defaults. The timeout covers a single-domain
// analysis; the judge gets a longer budget for multi-report reasoning.
const (
	specialistMaxRetries = 3
	specialistRetryDelay = 1 * time.Second
	specialistTimeout    = 60 * time.Second
)

// Specialist analyzes one domain's incident data through the generative
// backend and returns a validated structured finding.
type Specialist struct {
	domain Domain
	client llm.Client
	policy retryPolicy
}

// NewSpecialist creates a specialist for the given domain.
func NewSpecialist(domain Domain, client llm.Client) *Specialist {
	return &Specialist{
		domain: domain,
		client: client,
		policy: retryPolicy{
			MaxRetries: specialistMaxRetries,
			RetryDelay: specialistRetryDelay,
			Timeout:    specialistTimeout,
		},
	}
}

// Domain returns the specialist's domain.
func (s *Specialist) Domain() Domain {
	return s.domain
}

// Name returns the specialist's identity.
func (s *Specialist) Name() string {
	return s.domain.AgentName()
}

// Analyze runs the specialist over its domain context and returns a
// validated analysis. An empty context is a validation error and is never
// retried. Malformed responses, transport errors, and schema violations are
// retried up to the policy bound with linear backoff; the terminal error
// names this specialist and the last cause.
func (s *Specialist) Analyze(ctx context.Context, contextData string) (*AgentAnalysis, error) {
	if strings.TrimSpace(contextData) == "" {
		return nil, fmt.Errorf("%w: %s cannot analyze empty context data", ErrInvalidInput, s.Name())
	}

	prompt := s.buildPrompt(contextData)
	schema := analysisSchema()

	var analysis AgentAnalysis
	err := requestStructured(ctx, s.client, s.Name(), prompt, schema, s.policy, func(text string) error {
		analysis = AgentAnalysis{}
		if err := decodeFiltered(text, &analysis); err != nil {
			return err
		}
		// Never trust the model's self-report of identity.
		analysis.AgentName = s.Name()
		if err := analysis.Validate(); err != nil {
			return fmt.Errorf("failed to validate analysis: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("%s: analysis completed (status=%s, confidence=%.2f)", s.Name(), analysis.Status, analysis.ConfidenceScore)
	return &analysis, nil
}

func (s *Specialist) buildPrompt(contextData string) string {
	return fmt.Sprintf(`%s

You are analyzing the following incident data:

%s

Analyze this data and provide your findings. Focus on identifying issues, their severity, and provide specific evidence from the logs.
`, s.domain.Role(), contextData)
}
