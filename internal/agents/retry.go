package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/warroom/warroom/internal/llm"
)

// retryPolicy bounds an agent's backend calls. Backoff is linear:
// attempt * RetryDelay between attempts.
type retryPolicy struct {
	MaxRetries int
	RetryDelay time.Duration
	Timeout    time.Duration
}

// requestStructured runs the shared structured-output pipeline: issue the
// request with a per-attempt timeout, strip code fences, parse and validate
// via the supplied decode func, and retry transient failures. Parse and
// validation failures are retried exactly like transport failures. The
// terminal error names the agent and the last underlying cause.
func requestStructured(
	ctx context.Context,
	client llm.Client,
	agentName string,
	prompt string,
	schema map[string]interface{},
	policy retryPolicy,
	decode func(text string) error,
) error {
	var lastErr error

	for attempt := 1; attempt <= policy.MaxRetries; attempt++ {
		log.Printf("%s: attempt %d/%d", agentName, attempt, policy.MaxRetries)

		attemptCtx, cancel := context.WithTimeout(ctx, policy.Timeout)
		text, err := client.GenerateContent(attemptCtx, prompt, schema)
		cancel()

		if err == nil {
			text = llm.StripCodeFence(text)
			if text == "" {
				err = fmt.Errorf("received empty response")
			} else if err = decode(text); err == nil {
				return nil
			}
		}

		lastErr = err
		log.Printf("%s: attempt %d failed: %v", agentName, attempt, err)

		if attempt < policy.MaxRetries {
			backoff := time.Duration(attempt) * policy.RetryDelay
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return fmt.Errorf("%s: canceled while waiting to retry: %w", agentName, ctx.Err())
			}
		}
	}

	return fmt.Errorf("%s: failed after %d attempts: %w", agentName, policy.MaxRetries, lastErr)
}

// decodeFiltered parses JSON into v, dropping unexpected fields. A decode
// error is returned unwrapped so the retry loop treats it as transient.
func decodeFiltered(text string, v interface{}) error {
	if err := json.Unmarshal([]byte(text), v); err != nil {
		return fmt.Errorf("failed to parse response as JSON: %w", err)
	}
	return nil
}
