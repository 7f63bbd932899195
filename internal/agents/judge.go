package agents

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/warroom/warroom/internal/llm"
)

// Judge retry/timeout defaults. Longer timeout than the specialists: the
// judge reasons over every report at once.
const (
	judgeMaxRetries = 3
	judgeRetryDelay = 2 * time.Second
	judgeTimeout    = 90 * time.Second
)

// judgeName identifies the adjudicator in logs and error messages.
const judgeName = "Judge"

// judgeRole is the fixed causal-priority heuristic embedded in every
// adjudication request. The ranking itself is delegated to the backend;
// this instruction set defines the decision policy it must follow.
const judgeRole = `You are a Senior Principal Engineer and Incident Commander.
Your Goal: Synthesize reports from Network, DBA, and Code Agents to find the single **Root Cause**.

### THE HIERARCHY OF CAUSALITY (Use this to find the Root Cause)

1. **CODE LOGIC IS KING (The "Bug" Check):**
   - If the Code Auditor finds a **LOGIC ERROR** (e.g., ` + "`JSONDecodeError`, `KeyError`, `ValueError`, `NullPointer`, `DivisionByZero`" + `), **THIS IS THE ROOT CAUSE.**
   - *Reasoning:* These are internal code failures that happen regardless of infrastructure health.

2. **INFRASTRUCTURE EXCEPTIONS ARE NUANCED:**
   - If the Code Auditor *only* finds **CONNECTIVITY ERRORS** (e.g., ` + "`ConnectionRefused`, `Timeout`, `503 Service Unavailable`" + `), **DO NOT** automatically blame the code.
   - CHECK THE DBA:
     - If DBA shows "Deadlocks" or "Sleep > 10s" -> **Database is Root Cause.**
     - If DBA is Healthy -> **Network/Infrastructure is Root Cause.**

3. **DATABASE IS SECONDARY:**
   - If Code is totally healthy (no logic errors), look at the DBA.
   - **Deadlocks** (Error 1213) or **Lock Wait Timeouts** are the Root Cause here.
   - *Note:* If the DB is full of "Sleeping" connections, blame the **Code** only if the Code Auditor also shows a missing close/rollback (Logic Error).

### TIMELINE FORENSICS
- **Look at the Timestamps:** The event that happened at **T+0s** is the trigger.
- If a ` + "`JSONDecodeError`" + ` (Code) happens at T+0, and DB Connections spike at T+2, the Code is guilty.

### OUTPUT FORMAT (JSON)
{
  "root_cause_headline": "The one-sentence summary of the failure.",
  "root_cause_agent": "The agent who found the PRIMARY failure.",
  "scenarios_logic": "Explain the chain: Trigger -> Mechanism -> Symptom.",
  "remediation_plan": "Specific technical steps (e.g., 'Wrap JSON parsing in try/finally')."
}`

// Judge synthesizes every specialist's findings into a single verdict.
type Judge struct {
	client llm.Client
	policy retryPolicy
}

// NewJudge creates the adjudicator.
func NewJudge(client llm.Client) *Judge {
	return &Judge{
		client: client,
		policy: retryPolicy{
			MaxRetries: judgeMaxRetries,
			RetryDelay: judgeRetryDelay,
			Timeout:    judgeTimeout,
		},
	}
}

// Adjudicate synthesizes the given analyses into a verdict. An empty input
// set is a validation error: no backend call is ever attempted for it.
// Failure semantics mirror the specialists (bounded retries with linear
// backoff, schema validation, terminal error naming the judge and cause).
func (j *Judge) Adjudicate(ctx context.Context, analyses []AgentAnalysis) (*JudgeVerdict, error) {
	if len(analyses) == 0 {
		return nil, fmt.Errorf("%w: cannot adjudicate with empty analyses list", ErrInvalidInput)
	}

	log.Printf("%s: beginning adjudication of %d agent report(s)", judgeName, len(analyses))

	prompt := buildJudgePrompt(analyses)
	schema := verdictSchema()

	var verdict JudgeVerdict
	err := requestStructured(ctx, j.client, judgeName, prompt, schema, j.policy, func(text string) error {
		verdict = JudgeVerdict{}
		if err := decodeFiltered(text, &verdict); err != nil {
			return err
		}
		if err := verdict.Validate(); err != nil {
			return fmt.Errorf("failed to validate verdict: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("%s: adjudication completed (root cause agent: %s)", judgeName, verdict.RootCauseAgent)
	return &verdict, nil
}

// buildJudgePrompt embeds every specialist's full report plus the causal
// hierarchy instructions.
func buildJudgePrompt(analyses []AgentAnalysis) string {
	reports := make([]string, 0, len(analyses))
	for _, a := range analyses {
		reports = append(reports, fmt.Sprintf(
			"=== %s Analysis ===\nStatus: %s\nHypothesis: %s\nConfidence: %.2f\nEvidence: %s\nReasoning: %s",
			a.AgentName, a.Status, a.Hypothesis, a.ConfidenceScore,
			strings.Join(a.EvidenceCited, ", "), a.Reasoning,
		))
	}

	return fmt.Sprintf(`%s

Agent Reports:
%s

Synthesize these findings and determine the root cause. Follow the hierarchy of causality above and provide your analysis in the specified JSON format.`,
		judgeRole, strings.Join(reports, "\n\n"))
}
