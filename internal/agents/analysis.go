package agents

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks validation failures that must fail fast and never
// be retried: empty analysis context, empty adjudication input, malformed
// caller data.
var ErrInvalidInput = errors.New("invalid input")

// AnalysisStatus is the severity a specialist assigns to its domain.
type AnalysisStatus string

const (
	StatusCritical AnalysisStatus = "Critical"
	StatusWarning  AnalysisStatus = "Warning"
	StatusHealthy  AnalysisStatus = "Healthy"
)

// AgentAnalysis is a specialist's structured finding. Values are transient:
// produced fresh per analysis cycle and never persisted.
type AgentAnalysis struct {
	AgentName       string         `json:"agent_name"`
	Status          AnalysisStatus `json:"status"`
	Hypothesis      string         `json:"hypothesis"`
	EvidenceCited   []string       `json:"evidence_cited"`
	ConfidenceScore float64        `json:"confidence_score"`
	Reasoning       string         `json:"reasoning"`
}

// Validate enforces the analysis field constraints. Out-of-range values are
// rejected, not clamped, so the caller retries the backend instead of
// accepting a corrupted report.
func (a *AgentAnalysis) Validate() error {
	switch a.Status {
	case StatusCritical, StatusWarning, StatusHealthy:
	default:
		return fmt.Errorf("status must be Critical, Warning, or Healthy, got %q", a.Status)
	}
	if len(a.Hypothesis) < 10 {
		return fmt.Errorf("hypothesis too short (%d chars, need at least 10)", len(a.Hypothesis))
	}
	if len(a.EvidenceCited) == 0 {
		return errors.New("evidence_cited must not be empty")
	}
	if a.ConfidenceScore < 0.0 || a.ConfidenceScore > 1.0 {
		return fmt.Errorf("confidence_score %.3f outside [0.0, 1.0]", a.ConfidenceScore)
	}
	if len(a.Reasoning) < 50 {
		return fmt.Errorf("reasoning too short (%d chars, need at least 50)", len(a.Reasoning))
	}
	return nil
}

// JudgeVerdict is the adjudicator's synthesis of all specialist findings.
type JudgeVerdict struct {
	RootCauseHeadline string            `json:"root_cause_headline"`
	RootCauseAgent    string            `json:"root_cause_agent"`
	ScenariosLogic    string            `json:"scenarios_logic"`
	RemediationPlan   string            `json:"remediation_plan"`
	AgentAssessment   map[string]string `json:"agent_assessment,omitempty"`
}

// Validate enforces the verdict field constraints.
func (v *JudgeVerdict) Validate() error {
	if len(v.RootCauseHeadline) < 20 {
		return fmt.Errorf("root_cause_headline too short (%d chars, need at least 20)", len(v.RootCauseHeadline))
	}
	if v.RootCauseAgent == "" {
		return errors.New("root_cause_agent must not be empty")
	}
	if len(v.ScenariosLogic) < 50 {
		return fmt.Errorf("scenarios_logic too short (%d chars, need at least 50)", len(v.ScenariosLogic))
	}
	if len(v.RemediationPlan) < 30 {
		return fmt.Errorf("remediation_plan too short (%d chars, need at least 30)", len(v.RemediationPlan))
	}
	return nil
}

// analysisSchema is the response schema sent with specialist requests.
// Validation keywords are declared here for documentation value; the llm
// package strips the ones the backend rejects, and Validate enforces them
// locally after parsing.
func analysisSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"agent_name": map[string]interface{}{
				"type":        "string",
				"description": "Name of the agent (e.g., 'DBA', 'Network Engineer')",
			},
			"status": map[string]interface{}{
				"type": "string",
				"enum": []interface{}{"Critical", "Warning", "Healthy"},
			},
			"hypothesis": map[string]interface{}{
				"type":        "string",
				"minLength":   10,
				"description": "One sentence summary of the problem identified",
			},
			"evidence_cited": map[string]interface{}{
				"type":     "array",
				"minItems": 1,
				"items":    map[string]interface{}{"type": "string"},
				"description": "Quotes from the logs that support the hypothesis",
			},
			"confidence_score": map[string]interface{}{
				"type":    "number",
				"minimum": 0.0,
				"maximum": 1.0,
			},
			"reasoning": map[string]interface{}{
				"type":        "string",
				"minLength":   50,
				"description": "Detailed explanation of why this hypothesis was formed",
			},
		},
		"required": []interface{}{
			"agent_name", "status", "hypothesis", "evidence_cited", "confidence_score", "reasoning",
		},
	}
}

// verdictSchema is the response schema sent with judge requests. The
// agent_assessment map is declared with concrete example properties: the
// backend's schema dialect rejects free-form objects.
func verdictSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"root_cause_headline": map[string]interface{}{
				"type":      "string",
				"minLength": 20,
			},
			"root_cause_agent": map[string]interface{}{
				"type":        "string",
				"description": "The agent who found the PRIMARY failure",
			},
			"scenarios_logic": map[string]interface{}{
				"type":      "string",
				"minLength": 50,
			},
			"remediation_plan": map[string]interface{}{
				"type":      "string",
				"minLength": 30,
			},
			"agent_assessment": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"DBA":              map[string]interface{}{"type": "string"},
					"Network Engineer": map[string]interface{}{"type": "string"},
					"Code Auditor":     map[string]interface{}{"type": "string"},
				},
			},
		},
		"required": []interface{}{
			"root_cause_headline", "root_cause_agent", "scenarios_logic", "remediation_plan",
		},
	}
}
