package notify

import (
	"strings"
	"testing"

	"github.com/warroom/warroom/internal/agents"
)

func testVerdict() *agents.JudgeVerdict {
	return &agents.JudgeVerdict{
		RootCauseHeadline: "Database deadlock on the orders table halted checkout",
		RootCauseAgent:    "DBA",
		ScenariosLogic:    "Deadlock blocked writes, upstream requests piled up until timeouts fired.",
		RemediationPlan:   "Retry transactions with backoff and add an index on orders.customer_id",
	}
}

func TestFormatVerdict_CarriesAllSections(t *testing.T) {
	analyses := map[string]agents.AgentAnalysis{
		"DBA": {
			AgentName:       "DBA",
			Status:          agents.StatusCritical,
			Hypothesis:      "Deadlock on orders table",
			ConfidenceScore: 0.9,
		},
		"Network Engineer": {
			AgentName:       "Network Engineer",
			Status:          agents.StatusHealthy,
			Hypothesis:      "No network anomalies",
			ConfidenceScore: 0.8,
		},
	}

	got := FormatVerdict(testVerdict(), analyses)

	for _, want := range []string{
		"Root Cause Identified",
		"Database deadlock on the orders table halted checkout",
		"*Found By*\nDBA",
		"Deadlock blocked writes",
		"Retry transactions with backoff",
		":red_circle: *DBA* (Critical, confidence 0.90)",
		":white_check_mark: *Network Engineer* (Healthy, confidence 0.80)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected message to contain %q, got:\n%s", want, got)
		}
	}
}

func TestFormatVerdict_AgentsSortedDeterministically(t *testing.T) {
	analyses := map[string]agents.AgentAnalysis{
		"Network Engineer": {Status: agents.StatusHealthy},
		"Code Auditor":     {Status: agents.StatusWarning},
		"DBA":              {Status: agents.StatusCritical},
	}

	got := FormatVerdict(testVerdict(), analyses)
	code := strings.Index(got, "*Code Auditor*")
	dba := strings.Index(got, "*DBA*")
	network := strings.Index(got, "*Network Engineer*")
	if code == -1 || dba == -1 || network == -1 {
		t.Fatalf("missing agent lines:\n%s", got)
	}
	if !(code < dba && dba < network) {
		t.Error("expected agents in sorted order")
	}
}

func TestFormatVerdict_IncludesJudgeAssessment(t *testing.T) {
	v := testVerdict()
	v.AgentAssessment = map[string]string{
		"DBA":          "Correctly identified the primary failure",
		"Code Auditor": "Findings were secondary symptoms",
	}

	got := FormatVerdict(v, nil)
	if !strings.Contains(got, "*Judge Assessment*") {
		t.Error("expected assessment section")
	}
	if !strings.Contains(got, "• DBA: Correctly identified the primary failure") {
		t.Errorf("missing assessment line:\n%s", got)
	}
}

func TestFormatVerdict_OmitsEmptySections(t *testing.T) {
	got := FormatVerdict(testVerdict(), nil)
	if strings.Contains(got, "*Agent Reports*") {
		t.Error("agent reports section must be omitted when empty")
	}
	if strings.Contains(got, "*Judge Assessment*") {
		t.Error("assessment section must be omitted when empty")
	}
}
