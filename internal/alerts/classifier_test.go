package alerts

import (
	"testing"

	"github.com/warroom/warroom/internal/database"
)

func TestClassify_SourceTag(t *testing.T) {
	tests := []struct {
		name     string
		payload  TriggerPayload
		expected database.Category
	}{
		{"database source", TriggerPayload{Source: "DATABASE"}, database.CategoryDatabase},
		{"network source", TriggerPayload{Source: "NETWORK"}, database.CategoryNetwork},
		{"code source", TriggerPayload{Source: "CODE"}, database.CategoryCode},
		{"lowercase source", TriggerPayload{Source: "database"}, database.CategoryDatabase},
		{"padded source", TriggerPayload{Source: " NETWORK "}, database.CategoryNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.payload); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestClassify_SourceWinsOverAlertName(t *testing.T) {
	// Conflicting hints: explicit source tag always takes priority.
	payload := TriggerPayload{
		Source:    "DATABASE",
		AlertName: "network-latency-spike",
	}
	if got := Classify(payload); got != database.CategoryDatabase {
		t.Errorf("expected source tag to win, got %s", got)
	}
}

func TestClassify_TriggeredAgentHints(t *testing.T) {
	tests := []struct {
		name     string
		agents   []string
		expected database.Category
	}{
		{"network engineer", []string{"Network Engineer"}, database.CategoryNetwork},
		{"dba", []string{"Senior DBA"}, database.CategoryDatabase},
		{"code auditor", []string{"Code Auditor"}, database.CategoryCode},
		{"case insensitive", []string{"NETWORK engineer"}, database.CategoryNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := TriggerPayload{TriggeredAgents: tt.agents}
			if got := Classify(payload); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestClassify_AgentHintsWinOverAlertName(t *testing.T) {
	payload := TriggerPayload{
		AlertName:       "CODE_SomethingBroke",
		TriggeredAgents: []string{"DBA"},
	}
	if got := Classify(payload); got != database.CategoryDatabase {
		t.Errorf("expected agent hint to win over alert name, got %s", got)
	}
}

func TestClassify_AlertNameHints(t *testing.T) {
	tests := []struct {
		alertName string
		expected  database.Category
	}{
		{"network-latency", database.CategoryNetwork},
		{"NET_Timeout", database.CategoryNetwork},
		{"database-slow", database.CategoryDatabase},
		{"db_pool_exhausted", database.CategoryDatabase},
		{"DB_Deadlock", database.CategoryDatabase},
		{"code-regression", database.CategoryCode},
		{"CODE_NullPointer", database.CategoryCode},
	}

	for _, tt := range tests {
		t.Run(tt.alertName, func(t *testing.T) {
			payload := TriggerPayload{AlertName: tt.alertName}
			if got := Classify(payload); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestClassify_Unknown(t *testing.T) {
	payload := TriggerPayload{AlertName: "mystery-alert", Source: "PAGER"}
	if got := Classify(payload); got != database.CategoryUnknown {
		t.Errorf("expected Unknown, got %s", got)
	}
}

func TestClassify_EmptyPayload(t *testing.T) {
	if got := Classify(TriggerPayload{}); got != database.CategoryUnknown {
		t.Errorf("expected Unknown for empty payload, got %s", got)
	}
}

func TestTriggeredAgentsFor(t *testing.T) {
	tests := []struct {
		category database.Category
		expected []string
	}{
		{database.CategoryDatabase, []string{"DBA"}},
		{database.CategoryNetwork, []string{"Network Engineer"}},
		{database.CategoryCode, []string{"Code Auditor"}},
		{database.CategoryUnknown, []string{}},
	}

	for _, tt := range tests {
		got := TriggeredAgentsFor(tt.category)
		if len(got) != len(tt.expected) {
			t.Errorf("%s: expected %v, got %v", tt.category, tt.expected, got)
			continue
		}
		for i := range got {
			if got[i] != tt.expected[i] {
				t.Errorf("%s: expected %v, got %v", tt.category, tt.expected, got)
			}
		}
	}
}
