// Package alerts classifies inbound incident payloads into categories and
// derives the specialist agents each category triggers.
package alerts

import (
	"strings"

	"github.com/warroom/warroom/internal/database"
)

// TriggerPayload is the normalized shape of an inbound incident webhook.
type TriggerPayload struct {
	AlertName       string
	Severity        string
	Source          string
	TriggeredAgents []string
}

// Classify maps a payload to exactly one category. Rules are evaluated in
// priority order and the first match wins:
//  1. explicit source tag (DATABASE/NETWORK/CODE)
//  2. triggered agent name hints
//  3. alert name substring/prefix hints
//  4. Unknown
func Classify(payload TriggerPayload) database.Category {
	if c, ok := classifyBySource(payload.Source); ok {
		return c
	}
	if c, ok := classifyByAgents(payload.TriggeredAgents); ok {
		return c
	}
	if c, ok := classifyByAlertName(payload.AlertName); ok {
		return c
	}
	return database.CategoryUnknown
}

func classifyBySource(source string) (database.Category, bool) {
	switch strings.ToUpper(strings.TrimSpace(source)) {
	case "DATABASE":
		return database.CategoryDatabase, true
	case "NETWORK":
		return database.CategoryNetwork, true
	case "CODE":
		return database.CategoryCode, true
	}
	return "", false
}

func classifyByAgents(agents []string) (database.Category, bool) {
	for _, agent := range agents {
		name := strings.ToLower(agent)
		switch {
		case strings.Contains(name, "network") && strings.Contains(name, "engineer"):
			return database.CategoryNetwork, true
		case strings.Contains(name, "dba"):
			return database.CategoryDatabase, true
		case strings.Contains(name, "code") && strings.Contains(name, "auditor"):
			return database.CategoryCode, true
		}
	}
	return "", false
}

func classifyByAlertName(alertName string) (database.Category, bool) {
	lower := strings.ToLower(alertName)
	switch {
	case strings.Contains(lower, "network") || strings.HasPrefix(alertName, "NET_"):
		return database.CategoryNetwork, true
	case strings.Contains(lower, "database") || strings.Contains(lower, "db_") || strings.HasPrefix(alertName, "DB_"):
		return database.CategoryDatabase, true
	case strings.Contains(lower, "code") || strings.HasPrefix(alertName, "CODE_"):
		return database.CategoryCode, true
	}
	return "", false
}

// TriggeredAgentsFor returns the specialist identities expected to analyze
// incidents of the given category. Unknown has no specialist.
func TriggeredAgentsFor(category database.Category) []string {
	switch category {
	case database.CategoryDatabase:
		return []string{"DBA"}
	case database.CategoryNetwork:
		return []string{"Network Engineer"}
	case database.CategoryCode:
		return []string{"Code Auditor"}
	default:
		return []string{}
	}
}
