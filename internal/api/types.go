package api

// TriggerRequest is the inbound incident-injection payload.
type TriggerRequest struct {
	AlertName       string      `json:"alert_name"`
	Severity        string      `json:"severity"`
	Source          string      `json:"source"`
	TriggeredAgents []string    `json:"triggered_agents"`
	Logs            TriggerLogs `json:"logs"`
}

// TriggerLogs carries the per-domain raw log slices of one incident.
type TriggerLogs struct {
	DB          string `json:"db"`
	Network     string `json:"network"`
	AppCodeDiff string `json:"app_code_diff"`
}

// TriggerResponse acknowledges an injected incident.
type TriggerResponse struct {
	Status          string   `json:"status"`
	Message         string   `json:"message"`
	Category        string   `json:"category"`
	TriggeredAgents []string `json:"triggered_agents"`
	IncidentID      uint     `json:"incident_id"`
}

// ClearResponse acknowledges a clear operation.
type ClearResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Count   int64  `json:"count"`
}

// IncidentView is the outward rendering of a stored incident.
type IncidentView struct {
	ID              uint     `json:"id"`
	AlertName       string   `json:"alert_name"`
	Severity        string   `json:"severity"`
	Category        string   `json:"category"`
	TriggeredAgents []string `json:"triggered_agents"`
	ReceivedAt      string   `json:"received_at"`
}

// StatusResponse reports the currently active incidents per category.
type StatusResponse struct {
	Status    string                    `json:"status"`
	Data      map[string][]IncidentView `json:"data"`
	Total     int                       `json:"total"`
	HasActive bool                      `json:"has_active"`
}

// TroubleshootRequest starts an analysis cycle. APIKey overrides the
// server-configured credential when set.
type TroubleshootRequest struct {
	APIKey string `json:"api_key"`
	Force  bool   `json:"force"`
}
