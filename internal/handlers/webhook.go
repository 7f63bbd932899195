package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/warroom/warroom/internal/alerts"
	"github.com/warroom/warroom/internal/api"
	"github.com/warroom/warroom/internal/database"
)

// WebhookHandler handles incident injection and clear webhooks.
type WebhookHandler struct {
	db *gorm.DB
}

// NewWebhookHandler creates a new webhook handler.
func NewWebhookHandler(db *gorm.DB) *WebhookHandler {
	return &WebhookHandler{db: db}
}

// HandleTrigger accepts an alert payload, classifies it, and appends it to
// the incident store.
func (h *WebhookHandler) HandleTrigger(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req api.TriggerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error parsing trigger payload: %v", err)
		api.RespondError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if strings.TrimSpace(req.AlertName) == "" {
		api.RespondValidationError(w, map[string]string{"alert_name": "alert_name is required"})
		return
	}
	if strings.TrimSpace(req.Severity) == "" {
		req.Severity = "UNKNOWN"
	}

	payload := alerts.TriggerPayload{
		AlertName:       req.AlertName,
		Severity:        req.Severity,
		Source:          req.Source,
		TriggeredAgents: req.TriggeredAgents,
	}
	category := alerts.Classify(payload)

	triggeredAgents := req.TriggeredAgents
	if len(triggeredAgents) == 0 {
		triggeredAgents = alerts.TriggeredAgentsFor(category)
	}

	logs := database.LogBundle{
		DB:          req.Logs.DB,
		Network:     req.Logs.Network,
		AppCodeDiff: req.Logs.AppCodeDiff,
	}

	id, err := database.SaveIncident(h.db, category, req.AlertName, req.Severity, triggeredAgents, logs)
	if err != nil {
		log.Printf("Error saving incident: %v", err)
		api.RespondError(w, http.StatusInternalServerError, "Failed to save incident")
		return
	}

	log.Printf("Received alert %q (severity=%s) classified as %s, incident %d", req.AlertName, req.Severity, category, id)

	api.RespondJSON(w, http.StatusOK, api.TriggerResponse{
		Status:          "received",
		Message:         fmt.Sprintf("Incident recorded under category %s", category),
		Category:        string(category),
		TriggeredAgents: triggeredAgents,
		IncidentID:      id,
	})
}

// HandleClear marks every active incident as cleared.
func (h *WebhookHandler) HandleClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	count, err := database.ClearAllIncidents(h.db)
	if err != nil {
		log.Printf("Error clearing incidents: %v", err)
		api.RespondError(w, http.StatusInternalServerError, "Failed to clear incidents")
		return
	}

	log.Printf("Cleared %d active incident(s)", count)

	api.RespondJSON(w, http.StatusOK, api.ClearResponse{
		Status:  "cleared",
		Message: fmt.Sprintf("Cleared %d active incident(s)", count),
		Count:   count,
	})
}

// HandleClearCategory marks one category's active incidents as cleared.
// The category comes from the path: /webhook/clear/{category}.
func (h *WebhookHandler) HandleClearCategory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	raw := strings.Trim(strings.TrimPrefix(r.URL.Path, "/webhook/clear/"), "/")
	if raw == "" {
		h.HandleClear(w, r)
		return
	}

	category, ok := matchCategory(raw)
	if !ok {
		api.RespondError(w, http.StatusBadRequest, fmt.Sprintf("Unknown category %q", raw))
		return
	}

	count, err := database.ClearCategoryIncidents(h.db, category)
	if err != nil {
		log.Printf("Error clearing %s incidents: %v", category, err)
		api.RespondError(w, http.StatusInternalServerError, "Failed to clear incidents")
		return
	}

	log.Printf("Cleared %d active %s incident(s)", count, category)

	api.RespondJSON(w, http.StatusOK, api.ClearResponse{
		Status:  "cleared",
		Message: fmt.Sprintf("Cleared %d active %s incident(s)", count, category),
		Count:   count,
	})
}

// matchCategory resolves a path segment to a known category,
// case-insensitively.
func matchCategory(raw string) (database.Category, bool) {
	for _, cat := range database.Categories() {
		if strings.EqualFold(raw, string(cat)) {
			return cat, true
		}
	}
	return "", false
}
