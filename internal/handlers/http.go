package handlers

import (
	"net/http"

	"github.com/warroom/warroom/internal/api"
)

// HTTPHandler wires every endpoint handler onto a mux.
type HTTPHandler struct {
	webhookHandler      *WebhookHandler
	incidentsHandler    *IncidentsHandler
	troubleshootHandler *TroubleshootHandler
}

// NewHTTPHandler creates a new HTTP handler.
func NewHTTPHandler(webhook *WebhookHandler, incidents *IncidentsHandler, troubleshoot *TroubleshootHandler) *HTTPHandler {
	return &HTTPHandler{
		webhookHandler:      webhook,
		incidentsHandler:    incidents,
		troubleshootHandler: troubleshoot,
	}
}

// SetupRoutes configures all HTTP routes
func (h *HTTPHandler) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", h.handleHealth)
	mux.HandleFunc("/webhook/trigger", h.webhookHandler.HandleTrigger)
	mux.HandleFunc("/webhook/clear", h.webhookHandler.HandleClear)
	// Scoped clears: /webhook/clear/{category}
	mux.HandleFunc("/webhook/clear/", h.webhookHandler.HandleClearCategory)
	mux.HandleFunc("/incidents/current", h.incidentsHandler.HandleCurrent)
	mux.HandleFunc("/troubleshoot", h.troubleshootHandler.HandleTroubleshoot)
}

// handleHealth returns a simple health check response
func (h *HTTPHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	api.RespondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": "1.0.0",
	})
}
