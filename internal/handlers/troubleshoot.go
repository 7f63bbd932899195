package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/warroom/warroom/internal/api"
	"github.com/warroom/warroom/internal/llm"
	"github.com/warroom/warroom/internal/services"
)

// TroubleshootHandler starts analysis cycles on demand.
type TroubleshootHandler struct {
	db       *gorm.DB
	notifier services.VerdictNotifier
	apiKey   string

	// newClient builds the generative backend for one cycle. Overridable
	// in tests.
	newClient func(apiKey string) llm.Client
}

// NewTroubleshootHandler creates a new troubleshoot handler. apiKey is the
// server-configured backend credential; requests may override it.
func NewTroubleshootHandler(db *gorm.DB, notifier services.VerdictNotifier, apiKey string) *TroubleshootHandler {
	return &TroubleshootHandler{
		db:       db,
		notifier: notifier,
		apiKey:   apiKey,
		newClient: func(apiKey string) llm.Client {
			return llm.NewGeminiClient(apiKey)
		},
	}
}

// HandleTroubleshoot runs one analysis cycle and returns its result. The
// request body is optional; an empty body means a non-forced run with the
// configured credential.
func (h *TroubleshootHandler) HandleTroubleshoot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req api.TroubleshootRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		log.Printf("Error parsing troubleshoot payload: %v", err)
		api.RespondError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	apiKey := strings.TrimSpace(req.APIKey)
	if apiKey == "" {
		apiKey = h.apiKey
	}
	if apiKey == "" {
		api.RespondError(w, http.StatusBadRequest, "No API key configured; supply api_key in the request or set GEMINI_API_KEY")
		return
	}

	svc := services.NewTroubleshootService(h.db, h.newClient(apiKey), h.notifier)
	result, err := svc.Run(r.Context(), req.Force)
	if err != nil {
		log.Printf("Troubleshoot cycle failed: %v", err)
		api.RespondError(w, http.StatusInternalServerError, "Troubleshoot cycle failed")
		return
	}

	api.RespondJSON(w, http.StatusOK, result)
}
