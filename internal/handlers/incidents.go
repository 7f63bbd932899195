package handlers

import (
	"log"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/warroom/warroom/internal/api"
	"github.com/warroom/warroom/internal/database"
)

// IncidentsHandler exposes the current state of the incident store.
type IncidentsHandler struct {
	db *gorm.DB
}

// NewIncidentsHandler creates a new incidents handler.
func NewIncidentsHandler(db *gorm.DB) *IncidentsHandler {
	return &IncidentsHandler{db: db}
}

// HandleCurrent returns all active incidents grouped by category.
func (h *IncidentsHandler) HandleCurrent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	active, err := database.ActiveIncidentsByCategory(h.db)
	if err != nil {
		log.Printf("Error loading active incidents: %v", err)
		api.RespondError(w, http.StatusInternalServerError, "Failed to load incidents")
		return
	}

	data := make(map[string][]api.IncidentView, len(active))
	total := 0
	for category, incidents := range active {
		views := make([]api.IncidentView, 0, len(incidents))
		for _, inc := range incidents {
			views = append(views, api.IncidentView{
				ID:              inc.ID,
				AlertName:       inc.AlertName,
				Severity:        inc.Severity,
				Category:        string(inc.Category),
				TriggeredAgents: inc.TriggeredAgents,
				ReceivedAt:      inc.ReceivedAt.Format(time.RFC3339),
			})
		}
		data[string(category)] = views
		total += len(incidents)
	}

	status := "clear"
	if total > 0 {
		status = "incidents"
	}

	api.RespondJSON(w, http.StatusOK, api.StatusResponse{
		Status:    status,
		Data:      data,
		Total:     total,
		HasActive: total > 0,
	})
}
