package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
)

// Incident store operations.
//
// All functions accept a db parameter (rather than using the global DB) to
// support dependency injection, transaction contexts, and easier testing.

// SaveIncident appends a new active incident and returns its ID.
// IDs are assigned by the autoincrement primary key and are strictly
// increasing. Safe under concurrent writers: each insert is a single
// atomic statement.
func SaveIncident(
	db *gorm.DB,
	category Category,
	alertName string,
	severity string,
	triggeredAgents []string,
	logs LogBundle,
) (uint, error) {
	incident := Incident{
		Category:        category,
		AlertName:       alertName,
		Severity:        severity,
		TriggeredAgents: StringList(triggeredAgents),
		Logs:            logs,
		ReceivedAt:      time.Now(),
		Status:          IncidentStatusActive,
	}

	if err := db.Create(&incident).Error; err != nil {
		return 0, fmt.Errorf("failed to save incident %q: %w", alertName, err)
	}

	log.Printf("Incident saved: ID=%d, category=%s, alert=%s", incident.ID, category, alertName)
	return incident.ID, nil
}

// ActiveIncidentsByCategory returns all active incidents grouped by
// category, newest first. Every category key is always present, possibly
// with an empty slice. Incidents stored with a category outside the known
// set are bucketed under Unknown rather than dropped.
func ActiveIncidentsByCategory(db *gorm.DB) (map[Category][]Incident, error) {
	var rows []Incident
	err := db.Where("status = ?", IncidentStatusActive).
		Order("received_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read active incidents: %w", err)
	}

	grouped := make(map[Category][]Incident, len(Categories()))
	for _, c := range Categories() {
		grouped[c] = []Incident{}
	}

	for _, row := range rows {
		category := row.Category
		if _, known := grouped[category]; !known {
			category = CategoryUnknown
		}
		grouped[category] = append(grouped[category], row)
	}

	return grouped, nil
}

// ClearAllIncidents transitions every active incident to cleared and
// returns the number affected. Idempotent: a second call returns 0.
func ClearAllIncidents(db *gorm.DB) (int64, error) {
	result := db.Model(&Incident{}).
		Where("status = ?", IncidentStatusActive).
		Update("status", IncidentStatusCleared)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to clear incidents: %w", result.Error)
	}

	log.Printf("Cleared %d active incident(s)", result.RowsAffected)
	return result.RowsAffected, nil
}

// ClearCategoryIncidents clears active incidents for a single category.
func ClearCategoryIncidents(db *gorm.DB, category Category) (int64, error) {
	result := db.Model(&Incident{}).
		Where("status = ? AND category = ?", IncidentStatusActive, category).
		Update("status", IncidentStatusCleared)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to clear %s incidents: %w", category, result.Error)
	}

	log.Printf("Cleared %d active incident(s) for category %s", result.RowsAffected, category)
	return result.RowsAffected, nil
}

// CountActiveIncidents returns the number of active incidents per category.
func CountActiveIncidents(db *gorm.DB) (map[Category]int64, error) {
	type row struct {
		Category Category
		Count    int64
	}
	var rows []row
	err := db.Model(&Incident{}).
		Select("category, COUNT(*) as count").
		Where("status = ?", IncidentStatusActive).
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count active incidents: %w", err)
	}

	counts := make(map[Category]int64, len(Categories()))
	for _, c := range Categories() {
		counts[c] = 0
	}
	for _, r := range rows {
		category := r.Category
		if _, known := counts[category]; !known {
			category = CategoryUnknown
		}
		counts[category] += r.Count
	}
	return counts, nil
}
