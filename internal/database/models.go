package database

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Category is the domain an incident is routed to.
type Category string

const (
	CategoryNetwork  Category = "Network"
	CategoryDatabase Category = "Database"
	CategoryCode     Category = "Code"
	CategoryUnknown  Category = "Unknown"
)

// Categories returns all categories in display order.
func Categories() []Category {
	return []Category{CategoryNetwork, CategoryDatabase, CategoryCode, CategoryUnknown}
}

// DispatchableCategories returns the categories that have a specialist agent.
// Unknown incidents are stored and counted but never dispatched.
func DispatchableCategories() []Category {
	return []Category{CategoryNetwork, CategoryDatabase, CategoryCode}
}

// IncidentStatus represents the lifecycle status of an incident.
// Incidents start active and transition to cleared exactly once; cleared
// rows are kept for audit and excluded from active queries.
type IncidentStatus string

const (
	IncidentStatusActive  IncidentStatus = "active"
	IncidentStatusCleared IncidentStatus = "cleared"
)

// StringList is a JSON-encoded list of strings stored in a text column.
type StringList []string

// Scan implements the sql.Scanner interface
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return errors.New("unsupported type for StringList")
	}
}

// Value implements the driver.Valuer interface
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// LogBundle holds the three fixed domain log slices carried by every
// incident. Missing keys default to empty strings.
type LogBundle struct {
	DB          string `json:"db"`
	Network     string `json:"network"`
	AppCodeDiff string `json:"app_code_diff"`
}

// Scan implements the sql.Scanner interface
func (b *LogBundle) Scan(value interface{}) error {
	if value == nil {
		*b = LogBundle{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, b)
	case string:
		return json.Unmarshal([]byte(v), b)
	default:
		return errors.New("unsupported type for LogBundle")
	}
}

// Value implements the driver.Valuer interface
func (b LogBundle) Value() (driver.Value, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Incident is a single recorded alert with domain-scoped log payloads.
// Rows are immutable after insert except for the Status column.
type Incident struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Category        Category       `gorm:"type:varchar(32);not null;index:idx_status_category,priority:2" json:"category"`
	AlertName       string         `gorm:"type:varchar(255);not null" json:"alert_name"`
	Severity        string         `gorm:"type:varchar(32);not null" json:"severity"`
	TriggeredAgents StringList     `gorm:"type:text;not null" json:"triggered_agents"`
	Logs            LogBundle      `gorm:"type:text;not null" json:"logs"`
	ReceivedAt      time.Time      `gorm:"not null" json:"received_at"`
	Status          IncidentStatus `gorm:"type:varchar(32);not null;default:'active';index:idx_status_category,priority:1" json:"status"`
	CreatedAt       time.Time      `json:"created_at"`
}

func (Incident) TableName() string {
	return "incidents"
}

// IsActive returns true if the incident has not been cleared
func (i *Incident) IsActive() bool {
	return i.Status == IncidentStatusActive
}
