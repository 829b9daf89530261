package domain

import "time"

// WorkStatus is the shared lifecycle state for projects and tasks.
type WorkStatus string

const (
	StatusNotStarted WorkStatus = "Not Started"
	StatusInProgress WorkStatus = "In Progress"
	StatusCompleted  WorkStatus = "Completed"
	StatusOnHold     WorkStatus = "On Hold"
)

// Valid reports whether s is one of the known work statuses.
func (s WorkStatus) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted, StatusOnHold:
		return true
	}
	return false
}

// Priority ranks projects for the admin dashboard.
type Priority string

const (
	PriorityLow      Priority = "Low"
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// Project is a client engagement that tasks hang off.
type Project struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	Status         WorkStatus `json:"status"`
	Priority       Priority   `json:"priority"`
	StartDate      time.Time  `json:"start_date"`
	CompletionDate time.Time  `json:"completion_date,omitempty"`
	ClientID       string     `json:"client_id"`
	ClientName     string     `json:"client_name,omitempty"`
	CreatedBy      string     `json:"created_by,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
