package domain

import "time"

// Category is a department / job-family label referenced by employees.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
