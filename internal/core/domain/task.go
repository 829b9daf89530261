package domain

import "time"

// Assignee is the lightweight employee view embedded in task responses.
type Assignee struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Task is a unit of work on a project, assignable to multiple employees.
type Task struct {
	ID          string     `json:"id"`
	Description string     `json:"description"`
	Deadline    time.Time  `json:"deadline"`
	Status      WorkStatus `json:"status"`
	ProjectID   string     `json:"project_id"`
	Assignees   []Assignee `json:"assigned_employees"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// AssignedTo reports whether employeeID is among the task's assignees.
func (t *Task) AssignedTo(employeeID string) bool {
	for _, a := range t.Assignees {
		if a.ID == employeeID {
			return true
		}
	}
	return false
}
