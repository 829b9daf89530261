package ports

import (
	"context"
	"time"

	"github.com/teamforge/ems-api/internal/core/domain"
)

// TaskInput carries task create/update fields.
type TaskInput struct {
	Description string
	Deadline    time.Time
	Status      domain.WorkStatus
	ProjectID   string
	EmployeeIDs []string
}

// TaskRepository is the persistence interface for tasks.
type TaskRepository interface {
	Create(ctx context.Context, in TaskInput) (*domain.Task, error)
	List(ctx context.Context) ([]domain.Task, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]domain.Task, error)
	ListOngoing(ctx context.Context) ([]domain.Task, error)
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	Update(ctx context.Context, id string, in TaskInput) (*domain.Task, error)
	UpdateStatus(ctx context.Context, id string, status domain.WorkStatus) (*domain.Task, error)
	Reassign(ctx context.Context, id string, employeeIDs []string) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
}

// UpdateTaskStatusInput identifies the caller so assignment can be checked.
type UpdateTaskStatusInput struct {
	TaskID    string
	Status    domain.WorkStatus
	ActorID   string
	ActorRole domain.Role
}

// TaskService defines task management use cases. Mutations emit relay events
// to the affected employee rooms.
type TaskService interface {
	Create(ctx context.Context, in TaskInput) (*domain.Task, error)
	List(ctx context.Context) ([]domain.Task, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]domain.Task, error)
	ListOngoing(ctx context.Context) ([]domain.Task, error)
	Update(ctx context.Context, id string, in TaskInput) (*domain.Task, error)
	UpdateStatus(ctx context.Context, in UpdateTaskStatusInput) (*domain.Task, error)
	Reassign(ctx context.Context, id string, employeeIDs []string) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
}
