package ports

import (
	"context"
	"time"

	"github.com/teamforge/ems-api/internal/core/domain"
)

// ProjectInput carries project create/update fields.
type ProjectInput struct {
	Title          string
	Description    string
	Status         domain.WorkStatus
	Priority       domain.Priority
	StartDate      time.Time
	CompletionDate time.Time
	ClientID       string
	CreatedBy      string
}

// ProjectRepository is the persistence interface for projects.
type ProjectRepository interface {
	Create(ctx context.Context, in ProjectInput) (*domain.Project, error)
	List(ctx context.Context) ([]domain.Project, error)
	ListCreatedSince(ctx context.Context, since time.Time) ([]domain.Project, error)
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	Update(ctx context.Context, id string, in ProjectInput) (*domain.Project, error)
	Delete(ctx context.Context, id string) error
}

// ProjectService defines project management use cases.
type ProjectService interface {
	Create(ctx context.Context, in ProjectInput) (*domain.Project, error)
	List(ctx context.Context) ([]domain.Project, error)
	// ListOngoing returns projects created within the last week, ordered by
	// start date.
	ListOngoing(ctx context.Context) ([]domain.Project, error)
	Get(ctx context.Context, id string) (*domain.Project, error)
	Update(ctx context.Context, id string, in ProjectInput) (*domain.Project, error)
	Delete(ctx context.Context, id string) error
}
