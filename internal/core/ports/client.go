package ports

import (
	"context"

	"github.com/teamforge/ems-api/internal/core/domain"
)

// ClientInput carries client create/update fields.
type ClientInput struct {
	Name          string
	ContactPerson string
	Email         string
	Phone         string
	Address       string
}

// ClientRepository is the persistence interface for clients.
type ClientRepository interface {
	Create(ctx context.Context, in ClientInput) (*domain.Client, error)
	List(ctx context.Context) ([]domain.Client, error)
	FindByID(ctx context.Context, id string) (*domain.Client, error)
	Update(ctx context.Context, id string, in ClientInput) (*domain.Client, error)
	Delete(ctx context.Context, id string) error
}

// ClientService defines client management use cases.
type ClientService interface {
	Create(ctx context.Context, in ClientInput) (*domain.Client, error)
	List(ctx context.Context) ([]domain.Client, error)
	Get(ctx context.Context, id string) (*domain.Client, error)
	Update(ctx context.Context, id string, in ClientInput) (*domain.Client, error)
	Delete(ctx context.Context, id string) error
}
