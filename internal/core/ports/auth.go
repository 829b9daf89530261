package ports

import (
	"context"

	"github.com/teamforge/ems-api/internal/core/domain"
)

// UserRepository is the persistence interface for accounts. Employees and
// admins share it.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context, role domain.Role, skip, limit int64) ([]domain.User, int64, error)
	ListIDsByRole(ctx context.Context, role domain.Role) ([]string, error)
	Update(ctx context.Context, id string, update UpdateEmployeeInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	CountActive(ctx context.Context) (int64, error)
}

// SignupInput carries the fields accepted by the signup endpoint.
type SignupInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// AuthService implements signup, login and token verification.
type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// VerifyUser resolves the token subject back to a live account.
	// Returns ErrUserNotFound when the id no longer resolves.
	VerifyUser(ctx context.Context, id string) (*domain.User, error)
}

// LoginLimiter gates login attempts per client key (Redis-backed).
type LoginLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
