package ports

import (
	"context"

	"github.com/teamforge/ems-api/internal/core/domain"
)

// CreateEmployeeInput carries the admin-facing employee creation fields.
type CreateEmployeeInput struct {
	Name       string
	Email      string
	Password   string
	Address    string
	Salary     float64
	Image      string
	CategoryID string
}

// UpdateEmployeeInput carries partial updates; nil fields are left untouched.
type UpdateEmployeeInput struct {
	Name       *string
	Email      *string
	Address    *string
	Salary     *float64
	Image      *string
	CategoryID *string
}

// ListEmployeesInput carries skip/limit pagination.
type ListEmployeesInput struct {
	Skip  int64
	Limit int64
}

// ListEmployeesResult pairs a page of employees with the total count.
type ListEmployeesResult struct {
	Items []domain.User
	Total int64
}

// EmployeeService defines admin-side employee management plus the self view.
type EmployeeService interface {
	Create(ctx context.Context, in CreateEmployeeInput) (*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context, in ListEmployeesInput) (*ListEmployeesResult, error)
	Update(ctx context.Context, id string, in UpdateEmployeeInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
