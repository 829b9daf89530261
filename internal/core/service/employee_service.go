package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/teamforge/ems-api/internal/core/domain"
	"github.com/teamforge/ems-api/internal/core/ports"
)

const defaultPageSize = 50

// EmployeeService implements admin-side employee management.
type EmployeeService struct {
	users      ports.UserRepository
	categories ports.CategoryRepository
	logger     zerolog.Logger
}

func NewEmployeeService(users ports.UserRepository, categories ports.CategoryRepository, logger zerolog.Logger) *EmployeeService {
	return &EmployeeService{users: users, categories: categories, logger: logger}
}

func (s *EmployeeService) Create(ctx context.Context, in ports.CreateEmployeeInput) (*domain.User, error) {
	if in.CategoryID != "" {
		if _, err := s.categories.FindByID(ctx, in.CategoryID); err != nil {
			return nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         in.Name,
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash: string(hash),
		Role:         domain.RoleEmployee,
		Address:      in.Address,
		Salary:       in.Salary,
		Image:        in.Image,
		CategoryID:   in.CategoryID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("employee_id", created.ID).Str("email", created.Email).Msg("employee created")
	return created, nil
}

func (s *EmployeeService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *EmployeeService) List(ctx context.Context, in ports.ListEmployeesInput) (*ports.ListEmployeesResult, error) {
	limit := in.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	items, total, err := s.users.List(ctx, domain.RoleEmployee, in.Skip, limit)
	if err != nil {
		return nil, err
	}
	return &ports.ListEmployeesResult{Items: items, Total: total}, nil
}

func (s *EmployeeService) Update(ctx context.Context, id string, in ports.UpdateEmployeeInput) (*domain.User, error) {
	if in.CategoryID != nil && *in.CategoryID != "" {
		if _, err := s.categories.FindByID(ctx, *in.CategoryID); err != nil {
			return nil, err
		}
	}
	return s.users.Update(ctx, id, in)
}

func (s *EmployeeService) Delete(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("employee_id", id).Msg("employee deleted")
	return nil
}
