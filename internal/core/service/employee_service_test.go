package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/teamforge/ems-api/internal/core/domain"
	"github.com/teamforge/ems-api/internal/core/ports"
)

type stubCategoryRepo struct {
	categories map[string]*domain.Category
}

func newStubCategoryRepo(ids ...string) *stubCategoryRepo {
	r := &stubCategoryRepo{categories: make(map[string]*domain.Category)}
	for _, id := range ids {
		r.categories[id] = &domain.Category{ID: id, Name: "Category " + id}
	}
	return r
}

func (r *stubCategoryRepo) Create(_ context.Context, name string) (*domain.Category, error) {
	c := &domain.Category{ID: name, Name: name}
	r.categories[c.ID] = c
	return c, nil
}

func (r *stubCategoryRepo) List(_ context.Context) ([]domain.Category, error) {
	var out []domain.Category
	for _, c := range r.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id string) (*domain.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	copy := *c
	return &copy, nil
}

func (r *stubCategoryRepo) Update(_ context.Context, id, name string) (*domain.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	c.Name = name
	copy := *c
	return &copy, nil
}

func (r *stubCategoryRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.categories[id]; !ok {
		return domain.ErrCategoryNotFound
	}
	delete(r.categories, id)
	return nil
}

func TestEmployeeService_Create_Success(t *testing.T) {
	users := newStubUserRepo()
	svc := NewEmployeeService(users, newStubCategoryRepo("cat_1"), zerolog.Nop())

	user, err := svc.Create(context.Background(), ports.CreateEmployeeInput{
		Name:       "Henry",
		Email:      "Henry@Example.com",
		Password:   "secret",
		Salary:     52000,
		CategoryID: "cat_1",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if user.Role != domain.RoleEmployee {
		t.Fatalf("admin-created accounts are employees, got %s", user.Role)
	}
	if user.Email != "henry@example.com" {
		t.Fatalf("expected lowercased email, got %q", user.Email)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret")); err != nil {
		t.Fatalf("password not hashed correctly: %v", err)
	}
}

func TestEmployeeService_Create_UnknownCategory(t *testing.T) {
	svc := NewEmployeeService(newStubUserRepo(), newStubCategoryRepo(), zerolog.Nop())

	if _, err := svc.Create(context.Background(), ports.CreateEmployeeInput{
		Name:       "Iris",
		Email:      "iris@example.com",
		Password:   "secret",
		CategoryID: "cat_missing",
	}); err != domain.ErrCategoryNotFound {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestEmployeeService_List_DefaultPageSize(t *testing.T) {
	users := newStubUserRepo()
	svc := NewEmployeeService(users, newStubCategoryRepo(), zerolog.Nop())

	if _, err := users.Create(context.Background(), &domain.User{
		Name: "Jack", Email: "jack@example.com", Role: domain.RoleEmployee,
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := users.Create(context.Background(), &domain.User{
		Name: "Kim", Email: "kim@example.com", Role: domain.RoleAdmin,
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	result, err := svc.List(context.Background(), ports.ListEmployeesInput{})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if result.Total != 1 {
		t.Fatalf("expected only employees listed, got %d", result.Total)
	}
}

func TestEmployeeService_Update_PartialFields(t *testing.T) {
	users := newStubUserRepo()
	svc := NewEmployeeService(users, newStubCategoryRepo("cat_1"), zerolog.Nop())

	created, err := svc.Create(context.Background(), ports.CreateEmployeeInput{
		Name:     "Luis",
		Email:    "luis@example.com",
		Password: "secret",
		Salary:   40000,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	salary := 45000.0
	updated, err := svc.Update(context.Background(), created.ID, ports.UpdateEmployeeInput{Salary: &salary})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Salary != 45000 {
		t.Fatalf("salary not updated: %v", updated.Salary)
	}
	if updated.Name != "Luis" {
		t.Fatalf("untouched field changed: %q", updated.Name)
	}
}
