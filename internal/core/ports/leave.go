package ports

import (
	"context"
	"time"

	"github.com/teamforge/ems-api/internal/core/domain"
)

// SubmitLeaveInput carries an employee's leave submission.
type SubmitLeaveInput struct {
	EmployeeID string
	StartDate  time.Time
	EndDate    time.Time
	Reason     string
	LeaveType  domain.LeaveType
}

// DecideLeaveInput carries an admin decision on a pending request.
type DecideLeaveInput struct {
	RequestID  string
	Status     domain.LeaveStatus
	ReviewerID string
}

// LeaveRepository is the persistence interface for leave requests.
type LeaveRepository interface {
	Create(ctx context.Context, req *domain.LeaveRequest) (*domain.LeaveRequest, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]domain.LeaveRequest, error)
	// ListPending returns pending requests with employee name/email populated.
	ListPending(ctx context.Context) ([]domain.LeaveRequest, error)
	FindByID(ctx context.Context, id string) (*domain.LeaveRequest, error)
	SetStatus(ctx context.Context, id string, status domain.LeaveStatus, reviewerID string, at time.Time) error
}

// LeaveService defines the leave workflow.
type LeaveService interface {
	Submit(ctx context.Context, in SubmitLeaveInput) (*domain.LeaveRequest, error)
	MyRequests(ctx context.Context, employeeID string) ([]domain.LeaveRequest, error)
	Pending(ctx context.Context) ([]domain.LeaveRequest, error)
	Decide(ctx context.Context, in DecideLeaveInput) (*domain.LeaveRequest, error)
}
