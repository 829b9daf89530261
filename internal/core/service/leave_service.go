package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/teamforge/ems-api/internal/core/domain"
	"github.com/teamforge/ems-api/internal/core/ports"
)

// LeaveService implements the leave workflow: submission notifies admins,
// decisions notify the requesting employee.
type LeaveService struct {
	repo       ports.LeaveRepository
	users      ports.UserRepository
	relay      ports.EventPublisher
	dispatcher ports.NotificationDispatcher
	logger     zerolog.Logger
}

func NewLeaveService(
	repo ports.LeaveRepository,
	users ports.UserRepository,
	relay ports.EventPublisher,
	dispatcher ports.NotificationDispatcher,
	logger zerolog.Logger,
) *LeaveService {
	return &LeaveService{repo: repo, users: users, relay: relay, dispatcher: dispatcher, logger: logger}
}

func (s *LeaveService) Submit(ctx context.Context, in ports.SubmitLeaveInput) (*domain.LeaveRequest, error) {
	// Date ordering is enforced here on top of the schema validation so no
	// creation path can bypass it.
	if in.EndDate.Before(in.StartDate) {
		return nil, domain.ErrInvalidDateRange
	}
	leaveType := in.LeaveType
	if leaveType == "" {
		leaveType = domain.LeaveAnnual
	}
	if !leaveType.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	employee, err := s.users.FindByID(ctx, in.EmployeeID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	req := &domain.LeaveRequest{
		EmployeeID:    employee.ID,
		EmployeeName:  employee.Name,
		EmployeeEmail: employee.Email,
		StartDate:     in.StartDate,
		EndDate:       in.EndDate,
		TotalDays:     domain.DaysInclusive(in.StartDate, in.EndDate),
		Reason:        in.Reason,
		LeaveType:     leaveType,
		Status:        domain.LeavePending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	// Tell every admin session immediately and leave a durable copy.
	s.relay.Publish(ports.AdminRoom, ports.Event{
		Name: ports.EventNewLeaveRequest,
		Payload: map[string]any{
			"request_id": created.ID,
			"message":    "New leave request submitted",
		},
	})
	s.notifyAdmins(ctx, created)

	s.logger.Info().
		Str("request_id", created.ID).
		Str("employee_id", created.EmployeeID).
		Int("days", created.TotalDays).
		Msg("leave request submitted")
	return created, nil
}

func (s *LeaveService) MyRequests(ctx context.Context, employeeID string) ([]domain.LeaveRequest, error) {
	return s.repo.ListByEmployee(ctx, employeeID)
}

func (s *LeaveService) Pending(ctx context.Context) ([]domain.LeaveRequest, error) {
	return s.repo.ListPending(ctx)
}

func (s *LeaveService) Decide(ctx context.Context, in ports.DecideLeaveInput) (*domain.LeaveRequest, error) {
	if !in.Status.Decidable() {
		return nil, domain.ErrInvalidStatus
	}

	req, err := s.repo.FindByID(ctx, in.RequestID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.repo.SetStatus(ctx, req.ID, in.Status, in.ReviewerID, now); err != nil {
		return nil, err
	}
	req.Status = in.Status
	req.ReviewedBy = in.ReviewerID
	req.ReviewedAt = now
	req.UpdatedAt = now

	msg := fmt.Sprintf("Your leave request has been %s", in.Status)
	s.dispatcher.Enqueue(ports.NotificationInput{
		RecipientID: req.EmployeeID,
		SenderID:    in.ReviewerID,
		Type:        domain.NotifyLeaveStatus,
		Message:     msg,
		Event: &ports.Event{
			Name: ports.EventLeaveStatusUpdate,
			Payload: map[string]any{
				"request_id": req.ID,
				"status":     req.Status,
				"message":    msg,
			},
		},
	})

	s.logger.Info().
		Str("request_id", req.ID).
		Str("status", string(in.Status)).
		Str("reviewer_id", in.ReviewerID).
		Msg("leave request decided")
	return req, nil
}

// notifyAdmins fans a submission notification out to every admin account.
// Failure to resolve the admin list is non-fatal: the request is already
// persisted and visible in the pending listing.
func (s *LeaveService) notifyAdmins(ctx context.Context, req *domain.LeaveRequest) {
	adminIDs, err := s.users.ListIDsByRole(ctx, domain.RoleAdmin)
	if err != nil {
		s.logger.Warn().Err(err).Msg("could not list admins for leave notification")
		return
	}
	msg := fmt.Sprintf("%s requested leave (%s to %s)",
		req.EmployeeName,
		req.StartDate.Format("2006-01-02"),
		req.EndDate.Format("2006-01-02"))
	for _, id := range adminIDs {
		s.dispatcher.Enqueue(ports.NotificationInput{
			RecipientID: id,
			SenderID:    req.EmployeeID,
			Type:        domain.NotifyLeaveNew,
			Message:     msg,
		})
	}
}
