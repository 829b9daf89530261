package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/teamforge/ems-api/internal/core/domain"
	"github.com/teamforge/ems-api/internal/core/ports"
)

type publishedEvent struct {
	room  string
	event ports.Event
}

type stubPublisher struct {
	events []publishedEvent
}

func (p *stubPublisher) Publish(room string, ev ports.Event) {
	p.events = append(p.events, publishedEvent{room: room, event: ev})
}

type stubDispatcher struct {
	enqueued []ports.NotificationInput
}

func (d *stubDispatcher) Enqueue(in ports.NotificationInput) {
	d.enqueued = append(d.enqueued, in)
}

type stubLeaveRepo struct {
	requests map[string]*domain.LeaveRequest
	nextID   int
}

func newStubLeaveRepo() *stubLeaveRepo {
	return &stubLeaveRepo{requests: make(map[string]*domain.LeaveRequest)}
}

func (r *stubLeaveRepo) Create(_ context.Context, req *domain.LeaveRequest) (*domain.LeaveRequest, error) {
	copy := *req
	r.nextID++
	copy.ID = fmt.Sprintf("leave_%d", r.nextID)
	r.requests[copy.ID] = &copy
	out := copy
	return &out, nil
}

func (r *stubLeaveRepo) ListByEmployee(_ context.Context, employeeID string) ([]domain.LeaveRequest, error) {
	var out []domain.LeaveRequest
	for _, req := range r.requests {
		if req.EmployeeID == employeeID {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (r *stubLeaveRepo) ListPending(_ context.Context) ([]domain.LeaveRequest, error) {
	var out []domain.LeaveRequest
	for _, req := range r.requests {
		if req.Status == domain.LeavePending {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (r *stubLeaveRepo) FindByID(_ context.Context, id string) (*domain.LeaveRequest, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, domain.ErrLeaveNotFound
	}
	copy := *req
	return &copy, nil
}

func (r *stubLeaveRepo) SetStatus(_ context.Context, id string, status domain.LeaveStatus, reviewerID string, at time.Time) error {
	req, ok := r.requests[id]
	if !ok {
		return domain.ErrLeaveNotFound
	}
	req.Status = status
	req.ReviewedBy = reviewerID
	req.ReviewedAt = at
	return nil
}

func newLeaveFixture(t *testing.T) (*LeaveService, *stubUserRepo, *stubLeaveRepo, *stubPublisher, *stubDispatcher, string) {
	t.Helper()

	users := newStubUserRepo()
	employee, err := users.Create(context.Background(), &domain.User{
		Name: "Frank", Email: "frank@example.com", Role: domain.RoleEmployee,
	})
	if err != nil {
		t.Fatalf("seed employee: %v", err)
	}
	if _, err := users.Create(context.Background(), &domain.User{
		Name: "Grace", Email: "grace@example.com", Role: domain.RoleAdmin,
	}); err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	repo := newStubLeaveRepo()
	publisher := &stubPublisher{}
	dispatcher := &stubDispatcher{}
	svc := NewLeaveService(repo, users, publisher, dispatcher, zerolog.Nop())
	return svc, users, repo, publisher, dispatcher, employee.ID
}

func TestLeaveService_Submit_Success(t *testing.T) {
	svc, _, _, publisher, dispatcher, employeeID := newLeaveFixture(t)

	start := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 2)
	req, err := svc.Submit(context.Background(), ports.SubmitLeaveInput{
		EmployeeID: employeeID,
		StartDate:  start,
		EndDate:    end,
		Reason:     "family visit",
		LeaveType:  domain.LeaveAnnual,
	})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if req.Status != domain.LeavePending {
		t.Fatalf("expected pending, got %s", req.Status)
	}
	if req.TotalDays != 3 {
		t.Fatalf("expected 3 inclusive days, got %d", req.TotalDays)
	}
	if req.EmployeeName != "Frank" {
		t.Fatalf("expected employee name populated, got %q", req.EmployeeName)
	}

	if len(publisher.events) != 1 {
		t.Fatalf("expected 1 relay event, got %d", len(publisher.events))
	}
	if publisher.events[0].room != ports.AdminRoom {
		t.Fatalf("expected event in admin room, got %s", publisher.events[0].room)
	}
	if publisher.events[0].event.Name != ports.EventNewLeaveRequest {
		t.Fatalf("unexpected event name %s", publisher.events[0].event.Name)
	}

	// One durable notification per admin.
	if len(dispatcher.enqueued) != 1 {
		t.Fatalf("expected 1 admin notification, got %d", len(dispatcher.enqueued))
	}
	if dispatcher.enqueued[0].Type != domain.NotifyLeaveNew {
		t.Fatalf("unexpected notification type %s", dispatcher.enqueued[0].Type)
	}
}

func TestLeaveService_Submit_EndBeforeStart(t *testing.T) {
	svc, _, _, publisher, _, employeeID := newLeaveFixture(t)

	start := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	_, err := svc.Submit(context.Background(), ports.SubmitLeaveInput{
		EmployeeID: employeeID,
		StartDate:  start,
		EndDate:    start.AddDate(0, 0, -1),
	})
	if err != domain.ErrInvalidDateRange {
		t.Fatalf("expected ErrInvalidDateRange, got %v", err)
	}
	if len(publisher.events) != 0 {
		t.Fatalf("no events should be published on rejection")
	}
}

func TestLeaveService_Submit_SingleDay(t *testing.T) {
	svc, _, _, _, _, employeeID := newLeaveFixture(t)

	day := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	req, err := svc.Submit(context.Background(), ports.SubmitLeaveInput{
		EmployeeID: employeeID,
		StartDate:  day,
		EndDate:    day,
	})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if req.TotalDays != 1 {
		t.Fatalf("same-day leave should count 1 day, got %d", req.TotalDays)
	}
	if req.LeaveType != domain.LeaveAnnual {
		t.Fatalf("expected default leave type annual, got %s", req.LeaveType)
	}
}

func TestLeaveService_Decide_Approve(t *testing.T) {
	svc, _, _, _, dispatcher, employeeID := newLeaveFixture(t)

	start := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	submitted, err := svc.Submit(context.Background(), ports.SubmitLeaveInput{
		EmployeeID: employeeID,
		StartDate:  start,
		EndDate:    start.AddDate(0, 0, 1),
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	dispatcher.enqueued = nil

	decided, err := svc.Decide(context.Background(), ports.DecideLeaveInput{
		RequestID:  submitted.ID,
		Status:     domain.LeaveApproved,
		ReviewerID: "admin_1",
	})
	if err != nil {
		t.Fatalf("Decide returned error: %v", err)
	}
	if decided.Status != domain.LeaveApproved {
		t.Fatalf("expected approved, got %s", decided.Status)
	}
	if decided.ReviewedBy != "admin_1" {
		t.Fatalf("expected reviewer recorded, got %q", decided.ReviewedBy)
	}

	if len(dispatcher.enqueued) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(dispatcher.enqueued))
	}
	n := dispatcher.enqueued[0]
	if n.RecipientID != employeeID {
		t.Fatalf("notification should target the employee, got %s", n.RecipientID)
	}
	if n.Event == nil || n.Event.Name != ports.EventLeaveStatusUpdate {
		t.Fatalf("expected leave_status_update event, got %+v", n.Event)
	}
}

func TestLeaveService_Decide_InvalidStatus(t *testing.T) {
	svc, _, _, _, _, _ := newLeaveFixture(t)

	for _, status := range []domain.LeaveStatus{domain.LeavePending, domain.LeaveCancelled, "bogus"} {
		if _, err := svc.Decide(context.Background(), ports.DecideLeaveInput{
			RequestID: "leave_1",
			Status:    status,
		}); err != domain.ErrInvalidStatus {
			t.Fatalf("status %q: expected ErrInvalidStatus, got %v", status, err)
		}
	}
}

func TestLeaveService_Decide_NotFound(t *testing.T) {
	svc, _, _, _, _, _ := newLeaveFixture(t)

	if _, err := svc.Decide(context.Background(), ports.DecideLeaveInput{
		RequestID: "missing",
		Status:    domain.LeaveRejected,
	}); err != domain.ErrLeaveNotFound {
		t.Fatalf("expected ErrLeaveNotFound, got %v", err)
	}
}
