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

type stubAttendanceRepo struct {
	records map[string]*domain.ClockRecord
	nextID  int
}

func newStubAttendanceRepo() *stubAttendanceRepo {
	return &stubAttendanceRepo{records: make(map[string]*domain.ClockRecord)}
}

func (r *stubAttendanceRepo) Insert(_ context.Context, rec *domain.ClockRecord) (*domain.ClockRecord, error) {
	copy := *rec
	r.nextID++
	copy.ID = fmt.Sprintf("rec_%d", r.nextID)
	r.records[copy.ID] = &copy
	out := copy
	return &out, nil
}

func (r *stubAttendanceRepo) FindOpen(_ context.Context, employeeID string) (*domain.ClockRecord, error) {
	for _, rec := range r.records {
		if rec.EmployeeID == employeeID && rec.Open() {
			copy := *rec
			return &copy, nil
		}
	}
	return nil, domain.ErrNoOpenClockRecord
}

func (r *stubAttendanceRepo) Close(_ context.Context, id string, out time.Time, hours float64) (*domain.ClockRecord, error) {
	rec, ok := r.records[id]
	if !ok || !rec.Open() {
		return nil, domain.ErrNoOpenClockRecord
	}
	rec.ClockOut = out
	rec.TotalHours = hours
	rec.Status = domain.ClockedOut
	copy := *rec
	return &copy, nil
}

func (r *stubAttendanceRepo) ListBetween(_ context.Context, employeeID string, from, to time.Time) ([]domain.ClockRecord, error) {
	var recs []domain.ClockRecord
	for _, rec := range r.records {
		if rec.EmployeeID == employeeID && !rec.ClockIn.Before(from) && rec.ClockIn.Before(to) {
			recs = append(recs, *rec)
		}
	}
	return recs, nil
}

func (r *stubAttendanceRepo) CountDistinctClockedIn(_ context.Context, from, to time.Time) (int64, error) {
	seen := make(map[string]struct{})
	for _, rec := range r.records {
		if !rec.ClockIn.Before(from) && rec.ClockIn.Before(to) {
			seen[rec.EmployeeID] = struct{}{}
		}
	}
	return int64(len(seen)), nil
}

func TestAttendanceService_ClockIn_Success(t *testing.T) {
	repo := newStubAttendanceRepo()
	svc := NewAttendanceService(repo, newStubUserRepo(), zerolog.Nop())

	rec, err := svc.ClockIn(context.Background(), ports.ClockInInput{EmployeeID: "emp_1"})
	if err != nil {
		t.Fatalf("ClockIn returned error: %v", err)
	}
	if rec.Status != domain.ClockedIn {
		t.Fatalf("expected clocked_in, got %s", rec.Status)
	}
	if rec.WorkType != domain.WorkOffice {
		t.Fatalf("expected default work type office, got %s", rec.WorkType)
	}
	if !rec.Open() {
		t.Fatalf("new record should be open")
	}
}

func TestAttendanceService_ClockIn_Conflict(t *testing.T) {
	repo := newStubAttendanceRepo()
	svc := NewAttendanceService(repo, newStubUserRepo(), zerolog.Nop())

	if _, err := svc.ClockIn(context.Background(), ports.ClockInInput{EmployeeID: "emp_1"}); err != nil {
		t.Fatalf("first clock-in failed: %v", err)
	}
	if _, err := svc.ClockIn(context.Background(), ports.ClockInInput{EmployeeID: "emp_1"}); err != domain.ErrAlreadyClockedIn {
		t.Fatalf("expected ErrAlreadyClockedIn, got %v", err)
	}

	// A different employee is unaffected.
	if _, err := svc.ClockIn(context.Background(), ports.ClockInInput{EmployeeID: "emp_2"}); err != nil {
		t.Fatalf("unrelated employee blocked: %v", err)
	}
}

func TestAttendanceService_ClockIn_InvalidWorkType(t *testing.T) {
	repo := newStubAttendanceRepo()
	svc := NewAttendanceService(repo, newStubUserRepo(), zerolog.Nop())

	if _, err := svc.ClockIn(context.Background(), ports.ClockInInput{
		EmployeeID: "emp_1",
		WorkType:   "couch",
	}); err != domain.ErrInvalidStatus {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestAttendanceService_ClockOut(t *testing.T) {
	repo := newStubAttendanceRepo()
	svc := NewAttendanceService(repo, newStubUserRepo(), zerolog.Nop())

	if _, err := svc.ClockOut(context.Background(), "emp_1"); err != domain.ErrNoOpenClockRecord {
		t.Fatalf("expected ErrNoOpenClockRecord, got %v", err)
	}

	if _, err := svc.ClockIn(context.Background(), ports.ClockInInput{EmployeeID: "emp_1"}); err != nil {
		t.Fatalf("clock-in failed: %v", err)
	}
	rec, err := svc.ClockOut(context.Background(), "emp_1")
	if err != nil {
		t.Fatalf("ClockOut returned error: %v", err)
	}
	if rec.Status != domain.ClockedOut {
		t.Fatalf("expected clocked_out, got %s", rec.Status)
	}
	if rec.Open() {
		t.Fatalf("closed record should not be open")
	}

	// After closing, a fresh clock-in is allowed again.
	if _, err := svc.ClockIn(context.Background(), ports.ClockInInput{EmployeeID: "emp_1"}); err != nil {
		t.Fatalf("re-clock-in failed: %v", err)
	}
}

func TestAttendanceService_IsClockedIn(t *testing.T) {
	repo := newStubAttendanceRepo()
	svc := NewAttendanceService(repo, newStubUserRepo(), zerolog.Nop())

	in, err := svc.IsClockedIn(context.Background(), "emp_1")
	if err != nil {
		t.Fatalf("IsClockedIn returned error: %v", err)
	}
	if in {
		t.Fatalf("expected not clocked in")
	}

	_, _ = svc.ClockIn(context.Background(), ports.ClockInInput{EmployeeID: "emp_1"})
	in, err = svc.IsClockedIn(context.Background(), "emp_1")
	if err != nil {
		t.Fatalf("IsClockedIn returned error: %v", err)
	}
	if !in {
		t.Fatalf("expected clocked in")
	}
}

func TestAttendanceService_Summary(t *testing.T) {
	users := newStubUserRepo()
	for _, name := range []string{"a", "b", "c"} {
		if _, err := users.Create(context.Background(), &domain.User{
			Name: name, Email: name + "@example.com", Role: domain.RoleEmployee,
		}); err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}

	repo := newStubAttendanceRepo()
	svc := NewAttendanceService(repo, users, zerolog.Nop())

	_, _ = svc.ClockIn(context.Background(), ports.ClockInInput{EmployeeID: "user_1"})
	_, _ = svc.ClockIn(context.Background(), ports.ClockInInput{EmployeeID: "user_2"})

	summary, err := svc.Summary(context.Background(), time.Now().UTC())
	if err != nil {
		t.Fatalf("Summary returned error: %v", err)
	}
	if summary.Present != 2 {
		t.Fatalf("expected 2 present, got %d", summary.Present)
	}
	if summary.Absent != 1 {
		t.Fatalf("expected 1 absent, got %d", summary.Absent)
	}
	if summary.Total != 3 {
		t.Fatalf("expected 3 total, got %d", summary.Total)
	}
}

func TestHoursRounding(t *testing.T) {
	in := time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC)
	out := in.Add(7*time.Hour + 29*time.Minute)
	if got := domain.Hours(in, out); got != 7.48 {
		t.Fatalf("expected 7.48 hours, got %v", got)
	}
}
