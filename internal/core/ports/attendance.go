package ports

import (
	"context"
	"time"

	"github.com/teamforge/ems-api/internal/core/domain"
)

// ClockInInput carries an employee clock-in.
type ClockInInput struct {
	EmployeeID string
	WorkType   domain.WorkType
	Notes      string
}

// AttendanceRepository is the persistence interface for clock records.
type AttendanceRepository interface {
	Insert(ctx context.Context, rec *domain.ClockRecord) (*domain.ClockRecord, error)
	// FindOpen returns the employee's open record, or ErrNoOpenClockRecord.
	FindOpen(ctx context.Context, employeeID string) (*domain.ClockRecord, error)
	Close(ctx context.Context, id string, out time.Time, hours float64) (*domain.ClockRecord, error)
	ListBetween(ctx context.Context, employeeID string, from, to time.Time) ([]domain.ClockRecord, error)
	CountDistinctClockedIn(ctx context.Context, from, to time.Time) (int64, error)
}

// AttendanceService defines clock-in/out and reporting use cases.
type AttendanceService interface {
	ClockIn(ctx context.Context, in ClockInInput) (*domain.ClockRecord, error)
	ClockOut(ctx context.Context, employeeID string) (*domain.ClockRecord, error)
	IsClockedIn(ctx context.Context, employeeID string) (bool, error)
	// MonthRecords returns the employee's records for one calendar month.
	MonthRecords(ctx context.Context, employeeID string, year int, month time.Month) ([]domain.ClockRecord, error)
	// Summary reports present/absent headcount for the given day.
	Summary(ctx context.Context, day time.Time) (*domain.AttendanceSummary, error)
}
