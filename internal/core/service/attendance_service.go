package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/teamforge/ems-api/internal/core/domain"
	"github.com/teamforge/ems-api/internal/core/ports"
)

// AttendanceService implements clock-in/out and attendance reporting.
type AttendanceService struct {
	repo   ports.AttendanceRepository
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewAttendanceService(repo ports.AttendanceRepository, users ports.UserRepository, logger zerolog.Logger) *AttendanceService {
	return &AttendanceService{repo: repo, users: users, logger: logger}
}

// ClockIn opens a new record. At most one open record may exist per
// employee; a second clock-in without a clock-out is a conflict.
func (s *AttendanceService) ClockIn(ctx context.Context, in ports.ClockInInput) (*domain.ClockRecord, error) {
	if _, err := s.repo.FindOpen(ctx, in.EmployeeID); err == nil {
		return nil, domain.ErrAlreadyClockedIn
	} else if !errors.Is(err, domain.ErrNoOpenClockRecord) {
		return nil, err
	}

	workType := in.WorkType
	if workType == "" {
		workType = domain.WorkOffice
	}
	if !workType.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	now := time.Now().UTC()
	rec := &domain.ClockRecord{
		EmployeeID: in.EmployeeID,
		ClockIn:    now,
		Status:     domain.ClockedIn,
		WorkType:   workType,
		Notes:      in.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	created, err := s.repo.Insert(ctx, rec)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("employee_id", in.EmployeeID).Msg("clocked in")
	return created, nil
}

func (s *AttendanceService) ClockOut(ctx context.Context, employeeID string) (*domain.ClockRecord, error) {
	open, err := s.repo.FindOpen(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	out := time.Now().UTC()
	closed, err := s.repo.Close(ctx, open.ID, out, domain.Hours(open.ClockIn, out))
	if err != nil {
		return nil, err
	}
	s.logger.Info().
		Str("employee_id", employeeID).
		Float64("hours", closed.TotalHours).
		Msg("clocked out")
	return closed, nil
}

func (s *AttendanceService) IsClockedIn(ctx context.Context, employeeID string) (bool, error) {
	_, err := s.repo.FindOpen(ctx, employeeID)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, domain.ErrNoOpenClockRecord) {
		return false, nil
	}
	return false, err
}

func (s *AttendanceService) MonthRecords(ctx context.Context, employeeID string, year int, month time.Month) ([]domain.ClockRecord, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	return s.repo.ListBetween(ctx, employeeID, from, to)
}

func (s *AttendanceService) Summary(ctx context.Context, day time.Time) (*domain.AttendanceSummary, error) {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	present, err := s.repo.CountDistinctClockedIn(ctx, from, to)
	if err != nil {
		return nil, err
	}
	total, err := s.users.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	absent := total - present
	if absent < 0 {
		absent = 0
	}
	return &domain.AttendanceSummary{
		Date:    from.Format("2006-01-02"),
		Present: present,
		Absent:  absent,
		Total:   total,
	}, nil
}
