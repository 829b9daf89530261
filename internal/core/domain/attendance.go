package domain

import (
	"math"
	"time"
)

// ClockStatus is the state of a clock record.
type ClockStatus string

const (
	ClockedIn  ClockStatus = "clocked_in"
	ClockedOut ClockStatus = "clocked_out"
)

// WorkType records where the session took place.
type WorkType string

const (
	WorkOffice WorkType = "office"
	WorkRemote WorkType = "remote"
	WorkHybrid WorkType = "hybrid"
	WorkField  WorkType = "field_work"
)

func (w WorkType) Valid() bool {
	switch w {
	case WorkOffice, WorkRemote, WorkHybrid, WorkField:
		return true
	}
	return false
}

// ClockRecord is one attendance session. A record with a zero ClockOut is
// open; an employee has at most one open record at a time.
type ClockRecord struct {
	ID         string      `json:"id"`
	EmployeeID string      `json:"employee_id"`
	ClockIn    time.Time   `json:"clock_in"`
	ClockOut   time.Time   `json:"clock_out,omitempty"`
	TotalHours float64     `json:"total_hours"`
	Status     ClockStatus `json:"status"`
	WorkType   WorkType    `json:"work_type"`
	Notes      string      `json:"notes,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// Open reports whether the record has no clock-out yet.
func (r *ClockRecord) Open() bool {
	return r.ClockOut.IsZero()
}

// Hours returns the session length rounded to two decimals.
func Hours(in, out time.Time) float64 {
	return math.Round(out.Sub(in).Hours()*100) / 100
}

// AttendanceSummary is the present/absent headcount for one day.
type AttendanceSummary struct {
	Date    string `json:"date,omitempty"`
	Present int64  `json:"present"`
	Absent  int64  `json:"absent"`
	Total   int64  `json:"total"`
}
