package domain

import "time"

// LeaveStatus is the lifecycle state of a leave request.
type LeaveStatus string

const (
	LeavePending   LeaveStatus = "pending"
	LeaveApproved  LeaveStatus = "approved"
	LeaveRejected  LeaveStatus = "rejected"
	LeaveCancelled LeaveStatus = "cancelled"
)

// Decidable reports whether s is a terminal admin decision. Only approved
// and rejected may be set through the status endpoint.
func (s LeaveStatus) Decidable() bool {
	return s == LeaveApproved || s == LeaveRejected
}

// LeaveType categorises a request.
type LeaveType string

const (
	LeaveAnnual    LeaveType = "annual"
	LeaveSick      LeaveType = "sick"
	LeavePersonal  LeaveType = "personal"
	LeaveEmergency LeaveType = "emergency"
	LeaveOther     LeaveType = "other"
)

func (t LeaveType) Valid() bool {
	switch t {
	case LeaveAnnual, LeaveSick, LeavePersonal, LeaveEmergency, LeaveOther:
		return true
	}
	return false
}

// LeaveRequest is an employee's request for time off. EndDate must not
// precede StartDate; this is enforced on every creation path.
type LeaveRequest struct {
	ID            string      `json:"id"`
	EmployeeID    string      `json:"employee_id"`
	EmployeeName  string      `json:"employee_name,omitempty"`
	EmployeeEmail string      `json:"employee_email,omitempty"`
	StartDate     time.Time   `json:"start_date"`
	EndDate       time.Time   `json:"end_date"`
	TotalDays     int         `json:"total_days"`
	Reason        string      `json:"reason,omitempty"`
	LeaveType     LeaveType   `json:"leave_type"`
	Status        LeaveStatus `json:"status"`
	ReviewedBy    string      `json:"reviewed_by,omitempty"`
	ReviewedAt    time.Time   `json:"reviewed_at,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// DaysInclusive counts calendar days between start and end, both inclusive.
func DaysInclusive(start, end time.Time) int {
	s := start.Truncate(24 * time.Hour)
	e := end.Truncate(24 * time.Hour)
	return int(e.Sub(s).Hours()/24) + 1
}
