package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrForbidden          = errors.New("access forbidden")

	ErrCategoryNotFound     = errors.New("category not found")
	ErrClientNotFound       = errors.New("client not found")
	ErrClientExists         = errors.New("client already exists")
	ErrProjectNotFound      = errors.New("project not found")
	ErrTaskNotFound         = errors.New("task not found")
	ErrLeaveNotFound        = errors.New("leave request not found")
	ErrNotificationNotFound = errors.New("notification not found")

	ErrInvalidDateRange  = errors.New("end date must not precede start date")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidID         = errors.New("invalid id format")
	ErrAlreadyClockedIn  = errors.New("employee is already clocked in")
	ErrNoOpenClockRecord = errors.New("no active clock record found")

	ErrRateLimited = errors.New("too many attempts")
)
