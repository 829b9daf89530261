package domain

import "time"

// NotificationType tags the origin of a notification.
type NotificationType string

const (
	NotifyGeneral     NotificationType = "general"
	NotifyLeaveStatus NotificationType = "leave_status"
	NotifyLeaveNew    NotificationType = "new_leave_request"
	NotifyTaskChange  NotificationType = "task_update"
)

// Notification is a persisted message for one recipient. Real-time delivery
// through the relay is best-effort; the document is the durable copy.
type Notification struct {
	ID          string           `json:"id"`
	RecipientID string           `json:"recipient_id"`
	SenderID    string           `json:"sender_id,omitempty"`
	Type        NotificationType `json:"type"`
	Message     string           `json:"message"`
	IsRead      bool             `json:"is_read"`
	ReadAt      time.Time        `json:"read_at,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}
