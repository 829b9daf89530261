package ports

// Relay event names. The browser client switches on these strings.
const (
	EventNewLeaveRequest   = "new_leave_request"
	EventLeaveStatusUpdate = "leave_status_update"
	EventTaskAssigned      = "taskAssigned"
	EventTaskUpdated       = "taskUpdated"
	EventTaskDeleted       = "taskDeleted"
	EventTaskReassigned    = "taskReassigned"
)

// AdminRoom is the shared room all admin sessions join.
const AdminRoom = "admin_room"

// UserRoom returns the per-user room identifier.
func UserRoom(userID string) string {
	return "user_" + userID
}

// Event is a typed relay message: a named event plus a JSON-encodable payload.
type Event struct {
	Name    string `json:"event"`
	Payload any    `json:"payload"`
}

// EventPublisher pushes events into relay rooms. Delivery is best-effort:
// rooms with no members drop the event silently.
type EventPublisher interface {
	Publish(room string, ev Event)
}
