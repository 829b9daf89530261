// Package relay is the real-time notification bridge. Browser clients
// connect over a websocket, join rooms (their own user room, or the shared
// admin room), and receive the events write handlers publish. Delivery is
// best-effort: there is no replay on reconnect and no cross-event ordering
// guarantee.
package relay

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"github.com/teamforge/ems-api/internal/core/domain"
	"github.com/teamforge/ems-api/internal/core/ports"
)

// Identity is the authenticated principal behind a connection.
type Identity struct {
	UserID string
	Role   domain.Role
}

// CanJoin reports whether the principal may enter the room. Employees are
// restricted to their own user room; admins may join any room.
func (id Identity) CanJoin(room string) bool {
	if id.Role == domain.RoleAdmin {
		return true
	}
	return room == ports.UserRoom(id.UserID)
}

// Hub owns the room-membership registry and fans published events out to
// room members.
type Hub struct {
	mu     sync.RWMutex
	rooms  map[string]map[*Client]struct{}
	logger zerolog.Logger
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		rooms:  make(map[string]map[*Client]struct{}),
		logger: logger,
	}
}

// Publish sends the event to every member of the room. Clients whose send
// buffer is full are dropped rather than blocking the caller.
func (h *Hub) Publish(room string, ev ports.Event) {
	msg, err := json.Marshal(ev)
	if err != nil {
		h.logger.Error().Err(err).Str("event", ev.Name).Msg("marshal relay event")
		return
	}

	h.mu.RLock()
	members := make([]*Client, 0, len(h.rooms[room]))
	for c := range h.rooms[room] {
		members = append(members, c)
	}
	h.mu.RUnlock()

	for _, c := range members {
		select {
		case c.send <- msg:
		default:
			h.logger.Warn().Str("room", room).Msg("slow relay client dropped")
			h.Remove(c)
			c.close()
		}
	}
}

// Join registers the connection in a room after an authorization check.
func (h *Hub) Join(c *Client, room string) error {
	if room == "" {
		return domain.ErrInvalidID
	}
	if !c.identity.CanJoin(room) {
		return domain.ErrForbidden
	}

	h.mu.Lock()
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*Client]struct{})
	}
	h.rooms[room][c] = struct{}{}
	h.mu.Unlock()

	h.logger.Debug().Str("room", room).Str("user_id", c.identity.UserID).Msg("relay join")
	return nil
}

// Remove deregisters the connection from every room it joined.
func (h *Hub) Remove(c *Client) {
	h.mu.Lock()
	for room, members := range h.rooms {
		if _, ok := members[c]; ok {
			delete(members, c)
			if len(members) == 0 {
				delete(h.rooms, room)
			}
		}
	}
	h.mu.Unlock()
}

// RoomSize reports the current membership of a room.
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

// ConnectionCount reports the number of distinct registered connections.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	seen := make(map[*Client]struct{})
	for _, members := range h.rooms {
		for c := range members {
			seen[c] = struct{}{}
		}
	}
	return len(seen)
}
