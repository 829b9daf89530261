package relay

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 32
)

// inboundMessage is the only message shape clients send: a join request.
type inboundMessage struct {
	Event string `json:"event"`
	Room  string `json:"room"`
}

// Client is one websocket connection registered with the hub.
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	identity Identity
	send     chan []byte
	closed   chan struct{}
	once     sync.Once
}

// NewClient wraps an upgraded connection. Run must be called to start the
// read/write pumps; it blocks until the connection ends.
func NewClient(hub *Hub, conn *websocket.Conn, identity Identity) *Client {
	return &Client{
		hub:      hub,
		conn:     conn,
		identity: identity,
		send:     make(chan []byte, sendBuffer),
		closed:   make(chan struct{}),
	}
}

// Run services the connection until the peer disconnects or an error occurs.
func (c *Client) Run() {
	go c.writePump()
	c.readPump()
}

func (c *Client) readPump() {
	defer func() {
		c.hub.Remove(c)
		c.close()
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg inboundMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}
		if msg.Event != "join" {
			continue
		}
		if err := c.hub.Join(c, msg.Room); err != nil {
			c.hub.logger.Warn().
				Err(err).
				Str("room", msg.Room).
				Str("user_id", c.identity.UserID).
				Msg("relay join rejected")
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.closed:
			return
		}
	}
}

// close signals the write pump to stop. Safe to call more than once.
func (c *Client) close() {
	c.once.Do(func() { close(c.closed) })
}
