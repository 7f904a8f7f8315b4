package websocket

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	// writeWait is time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// pongWait is time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// pingPeriod is the interval for sending pings (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// maxMessageSize is maximum message size allowed from peer
	maxMessageSize = 512

	sendBufferSize = 256
)

// Client is one live connection of a user. Every log line it writes carries
// the owning user and connection ids.
type Client struct {
	id          string
	userID      uuid.UUID
	conn        *websocket.Conn
	hub         *Hub
	send        chan []byte
	logger      zerolog.Logger
	connectedAt time.Time
	delivered   atomic.Int64
	closed      bool
	mu          sync.RWMutex
	closeOnce   sync.Once
}

// NewClient creates a client for userID. The caller registers it with the hub.
func NewClient(conn *websocket.Conn, userID uuid.UUID, hub *Hub) *Client {
	id := uuid.New().String()
	return &Client{
		id:          id,
		userID:      userID,
		conn:        conn,
		hub:         hub,
		send:        make(chan []byte, sendBufferSize),
		logger:      log.With().Str("user_id", userID.String()).Str("client_id", id).Logger(),
		connectedAt: time.Now(),
	}
}

// ID returns the client's unique identifier
func (c *Client) ID() string {
	return c.id
}

// UserID returns the user the connection belongs to
func (c *Client) UserID() uuid.UUID {
	return c.userID
}

// Delivered returns how many events were written to the peer
func (c *Client) Delivered() int64 {
	return c.delivered.Load()
}

// Send queues a message for the user's connection
func (c *Client) Send(data []byte) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return ErrClientClosed
	}

	select {
	case c.send <- data:
		return nil
	default:
		c.logger.Warn().Int("buffered", len(c.send)).Msg("WebSocket send buffer full, closing client")
		go c.Close()
		return ErrSlowClient
	}
}

// Close removes the client from its user's connection set and closes the
// connection. Safe to call multiple times from different goroutines
func (c *Client) Close() error {
	var closeErr error
	c.closeOnce.Do(func() {
		if c.hub != nil {
			c.hub.Unregister(c)
		}

		c.mu.Lock()
		c.closed = true
		close(c.send)
		c.mu.Unlock()

		closeErr = c.conn.Close()

		c.logger.Info().
			Dur("connected_for", time.Since(c.connectedAt)).
			Int64("delivered", c.delivered.Load()).
			Msg("WebSocket client disconnected")
	})
	return closeErr
}

// IsClosed returns whether the client is closed
func (c *Client) IsClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// ReadPump reads until the peer goes away, then closes the client.
// This should be run in a goroutine
func (c *Client) ReadPump() {
	defer c.Close()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				c.logger.Warn().Err(err).Msg("WebSocket unexpected close")
			}
			return
		}
		// Push-only channel; inbound frames only keep the connection alive
		c.logger.Debug().Msg("WebSocket inbound frame ignored")
	}
}

// WritePump delivers queued events and keeps the connection alive with pings.
// This should be run in a goroutine
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.logger.Warn().Err(err).Msg("WebSocket write error")
				return
			}
			c.delivered.Add(1)

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.logger.Debug().Err(err).Msg("WebSocket ping failed")
				return
			}
		}
	}
}
