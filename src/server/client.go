package server

import (
	"fmt"
	"sync"
	"time"

	"rate-relay/src/logger"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// -----------------------------------------------------------------------------
// Constants
// -----------------------------------------------------------------------------

const (
	writeWait      = 2 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096 // text chat frames stay small
	sendBufferSize = 256
)

// -----------------------------------------------------------------------------
// Client Structure
// -----------------------------------------------------------------------------

// Client bridges one websocket connection to the registry and dispatcher.
type Client struct {
	id     string
	conn   *websocket.Conn
	send   chan []byte
	Logger *logger.Logger

	mu     sync.RWMutex
	closed bool
}

// -----------------------------------------------------------------------------

func newClient(conn *websocket.Conn, log *logger.Logger) *Client {
	return &Client{
		id:     uuid.NewString(),
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
		Logger: log,
	}
}

// -----------------------------------------------------------------------------

func (c *Client) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}

// -----------------------------------------------------------------------------

// Send queues a message for delivery without blocking the sender's loop. It
// fails once the connection is being torn down or when the client is too slow
// to drain its buffer; the caller logs and moves on.
func (c *Client) Send(message []byte) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return fmt.Errorf("connection %s is closed", c.id)
	}

	select {
	case c.send <- message:
		return nil
	default:
		return fmt.Errorf("send buffer full for connection %s", c.id)
	}
}

// -----------------------------------------------------------------------------

// closeSend marks the client closed and releases the write pump. Safe to call
// concurrently with Send.
func (c *Client) closeSend() {
	c.mu.Lock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
	c.mu.Unlock()
}

// -----------------------------------------------------------------------------
// readPump - drives the dispatcher for this connection
// -----------------------------------------------------------------------------

func (c *Client) readPump(identity string, registry *Registry, dispatcher *Dispatcher) {
	// Unregister runs on every exit path so the registry never accumulates
	// dead entries.
	defer func() {
		registry.Unregister(c)
		c.closeSend()
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			// A clean remote close is expected and stays out of the error log.
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Logger.Error("Read error on %s: %v", c.RemoteAddr(), err)
			}
			break
		}
		dispatcher.Handle(c, identity, string(message))
	}
}

// -----------------------------------------------------------------------------
// writePump - sends queued messages to the client
// -----------------------------------------------------------------------------

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
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
				c.Logger.Info("Write error on %s: %v", c.RemoteAddr(), err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
