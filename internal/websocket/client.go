package websocket

import (
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"

	"callcenter-analysis-be/internal/metrics"
	"callcenter-analysis-be/internal/protocol"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

// Client is a middleman between one websocket connection and its session.
// It satisfies session.Member.
type Client struct {
	hub *Hub

	conn *websocket.Conn

	id        string
	sessionID string
	role      protocol.Role

	// Buffered channel of outbound frames.
	send chan []byte

	mu     sync.Mutex
	closed bool
}

func (c *Client) ID() string          { return c.id }
func (c *Client) Role() protocol.Role { return c.role }
func (c *Client) SessionID() string   { return c.sessionID }

// Deliver queues a frame without blocking. false means the buffer is full or
// the client is gone.
func (c *Client) Deliver(data []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- data:
		return true
	default:
		metrics.DroppedFrames.WithLabelValues("outbound").Inc()
		return false
	}
}

// Close stops the write pump, which then closes the socket.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// readPump decodes intents and hands them to the router until the socket fails.
func (c *Client) readPump() {
	defer func() {
		c.hub.router.Detach(c.sessionID, c.id)
		c.hub.remove(c)
		c.Close()
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn("Client", "Unexpected close", map[string]interface{}{
					"connection_id": c.id, "session_id": c.sessionID, "error": err,
				})
			}
			return
		}
		// Any inbound frame proves the peer is alive.
		c.conn.SetReadDeadline(time.Now().Add(pongWait))

		in, err := protocol.DecodeIntent(data, c.role)
		if err != nil {
			metrics.DroppedFrames.WithLabelValues("inbound").Inc()
			c.hub.logger.Warn("Client", "Rejected frame", map[string]interface{}{
				"connection_id": c.id, "session_id": c.sessionID, "error": err,
			})
			c.Deliver(protocol.EncodeEvent(protocol.ProtocolError{Message: err.Error()}))
			continue
		}
		if _, ok := in.(protocol.Ping); ok {
			c.Deliver(protocol.EncodeEvent(protocol.Pong{}))
			continue
		}
		if err := c.hub.router.Submit(c.sessionID, c.id, in); err != nil {
			c.hub.logger.Warn("Client", "Intent not accepted", map[string]interface{}{
				"connection_id": c.id, "session_id": c.sessionID, "error": err,
			})
			return
		}
	}
}

// writePump writes queued frames one websocket message each and keeps the
// socket alive with pings.
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
