package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"callcenter-analysis-be/internal/pkg/logger"
	"callcenter-analysis-be/internal/protocol"
)

const ioTimeout = 10 * time.Second

var ErrNotConnected = errors.New("not connected")

type Status int

const (
	StatusConnecting Status = iota
	StatusOpen
	StatusClosed
)

func (s Status) String() string {
	switch s {
	case StatusConnecting:
		return "connecting"
	case StatusOpen:
		return "open"
	default:
		return "closed"
	}
}

// Identity names the session a connection joins and the speaker it joins as.
type Identity struct {
	SessionID string
	Role      protocol.Role
}

// Frame is one item of a connection's inbound stream. The last frame of every
// stream has Closed set; Err is nil when the close was requested locally.
type Frame struct {
	Event  protocol.Event
	Closed bool
	Err    error
}

// Connection is a single duplex channel to the router. A closed Connection is
// never reopened; reconnecting means calling Open again.
type Connection struct {
	identity Identity
	logger   logger.ILogger

	mu      sync.RWMutex
	writeMu sync.Mutex
	conn    *websocket.Conn
	status  Status
	local   bool

	frames     chan Frame
	stop       chan struct{}
	finishOnce sync.Once
}

// Endpoint builds the channel URL for an identity, e.g. ws://host/ws/customer/abc.
func Endpoint(base string, id Identity) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse endpoint: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("unsupported endpoint scheme %q", u.Scheme)
	}
	prefix := "/ws/" + strings.ToLower(string(id.Role)) + "/"
	u.RawPath = strings.TrimRight(u.EscapedPath(), "/") + prefix + url.PathEscape(id.SessionID)
	u.Path = strings.TrimRight(u.Path, "/") + prefix + id.SessionID
	return u.String(), nil
}

// Open dials the router once. There is no retry; the caller decides.
func Open(ctx context.Context, base string, id Identity, log logger.ILogger) (*Connection, error) {
	if log == nil {
		log = logger.NewNopLogger()
	}
	if strings.TrimSpace(id.SessionID) == "" {
		return nil, fmt.Errorf("session id is required")
	}
	if !id.Role.Valid() {
		return nil, protocol.ErrInvalidRole
	}
	endpoint, err := Endpoint(base, id)
	if err != nil {
		return nil, err
	}

	c := &Connection{
		identity: id,
		logger:   log,
		status:   StatusConnecting,
		frames:   make(chan Frame, 64),
		stop:     make(chan struct{}),
	}

	dialer := websocket.Dialer{HandshakeTimeout: ioTimeout}
	conn, _, err := dialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("dial session websocket: %w", err)
	}

	c.mu.Lock()
	c.conn = conn
	c.status = StatusOpen
	c.mu.Unlock()

	log.Info("Transport", "Connection opened", map[string]interface{}{
		"session_id": id.SessionID, "role": id.Role, "endpoint": endpoint,
	})
	go c.readLoop()
	return c, nil
}

func (c *Connection) Identity() Identity {
	return c.identity
}

func (c *Connection) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status
}

// Frames is the inbound stream. It is closed right after the Closed frame.
// Callers that Close the connection should keep draining until then.
func (c *Connection) Frames() <-chan Frame {
	return c.frames
}

// Send writes one intent. On a connection that is not open it returns
// ErrNotConnected and leaves the connection untouched.
func (c *Connection) Send(in protocol.Intent) error {
	c.mu.RLock()
	conn, status := c.conn, c.status
	if c.local {
		status = StatusClosed
	}
	c.mu.RUnlock()
	if status != StatusOpen || conn == nil {
		c.logger.Warn("Transport", "Send on a connection that is not open", map[string]interface{}{
			"session_id": c.identity.SessionID, "status": status.String(), "intent": fmt.Sprintf("%T", in),
		})
		return ErrNotConnected
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := conn.SetWriteDeadline(time.Now().Add(ioTimeout)); err != nil {
		return fmt.Errorf("set write deadline: %w", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, protocol.EncodeIntent(in)); err != nil {
		return fmt.Errorf("write intent: %w", err)
	}
	return nil
}

// Close shuts the connection down. Calling it more than once is harmless.
func (c *Connection) Close() error {
	c.mu.Lock()
	if c.status == StatusClosed || c.local {
		c.mu.Unlock()
		return nil
	}
	c.local = true
	conn := c.conn
	c.mu.Unlock()

	close(c.stop)
	if conn != nil {
		c.writeMu.Lock()
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(500*time.Millisecond))
		c.writeMu.Unlock()
		_ = conn.Close()
	}
	return nil
}

func (c *Connection) readLoop() {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			c.finish(err)
			return
		}
		ev := protocol.DecodeEvent(data)
		if pe, ok := ev.(protocol.ProtocolError); ok && pe.Local {
			c.logger.Warn("Transport", "Dropped undecodable frame", map[string]interface{}{
				"session_id": c.identity.SessionID, "reason": pe.Message,
			})
			continue
		}
		select {
		case c.frames <- Frame{Event: ev}:
		case <-c.stop:
		}
	}
}

// finish emits the single terminal frame.
func (c *Connection) finish(readErr error) {
	c.finishOnce.Do(func() {
		c.mu.Lock()
		local := c.local
		c.status = StatusClosed
		conn := c.conn
		c.mu.Unlock()
		if conn != nil {
			_ = conn.Close()
		}

		var err error
		if !local && !websocket.IsCloseError(readErr, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
			err = readErr
		}
		c.logger.Info("Transport", "Connection closed", map[string]interface{}{
			"session_id": c.identity.SessionID, "local": local, "error": err,
		})
		c.frames <- Frame{Closed: true, Err: err}
		close(c.frames)
	})
}
