package websocket

import (
	"context"
	"sort"
	"sync"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"callcenter-analysis-be/internal/metrics"
	"callcenter-analysis-be/internal/pkg/logger"
	"callcenter-analysis-be/internal/protocol"
	"callcenter-analysis-be/internal/session"
)

// Hub keeps the registry of live connections on this instance and attaches
// each one to its session on the router.
type Hub struct {
	router     *session.Router
	bufferSize int

	// Registered clients: connection id -> client
	clients map[string]*Client

	mu sync.RWMutex

	logger logger.ILogger
}

// Stats is the realtime view served at /api/stats.
type Stats struct {
	ActiveConnections int                 `json:"active_connections"`
	ActiveSessions    int                 `json:"active_sessions"`
	Sessions          map[string][]string `json:"sessions"`
}

func NewHub(router *session.Router, bufferSize int, log logger.ILogger) *Hub {
	if bufferSize <= 0 {
		bufferSize = 256
	}
	return &Hub{
		router:     router,
		bufferSize: bufferSize,
		clients:    make(map[string]*Client),
		logger:     log,
	}
}

// ServeWs runs one connection until it closes. It blocks, so fiber's handler
// goroutine becomes the read pump.
func (h *Hub) ServeWs(conn *websocket.Conn, role protocol.Role, sessionID string) {
	client := &Client{
		hub:       h,
		conn:      conn,
		id:        uuid.NewString(),
		sessionID: sessionID,
		role:      role,
		send:      make(chan []byte, h.bufferSize),
	}
	h.add(client)

	// The writer runs before Attach so resync frames drain as they are queued.
	go client.writePump()

	if err := h.router.Attach(context.Background(), sessionID, client); err != nil {
		h.logger.Error("Hub", "Attach failed", map[string]interface{}{
			"connection_id": client.id, "session_id": sessionID, "error": err,
		})
		client.Deliver(protocol.EncodeEvent(protocol.ProtocolError{Message: err.Error()}))
		client.Close()
		h.remove(client)
		return
	}
	client.readPump()
}

func (h *Hub) add(c *Client) {
	h.mu.Lock()
	h.clients[c.id] = c
	n := len(h.clients)
	h.mu.Unlock()
	metrics.ActiveConnections.Inc()
	h.logger.Info("Hub", "Client registered", map[string]interface{}{
		"connection_id": c.id, "session_id": c.sessionID, "role": c.role, "connections": n,
	})
}

func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	_, ok := h.clients[c.id]
	delete(h.clients, c.id)
	h.mu.Unlock()
	if !ok {
		return
	}
	metrics.ActiveConnections.Dec()
	h.logger.Info("Hub", "Client unregistered", map[string]interface{}{
		"connection_id": c.id, "session_id": c.sessionID,
	})
}

// ConnectionCount is the number of open sockets.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Stats groups the open connections by session.
func (h *Hub) Stats() Stats {
	h.mu.RLock()
	bySession := make(map[string][]string)
	for id, c := range h.clients {
		bySession[c.sessionID] = append(bySession[c.sessionID], id)
	}
	count := len(h.clients)
	h.mu.RUnlock()

	for _, ids := range bySession {
		sort.Strings(ids)
	}
	return Stats{
		ActiveConnections: count,
		ActiveSessions:    len(h.router.Sessions()),
		Sessions:          bySession,
	}
}

// Shutdown closes every connection; their read pumps detach them.
func (h *Hub) Shutdown() {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()
	for _, c := range clients {
		c.Close()
	}
}
