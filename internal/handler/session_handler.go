package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"callcenter-analysis-be/internal/pkg/logger"
	"callcenter-analysis-be/internal/protocol"
	internalWS "callcenter-analysis-be/internal/websocket"
)

type SessionHandler struct {
	hub    *internalWS.Hub
	logger logger.ILogger
}

func NewSessionHandler(hub *internalWS.Hub, log logger.ILogger) *SessionHandler {
	return &SessionHandler{
		hub:    hub,
		logger: log,
	}
}

// ServeWs upgrades /ws/:role/:sessionId and joins the caller to that session.
func (h *SessionHandler) ServeWs(c *fiber.Ctx) error {
	role, ok := protocol.ParseRole(c.Params("role"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "role must be customer or agent"})
	}
	sessionID := strings.TrimSpace(c.Params("sessionId"))
	if sessionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "session id is required"})
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("SessionHandler", "Starting WebSocket session", map[string]interface{}{
				"session_id": sessionID, "role": role,
			})
			h.hub.ServeWs(conn, role, sessionID)
			h.logger.Info("SessionHandler", "WebSocket session ended", map[string]interface{}{
				"session_id": sessionID, "role": role,
			})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

// GetStats reports open connections grouped by session.
func (h *SessionHandler) GetStats(c *fiber.Ctx) error {
	return c.JSON(h.hub.Stats())
}

func (h *SessionHandler) RegisterRoutes(app fiber.Router, api fiber.Router) {
	app.Get("/ws/:role/:sessionId", h.ServeWs)
	api.Get("/stats", h.GetStats)
}
