package dto

import (
	"time"

	"callcenter-analysis-be/internal/protocol"
)

// AnalyzeRequest carries a transcript already rendered as "<Role>: <text>" lines.
type AnalyzeRequest struct {
	Text           string                 `json:"text" validate:"required"`
	ConversationId string                 `json:"conversation_id,omitempty" validate:"omitempty,max=128"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
}

type AnalyzeResponse struct {
	protocol.Analysis
	Timestamp      time.Time `json:"timestamp"`
	ConversationId string    `json:"conversation_id,omitempty"`
}

type HealthResponse struct {
	Status      string `json:"status"`
	Service     string `json:"service"`
	Version     string `json:"version"`
	WebSocket   string `json:"websocket"`
	Connections int    `json:"connections"`
}
