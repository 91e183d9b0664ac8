package store

import (
	"time"

	"callcenter-analysis-be/internal/protocol"
)

// Snapshot is the state of an idle session, kept so a reconnecting client
// finds the conversation where it was left.
type Snapshot struct {
	SessionID    string                   `json:"session_id"`
	Turns        []protocol.Turn          `json:"turns"`
	LiveMode     bool                     `json:"live_mode"`
	Generation   int                      `json:"generation"`
	LastAnalysis *protocol.AnalysisResult `json:"last_analysis,omitempty"`
	SavedAt      time.Time                `json:"saved_at"`
}
