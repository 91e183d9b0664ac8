package dto

import "callcenter-analysis-be/internal/protocol"

// ArchiveConversationMessage is published on the in-process bus whenever a
// session accepts an analysis that matches its log.
type ArchiveConversationMessage struct {
	SessionID  string                  `json:"session_id"`
	Generation int                     `json:"generation"`
	Turns      []protocol.Turn         `json:"turns"`
	Result     protocol.AnalysisResult `json:"result"`
}
