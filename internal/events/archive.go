package events

import (
	"context"
	"encoding/json"

	"callcenter-analysis-be/internal/dto"
	"callcenter-analysis-be/internal/pkg/logger"
	"callcenter-analysis-be/internal/protocol"
)

// MessagePublisher is satisfied by service.IPublisherService.
type MessagePublisher interface {
	Publish(ctx context.Context, payload []byte) error
}

// ArchiveSink hands every accepted analysis to the archive consumer. Turns
// and clears are not archived on their own.
type ArchiveSink struct {
	publisher MessagePublisher
	logger    logger.ILogger
}

func NewArchiveSink(publisher MessagePublisher, log logger.ILogger) *ArchiveSink {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &ArchiveSink{publisher: publisher, logger: log}
}

func (s *ArchiveSink) TurnAppended(string, protocol.Turn) {}

func (s *ArchiveSink) SessionCleared(string, int) {}

func (s *ArchiveSink) AnalysisCompleted(sessionID string, turns []protocol.Turn, result protocol.AnalysisResult) {
	payload, err := json.Marshal(dto.ArchiveConversationMessage{
		SessionID:  sessionID,
		Generation: result.Generation,
		Turns:      turns,
		Result:     result,
	})
	if err != nil {
		s.logger.Error("Archive", "Failed to marshal archive message", map[string]interface{}{
			"session_id": sessionID, "error": err.Error(),
		})
		return
	}
	if err := s.publisher.Publish(context.Background(), payload); err != nil {
		s.logger.Error("Archive", "Failed to publish archive message", map[string]interface{}{
			"session_id": sessionID, "error": err.Error(),
		})
	}
}
