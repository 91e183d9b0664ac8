package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"callcenter-analysis-be/internal/dto"
	"callcenter-analysis-be/internal/entity"
	"callcenter-analysis-be/internal/pkg/logger"
	"callcenter-analysis-be/internal/protocol"
	"callcenter-analysis-be/internal/repository/unitofwork"
	"callcenter-analysis-be/pkg/admin/dashboard"
	"callcenter-analysis-be/pkg/scoring"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService archives accepted analyses and keeps the daily report of
// their day current.
type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	aggregator *dashboard.Aggregator
	logger     logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	aggregator *dashboard.Aggregator,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		aggregator: aggregator,
		logger:     log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.ArchiveConversationMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("Archive", "Failed to unmarshal message", map[string]interface{}{
			"message_id": msg.UUID, "error": err.Error(),
		})
		msg.Ack() // redelivery cannot fix a bad payload
		return
	}
	if len(payload.Turns) == 0 {
		msg.Ack()
		return
	}

	conversation := ConversationFromArchive(payload)

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		cs.logger.Error("Archive", "Failed to begin transaction", map[string]interface{}{"error": err.Error()})
		msg.Nack()
		return
	}
	defer uow.Rollback()

	if err := uow.ConversationRepository().Upsert(ctx, conversation); err != nil {
		cs.logger.Error("Archive", "Failed to upsert conversation", map[string]interface{}{
			"session_id": payload.SessionID, "generation": payload.Generation, "error": err.Error(),
		})
		msg.Nack()
		return
	}

	if _, err := cs.aggregator.RefreshDailyReport(ctx, uow, conversation.Timestamp); err != nil {
		cs.logger.Error("Archive", "Failed to refresh daily report", map[string]interface{}{
			"session_id": payload.SessionID, "error": err.Error(),
		})
		msg.Nack()
		return
	}

	if err := uow.Commit(); err != nil {
		cs.logger.Error("Archive", "Failed to commit transaction", map[string]interface{}{"error": err.Error()})
		msg.Nack()
		return
	}

	cs.logger.Info("Archive", "Conversation archived", map[string]interface{}{
		"session_id": payload.SessionID, "generation": payload.Generation,
		"conversation_id": conversation.Id, "category": conversation.Category,
	})
	msg.Ack()
}

// ConversationFromArchive converts an accepted analysis into an archive row.
// Scores move from the engine's 0-10 scale to the archive's 0-1 scale.
func ConversationFromArchive(m dto.ArchiveConversationMessage) *entity.Conversation {
	a := m.Result.Analysis
	var customer, agent []string
	for _, t := range m.Turns {
		switch t.Role {
		case protocol.RoleCustomer:
			customer = append(customer, t.Text)
		case protocol.RoleAgent:
			agent = append(agent, t.Text)
		}
	}

	return &entity.Conversation{
		SessionId:        m.SessionID,
		Generation:       m.Generation,
		Turns:            m.Turns,
		Insights:         a.Insights,
		CustomerMessage:  strings.Join(customer, " | "),
		AgentMessage:     strings.Join(agent, " | "),
		Timestamp:        m.Result.Timestamp,
		SentimentScore:   float64(a.Sentiment) / 10,
		ResolutionScore:  float64(a.Resolution) / 10,
		AgentPerformance: float64(a.AgentPerformance) / 10,
		OverallScore:     float64(a.OverallScore) / 10,
		IsResolved:       a.Metrics.ProblemResolved,
		CustomerEmotion:  scoring.EmotionCode(a.Metrics.CustomerEmotion),
		ResponseTime:     a.Metrics.ResponseTime,
		EmpathyLevel:     scoring.EmpathyCode(a.Metrics.EmpathyLevel),
		Category:         scoring.Categorize(m.Turns),
		Keywords:         scoring.Keywords(m.Turns),
	}
}
