package mapper

import (
	"encoding/json"
	"strings"

	"gorm.io/datatypes"

	"callcenter-analysis-be/internal/entity"
	"callcenter-analysis-be/internal/model"
	"callcenter-analysis-be/internal/protocol"
)

type ConversationMapper struct{}

func NewConversationMapper() *ConversationMapper {
	return &ConversationMapper{}
}

func (m *ConversationMapper) ToEntity(c *model.Conversation) *entity.Conversation {
	if c == nil {
		return nil
	}
	var turns []protocol.Turn
	if len(c.Transcript) > 0 {
		_ = json.Unmarshal(c.Transcript, &turns)
	}
	var insights []protocol.Insight
	if len(c.Insights) > 0 {
		_ = json.Unmarshal(c.Insights, &insights)
	}
	var keywords []string
	if c.Keywords != "" {
		keywords = strings.Split(c.Keywords, ",")
	}

	return &entity.Conversation{
		Id:               c.ID,
		SessionId:        c.SessionID,
		Generation:       c.Generation,
		Turns:            turns,
		Insights:         insights,
		CustomerMessage:  c.CustomerMessage,
		AgentMessage:     c.AgentMessage,
		Timestamp:        c.Timestamp,
		SentimentScore:   c.SentimentScore,
		ResolutionScore:  c.ResolutionScore,
		AgentPerformance: c.AgentPerformance,
		OverallScore:     c.OverallScore,
		IsResolved:       c.IsResolved,
		CustomerEmotion:  c.CustomerEmotion,
		ResponseTime:     c.ResponseTime,
		EmpathyLevel:     c.EmpathyLevel,
		Category:         c.Category,
		Keywords:         keywords,
	}
}

func (m *ConversationMapper) ToModel(c *entity.Conversation) *model.Conversation {
	if c == nil {
		return nil
	}
	out := &model.Conversation{
		ID:               c.Id,
		SessionID:        c.SessionId,
		Generation:       c.Generation,
		CustomerMessage:  c.CustomerMessage,
		AgentMessage:     c.AgentMessage,
		TurnCount:        len(c.Turns),
		Timestamp:        c.Timestamp,
		SentimentScore:   c.SentimentScore,
		ResolutionScore:  c.ResolutionScore,
		AgentPerformance: c.AgentPerformance,
		OverallScore:     c.OverallScore,
		IsResolved:       c.IsResolved,
		CustomerEmotion:  c.CustomerEmotion,
		ResponseTime:     c.ResponseTime,
		EmpathyLevel:     c.EmpathyLevel,
		Category:         c.Category,
		Keywords:         strings.Join(c.Keywords, ","),
	}
	if c.Turns != nil {
		if b, err := json.Marshal(c.Turns); err == nil {
			out.Transcript = datatypes.JSON(b)
		}
	}
	if c.Insights != nil {
		if b, err := json.Marshal(c.Insights); err == nil {
			out.Insights = datatypes.JSON(b)
		}
	}
	return out
}

func (m *ConversationMapper) ToDailyReportEntity(r *model.DailyReport) *entity.DailyReport {
	if r == nil {
		return nil
	}
	return &entity.DailyReport{
		Id:                    r.ID,
		Date:                  r.Date,
		TotalConversations:    r.TotalConversations,
		ResolvedConversations: r.ResolvedConversations,
		AvgSentiment:          r.AvgSentiment,
		AvgSatisfaction:       r.AvgSatisfaction,
		AvgPerformance:        r.AvgPerformance,
		TopEmotion:            r.TopEmotion,
		TopCategory:           r.TopCategory,
	}
}

func (m *ConversationMapper) ToDailyReportModel(r *entity.DailyReport) *model.DailyReport {
	if r == nil {
		return nil
	}
	return &model.DailyReport{
		ID:                    r.Id,
		Date:                  r.Date,
		TotalConversations:    r.TotalConversations,
		ResolvedConversations: r.ResolvedConversations,
		AvgSentiment:          r.AvgSentiment,
		AvgSatisfaction:       r.AvgSatisfaction,
		AvgPerformance:        r.AvgPerformance,
		TopEmotion:            r.TopEmotion,
		TopCategory:           r.TopCategory,
	}
}
