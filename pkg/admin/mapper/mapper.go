package mapper

import (
	"time"

	"callcenter-analysis-be/internal/dto"
	"callcenter-analysis-be/internal/entity"
	"callcenter-analysis-be/internal/pkg/logger"
)

// ConversationToResponse converts an archived conversation to its REST form.
// The transcript is only included when withTranscript is set.
func ConversationToResponse(c *entity.Conversation, withTranscript bool) *dto.ConversationResponse {
	if c == nil {
		return nil
	}
	keywords := c.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	res := &dto.ConversationResponse{
		Id:               c.Id,
		SessionId:        c.SessionId,
		Generation:       c.Generation,
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
		Insights:         c.Insights,
	}
	if withTranscript {
		res.Transcript = c.Turns
	}
	return res
}

func ConversationsToResponse(convs []*entity.Conversation, withTranscript bool) []*dto.ConversationResponse {
	res := make([]*dto.ConversationResponse, 0, len(convs))
	for _, c := range convs {
		res = append(res, ConversationToResponse(c, withTranscript))
	}
	return res
}

// logTimeLayout matches zapcore.ISO8601TimeEncoder.
const logTimeLayout = "2006-01-02T15:04:05.000Z0700"

// LogToListResponse converts a log file entry to the list DTO.
func LogToListResponse(l logger.LogEntry) *dto.LogListResponse {
	ts, err := time.Parse(logTimeLayout, l.Timestamp)
	if err != nil {
		ts, _ = time.Parse(time.RFC3339, l.Timestamp)
	}
	return &dto.LogListResponse{
		Id:        l.Id,
		Level:     l.Level,
		Module:    l.Module,
		Message:   l.Message,
		CreatedAt: ts,
	}
}

func LogToDetailResponse(l *logger.LogEntry) *dto.LogDetailResponse {
	if l == nil {
		return nil
	}
	return &dto.LogDetailResponse{
		LogListResponse: *LogToListResponse(*l),
		Details:         l.Details,
	}
}
