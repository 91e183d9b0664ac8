package entity

import (
	"time"

	"github.com/google/uuid"

	"callcenter-analysis-be/internal/protocol"
)

// Conversation is an archived conversation with its scores normalised to 0-1.
type Conversation struct {
	Id               uuid.UUID
	SessionId        string
	Generation       int
	Turns            []protocol.Turn
	Insights         []protocol.Insight
	CustomerMessage  string
	AgentMessage     string
	Timestamp        time.Time
	SentimentScore   float64
	ResolutionScore  float64
	AgentPerformance float64
	OverallScore     float64
	IsResolved       bool
	CustomerEmotion  string
	ResponseTime     string
	EmpathyLevel     string
	Category         string
	Keywords         []string
}

type DailyReport struct {
	Id                    uint
	Date                  time.Time
	TotalConversations    int
	ResolvedConversations int
	AvgSentiment          float64
	AvgSatisfaction       float64
	AvgPerformance        float64
	TopEmotion            string
	TopCategory           string
}

// CategoryCount is one row of a group-by-category query.
type CategoryCount struct {
	Category string
	Count    int64
}
