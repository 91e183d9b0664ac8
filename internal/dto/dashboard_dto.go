package dto

import (
	"time"

	"github.com/google/uuid"

	"callcenter-analysis-be/internal/protocol"
)

// Scores in these responses are on the archive's 0-1 scale.

type DashboardQuery struct {
	Date string `query:"date"`
}

type TrendsQuery struct {
	Days int `query:"days" validate:"omitempty,min=1,max=90"`
}

type ConversationListQuery struct {
	Limit    int    `query:"limit" validate:"omitempty,min=1,max=200"`
	Skip     int    `query:"skip" validate:"omitempty,min=0"`
	Category string `query:"category" validate:"omitempty,max=50"`
	Resolved string `query:"resolved" validate:"omitempty,oneof=true false"`
}

type DashboardSummary struct {
	TotalConversations    int     `json:"total_conversations"`
	ResolvedConversations int     `json:"resolved_conversations"`
	ResolutionRate        float64 `json:"resolution_rate"`
	AvgSatisfaction       float64 `json:"avg_satisfaction"`
	AvgSentiment          float64 `json:"avg_sentiment"`
	AvgPerformance        float64 `json:"avg_performance"`
}

type HourlyBucket struct {
	Count    int `json:"count"`
	Resolved int `json:"resolved"`
}

type CommonIssue struct {
	Category string   `json:"category"`
	Count    int      `json:"count"`
	Examples []string `json:"examples"`
}

type ConversationResponse struct {
	Id               uuid.UUID          `json:"id"`
	SessionId        string             `json:"session_id"`
	Generation       int                `json:"generation"`
	CustomerMessage  string             `json:"customer_message"`
	AgentMessage     string             `json:"agent_message"`
	Timestamp        time.Time          `json:"timestamp"`
	SentimentScore   float64            `json:"sentiment_score"`
	ResolutionScore  float64            `json:"resolution_score"`
	AgentPerformance float64            `json:"agent_performance"`
	OverallScore     float64            `json:"overall_score"`
	IsResolved       bool               `json:"is_resolved"`
	CustomerEmotion  string             `json:"customer_emotion,omitempty"`
	ResponseTime     string             `json:"response_time,omitempty"`
	EmpathyLevel     string             `json:"empathy_level,omitempty"`
	Category         string             `json:"category,omitempty"`
	Keywords         []string           `json:"keywords"`
	Insights         []protocol.Insight `json:"insights,omitempty"`
	Transcript       []protocol.Turn    `json:"transcript,omitempty"`
}

type DashboardResponse struct {
	Date                string                  `json:"date"`
	Summary             DashboardSummary        `json:"summary"`
	EmotionDistribution map[string]int          `json:"emotion_distribution"`
	HourlyDistribution  map[string]HourlyBucket `json:"hourly_distribution"`
	CommonIssues        []CommonIssue           `json:"common_issues"`
	RecentConversations []*ConversationResponse `json:"recent_conversations"`
}

type TrendPoint struct {
	Date            string  `json:"date"`
	Total           int     `json:"total"`
	Resolved        int     `json:"resolved"`
	AvgSatisfaction float64 `json:"avg_satisfaction"`
}

type TrendsResponse struct {
	Days   int          `json:"days"`
	Trends []TrendPoint `json:"trends"`
}

type ConversationListResponse struct {
	Conversations []*ConversationResponse `json:"conversations"`
	Total         int64                   `json:"total"`
}

type CategoryStat struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

type DatabaseStatsResponse struct {
	TotalConversations int64          `json:"total_conversations"`
	Resolved           int64          `json:"resolved"`
	Pending            int64          `json:"pending"`
	Categories         []CategoryStat `json:"categories"`
}
