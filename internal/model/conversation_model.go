package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Conversation is one archived, scored conversation. A session that was
// cleared produces one row per generation.
type Conversation struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID        string         `gorm:"type:varchar(128);not null;uniqueIndex:idx_conversations_session_generation,priority:1" json:"session_id"`
	Generation       int            `gorm:"not null;default:0;uniqueIndex:idx_conversations_session_generation,priority:2" json:"generation"`
	CustomerMessage  string         `gorm:"type:text" json:"customer_message"`
	AgentMessage     string         `gorm:"type:text" json:"agent_message"`
	Transcript       datatypes.JSON `json:"transcript,omitempty"`
	Insights         datatypes.JSON `json:"insights,omitempty"`
	TurnCount        int            `gorm:"not null;default:0" json:"turn_count"`
	Timestamp        time.Time      `gorm:"not null;index:idx_conversations_timestamp" json:"timestamp"`
	SentimentScore   float64        `json:"sentiment_score"`
	ResolutionScore  float64        `json:"resolution_score"`
	AgentPerformance float64        `json:"agent_performance"`
	OverallScore     float64        `json:"overall_score"`
	IsResolved       bool           `gorm:"default:false;index:idx_conversations_resolved" json:"is_resolved"`
	CustomerEmotion  string         `gorm:"type:varchar(50)" json:"customer_emotion,omitempty"`
	ResponseTime     string         `gorm:"type:varchar(50)" json:"response_time,omitempty"`
	EmpathyLevel     string         `gorm:"type:varchar(50)" json:"empathy_level,omitempty"`
	Category         string         `gorm:"type:varchar(50);index:idx_conversations_category" json:"category,omitempty"`
	Keywords         string         `gorm:"type:text" json:"keywords,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

func (c *Conversation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// DailyReport is the per-day rollup of the archive.
type DailyReport struct {
	ID                    uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Date                  time.Time `gorm:"not null;uniqueIndex" json:"date"`
	TotalConversations    int       `json:"total_conversations"`
	ResolvedConversations int       `json:"resolved_conversations"`
	AvgSentiment          float64   `json:"avg_sentiment"`
	AvgSatisfaction       float64   `json:"avg_satisfaction"`
	AvgPerformance        float64   `json:"avg_performance"`
	TopEmotion            string    `gorm:"type:varchar(50)" json:"top_emotion,omitempty"`
	TopCategory           string    `gorm:"type:varchar(50)" json:"top_category,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// AllModels lists every table for AutoMigrate.
func AllModels() []interface{} {
	return []interface{}{&Conversation{}, &DailyReport{}}
}
