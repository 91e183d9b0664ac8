package contract

import (
	"context"
	"time"

	"callcenter-analysis-be/internal/entity"
	"callcenter-analysis-be/internal/repository/specification"
)

type ConversationRepository interface {
	// Upsert inserts or replaces the row of (session id, generation) unless the
	// stored row covers more turns. conversation is refreshed from the stored row.
	Upsert(ctx context.Context, conversation *entity.Conversation) error
	Create(ctx context.Context, conversation *entity.Conversation) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Conversation, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Conversation, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	CountByCategory(ctx context.Context, specs ...specification.Specification) ([]entity.CategoryCount, error)
	DeleteAll(ctx context.Context) error
}

type DailyReportRepository interface {
	// Upsert replaces the report of the same day.
	Upsert(ctx context.Context, report *entity.DailyReport) error
	FindBetween(ctx context.Context, from, to time.Time) ([]*entity.DailyReport, error)
	Count(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) error
}
