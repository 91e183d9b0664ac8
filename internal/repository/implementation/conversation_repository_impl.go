package implementation

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"callcenter-analysis-be/internal/entity"
	"callcenter-analysis-be/internal/mapper"
	"callcenter-analysis-be/internal/model"
	"callcenter-analysis-be/internal/repository/contract"
	"callcenter-analysis-be/internal/repository/specification"
)

type ConversationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ConversationMapper
}

func NewConversationRepository(db *gorm.DB) contract.ConversationRepository {
	return &ConversationRepositoryImpl{
		db:     db,
		mapper: mapper.NewConversationMapper(),
	}
}

func applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ConversationRepositoryImpl) Upsert(ctx context.Context, conversation *entity.Conversation) error {
	m := r.mapper.ToModel(conversation)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "session_id"}, {Name: "generation"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"customer_message", "agent_message", "transcript", "insights", "turn_count", "timestamp",
			"sentiment_score", "resolution_score", "agent_performance", "overall_score", "is_resolved",
			"customer_emotion", "response_time", "empathy_level", "category", "keywords", "updated_at",
		}),
		// Results can arrive out of order; never replace a longer transcript.
		Where: clause.Where{Exprs: []clause.Expression{
			clause.Expr{SQL: "conversations.turn_count <= excluded.turn_count"},
		}},
	}).Create(m).Error
	if err != nil {
		return err
	}

	// The conflict path keeps the stored id; read it back.
	var stored model.Conversation
	gen := conversation.Generation
	if err := (specification.BySession{SessionID: m.SessionID, Generation: &gen}).
		Apply(r.db.WithContext(ctx)).First(&stored).Error; err != nil {
		return err
	}
	*conversation = *r.mapper.ToEntity(&stored)
	return nil
}

func (r *ConversationRepositoryImpl) Create(ctx context.Context, conversation *entity.Conversation) error {
	m := r.mapper.ToModel(conversation)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*conversation = *r.mapper.ToEntity(m)
	return nil
}

func (r *ConversationRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Conversation, error) {
	var m model.Conversation
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ConversationRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Conversation, error) {
	var models []*model.Conversation
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]*entity.Conversation, 0, len(models))
	for _, m := range models {
		out = append(out, r.mapper.ToEntity(m))
	}
	return out, nil
}

func (r *ConversationRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Conversation{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ConversationRepositoryImpl) CountByCategory(ctx context.Context, specs ...specification.Specification) ([]entity.CategoryCount, error) {
	var rows []struct {
		Category string
		Count    int64
	}
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Conversation{}), specs...)
	err := specification.HasCategory{}.Apply(query).
		Select("category, COUNT(*) AS count").
		Group("category").
		Order("count DESC").
		Order("category ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]entity.CategoryCount, 0, len(rows))
	for _, row := range rows {
		out = append(out, entity.CategoryCount{Category: row.Category, Count: row.Count})
	}
	return out, nil
}

func (r *ConversationRepositoryImpl) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Conversation{}).Error
}

type DailyReportRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ConversationMapper
}

func NewDailyReportRepository(db *gorm.DB) contract.DailyReportRepository {
	return &DailyReportRepositoryImpl{
		db:     db,
		mapper: mapper.NewConversationMapper(),
	}
}

func (r *DailyReportRepositoryImpl) Upsert(ctx context.Context, report *entity.DailyReport) error {
	m := r.mapper.ToDailyReportModel(report)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"total_conversations", "resolved_conversations", "avg_sentiment", "avg_satisfaction",
			"avg_performance", "top_emotion", "top_category", "updated_at",
		}),
	}).Create(m).Error
	if err != nil {
		return err
	}
	report.Id = m.ID
	return nil
}

func (r *DailyReportRepositoryImpl) FindBetween(ctx context.Context, from, to time.Time) ([]*entity.DailyReport, error) {
	var models []*model.DailyReport
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date < ?", from, to).
		Order("date ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	out := make([]*entity.DailyReport, 0, len(models))
	for _, m := range models {
		out = append(out, r.mapper.ToDailyReportEntity(m))
	}
	return out, nil
}

func (r *DailyReportRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.DailyReport{}).Count(&count).Error
	return count, err
}

func (r *DailyReportRepositoryImpl) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.DailyReport{}).Error
}
