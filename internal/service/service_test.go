package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"callcenter-analysis-be/internal/entity"
	"callcenter-analysis-be/internal/model"
	"callcenter-analysis-be/internal/pkg/logger"
	"callcenter-analysis-be/internal/repository/unitofwork"
	"callcenter-analysis-be/pkg/admin/dashboard"
	"callcenter-analysis-be/pkg/database"
)

func newTestFactory(t *testing.T) (unitofwork.RepositoryFactory, *gorm.DB) {
	t.Helper()
	db, err := database.NewSQLiteDB(":memory:", gormlogger.Silent)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.AllModels()...))
	return unitofwork.NewRepositoryFactory(db), db
}

func archive(t *testing.T, f unitofwork.RepositoryFactory, convs ...*entity.Conversation) {
	t.Helper()
	ctx := context.Background()
	agg := dashboard.NewAggregator(logger.NewNopLogger())
	for _, c := range convs {
		uow := f.NewUnitOfWork(ctx)
		require.NoError(t, uow.ConversationRepository().Create(ctx, c))
		_, err := agg.RefreshDailyReport(ctx, uow, c.Timestamp)
		require.NoError(t, err)
	}
}

func conv(session, category, emotion string, resolved bool, overall float64, at time.Time) *entity.Conversation {
	return &entity.Conversation{
		SessionId:       session,
		CustomerMessage: "problem of " + session + " | still there",
		AgentMessage:    "on it",
		Timestamp:       at,
		OverallScore:    overall,
		SentimentScore:  overall,
		IsResolved:      resolved,
		CustomerEmotion: emotion,
		Category:        category,
	}
}
