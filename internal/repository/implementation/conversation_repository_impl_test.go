package implementation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"callcenter-analysis-be/internal/entity"
	"callcenter-analysis-be/internal/model"
	"callcenter-analysis-be/internal/protocol"
	"callcenter-analysis-be/internal/repository/specification"
	"callcenter-analysis-be/pkg/database"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewSQLiteDB(":memory:", gormlogger.Silent)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.AllModels()...))
	return db
}

func sampleConversation(session string, generation int, category string, resolved bool, at time.Time) *entity.Conversation {
	return &entity.Conversation{
		SessionId:  session,
		Generation: generation,
		Turns: []protocol.Turn{
			{Seq: 1, Role: protocol.RoleCustomer, Text: "internet is slow"},
			{Seq: 2, Role: protocol.RoleAgent, Text: "sending a technician"},
		},
		Insights:        []protocol.Insight{{Type: "success", Text: "fast fix"}},
		CustomerMessage: "internet is slow",
		AgentMessage:    "sending a technician",
		Timestamp:       at,
		OverallScore:    0.7,
		IsResolved:      resolved,
		Category:        category,
		Keywords:        []string{"fiber", "speed"},
	}
}

func TestConversationUpsertReplacesSameGeneration(t *testing.T) {
	ctx := context.Background()
	repo := NewConversationRepository(newTestDB(t))
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	first := sampleConversation("s1", 0, "internet_speed", false, at)
	require.NoError(t, repo.Upsert(ctx, first))
	require.NotEmpty(t, first.Id)

	second := sampleConversation("s1", 0, "internet_speed", true, at.Add(time.Minute))
	second.OverallScore = 0.9
	require.NoError(t, repo.Upsert(ctx, second))
	assert.Equal(t, first.Id, second.Id)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	got, err := repo.FindOne(ctx, specification.ByID{ID: first.Id})
	require.NoError(t, err)
	assert.True(t, got.IsResolved)
	assert.InDelta(t, 0.9, got.OverallScore, 1e-9)
	assert.Len(t, got.Turns, 2)
	assert.Equal(t, []string{"fiber", "speed"}, got.Keywords)

	// a cleared session archives its next conversation separately
	require.NoError(t, repo.Upsert(ctx, sampleConversation("s1", 1, "billing_error", false, at)))
	n, err = repo.Count(ctx, specification.BySession{SessionID: "s1"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestConversationFiltersAndCategoryCounts(t *testing.T) {
	ctx := context.Background()
	repo := NewConversationRepository(newTestDB(t))
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	rows := []*entity.Conversation{
		sampleConversation("a", 0, "billing_error", true, day.Add(9*time.Hour)),
		sampleConversation("b", 0, "billing_error", false, day.Add(10*time.Hour)),
		sampleConversation("c", 0, "roaming", true, day.Add(11*time.Hour)),
		sampleConversation("d", 0, "", true, day.Add(30*time.Hour)),
	}
	for _, c := range rows {
		require.NoError(t, repo.Create(ctx, c))
	}

	sameDay := specification.TimestampBetween{From: day, To: day.Add(24 * time.Hour)}
	n, err := repo.Count(ctx, sameDay)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	resolved, err := repo.FindAll(ctx, specification.ByResolved{Resolved: true}, specification.OrderBy{Field: "timestamp", Desc: true})
	require.NoError(t, err)
	require.Len(t, resolved, 3)
	assert.Equal(t, "d", resolved[0].SessionId)

	page, err := repo.FindAll(ctx, specification.ByCategory{Category: "billing_error"}, specification.Pagination{Limit: 1, Offset: 1}, specification.OrderBy{Field: "timestamp"})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "b", page[0].SessionId)

	counts, err := repo.CountByCategory(ctx)
	require.NoError(t, err)
	assert.Equal(t, []entity.CategoryCount{
		{Category: "billing_error", Count: 2},
		{Category: "roaming", Count: 1},
	}, counts)

	require.NoError(t, repo.DeleteAll(ctx))
	n, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDailyReportUpsertByDate(t *testing.T) {
	ctx := context.Background()
	repo := NewDailyReportRepository(newTestDB(t))
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Upsert(ctx, &entity.DailyReport{Date: day, TotalConversations: 3}))
	require.NoError(t, repo.Upsert(ctx, &entity.DailyReport{Date: day, TotalConversations: 5, TopCategory: "roaming"}))
	require.NoError(t, repo.Upsert(ctx, &entity.DailyReport{Date: day.AddDate(0, 0, 1), TotalConversations: 1}))

	reports, err := repo.FindBetween(ctx, day, day.AddDate(0, 0, 7))
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, 5, reports[0].TotalConversations)
	assert.Equal(t, "roaming", reports[0].TopCategory)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}
