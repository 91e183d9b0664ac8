package dashboard

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"callcenter-analysis-be/internal/entity"
)

func at(hour int) time.Time {
	return time.Date(2024, 5, 1, hour, 15, 0, 0, time.Local)
}

func TestBuildDailyReport(t *testing.T) {
	day, _ := DayBounds(at(10))
	convs := []*entity.Conversation{
		{Category: "roaming", CustomerEmotion: "frustrated", IsResolved: true, OverallScore: 0.8, SentimentScore: 0.6, AgentPerformance: 0.9, Timestamp: at(9)},
		{Category: "billing_error", CustomerEmotion: "neutral", OverallScore: 0.4, SentimentScore: 0.2, AgentPerformance: 0.5, Timestamp: at(11)},
		{Category: "billing_error", CustomerEmotion: "frustrated", IsResolved: true, OverallScore: 0.6, SentimentScore: 0.4, AgentPerformance: 0.7, Timestamp: at(11)},
	}

	r := BuildDailyReport(day, convs)
	assert.Equal(t, 3, r.TotalConversations)
	assert.Equal(t, 2, r.ResolvedConversations)
	assert.InDelta(t, 0.6, r.AvgSatisfaction, 1e-9)
	assert.InDelta(t, 0.4, r.AvgSentiment, 1e-9)
	assert.InDelta(t, 0.7, r.AvgPerformance, 1e-9)
	assert.Equal(t, "frustrated", r.TopEmotion)
	assert.Equal(t, "billing_error", r.TopCategory)

	hours := HourlyDistribution(convs)
	assert.Equal(t, 2, hours["11"].Count)
	assert.Equal(t, 1, hours["11"].Resolved)
	assert.Equal(t, 1, hours["9"].Count)
}

func TestEmptyDayReport(t *testing.T) {
	day, _ := DayBounds(at(0))
	r := BuildDailyReport(day, nil)
	assert.Zero(t, r.TotalConversations)
	assert.Empty(t, r.TopCategory)

	s := Summarize(nil)
	assert.Zero(t, s.ResolutionRate)
}

func TestCommonIssuesRanking(t *testing.T) {
	long := strings.Repeat("ş", 120)
	convs := []*entity.Conversation{
		{Category: "roaming", CustomerMessage: "yurtdışında hat çalışmıyor | hala"},
		{Category: "tariff_change", CustomerMessage: "tarife değişikliği"},
		{Category: "roaming", CustomerMessage: long},
		{Category: "billing_error", CustomerMessage: "fatura yüksek"},
		{Category: "", CustomerMessage: "uncategorised"},
	}

	issues := CommonIssues(convs, 2)
	require.Len(t, issues, 2)
	assert.Equal(t, "roaming", issues[0].Category)
	assert.Equal(t, 2, issues[0].Count)
	assert.Equal(t, "yurtdışında hat çalışmıyor", issues[0].Examples[0])
	assert.Equal(t, string([]rune(long)[:100])+"...", issues[0].Examples[1])
	// one each: alphabetical
	assert.Equal(t, "billing_error", issues[1].Category)
}

func TestMostFrequentTieBreak(t *testing.T) {
	assert.Equal(t, "a", mostFrequent(map[string]int{"b": 2, "a": 2, "c": 1}))
	assert.Equal(t, "", mostFrequent(map[string]int{}))
}

func TestDayBoundsKeepsLocation(t *testing.T) {
	loc := time.FixedZone("TRT", 3*3600)
	from, to := DayBounds(time.Date(2024, 5, 1, 23, 59, 0, 0, loc))
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, loc), from)
	assert.Equal(t, 24*time.Hour, to.Sub(from))
}
