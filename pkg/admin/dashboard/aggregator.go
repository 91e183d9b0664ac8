package dashboard

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"callcenter-analysis-be/internal/dto"
	"callcenter-analysis-be/internal/entity"
	"callcenter-analysis-be/internal/pkg/logger"
	"callcenter-analysis-be/internal/repository/specification"
	"callcenter-analysis-be/internal/repository/unitofwork"
	"callcenter-analysis-be/pkg/admin/mapper"
)

const (
	recentLimit    = 10
	issueLimit     = 5
	issueExamples  = 3
	exampleMaxRune = 100
)

// Aggregator builds the archive dashboard.
type Aggregator struct {
	logger logger.ILogger
}

func NewAggregator(logger logger.ILogger) *Aggregator {
	return &Aggregator{
		logger: logger,
	}
}

// DayBounds returns [start of day, start of next day) in t's location.
func DayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

// GetDashboard summarises the conversations archived on day.
func (a *Aggregator) GetDashboard(ctx context.Context, uow unitofwork.UnitOfWork, day time.Time) (*dto.DashboardResponse, error) {
	from, to := DayBounds(day)
	convs, err := uow.ConversationRepository().FindAll(ctx,
		specification.TimestampBetween{From: from, To: to},
		specification.OrderBy{Field: "timestamp", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	recent := convs
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}

	return &dto.DashboardResponse{
		Date:                from.Format("2006-01-02"),
		Summary:             Summarize(convs),
		EmotionDistribution: EmotionDistribution(convs),
		HourlyDistribution:  HourlyDistribution(convs),
		CommonIssues:        CommonIssues(convs, issueLimit),
		RecentConversations: mapper.ConversationsToResponse(recent, false),
	}, nil
}

// GetTrends returns one point per day for the last days days, today included.
// Days without a report are reported as zero.
func (a *Aggregator) GetTrends(ctx context.Context, uow unitofwork.UnitOfWork, today time.Time, days int) (*dto.TrendsResponse, error) {
	_, end := DayBounds(today)
	start := end.AddDate(0, 0, -days)

	reports, err := uow.DailyReportRepository().FindBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}
	byDate := make(map[string]*entity.DailyReport, len(reports))
	for _, r := range reports {
		byDate[r.Date.In(start.Location()).Format("2006-01-02")] = r
	}

	points := make([]dto.TrendPoint, 0, days)
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		p := dto.TrendPoint{Date: key}
		if r, ok := byDate[key]; ok {
			p.Total = r.TotalConversations
			p.Resolved = r.ResolvedConversations
			p.AvgSatisfaction = r.AvgSatisfaction
		}
		points = append(points, p)
	}
	return &dto.TrendsResponse{Days: days, Trends: points}, nil
}

// GetDatabaseStats counts the whole archive.
func (a *Aggregator) GetDatabaseStats(ctx context.Context, uow unitofwork.UnitOfWork) (*dto.DatabaseStatsResponse, error) {
	repo := uow.ConversationRepository()
	total, err := repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	resolved, err := repo.Count(ctx, specification.ByResolved{Resolved: true})
	if err != nil {
		return nil, err
	}
	counts, err := repo.CountByCategory(ctx)
	if err != nil {
		return nil, err
	}

	categories := make([]dto.CategoryStat, 0, len(counts))
	for _, c := range counts {
		categories = append(categories, dto.CategoryStat{Name: c.Category, Count: c.Count})
	}
	return &dto.DatabaseStatsResponse{
		TotalConversations: total,
		Resolved:           resolved,
		Pending:            total - resolved,
		Categories:         categories,
	}, nil
}

// RefreshDailyReport recomputes the report of the day containing t.
func (a *Aggregator) RefreshDailyReport(ctx context.Context, uow unitofwork.UnitOfWork, t time.Time) (*entity.DailyReport, error) {
	from, to := DayBounds(t)
	convs, err := uow.ConversationRepository().FindAll(ctx, specification.TimestampBetween{From: from, To: to})
	if err != nil {
		return nil, err
	}
	report := BuildDailyReport(from, convs)
	if err := uow.DailyReportRepository().Upsert(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// GetSystemLogs retrieves system logs
func (a *Aggregator) GetSystemLogs(ctx context.Context, loggerSvc logger.ILogger, page, limit int, level string) ([]*dto.LogListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}
	logs, err := loggerSvc.GetLogs(level, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.LogListResponse, 0, len(logs))
	for _, l := range logs {
		res = append(res, mapper.LogToListResponse(l))
	}
	return res, nil
}

// GetLogDetail retrieves a single log entry
func (a *Aggregator) GetLogDetail(ctx context.Context, loggerSvc logger.ILogger, logId string) (*dto.LogDetailResponse, error) {
	l, err := loggerSvc.GetLogById(logId)
	if err != nil {
		return nil, err
	}
	return mapper.LogToDetailResponse(l), nil
}

func Summarize(convs []*entity.Conversation) dto.DashboardSummary {
	s := dto.DashboardSummary{TotalConversations: len(convs)}
	if len(convs) == 0 {
		return s
	}
	var overall, sentiment, performance float64
	for _, c := range convs {
		if c.IsResolved {
			s.ResolvedConversations++
		}
		overall += c.OverallScore
		sentiment += c.SentimentScore
		performance += c.AgentPerformance
	}
	n := float64(len(convs))
	s.ResolutionRate = float64(s.ResolvedConversations) / n * 100
	s.AvgSatisfaction = overall / n
	s.AvgSentiment = sentiment / n
	s.AvgPerformance = performance / n
	return s
}

func EmotionDistribution(convs []*entity.Conversation) map[string]int {
	out := make(map[string]int)
	for _, c := range convs {
		if c.CustomerEmotion != "" {
			out[c.CustomerEmotion]++
		}
	}
	return out
}

// HourlyDistribution buckets conversations by the hour of their timestamp.
func HourlyDistribution(convs []*entity.Conversation) map[string]dto.HourlyBucket {
	out := make(map[string]dto.HourlyBucket)
	for _, c := range convs {
		key := strconv.Itoa(c.Timestamp.Hour())
		b := out[key]
		b.Count++
		if c.IsResolved {
			b.Resolved++
		}
		out[key] = b
	}
	return out
}

// CommonIssues ranks categories by count, ties by name, and attaches the
// opening customer message of a few conversations as examples.
func CommonIssues(convs []*entity.Conversation, limit int) []dto.CommonIssue {
	byCategory := make(map[string]*dto.CommonIssue)
	for _, c := range convs {
		if c.Category == "" {
			continue
		}
		issue, ok := byCategory[c.Category]
		if !ok {
			issue = &dto.CommonIssue{Category: c.Category, Examples: []string{}}
			byCategory[c.Category] = issue
		}
		issue.Count++
		if len(issue.Examples) < issueExamples {
			if ex := example(c.CustomerMessage); ex != "" {
				issue.Examples = append(issue.Examples, ex)
			}
		}
	}

	out := make([]dto.CommonIssue, 0, len(byCategory))
	for _, issue := range byCategory {
		out = append(out, *issue)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Category < out[j].Category
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// BuildDailyReport rolls up the conversations of one day.
func BuildDailyReport(day time.Time, convs []*entity.Conversation) *entity.DailyReport {
	report := &entity.DailyReport{Date: day, TotalConversations: len(convs)}
	if len(convs) == 0 {
		return report
	}

	emotions := make(map[string]int)
	categories := make(map[string]int)
	var sentiment, overall, performance float64
	for _, c := range convs {
		if c.IsResolved {
			report.ResolvedConversations++
		}
		sentiment += c.SentimentScore
		overall += c.OverallScore
		performance += c.AgentPerformance
		if c.CustomerEmotion != "" {
			emotions[c.CustomerEmotion]++
		}
		if c.Category != "" {
			categories[c.Category]++
		}
	}
	n := float64(len(convs))
	report.AvgSentiment = sentiment / n
	report.AvgSatisfaction = overall / n
	report.AvgPerformance = performance / n
	report.TopEmotion = mostFrequent(emotions)
	report.TopCategory = mostFrequent(categories)
	return report
}

// mostFrequent breaks ties alphabetically so reports are reproducible.
func mostFrequent(counts map[string]int) string {
	best, bestN := "", 0
	for k, n := range counts {
		if n > bestN || (n == bestN && k < best) {
			best, bestN = k, n
		}
	}
	return best
}

func example(customerMessage string) string {
	first := strings.TrimSpace(strings.SplitN(customerMessage, " | ", 2)[0])
	runes := []rune(first)
	if len(runes) > exampleMaxRune {
		return string(runes[:exampleMaxRune]) + "..."
	}
	return first
}
