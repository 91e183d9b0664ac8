package service

import (
	"context"
	"errors"
	"time"

	"callcenter-analysis-be/internal/dto"
	"callcenter-analysis-be/internal/pkg/logger"
	"callcenter-analysis-be/internal/pkg/serverutils"
	"callcenter-analysis-be/internal/repository/specification"
	"callcenter-analysis-be/internal/repository/unitofwork"
	"callcenter-analysis-be/pkg/admin/dashboard"
	"callcenter-analysis-be/pkg/admin/mapper"
)

const (
	defaultTrendDays = 7
	defaultPageSize  = 20
)

var dateLayouts = []string{"2006-01-02", "2006-01-02T15:04:05", time.RFC3339}

type IDashboardService interface {
	GetDashboard(ctx context.Context, query dto.DashboardQuery) (*dto.DashboardResponse, error)
	GetTrends(ctx context.Context, query dto.TrendsQuery) (*dto.TrendsResponse, error)
	GetConversations(ctx context.Context, query dto.ConversationListQuery) (*dto.ConversationListResponse, error)
	GetDatabaseStats(ctx context.Context) (*dto.DatabaseStatsResponse, error)
	GetSystemLogs(ctx context.Context, query dto.LogListQuery) ([]*dto.LogListResponse, error)
	GetLogDetail(ctx context.Context, logId string) (*dto.LogDetailResponse, error)
}

type dashboardService struct {
	uowFactory unitofwork.RepositoryFactory
	aggregator *dashboard.Aggregator
	logger     logger.ILogger
	clock      func() time.Time
}

func NewDashboardService(uowFactory unitofwork.RepositoryFactory, aggregator *dashboard.Aggregator, log logger.ILogger) IDashboardService {
	return &dashboardService{
		uowFactory: uowFactory,
		aggregator: aggregator,
		logger:     log,
		clock:      time.Now,
	}
}

func (s *dashboardService) GetDashboard(ctx context.Context, query dto.DashboardQuery) (*dto.DashboardResponse, error) {
	day := s.clock()
	if query.Date != "" {
		parsed, err := parseDate(query.Date, day.Location())
		if err != nil {
			return nil, serverutils.BadRequest("date must look like 2006-01-02")
		}
		day = parsed
	}
	return s.aggregator.GetDashboard(ctx, s.uowFactory.NewUnitOfWork(ctx), day)
}

func (s *dashboardService) GetTrends(ctx context.Context, query dto.TrendsQuery) (*dto.TrendsResponse, error) {
	days := query.Days
	if days == 0 {
		days = defaultTrendDays
	}
	return s.aggregator.GetTrends(ctx, s.uowFactory.NewUnitOfWork(ctx), s.clock(), days)
}

func (s *dashboardService) GetConversations(ctx context.Context, query dto.ConversationListQuery) (*dto.ConversationListResponse, error) {
	limit := query.Limit
	if limit == 0 {
		limit = defaultPageSize
	}

	var filters []specification.Specification
	if query.Category != "" {
		filters = append(filters, specification.ByCategory{Category: query.Category})
	}
	if query.Resolved != "" {
		filters = append(filters, specification.ByResolved{Resolved: query.Resolved == "true"})
	}

	repo := s.uowFactory.NewUnitOfWork(ctx).ConversationRepository()
	total, err := repo.Count(ctx, filters...)
	if err != nil {
		return nil, err
	}

	page := append(append([]specification.Specification{}, filters...),
		specification.OrderBy{Field: "timestamp", Desc: true},
		specification.Pagination{Limit: limit, Offset: query.Skip},
	)
	convs, err := repo.FindAll(ctx, page...)
	if err != nil {
		return nil, err
	}
	return &dto.ConversationListResponse{
		Conversations: mapper.ConversationsToResponse(convs, true),
		Total:         total,
	}, nil
}

func (s *dashboardService) GetDatabaseStats(ctx context.Context) (*dto.DatabaseStatsResponse, error) {
	return s.aggregator.GetDatabaseStats(ctx, s.uowFactory.NewUnitOfWork(ctx))
}

func (s *dashboardService) GetSystemLogs(ctx context.Context, query dto.LogListQuery) ([]*dto.LogListResponse, error) {
	return s.aggregator.GetSystemLogs(ctx, s.logger, query.Page, query.Limit, query.Level)
}

func (s *dashboardService) GetLogDetail(ctx context.Context, logId string) (*dto.LogDetailResponse, error) {
	res, err := s.aggregator.GetLogDetail(ctx, s.logger, logId)
	if errors.Is(err, logger.ErrLogNotFound) {
		return nil, serverutils.NewAppError(404, "Log not found", err)
	}
	return res, err
}

func parseDate(value string, loc *time.Location) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.ParseInLocation(layout, value, loc)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
