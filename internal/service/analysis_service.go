package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"callcenter-analysis-be/internal/dto"
	"callcenter-analysis-be/internal/metrics"
	"callcenter-analysis-be/internal/pkg/logger"
	"callcenter-analysis-be/internal/pkg/serverutils"
	"callcenter-analysis-be/internal/protocol"
	"callcenter-analysis-be/pkg/scoring"
)

// TextScorer is satisfied by *scoring.LLMScorer.
type TextScorer interface {
	ScoreText(ctx context.Context, transcript string) (protocol.Analysis, error)
}

type IAnalysisService interface {
	Analyze(ctx context.Context, req dto.AnalyzeRequest) (*dto.AnalyzeResponse, error)
}

type analysisService struct {
	scorer  TextScorer
	logger  logger.ILogger
	timeout time.Duration
	clock   func() time.Time
}

func NewAnalysisService(scorer TextScorer, log logger.ILogger, timeout time.Duration) IAnalysisService {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &analysisService{scorer: scorer, logger: log, timeout: timeout, clock: time.Now}
}

// Analyze scores a transcript outside of any session. Nothing is archived.
func (s *analysisService) Analyze(ctx context.Context, req dto.AnalyzeRequest) (*dto.AnalyzeResponse, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, serverutils.BadRequest("conversation text must not be empty")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	started := time.Now()
	analysis, err := s.scorer.ScoreText(ctx, req.Text)
	metrics.ScoringDuration.Observe(time.Since(started).Seconds())
	if err != nil {
		s.logger.Error("Analysis", "One-shot analysis failed", map[string]interface{}{
			"conversation_id": req.ConversationId, "error": err.Error(),
		})
		if errors.Is(err, scoring.ErrEmptyConversation) {
			return nil, serverutils.BadRequest(err.Error())
		}
		return nil, serverutils.NewAppError(500, err.Error(), err)
	}

	return &dto.AnalyzeResponse{
		Analysis:       analysis,
		Timestamp:      s.clock(),
		ConversationId: req.ConversationId,
	}, nil
}
