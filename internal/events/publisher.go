package events

import (
	"context"
	"sync"
	"time"

	"callcenter-analysis-be/internal/pkg/logger"
	"callcenter-analysis-be/internal/protocol"
	pkgEvents "callcenter-analysis-be/pkg/events"
)

const publishTimeout = 5 * time.Second

// Publisher is satisfied by *nats.Publisher.
type Publisher interface {
	Publish(ctx context.Context, event pkgEvents.Event) error
}

// NatsSink turns session mutations into domain events. Events are queued and
// published by one worker so the session goroutine never waits on the broker.
type NatsSink struct {
	publisher Publisher
	logger    logger.ILogger
	clock     func() time.Time

	queue chan pkgEvents.Event
	done  chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewNatsSink(publisher Publisher, log logger.ILogger, buffer int) *NatsSink {
	if log == nil {
		log = logger.NewNopLogger()
	}
	if buffer <= 0 {
		buffer = 1024
	}
	s := &NatsSink{
		publisher: publisher,
		logger:    log,
		clock:     time.Now,
		queue:     make(chan pkgEvents.Event, buffer),
		done:      make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *NatsSink) TurnAppended(sessionID string, turn protocol.Turn) {
	s.enqueue(pkgEvents.BaseEvent{
		Type: pkgEvents.TypeTurnAppended,
		Data: map[string]interface{}{
			"session_id": sessionID,
			"seq":        turn.Seq,
			"role":       turn.Role,
			"text":       turn.Text,
		},
		OccurredAt: turn.OccurredAt,
	})
}

func (s *NatsSink) AnalysisCompleted(sessionID string, turns []protocol.Turn, result protocol.AnalysisResult) {
	a := result.Analysis
	s.enqueue(pkgEvents.BaseEvent{
		Type: pkgEvents.TypeAnalysisCompleted,
		Data: map[string]interface{}{
			"session_id":        sessionID,
			"version":           result.Version,
			"generation":        result.Generation,
			"overall_score":     a.OverallScore,
			"sentiment":         a.Sentiment,
			"resolution":        a.Resolution,
			"agent_performance": a.AgentPerformance,
			"problem_resolved":  a.Metrics.ProblemResolved,
			"customer_emotion":  a.Metrics.CustomerEmotion,
			"turns":             len(turns),
		},
		OccurredAt: result.Timestamp,
	})
}

func (s *NatsSink) SessionCleared(sessionID string, generation int) {
	s.enqueue(pkgEvents.BaseEvent{
		Type: pkgEvents.TypeSessionCleared,
		Data: map[string]interface{}{
			"session_id": sessionID,
			"generation": generation,
		},
		OccurredAt: s.clock(),
	})
}

func (s *NatsSink) enqueue(ev pkgEvents.Event) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return
	}
	select {
	case s.queue <- ev:
	default:
		s.logger.Warn("Events", "Event queue full, dropping event", map[string]interface{}{
			"type": ev.EventType(),
		})
	}
}

func (s *NatsSink) run() {
	defer close(s.done)
	for ev := range s.queue {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		if err := s.publisher.Publish(ctx, ev); err != nil {
			s.logger.Error("Events", "Failed to publish event", map[string]interface{}{
				"type": ev.EventType(), "error": err.Error(),
			})
		}
		cancel()
	}
}

// Close publishes what is queued and stops the worker.
func (s *NatsSink) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	close(s.queue)
	s.mu.Unlock()
	<-s.done
}
