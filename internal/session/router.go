package session

import (
	"context"
	"sort"
	"sync"
	"time"

	"callcenter-analysis-be/internal/metrics"
	"callcenter-analysis-be/internal/pkg/logger"
	"callcenter-analysis-be/internal/protocol"
	"callcenter-analysis-be/pkg/store"
)

// Router owns one sequencer per session id and routes connections and intents to it.
type Router struct {
	mu       sync.Mutex
	sessions map[string]*Session
	parked   map[string]*store.Snapshot
	closed   bool

	scorer       Scorer
	snapshots    SnapshotStore
	sink         EventSink
	logger       logger.ILogger
	clock        func() time.Time
	scoreTimeout time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	quit   chan struct{}
}

type Option func(*Router)

func WithSnapshotStore(s SnapshotStore) Option {
	return func(r *Router) { r.snapshots = s }
}

func WithEventSink(s EventSink) Option {
	return func(r *Router) { r.sink = s }
}

func WithLogger(l logger.ILogger) Option {
	return func(r *Router) { r.logger = l }
}

func WithClock(clock func() time.Time) Option {
	return func(r *Router) { r.clock = clock }
}

func WithScoreTimeout(d time.Duration) Option {
	return func(r *Router) { r.scoreTimeout = d }
}

func NewRouter(scorer Scorer, opts ...Option) *Router {
	ctx, cancel := context.WithCancel(context.Background())
	r := &Router{
		sessions:     make(map[string]*Session),
		parked:       make(map[string]*store.Snapshot),
		scorer:       scorer,
		sink:         Sinks{},
		logger:       logger.NewNopLogger(),
		clock:        time.Now,
		scoreTimeout: 60 * time.Second,
		ctx:          ctx,
		cancel:       cancel,
		quit:         make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Attach joins m to the session, creating or restoring the session on first use.
// The member receives the resync frames before Attach returns.
func (r *Router) Attach(ctx context.Context, sessionID string, m Member) error {
	for {
		s, err := r.getOrStart(ctx, sessionID)
		if err != nil {
			return err
		}
		err = s.attach(m)
		if err != errRetired {
			return err
		}
		// The session retired between lookup and attach; the next lookup
		// starts a fresh one from its snapshot.
		r.mu.Lock()
		closed := r.closed
		r.mu.Unlock()
		if closed {
			return ErrRouterClosed
		}
	}
}

// Detach removes a member. It is a no-op if the session or member is gone.
func (r *Router) Detach(sessionID, memberID string) {
	s := r.lookup(sessionID)
	if s == nil {
		return
	}
	_ = s.post(detachCmd{memberID: memberID})
}

// Submit queues an intent from an attached member. Intents of one session are
// applied strictly in the order Submit calls return.
func (r *Router) Submit(sessionID, memberID string, in protocol.Intent) error {
	s := r.lookup(sessionID)
	if s == nil {
		return ErrUnknownSession
	}
	if err := s.post(intentCmd{memberID: memberID, intent: in}); err != nil {
		return ErrUnknownSession
	}
	return nil
}

// Info describes one live session.
func (r *Router) Info(sessionID string) (Info, bool) {
	s := r.lookup(sessionID)
	if s == nil {
		return Info{}, false
	}
	return s.info()
}

// Sessions describes every live session ordered by id.
func (r *Router) Sessions() []Info {
	r.mu.Lock()
	live := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		live = append(live, s)
	}
	r.mu.Unlock()

	out := make([]Info, 0, len(live))
	for _, s := range live {
		if in, ok := s.info(); ok {
			out = append(out, in)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SessionID < out[j].SessionID })
	return out
}

// Close stops every sequencer. In-flight scoring calls are cancelled.
func (r *Router) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	live := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		live = append(live, s)
	}
	r.mu.Unlock()

	r.cancel()
	close(r.quit)
	for _, s := range live {
		<-s.done
	}
}

func (r *Router) lookup(sessionID string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessions[sessionID]
}

func (r *Router) getOrStart(ctx context.Context, sessionID string) (*Session, error) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil, ErrRouterClosed
	}
	if s, ok := r.sessions[sessionID]; ok {
		r.mu.Unlock()
		return s, nil
	}
	snap := r.parked[sessionID]
	r.mu.Unlock()

	if snap == nil && r.snapshots != nil {
		loaded, found, err := r.snapshots.Load(ctx, sessionID)
		if err != nil {
			r.logger.Warn("Router", "Failed to load session snapshot, starting empty", map[string]interface{}{
				"session_id": sessionID, "error": err,
			})
		} else if found {
			snap = loaded
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, ErrRouterClosed
	}
	// Another attach may have won the race while the snapshot was loading.
	if s, ok := r.sessions[sessionID]; ok {
		return s, nil
	}
	if parked := r.parked[sessionID]; parked != nil {
		snap = parked
	}
	s := newSession(sessionID, r, snap)
	r.sessions[sessionID] = s
	metrics.ActiveSessions.Inc()
	go s.run()

	r.logger.Info("Router", "Session started", map[string]interface{}{
		"session_id": sessionID, "restored": snap != nil,
	})
	return s, nil
}

// retire is called by an idle session's own goroutine. The snapshot is parked
// in memory until the store has it, so a concurrent attach never sees a gap.
func (r *Router) retire(s *Session, snap *store.Snapshot) bool {
	r.mu.Lock()
	if r.sessions[s.id] != s {
		r.mu.Unlock()
		return false
	}
	delete(r.sessions, s.id)
	r.parked[s.id] = snap
	r.mu.Unlock()
	metrics.ActiveSessions.Dec()

	if r.snapshots != nil {
		ctx, cancel := context.WithTimeout(r.ctx, 5*time.Second)
		if err := r.snapshots.Save(ctx, snap); err != nil {
			r.logger.Warn("Router", "Failed to save session snapshot", map[string]interface{}{
				"session_id": s.id, "error": err,
			})
		}
		cancel()

		r.mu.Lock()
		if r.parked[s.id] == snap {
			delete(r.parked, s.id)
		}
		r.mu.Unlock()
	}

	r.logger.Info("Router", "Session idled", map[string]interface{}{
		"session_id": s.id, "turns": len(snap.Turns),
	})
	return true
}
