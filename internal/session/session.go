package session

import (
	"context"
	"fmt"
	"time"

	"callcenter-analysis-be/internal/metrics"
	"callcenter-analysis-be/internal/protocol"
	"callcenter-analysis-be/pkg/store"
)

const (
	triggerManual = "manual"
	triggerLive   = "live"
)

type (
	attachCmd struct {
		member Member
		reply  chan struct{}
	}
	detachCmd struct {
		memberID string
	}
	intentCmd struct {
		memberID string
		intent   protocol.Intent
	}
	scoredCmd struct {
		version    int
		generation int
		analysis   protocol.Analysis
		err        error
	}
	infoCmd struct {
		reply chan Info
	}
)

// Session is the sequencer for one conversation. Every field below is owned by
// the run goroutine; other goroutines only talk to it through inbox.
type Session struct {
	id     string
	router *Router

	turns        []protocol.Turn
	liveMode     bool
	generation   int
	lastAnalysis *protocol.AnalysisResult
	pending      bool
	rerun        bool

	// Marker of the scoring call in flight, valid while pending.
	pendingVersion    int
	pendingGeneration int

	members map[string]Member
	order   []string

	inbox chan interface{}
	done  chan struct{}
}

func newSession(id string, r *Router, snap *store.Snapshot) *Session {
	s := &Session{
		id:      id,
		router:  r,
		members: make(map[string]Member),
		inbox:   make(chan interface{}),
		done:    make(chan struct{}),
	}
	if snap != nil {
		s.turns = append([]protocol.Turn(nil), snap.Turns...)
		s.liveMode = snap.LiveMode
		s.generation = snap.Generation
		s.lastAnalysis = snap.LastAnalysis
	}
	return s
}

// post hands a command to the sequencer, failing once it has stopped.
func (s *Session) post(cmd interface{}) error {
	select {
	case s.inbox <- cmd:
		return nil
	case <-s.done:
		return errRetired
	}
}

func (s *Session) attach(m Member) error {
	reply := make(chan struct{})
	if err := s.post(attachCmd{member: m, reply: reply}); err != nil {
		return err
	}
	select {
	case <-reply:
		return nil
	case <-s.done:
		return errRetired
	}
}

func (s *Session) info() (Info, bool) {
	reply := make(chan Info, 1)
	if err := s.post(infoCmd{reply: reply}); err != nil {
		return Info{}, false
	}
	select {
	case in := <-reply:
		return in, true
	case <-s.done:
		return Info{}, false
	}
}

func (s *Session) run() {
	defer close(s.done)
	for {
		select {
		case cmd := <-s.inbox:
			if s.handle(cmd) && s.idle() && s.router.retire(s, s.snapshot()) {
				return
			}
		case <-s.router.quit:
			return
		}
	}
}

// handle applies one command and reports whether the session may have gone idle.
func (s *Session) handle(cmd interface{}) bool {
	switch c := cmd.(type) {
	case attachCmd:
		s.onAttach(c.member)
		close(c.reply)
		return true
	case detachCmd:
		s.removeMember(c.memberID)
		return true
	case intentCmd:
		s.onIntent(c.memberID, c.intent)
		return true
	case scoredCmd:
		s.onScored(c)
		return true
	case infoCmd:
		c.reply <- s.describe()
	}
	return false
}

func (s *Session) idle() bool {
	return len(s.members) == 0 && !s.pending
}

func (s *Session) onAttach(m Member) {
	if _, exists := s.members[m.ID()]; !exists {
		s.order = append(s.order, m.ID())
	}
	s.members[m.ID()] = m

	// Resync: the joining view rebuilds its store from these frames alone.
	s.sendTo(m, protocol.SessionJoined{
		SessionID:    s.id,
		ConnectionID: m.ID(),
		LiveMode:     s.liveMode,
		Generation:   s.generation,
	})
	for _, t := range s.turns {
		s.sendTo(m, protocol.TurnAppended{Turn: t})
	}
	if s.lastAnalysis != nil {
		s.sendTo(m, protocol.AnalysisCompleted{Result: *s.lastAnalysis})
	}
	if s.pending {
		s.sendTo(m, protocol.AnalysisStarted{})
	}

	s.router.logger.Info("Session", "Connection attached", map[string]interface{}{
		"session_id": s.id, "connection_id": m.ID(), "role": m.Role(), "members": len(s.members),
	})
}

func (s *Session) removeMember(id string) {
	if _, ok := s.members[id]; !ok {
		return
	}
	delete(s.members, id)
	for i, mid := range s.order {
		if mid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.router.logger.Info("Session", "Connection detached", map[string]interface{}{
		"session_id": s.id, "connection_id": id, "members": len(s.members),
	})
}

func (s *Session) onIntent(memberID string, in protocol.Intent) {
	m, ok := s.members[memberID]
	if !ok {
		s.router.logger.Warn("Session", "Intent from detached connection ignored", map[string]interface{}{
			"session_id": s.id, "connection_id": memberID, "intent": fmt.Sprintf("%T", in),
		})
		return
	}

	switch i := in.(type) {
	case protocol.AppendTurn:
		s.appendTurn(i)
	case protocol.RequestAnalysis:
		if len(s.turns) == 0 {
			metrics.AnalysisRequests.WithLabelValues(triggerManual, "rejected").Inc()
			s.sendTo(m, protocol.ProtocolError{Message: "no conversation to analyze"})
			return
		}
		s.requestAnalysis(triggerManual)
	case protocol.ClearSession:
		s.turns = nil
		s.generation++
		s.lastAnalysis = nil
		s.rerun = false
		s.broadcast(protocol.SessionCleared{Generation: s.generation})
		s.router.sink.SessionCleared(s.id, s.generation)
	case protocol.SetLiveMode:
		s.liveMode = i.Enabled
		s.broadcast(protocol.LiveModeChanged{Enabled: i.Enabled})
	case protocol.Ping:
		s.sendTo(m, protocol.Pong{})
	}
}

func (s *Session) appendTurn(in protocol.AppendTurn) {
	turn := protocol.Turn{
		Seq:        len(s.turns) + 1,
		Role:       in.Role,
		Text:       in.Text,
		OccurredAt: s.router.clock(),
	}
	s.turns = append(s.turns, turn)
	metrics.TurnsAccepted.WithLabelValues(string(turn.Role)).Inc()

	// Echo to every member, the originator included.
	s.broadcast(protocol.TurnAppended{Turn: turn})
	s.router.sink.TurnAppended(s.id, turn)

	if s.liveMode {
		s.requestAnalysis(triggerLive)
	}
}

// requestAnalysis starts a scoring call unless one is already pending. A
// request that arrives while the running call no longer covers the log is
// remembered, so the current log still gets scored once that call returns.
func (s *Session) requestAnalysis(trigger string) {
	if s.pending {
		if s.pendingVersion != len(s.turns) || s.pendingGeneration != s.generation {
			s.rerun = true
		}
		metrics.AnalysisRequests.WithLabelValues(trigger, "coalesced").Inc()
		return
	}
	metrics.AnalysisRequests.WithLabelValues(trigger, "started").Inc()
	s.startAnalysis()
}

func (s *Session) startAnalysis() {
	s.pending = true
	s.broadcast(protocol.AnalysisStarted{})

	turns := append([]protocol.Turn(nil), s.turns...)
	version, generation := len(s.turns), s.generation
	s.pendingVersion, s.pendingGeneration = version, generation
	r := s.router

	go func() {
		ctx, cancel := context.WithTimeout(r.ctx, r.scoreTimeout)
		defer cancel()

		started := time.Now()
		analysis, err := r.scorer.Score(ctx, turns)
		metrics.ScoringDuration.Observe(time.Since(started).Seconds())

		_ = s.post(scoredCmd{version: version, generation: generation, analysis: analysis, err: err})
	}()
}

func (s *Session) onScored(c scoredCmd) {
	s.pending = false

	if c.err != nil {
		metrics.AnalysisResults.WithLabelValues("failed").Inc()
		s.router.logger.Error("Session", "Scoring failed", map[string]interface{}{
			"session_id": s.id, "version": c.version, "error": c.err,
		})
		s.broadcast(protocol.ProtocolError{Message: fmt.Sprintf("analysis failed: %v", c.err)})
	} else {
		res := protocol.AnalysisResult{
			Analysis:   c.analysis,
			Version:    c.version,
			Generation: c.generation,
			Timestamp:  s.router.clock(),
		}
		if res.Matches(len(s.turns), s.generation) {
			metrics.AnalysisResults.WithLabelValues("applied").Inc()
			s.lastAnalysis = &res
			s.router.sink.AnalysisCompleted(s.id, append([]protocol.Turn(nil), s.turns...), res)
		} else {
			metrics.AnalysisResults.WithLabelValues("stale").Inc()
			s.router.logger.Info("Session", "Stale analysis discarded", map[string]interface{}{
				"session_id": s.id, "version": c.version, "generation": c.generation,
				"current_version": len(s.turns), "current_generation": s.generation,
			})
		}
		// Stale results still go out so every pending view can settle; views
		// drop them on the version marker.
		s.broadcast(protocol.AnalysisCompleted{Result: res})
	}

	if s.rerun && len(s.turns) > 0 {
		s.rerun = false
		s.startAnalysis()
	}
}

func (s *Session) sendTo(m Member, ev protocol.Event) {
	if !m.Deliver(protocol.EncodeEvent(ev)) {
		s.drop(m)
	}
}

func (s *Session) broadcast(ev protocol.Event) {
	data := protocol.EncodeEvent(ev)
	for _, id := range append([]string(nil), s.order...) {
		m, ok := s.members[id]
		if !ok {
			continue
		}
		if !m.Deliver(data) {
			s.drop(m)
		}
	}
}

func (s *Session) drop(m Member) {
	s.router.logger.Warn("Session", "Connection send buffer full, dropping connection", map[string]interface{}{
		"session_id": s.id, "connection_id": m.ID(),
	})
	s.removeMember(m.ID())
	m.Close()
}

func (s *Session) describe() Info {
	in := Info{
		SessionID:  s.id,
		Turns:      len(s.turns),
		LiveMode:   s.liveMode,
		Pending:    s.pending,
		Generation: s.generation,
	}
	for _, id := range s.order {
		in.Members = append(in.Members, MemberInfo{ID: id, Role: s.members[id].Role()})
	}
	return in
}

func (s *Session) snapshot() *store.Snapshot {
	return &store.Snapshot{
		SessionID:    s.id,
		Turns:        append([]protocol.Turn(nil), s.turns...),
		LiveMode:     s.liveMode,
		Generation:   s.generation,
		LastAnalysis: s.lastAnalysis,
		SavedAt:      s.router.clock(),
	}
}
