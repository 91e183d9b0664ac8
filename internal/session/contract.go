package session

import (
	"context"
	"errors"

	"callcenter-analysis-be/internal/protocol"
	"callcenter-analysis-be/pkg/store"
)

var (
	ErrRouterClosed   = errors.New("session router closed")
	ErrUnknownSession = errors.New("unknown session")
	errRetired        = errors.New("session retired")
)

// Member is one attached connection as seen by the session. Deliver must not
// block; returning false tells the session the member cannot keep up.
type Member interface {
	ID() string
	Role() protocol.Role
	Deliver(frame []byte) bool
	Close()
}

// Scorer is the external AI scoring engine.
type Scorer interface {
	Score(ctx context.Context, turns []protocol.Turn) (protocol.Analysis, error)
}

// SnapshotStore keeps idle sessions between their last detach and the next attach.
type SnapshotStore interface {
	Save(ctx context.Context, snap *store.Snapshot) error
	Load(ctx context.Context, sessionID string) (*store.Snapshot, bool, error)
}

// EventSink observes accepted session mutations. Calls happen on the session's
// sequencer goroutine and must return quickly.
type EventSink interface {
	TurnAppended(sessionID string, turn protocol.Turn)
	AnalysisCompleted(sessionID string, turns []protocol.Turn, result protocol.AnalysisResult)
	SessionCleared(sessionID string, generation int)
}

// Sinks fans every notification out to each sink in order.
type Sinks []EventSink

func (s Sinks) TurnAppended(sessionID string, turn protocol.Turn) {
	for _, sink := range s {
		sink.TurnAppended(sessionID, turn)
	}
}

func (s Sinks) AnalysisCompleted(sessionID string, turns []protocol.Turn, result protocol.AnalysisResult) {
	for _, sink := range s {
		sink.AnalysisCompleted(sessionID, turns, result)
	}
}

func (s Sinks) SessionCleared(sessionID string, generation int) {
	for _, sink := range s {
		sink.SessionCleared(sessionID, generation)
	}
}

// MemberInfo and Info describe a live session for the stats endpoint.
type MemberInfo struct {
	ID   string        `json:"id"`
	Role protocol.Role `json:"role"`
}

type Info struct {
	SessionID  string       `json:"session_id"`
	Members    []MemberInfo `json:"members"`
	Turns      int          `json:"turns"`
	LiveMode   bool         `json:"live_mode"`
	Pending    bool         `json:"analysis_pending"`
	Generation int          `json:"generation"`
}
