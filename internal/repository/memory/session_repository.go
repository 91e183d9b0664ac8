package memory

import (
	"context"
	"time"

	"callcenter-analysis-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// SessionRepository keeps idle session snapshots in process memory.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository(ttl time.Duration) *SessionRepository {
	// Expired snapshots are purged every ttl/2 (at least once a minute).
	cleanup := ttl / 2
	if cleanup <= 0 || cleanup > time.Minute {
		cleanup = time.Minute
	}
	return &SessionRepository{
		cache: cache.New(ttl, cleanup),
	}
}

func (r *SessionRepository) Save(_ context.Context, snap *store.Snapshot) error {
	r.cache.Set(snap.SessionID, snap, cache.DefaultExpiration)
	return nil
}

func (r *SessionRepository) Load(_ context.Context, sessionID string) (*store.Snapshot, bool, error) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.Snapshot), true, nil
	}
	return nil, false, nil
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}
