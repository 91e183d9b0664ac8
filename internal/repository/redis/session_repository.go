package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"callcenter-analysis-be/pkg/store"

	goredis "github.com/redis/go-redis/v9"
)

const sessionPrefix = "callcenter:session:"

// SessionRepository keeps idle session snapshots in Redis so they survive a
// restart of the process.
type SessionRepository struct {
	rdb *goredis.Client
	ttl time.Duration
}

func NewSessionRepository(rdb *goredis.Client, ttl time.Duration) *SessionRepository {
	return &SessionRepository{rdb: rdb, ttl: ttl}
}

func (r *SessionRepository) Save(ctx context.Context, snap *store.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal session snapshot: %w", err)
	}
	if err := r.rdb.Set(ctx, sessionPrefix+snap.SessionID, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session snapshot: %w", err)
	}
	return nil
}

func (r *SessionRepository) Load(ctx context.Context, sessionID string) (*store.Snapshot, bool, error) {
	data, err := r.rdb.Get(ctx, sessionPrefix+sessionID).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load session snapshot: %w", err)
	}

	var snap store.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal session snapshot: %w", err)
	}
	return &snap, true, nil
}

func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	return r.rdb.Del(ctx, sessionPrefix+sessionID).Err()
}
