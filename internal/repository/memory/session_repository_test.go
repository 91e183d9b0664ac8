package memory

import (
	"context"
	"testing"
	"time"

	"callcenter-analysis-be/internal/protocol"
	"callcenter-analysis-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepository(t *testing.T) {
	repo := NewSessionRepository(time.Hour)
	ctx := context.Background()

	_, found, err := repo.Load(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	snap := &store.Snapshot{
		SessionID: "s1",
		Turns:     []protocol.Turn{{Seq: 1, Role: protocol.RoleCustomer, Text: "hello"}},
		LiveMode:  true,
	}
	require.NoError(t, repo.Save(ctx, snap))

	got, found, err := repo.Load(ctx, "s1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, snap, got)

	repo.Delete("s1")
	_, found, _ = repo.Load(ctx, "s1")
	assert.False(t, found)
}

func TestSessionRepositoryExpires(t *testing.T) {
	repo := NewSessionRepository(20 * time.Millisecond)
	require.NoError(t, repo.Save(context.Background(), &store.Snapshot{SessionID: "s1"}))

	assert.Eventually(t, func() bool {
		_, found, _ := repo.Load(context.Background(), "s1")
		return !found
	}, time.Second, 10*time.Millisecond)
}
