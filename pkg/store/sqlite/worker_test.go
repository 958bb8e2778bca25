package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelforge/reelforge/pkg/store"
)

func TestWorkerStateStorage(t *testing.T) {
	ctx := context.Background()
	s := initSQLite(t, ctx)

	w := store.WorkerState{
		ID:          "rss-grab",
		Name:        "RSS grabber",
		Description: "polls enabled indexers for new releases",
		IntervalMS:  60_000,
		Status:      "stopped",
	}
	require.NoError(t, s.UpsertWorkerState(ctx, w))

	states, err := s.ListWorkerStates(ctx)
	require.NoError(t, err)
	require.Len(t, states, 1)
	assert.Equal(t, "stopped", states[0].Status)
	assert.Nil(t, states[0].LastRunAt)

	now := time.Now().UTC().Truncate(time.Millisecond)
	w.Status = "running"
	w.LastRunAt = &now
	require.NoError(t, s.UpsertWorkerState(ctx, w))

	states, err = s.ListWorkerStates(ctx)
	require.NoError(t, err)
	require.Len(t, states, 1)
	assert.Equal(t, "running", states[0].Status)
	require.NotNil(t, states[0].LastRunAt)
	assert.WithinDuration(t, now, *states[0].LastRunAt, time.Second)
}
