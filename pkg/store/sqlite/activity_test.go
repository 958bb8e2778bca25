package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelforge/reelforge/pkg/store"
)

func TestActivityStorage(t *testing.T) {
	ctx := context.Background()
	s := initSQLite(t, ctx)

	require.NoError(t, s.LogActivity(ctx, store.ActivityEntry{
		EntityType: "movie",
		EntityID:   1,
		EventType:  "grabbed",
		Message:    "grabbed Arrival 1080p",
	}))
	require.NoError(t, s.LogActivity(ctx, store.ActivityEntry{
		EntityType: "movie",
		EntityID:   1,
		EventType:  "imported",
		Message:    "imported Arrival",
	}))
	require.NoError(t, s.LogActivity(ctx, store.ActivityEntry{
		EntityType: "series",
		EntityID:   2,
		EventType:  "grabbed",
		Message:    "grabbed an episode",
	}))

	forMovie, err := s.ListActivity(ctx, "movie", 1, 10)
	require.NoError(t, err)
	require.Len(t, forMovie, 2)
	// newest first
	assert.Equal(t, "imported", forMovie[0].EventType)
	assert.False(t, forMovie[0].CreatedAt.IsZero())

	recent, err := s.ListRecentActivity(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, recent, 2)

	limited, err := s.ListActivity(ctx, "movie", 1, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}
