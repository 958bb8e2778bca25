package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelforge/reelforge/pkg/store"
)

func TestRSSCacheStorage(t *testing.T) {
	ctx := context.Background()
	s := initSQLite(t, ctx)

	now := time.Now().UTC()
	entry := store.RSSCacheEntry{
		IndexerID:   1,
		GUID:        "guid-1",
		Title:       "Arrival 2016 1080p WEB-DL",
		DownloadURL: "magnet:arrival",
		Size:        1_000_000,
		PublishDate: &now,
	}

	id, inserted, err := s.InsertRSSEntry(ctx, entry)
	require.NoError(t, err)
	assert.True(t, inserted)
	assert.Equal(t, int64(1), id)

	// Same (indexer_id, guid) pair is a dedup no-op, not an error.
	dupID, inserted, err := s.InsertRSSEntry(ctx, entry)
	require.NoError(t, err)
	assert.False(t, inserted)
	assert.Zero(t, dupID)

	require.NoError(t, s.MarkRSSProcessed(ctx, id, true))

	removed, err := s.PruneRSSCacheOlderThan(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	removed, err = s.PruneRSSCacheOlderThan(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Zero(t, removed)
}
