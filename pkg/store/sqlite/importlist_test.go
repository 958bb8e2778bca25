package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelforge/reelforge/pkg/store"
)

func TestImportListStorage(t *testing.T) {
	ctx := context.Background()
	s := initSQLite(t, ctx)

	cfg := store.ImportListConfig{
		Type:                "json",
		MediaType:           store.MediaMovie,
		Enabled:             true,
		ListID:              "trakt-popular",
		URL:                 "https://api.trakt.tv/movies/popular",
		RootFolder:          "/movies",
		MonitorMode:         "all",
		MinimumAvailability: "released",
		SearchOnAdd:         true,
	}
	id, err := s.CreateImportList(ctx, cfg)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	lists, err := s.ListImportLists(ctx)
	require.NoError(t, err)
	require.Len(t, lists, 1)
	assert.Equal(t, store.MediaMovie, lists[0].MediaType)
	assert.Nil(t, lists[0].LastSync)

	now := time.Now().UTC().Truncate(time.Millisecond)
	require.NoError(t, s.UpdateImportListLastSync(ctx, id, now))

	lists, err = s.ListImportLists(ctx)
	require.NoError(t, err)
	require.NotNil(t, lists[0].LastSync)
	assert.WithinDuration(t, now, *lists[0].LastSync, time.Second)

	require.NoError(t, s.DeleteImportList(ctx, id))
	lists, err = s.ListImportLists(ctx)
	require.NoError(t, err)
	assert.Empty(t, lists)
}
