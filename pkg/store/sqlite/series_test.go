package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelforge/reelforge/pkg/store"
	"github.com/reelforge/reelforge/pkg/store/sqlite/schema/gen/model"
)

func TestSeriesStorage(t *testing.T) {
	ctx := context.Background()
	s := initSQLite(t, ctx)

	tvdbID := int32(12345)
	sr := model.Series{
		TvdbID:            &tvdbID,
		Title:             "The Expanse",
		Year:              2015,
		Status:            "continuing",
		MonitorNewSeasons: "all",
		Monitored:         true,
	}
	id, err := s.CreateSeries(ctx, sr)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	got, err := s.GetSeries(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "The Expanse", got.Title)

	byTvdb, err := s.GetSeriesByTvdbID(ctx, 12345)
	require.NoError(t, err)
	assert.Equal(t, got.ID, byTvdb.ID)

	_, err = s.GetSeries(ctx, 999)
	assert.ErrorIs(t, err, store.ErrNotFound)

	all, err := s.ListSeries(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	updated := *got
	updated.Status = "ended"
	require.NoError(t, s.UpdateSeries(ctx, updated))

	got, err = s.GetSeries(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "ended", got.Status)

	require.NoError(t, s.DeleteSeries(ctx, id))
	all, err = s.ListSeries(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSeasonStorage(t *testing.T) {
	ctx := context.Background()
	s := initSQLite(t, ctx)

	seriesID, err := s.CreateSeries(ctx, model.Series{Title: "The Expanse", Year: 2015, Monitored: true})
	require.NoError(t, err)

	id, err := s.UpsertSeason(ctx, seriesID, 1, true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	// Upserting the same season again updates rather than duplicating.
	id2, err := s.UpsertSeason(ctx, seriesID, 1, false)
	require.NoError(t, err)
	assert.Equal(t, id, id2)

	seasons, err := s.ListSeasons(ctx, seriesID)
	require.NoError(t, err)
	require.Len(t, seasons, 1)
	assert.False(t, seasons[0].Monitored)

	require.NoError(t, s.SetSeasonMonitored(ctx, seriesID, 1, true))
	seasons, err = s.ListSeasons(ctx, seriesID)
	require.NoError(t, err)
	assert.True(t, seasons[0].Monitored)
}
