package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelforge/reelforge/pkg/store/sqlite/schema/gen/model"
)

func TestCascadeMonitor(t *testing.T) {
	ctx := context.Background()
	c, s := newCatalog(t, ctx)

	seriesID, err := s.CreateSeries(ctx, model.Series{Title: "The Wire", Year: 2002, Monitored: true})
	require.NoError(t, err)

	_, err = s.UpsertSeason(ctx, seriesID, 1, true)
	require.NoError(t, err)

	episodeID, err := s.CreateEpisode(ctx, model.Episode{SeriesID: int32(seriesID), SeasonNumber: 1, EpisodeNumber: 1, Title: "The Target", Monitored: true})
	require.NoError(t, err)

	require.NoError(t, c.CascadeMonitor(ctx, seriesID, false))

	sr, err := s.GetSeries(ctx, seriesID)
	require.NoError(t, err)
	assert.False(t, sr.Monitored)

	seasons, err := s.ListSeasons(ctx, seriesID)
	require.NoError(t, err)
	require.Len(t, seasons, 1)
	assert.False(t, seasons[0].Monitored)

	e, err := s.GetEpisode(ctx, episodeID)
	require.NoError(t, err)
	assert.False(t, e.Monitored)

	entries, err := s.ListActivity(ctx, "series", seriesID, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "unmonitored", entries[0].EventType)
}

func TestSetSeasonMonitor_AutoUnmonitorsSeries(t *testing.T) {
	ctx := context.Background()
	c, s := newCatalog(t, ctx)

	seriesID, err := s.CreateSeries(ctx, model.Series{Title: "Chernobyl", Year: 2019, Monitored: true})
	require.NoError(t, err)

	_, err = s.UpsertSeason(ctx, seriesID, 1, true)
	require.NoError(t, err)
	_, err = s.UpsertSeason(ctx, seriesID, 2, true)
	require.NoError(t, err)

	// unmonitoring season 1 alone leaves season 2 monitored: series stays monitored.
	require.NoError(t, c.SetSeasonMonitor(ctx, seriesID, 1, false))
	sr, err := s.GetSeries(ctx, seriesID)
	require.NoError(t, err)
	assert.True(t, sr.Monitored)

	// unmonitoring the last remaining monitored season cascades up.
	require.NoError(t, c.SetSeasonMonitor(ctx, seriesID, 2, false))
	sr, err = s.GetSeries(ctx, seriesID)
	require.NoError(t, err)
	assert.False(t, sr.Monitored)

	entries, err := s.ListActivity(ctx, "series", seriesID, 10)
	require.NoError(t, err)
	var sawAutoUnmonitor bool
	for _, e := range entries {
		if e.EventType == "unmonitored" {
			sawAutoUnmonitor = true
		}
	}
	assert.True(t, sawAutoUnmonitor)
}

func TestSetSeasonMonitor_Remonitor(t *testing.T) {
	ctx := context.Background()
	c, s := newCatalog(t, ctx)

	seriesID, err := s.CreateSeries(ctx, model.Series{Title: "Chernobyl", Year: 2019, Monitored: true})
	require.NoError(t, err)
	_, err = s.UpsertSeason(ctx, seriesID, 1, false)
	require.NoError(t, err)

	require.NoError(t, c.SetSeasonMonitor(ctx, seriesID, 1, true))

	seasons, err := s.ListSeasons(ctx, seriesID)
	require.NoError(t, err)
	require.Len(t, seasons, 1)
	assert.True(t, seasons[0].Monitored)

	entries, err := s.ListActivity(ctx, "series", seriesID, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "season_monitored", entries[0].EventType)
}
