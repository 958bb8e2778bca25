package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelforge/reelforge/pkg/store/sqlite/schema/gen/model"
)

func TestEpisodeStorage(t *testing.T) {
	ctx := context.Background()
	s := initSQLite(t, ctx)

	seriesID, err := s.CreateSeries(ctx, model.Series{Title: "The Expanse", Year: 2015, Monitored: true})
	require.NoError(t, err)

	e := model.Episode{
		SeriesID:      int32(seriesID),
		SeasonNumber:  1,
		EpisodeNumber: 1,
		Title:         "Dulcinea",
		Monitored:     true,
	}
	id, err := s.CreateEpisode(ctx, e)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	got, err := s.GetEpisode(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Dulcinea", got.Title)

	e2 := model.Episode{
		SeriesID:      int32(seriesID),
		SeasonNumber:  1,
		EpisodeNumber: 2,
		Title:         "The Big Empty",
		Monitored:     true,
	}
	_, err = s.CreateEpisode(ctx, e2)
	require.NoError(t, err)

	all, err := s.ListEpisodes(ctx, seriesID)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	season1, err := s.ListEpisodesBySeason(ctx, seriesID, 1)
	require.NoError(t, err)
	assert.Len(t, season1, 2)

	missing, err := s.ListEpisodesMissing(ctx)
	require.NoError(t, err)
	assert.Len(t, missing, 2)

	updated := *got
	updated.HasFile = true
	require.NoError(t, s.UpdateEpisode(ctx, updated))

	missing, err = s.ListEpisodesMissing(ctx)
	require.NoError(t, err)
	assert.Len(t, missing, 1)

	require.NoError(t, s.DeleteEpisode(ctx, id))
	all, err = s.ListEpisodes(ctx, seriesID)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
