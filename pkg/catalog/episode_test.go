package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelforge/reelforge/pkg/store/sqlite/schema/gen/model"
)

func TestEpisodeFileLifecycle(t *testing.T) {
	ctx := context.Background()
	c, s := newCatalog(t, ctx)

	seriesID, err := s.CreateSeries(ctx, model.Series{Title: "The Expanse", Year: 2015, Monitored: true})
	require.NoError(t, err)

	episodeID, err := s.CreateEpisode(ctx, model.Episode{
		SeriesID:      int32(seriesID),
		SeasonNumber:  1,
		EpisodeNumber: 1,
		Title:         "Dulcinea",
		Monitored:     true,
	})
	require.NoError(t, err)

	missing, err := c.FindMissingEpisodes(ctx)
	require.NoError(t, err)
	assert.Len(t, missing, 1)

	require.NoError(t, c.UpdateEpisodeFile(ctx, episodeID, "/tv/Expanse/S01E01.mkv", "1080p", "h264", "aac", "GROUP", 2_000_000_000, false, false))

	withFiles, err := c.FindEpisodesWithFiles(ctx, seriesID)
	require.NoError(t, err)
	require.Len(t, withFiles, 1)
	assert.Equal(t, "GROUP", withFiles[0].ReleaseGroup)

	missing, err = c.FindMissingEpisodes(ctx)
	require.NoError(t, err)
	assert.Empty(t, missing)

	require.NoError(t, c.ClearEpisodeFile(ctx, episodeID))

	got, err := s.GetEpisode(ctx, episodeID)
	require.NoError(t, err)
	assert.False(t, got.HasFile)
	assert.Nil(t, got.FilePath)
	assert.Empty(t, got.ReleaseGroup)

	missing, err = c.FindMissingEpisodes(ctx)
	require.NoError(t, err)
	assert.Len(t, missing, 1)
}
