package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelforge/reelforge/pkg/catalog"
	"github.com/reelforge/reelforge/pkg/store"
	"github.com/reelforge/reelforge/pkg/store/sqlite"
	"github.com/reelforge/reelforge/pkg/store/sqlite/schema/gen/model"
)

func newCatalog(t *testing.T, ctx context.Context) (*catalog.Catalog, store.Store) {
	t.Helper()

	s, err := sqlite.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.Init(ctx))

	return catalog.New(s), s
}

func TestCreateMovie_LogsActivity(t *testing.T) {
	ctx := context.Background()
	c, s := newCatalog(t, ctx)

	id, err := c.CreateMovie(ctx, model.Movie{
		Title:               "Arrival",
		Year:                2016,
		MinimumAvailability: catalog.AvailabilityReleased,
		Monitored:           true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	entries, err := s.ListActivity(ctx, "movie", id, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "added", entries[0].EventType)
}

func TestUpdateMovieFile(t *testing.T) {
	ctx := context.Background()
	c, s := newCatalog(t, ctx)

	id, err := c.CreateMovie(ctx, model.Movie{
		Title:               "Arrival",
		Year:                2016,
		MinimumAvailability: catalog.AvailabilityReleased,
		Monitored:           true,
	})
	require.NoError(t, err)

	require.NoError(t, c.UpdateMovieFile(ctx, id, "/movies/Arrival/Arrival.mkv", "1080p", 4_000_000_000, false, false))

	m, err := s.GetMovie(ctx, id)
	require.NoError(t, err)
	assert.True(t, m.HasFile)
	assert.Equal(t, "1080p", *m.Quality)

	entries, err := s.ListActivity(ctx, "movie", id, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "imported", entries[0].EventType)
}

func TestFindMissingAndAvailable(t *testing.T) {
	ctx := context.Background()
	c, _ := newCatalog(t, ctx)

	pastDate := "2020-01-01T00:00:00.000Z"
	futureDate := "2099-01-01T00:00:00.000Z"

	available, err := c.CreateMovie(ctx, model.Movie{
		Title:                 "Released Movie",
		Year:                  2020,
		MinimumAvailability:   catalog.AvailabilityReleased,
		Monitored:             true,
		TheatricalReleaseDate: &pastDate,
	})
	require.NoError(t, err)

	_, err = c.CreateMovie(ctx, model.Movie{
		Title:                 "Unreleased Movie",
		Year:                  2099,
		MinimumAvailability:   catalog.AvailabilityReleased,
		Monitored:             true,
		TheatricalReleaseDate: &futureDate,
	})
	require.NoError(t, err)

	_, err = c.CreateMovie(ctx, model.Movie{
		Title:               "Announced Movie",
		Year:                2099,
		MinimumAvailability: catalog.AvailabilityAnnounced,
		Monitored:           true,
	})
	require.NoError(t, err)

	ready, err := c.FindMissingAndAvailable(ctx)
	require.NoError(t, err)

	ids := make([]int32, 0, len(ready))
	for _, m := range ready {
		ids = append(ids, m.ID)
	}
	assert.Contains(t, ids, int32(available))
	// the announced movie has no date gate at all
	assert.Len(t, ready, 2)
}

func TestCountMoviesByState(t *testing.T) {
	ctx := context.Background()
	c, _ := newCatalog(t, ctx)

	missingID, err := c.CreateMovie(ctx, model.Movie{Title: "Missing", Year: 2020, MinimumAvailability: catalog.AvailabilityAnnounced, Monitored: true})
	require.NoError(t, err)

	withFileID, err := c.CreateMovie(ctx, model.Movie{Title: "Have It", Year: 2020, MinimumAvailability: catalog.AvailabilityAnnounced, Monitored: true})
	require.NoError(t, err)
	require.NoError(t, c.UpdateMovieFile(ctx, withFileID, "/movies/Have It/file.mkv", "1080p", 1000, false, false))

	_, err = c.CreateMovie(ctx, model.Movie{Title: "Unmonitored", Year: 2020, MinimumAvailability: catalog.AvailabilityAnnounced, Monitored: false})
	require.NoError(t, err)

	counts, err := c.CountMoviesByState(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, counts["missing"])
	assert.Equal(t, 1, counts["available"])
	assert.Equal(t, 1, counts["unmonitored"])
	assert.Equal(t, 0, counts["downloading"])
	_ = missingID
}

func TestDeleteMovie_WithExclusion(t *testing.T) {
	ctx := context.Background()
	c, s := newCatalog(t, ctx)

	tmdbID := int32(1234)
	id, err := c.CreateMovie(ctx, model.Movie{
		Title:               "Arrival",
		Year:                2016,
		TmdbID:              &tmdbID,
		MinimumAvailability: catalog.AvailabilityReleased,
		Monitored:           true,
	})
	require.NoError(t, err)

	require.NoError(t, c.DeleteMovie(ctx, id, tmdbID, true))

	_, err = s.GetMovie(ctx, id)
	assert.ErrorIs(t, err, store.ErrNotFound)

	excluded, err := s.IsExcluded(ctx, int64(tmdbID), store.MediaMovie)
	require.NoError(t, err)
	assert.True(t, excluded)
}
