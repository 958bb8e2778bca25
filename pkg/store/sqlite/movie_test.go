package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelforge/reelforge/pkg/store"
	"github.com/reelforge/reelforge/pkg/store/sqlite/schema/gen/model"
)

func testMovie(title string, tmdbID int32) model.Movie {
	return model.Movie{
		TmdbID:              &tmdbID,
		Title:               title,
		Year:                2024,
		Runtime:             120,
		MinimumAvailability: "released",
		Status:              "released",
		Monitored:           true,
		HasFile:             false,
	}
}

func TestMovieStorage(t *testing.T) {
	ctx := context.Background()
	s := initSQLite(t, ctx)

	movies, err := s.ListMovies(ctx)
	require.NoError(t, err)
	assert.Empty(t, movies)

	m := testMovie("Arrival", 1234)
	id, err := s.CreateMovie(ctx, m)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	got, err := s.GetMovie(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Arrival", got.Title)
	assert.False(t, got.HasFile)

	byTmdb, err := s.GetMovieByTmdbID(ctx, 1234)
	require.NoError(t, err)
	assert.Equal(t, got.ID, byTmdb.ID)

	_, err = s.GetMovieByTmdbID(ctx, 9999)
	assert.ErrorIs(t, err, store.ErrNotFound)

	missing, err := s.ListMoviesMissing(ctx)
	require.NoError(t, err)
	assert.Len(t, missing, 1)

	monitored, err := s.ListMoviesMonitored(ctx)
	require.NoError(t, err)
	assert.Len(t, monitored, 1)

	updated := *got
	updated.HasFile = true
	updated.FilePath = ptrString("/movies/Arrival/Arrival.mkv")
	require.NoError(t, s.UpdateMovie(ctx, updated))

	missing, err = s.ListMoviesMissing(ctx)
	require.NoError(t, err)
	assert.Empty(t, missing)

	got, err = s.GetMovie(ctx, id)
	require.NoError(t, err)
	assert.True(t, got.HasFile)

	require.NoError(t, s.DeleteMovie(ctx, id))
	_, err = s.GetMovie(ctx, id)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func ptrString(s string) *string { return &s }
