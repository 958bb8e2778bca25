package sqlite

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-jet/jet/v2/qrm"
	"github.com/go-jet/jet/v2/sqlite"

	"github.com/reelforge/reelforge/pkg/store"
	"github.com/reelforge/reelforge/pkg/store/sqlite/schema/gen/model"
	"github.com/reelforge/reelforge/pkg/store/sqlite/schema/gen/table"
)

// CreateMovie inserts a movie, assigning a new id when m.ID is zero.
func (s *SQLite) CreateMovie(ctx context.Context, m model.Movie) (int64, error) {
	insertColumns := table.Movie.MutableColumns
	if m.ID != 0 {
		insertColumns = table.Movie.AllColumns
	}

	stmt := table.Movie.
		INSERT(insertColumns).
		MODEL(m).
		RETURNING(table.Movie.ID)

	result, err := s.handleStatement(ctx, stmt)
	if err != nil {
		return 0, fmt.Errorf("create movie: %w", err)
	}
	return result.LastInsertId()
}

// GetMovie fetches a movie by id.
func (s *SQLite) GetMovie(ctx context.Context, id int64) (*model.Movie, error) {
	stmt := table.Movie.
		SELECT(table.Movie.AllColumns).
		FROM(table.Movie).
		WHERE(table.Movie.ID.EQ(sqlite.Int64(id)))

	var m model.Movie
	err := stmt.QueryContext(ctx, s.jetDB(ctx), &m)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("get movie %d: %w", id, err)
	}
	return &m, nil
}

// GetMovieByTmdbID fetches a movie by its TMDB id.
func (s *SQLite) GetMovieByTmdbID(ctx context.Context, tmdbID int32) (*model.Movie, error) {
	stmt := table.Movie.
		SELECT(table.Movie.AllColumns).
		FROM(table.Movie).
		WHERE(table.Movie.TmdbID.EQ(sqlite.Int32(tmdbID)))

	var m model.Movie
	err := stmt.QueryContext(ctx, s.jetDB(ctx), &m)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("get movie by tmdb id %d: %w", tmdbID, err)
	}
	return &m, nil
}

// ListMovies lists every movie ordered by title.
func (s *SQLite) ListMovies(ctx context.Context) ([]*model.Movie, error) {
	movies := make([]*model.Movie, 0)
	stmt := table.Movie.
		SELECT(table.Movie.AllColumns).
		FROM(table.Movie).
		ORDER_BY(table.Movie.Title.ASC())

	err := stmt.QueryContext(ctx, s.jetDB(ctx), &movies)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	return movies, nil
}

// ListMoviesMonitored lists movies with monitoring enabled.
func (s *SQLite) ListMoviesMonitored(ctx context.Context) ([]*model.Movie, error) {
	movies := make([]*model.Movie, 0)
	stmt := table.Movie.
		SELECT(table.Movie.AllColumns).
		FROM(table.Movie).
		WHERE(table.Movie.Monitored.EQ(sqlite.Bool(true))).
		ORDER_BY(table.Movie.Title.ASC())

	err := stmt.QueryContext(ctx, s.jetDB(ctx), &movies)
	if err != nil {
		return nil, fmt.Errorf("list monitored movies: %w", err)
	}
	return movies, nil
}

// ListMoviesMissing lists monitored movies that have no file yet.
func (s *SQLite) ListMoviesMissing(ctx context.Context) ([]*model.Movie, error) {
	movies := make([]*model.Movie, 0)
	stmt := table.Movie.
		SELECT(table.Movie.AllColumns).
		FROM(table.Movie).
		WHERE(
			table.Movie.Monitored.EQ(sqlite.Bool(true)).
				AND(table.Movie.HasFile.EQ(sqlite.Bool(false))),
		).
		ORDER_BY(table.Movie.Title.ASC())

	err := stmt.QueryContext(ctx, s.jetDB(ctx), &movies)
	if err != nil {
		return nil, fmt.Errorf("list missing movies: %w", err)
	}
	return movies, nil
}

// UpdateMovie replaces every mutable column of the movie matching m.ID.
func (s *SQLite) UpdateMovie(ctx context.Context, m model.Movie) error {
	setColumns := make([]sqlite.Expression, len(table.Movie.MutableColumns))
	for i, c := range table.Movie.MutableColumns {
		setColumns[i] = c
	}

	stmt := table.Movie.
		UPDATE(table.Movie.MutableColumns).
		MODEL(m).
		WHERE(table.Movie.ID.EQ(sqlite.Int64(int64(m.ID))))

	_, err := s.handleStatement(ctx, stmt)
	if err != nil {
		return fmt.Errorf("update movie %d: %w", m.ID, err)
	}
	return nil
}

// DeleteMovie removes a movie by id.
func (s *SQLite) DeleteMovie(ctx context.Context, id int64) error {
	stmt := table.Movie.DELETE().WHERE(table.Movie.ID.EQ(sqlite.Int64(id)))
	_, err := s.handleStatement(ctx, stmt)
	if err != nil {
		return fmt.Errorf("delete movie %d: %w", id, err)
	}
	return nil
}
