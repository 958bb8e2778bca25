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

// CreateEpisode inserts an episode row.
func (s *SQLite) CreateEpisode(ctx context.Context, e model.Episode) (int64, error) {
	stmt := table.Episode.
		INSERT(table.Episode.MutableColumns).
		MODEL(e).
		RETURNING(table.Episode.ID)

	result, err := s.handleStatement(ctx, stmt)
	if err != nil {
		return 0, fmt.Errorf("create episode: %w", err)
	}
	return result.LastInsertId()
}

// GetEpisode fetches a single episode by id.
func (s *SQLite) GetEpisode(ctx context.Context, id int64) (*model.Episode, error) {
	stmt := table.Episode.
		SELECT(table.Episode.AllColumns).
		FROM(table.Episode).
		WHERE(table.Episode.ID.EQ(sqlite.Int64(id)))

	var e model.Episode
	err := stmt.QueryContext(ctx, s.jetDB(ctx), &e)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("get episode %d: %w", id, err)
	}
	return &e, nil
}

// ListEpisodes lists every episode belonging to a series.
func (s *SQLite) ListEpisodes(ctx context.Context, seriesID int64) ([]*model.Episode, error) {
	episodes := make([]*model.Episode, 0)
	stmt := table.Episode.
		SELECT(table.Episode.AllColumns).
		FROM(table.Episode).
		WHERE(table.Episode.SeriesID.EQ(sqlite.Int64(seriesID))).
		ORDER_BY(table.Episode.SeasonNumber.ASC(), table.Episode.EpisodeNumber.ASC())

	err := stmt.QueryContext(ctx, s.jetDB(ctx), &episodes)
	if err != nil {
		return nil, fmt.Errorf("list episodes for series %d: %w", seriesID, err)
	}
	return episodes, nil
}

// ListEpisodesBySeason lists every episode in one season of one series.
func (s *SQLite) ListEpisodesBySeason(ctx context.Context, seriesID int64, seasonNumber int32) ([]*model.Episode, error) {
	episodes := make([]*model.Episode, 0)
	stmt := table.Episode.
		SELECT(table.Episode.AllColumns).
		FROM(table.Episode).
		WHERE(
			table.Episode.SeriesID.EQ(sqlite.Int64(seriesID)).
				AND(table.Episode.SeasonNumber.EQ(sqlite.Int32(seasonNumber))),
		).
		ORDER_BY(table.Episode.EpisodeNumber.ASC())

	err := stmt.QueryContext(ctx, s.jetDB(ctx), &episodes)
	if err != nil {
		return nil, fmt.Errorf("list episodes for series %d season %d: %w", seriesID, seasonNumber, err)
	}
	return episodes, nil
}

// ListEpisodesMissing lists monitored episodes with no file, across all series.
func (s *SQLite) ListEpisodesMissing(ctx context.Context) ([]*model.Episode, error) {
	episodes := make([]*model.Episode, 0)
	stmt := table.Episode.
		SELECT(table.Episode.AllColumns).
		FROM(table.Episode).
		WHERE(
			table.Episode.Monitored.EQ(sqlite.Bool(true)).
				AND(table.Episode.HasFile.EQ(sqlite.Bool(false))),
		).
		ORDER_BY(table.Episode.SeriesID.ASC(), table.Episode.SeasonNumber.ASC(), table.Episode.EpisodeNumber.ASC())

	err := stmt.QueryContext(ctx, s.jetDB(ctx), &episodes)
	if err != nil {
		return nil, fmt.Errorf("list missing episodes: %w", err)
	}
	return episodes, nil
}

// UpdateEpisode replaces every mutable column of the episode matching e.ID.
func (s *SQLite) UpdateEpisode(ctx context.Context, e model.Episode) error {
	stmt := table.Episode.
		UPDATE(table.Episode.MutableColumns).
		MODEL(e).
		WHERE(table.Episode.ID.EQ(sqlite.Int64(int64(e.ID))))

	_, err := s.handleStatement(ctx, stmt)
	if err != nil {
		return fmt.Errorf("update episode %d: %w", e.ID, err)
	}
	return nil
}

// DeleteEpisode removes an episode by id.
func (s *SQLite) DeleteEpisode(ctx context.Context, id int64) error {
	stmt := table.Episode.DELETE().WHERE(table.Episode.ID.EQ(sqlite.Int64(id)))
	_, err := s.handleStatement(ctx, stmt)
	if err != nil {
		return fmt.Errorf("delete episode %d: %w", id, err)
	}
	return nil
}
