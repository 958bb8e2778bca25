package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/reelforge/reelforge/pkg/store"
	"github.com/reelforge/reelforge/pkg/store/sqlite/schema/gen/model"
)

// CreateSeries inserts a series row with raw SQL; series has a generated
// model struct but no go-jet table builder, because its shape is small and
// dominated by nullable columns that read more clearly as named placeholders
// than generated SET lists.
func (s *SQLite) CreateSeries(ctx context.Context, sr model.Series) (int64, error) {
	const query = `
		INSERT INTO series (
			tvdb_id, tmdb_id, imdb_id, title, year, network, status, series_type,
			monitor_new_seasons, use_season_folder, quality_profile_id, folder_path,
			tags, monitored
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.rawDB(ctx).ExecContext(ctx, query,
		sr.TvdbID, sr.TmdbID, sr.ImdbID, sr.Title, sr.Year, sr.Network, sr.Status, sr.SeriesType,
		sr.MonitorNewSeasons, sr.UseSeasonFolder, sr.QualityProfileID, sr.FolderPath,
		sr.Tags, sr.Monitored,
	)
	if err != nil {
		return 0, fmt.Errorf("create series: %w", err)
	}
	return result.LastInsertId()
}

func scanSeries(row interface{ Scan(dest ...any) error }) (*model.Series, error) {
	var sr model.Series
	err := row.Scan(
		&sr.ID, &sr.TvdbID, &sr.TmdbID, &sr.ImdbID, &sr.Title, &sr.Year, &sr.Network, &sr.Status,
		&sr.SeriesType, &sr.MonitorNewSeasons, &sr.UseSeasonFolder, &sr.QualityProfileID, &sr.FolderPath,
		&sr.Tags, &sr.Monitored, &sr.CreatedAt, &sr.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &sr, nil
}

const seriesColumns = `
	id, tvdb_id, tmdb_id, imdb_id, title, year, network, status, series_type,
	monitor_new_seasons, use_season_folder, quality_profile_id, folder_path,
	tags, monitored, created_at, updated_at
`

// GetSeries fetches a series by id.
func (s *SQLite) GetSeries(ctx context.Context, id int64) (*model.Series, error) {
	query := `SELECT ` + seriesColumns + ` FROM series WHERE id = ?`

	s.mu.Lock()
	row := s.rawDB(ctx).QueryRowContext(ctx, query, id)
	s.mu.Unlock()

	sr, err := scanSeries(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("get series %d: %w", id, err)
	}
	return sr, nil
}

// GetSeriesByTvdbID fetches a series by its TheTVDB id.
func (s *SQLite) GetSeriesByTvdbID(ctx context.Context, tvdbID int32) (*model.Series, error) {
	query := `SELECT ` + seriesColumns + ` FROM series WHERE tvdb_id = ?`

	s.mu.Lock()
	row := s.rawDB(ctx).QueryRowContext(ctx, query, tvdbID)
	s.mu.Unlock()

	sr, err := scanSeries(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("get series by tvdb id %d: %w", tvdbID, err)
	}
	return sr, nil
}

// GetSeriesByTmdbID fetches a series by its TMDB id. Import lists resolve
// everything to a TMDB id before reconciling against the catalog, so this
// is the lookup that path uses rather than GetSeriesByTvdbID.
func (s *SQLite) GetSeriesByTmdbID(ctx context.Context, tmdbID int32) (*model.Series, error) {
	query := `SELECT ` + seriesColumns + ` FROM series WHERE tmdb_id = ?`

	s.mu.Lock()
	row := s.rawDB(ctx).QueryRowContext(ctx, query, tmdbID)
	s.mu.Unlock()

	sr, err := scanSeries(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("get series by tmdb id %d: %w", tmdbID, err)
	}
	return sr, nil
}

// ListSeries lists every series ordered by title.
func (s *SQLite) ListSeries(ctx context.Context) ([]*model.Series, error) {
	query := `SELECT ` + seriesColumns + ` FROM series ORDER BY title ASC`

	s.mu.Lock()
	rows, err := s.rawDB(ctx).QueryContext(ctx, query)
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("list series: %w", err)
	}
	defer rows.Close()

	var result []*model.Series
	for rows.Next() {
		sr, err := scanSeries(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, sr)
	}
	return result, rows.Err()
}

// UpdateSeries replaces a series' mutable columns.
func (s *SQLite) UpdateSeries(ctx context.Context, sr model.Series) error {
	const query = `
		UPDATE series SET
			tvdb_id = ?, tmdb_id = ?, imdb_id = ?, title = ?, year = ?, network = ?,
			status = ?, series_type = ?, monitor_new_seasons = ?, use_season_folder = ?,
			quality_profile_id = ?, folder_path = ?, tags = ?, monitored = ?,
			updated_at = strftime('%Y-%m-%dT%H:%M:%fZ','now')
		WHERE id = ?
	`

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.rawDB(ctx).ExecContext(ctx, query,
		sr.TvdbID, sr.TmdbID, sr.ImdbID, sr.Title, sr.Year, sr.Network, sr.Status, sr.SeriesType,
		sr.MonitorNewSeasons, sr.UseSeasonFolder, sr.QualityProfileID, sr.FolderPath,
		sr.Tags, sr.Monitored, sr.ID,
	)
	if err != nil {
		return fmt.Errorf("update series %d: %w", sr.ID, err)
	}
	return nil
}

// DeleteSeries removes a series by id; its seasons and episodes cascade.
func (s *SQLite) DeleteSeries(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.rawDB(ctx).ExecContext(ctx, `DELETE FROM series WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete series %d: %w", id, err)
	}
	return nil
}

// UpsertSeason creates a season row if one doesn't already exist for
// (seriesID, seasonNumber), otherwise updates its monitored flag.
func (s *SQLite) UpsertSeason(ctx context.Context, seriesID int64, seasonNumber int32, monitored bool) (int64, error) {
	const query = `
		INSERT INTO season (series_id, season_number, monitored) VALUES (?, ?, ?)
		ON CONFLICT(series_id, season_number) DO UPDATE SET monitored = excluded.monitored
		RETURNING id
	`

	s.mu.Lock()
	defer s.mu.Unlock()

	var id int64
	err := s.rawDB(ctx).QueryRowContext(ctx, query, seriesID, seasonNumber, monitored).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upsert season %d/%d: %w", seriesID, seasonNumber, err)
	}
	return id, nil
}

// ListSeasons lists every season belonging to a series.
func (s *SQLite) ListSeasons(ctx context.Context, seriesID int64) ([]store.Season, error) {
	const query = `SELECT id, series_id, season_number, monitored FROM season WHERE series_id = ? ORDER BY season_number ASC`

	s.mu.Lock()
	rows, err := s.rawDB(ctx).QueryContext(ctx, query, seriesID)
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("list seasons for series %d: %w", seriesID, err)
	}
	defer rows.Close()

	var seasons []store.Season
	for rows.Next() {
		var sn store.Season
		if err := rows.Scan(&sn.ID, &sn.SeriesID, &sn.SeasonNumber, &sn.Monitored); err != nil {
			return nil, err
		}
		seasons = append(seasons, sn)
	}
	return seasons, rows.Err()
}

// SetSeasonMonitored flips a season's monitored flag, used when a user
// monitors/unmonitors a whole season and the cascade needs to persist it.
func (s *SQLite) SetSeasonMonitored(ctx context.Context, seriesID int64, seasonNumber int32, monitored bool) error {
	const query = `UPDATE season SET monitored = ? WHERE series_id = ? AND season_number = ?`

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.rawDB(ctx).ExecContext(ctx, query, monitored, seriesID, seasonNumber)
	if err != nil {
		return fmt.Errorf("set season monitored %d/%d: %w", seriesID, seasonNumber, err)
	}
	return nil
}
