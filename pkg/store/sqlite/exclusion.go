package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/reelforge/reelforge/pkg/store"
)

// AddExclusion marks a tmdb id as never to be auto-added or auto-searched.
func (s *SQLite) AddExclusion(ctx context.Context, tmdbID int64, mediaType store.MediaType) error {
	const query = `INSERT INTO exclusion (tmdb_id, media_type) VALUES (?, ?) ON CONFLICT(tmdb_id, media_type) DO NOTHING`

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.rawDB(ctx).ExecContext(ctx, query, tmdbID, string(mediaType))
	if err != nil {
		return fmt.Errorf("add exclusion %d/%s: %w", tmdbID, mediaType, err)
	}
	return nil
}

// IsExcluded reports whether a tmdb id is excluded for a media type.
func (s *SQLite) IsExcluded(ctx context.Context, tmdbID int64, mediaType store.MediaType) (bool, error) {
	const query = `SELECT 1 FROM exclusion WHERE tmdb_id = ? AND media_type = ?`

	s.mu.Lock()
	row := s.rawDB(ctx).QueryRowContext(ctx, query, tmdbID, string(mediaType))
	s.mu.Unlock()

	var found int
	err := row.Scan(&found)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check exclusion %d/%s: %w", tmdbID, mediaType, err)
	}
	return true, nil
}

// RemoveExclusion lifts an exclusion.
func (s *SQLite) RemoveExclusion(ctx context.Context, tmdbID int64, mediaType store.MediaType) error {
	const query = `DELETE FROM exclusion WHERE tmdb_id = ? AND media_type = ?`

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.rawDB(ctx).ExecContext(ctx, query, tmdbID, string(mediaType))
	if err != nil {
		return fmt.Errorf("remove exclusion %d/%s: %w", tmdbID, mediaType, err)
	}
	return nil
}
