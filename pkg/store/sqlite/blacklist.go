package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/reelforge/reelforge/pkg/store"
)

// AddToBlacklist records a release title as rejected for a movie or episode
// so future selection rounds never re-offer it.
func (s *SQLite) AddToBlacklist(ctx context.Context, releaseTitle string, mediaType store.MediaType, movieID, episodeID *int64) error {
	const query = `
		INSERT INTO release_blacklist (release_title, media_type, movie_id, episode_id)
		VALUES (?, ?, ?, ?)
	`

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.rawDB(ctx).ExecContext(ctx, query, releaseTitle, string(mediaType), movieID, episodeID)
	if err != nil {
		return fmt.Errorf("add to blacklist: %w", err)
	}
	return nil
}

// IsBlacklisted reports whether releaseTitle has already been rejected for
// the given movie or episode.
func (s *SQLite) IsBlacklisted(ctx context.Context, releaseTitle string, movieID, episodeID *int64) (bool, error) {
	query := `SELECT 1 FROM release_blacklist WHERE release_title = ?`
	args := []any{releaseTitle}

	switch {
	case movieID != nil:
		query += ` AND movie_id = ?`
		args = append(args, *movieID)
	case episodeID != nil:
		query += ` AND episode_id = ?`
		args = append(args, *episodeID)
	default:
		return false, fmt.Errorf("is blacklisted: one of movieID or episodeID must be set")
	}

	s.mu.Lock()
	row := s.rawDB(ctx).QueryRowContext(ctx, query, args...)
	s.mu.Unlock()

	var found int
	err := row.Scan(&found)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check blacklist: %w", err)
	}
	return true, nil
}
