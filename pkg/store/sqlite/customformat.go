package sqlite

import (
	"context"
	"fmt"

	"github.com/reelforge/reelforge/pkg/store"
)

// CreateCustomFormat stores a new custom format rule.
func (s *SQLite) CreateCustomFormat(ctx context.Context, name, expression string, score int32) (int64, error) {
	const query = `INSERT INTO custom_format (name, expression, score) VALUES (?, ?, ?)`

	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.rawDB(ctx).ExecContext(ctx, query, name, expression, score)
	if err != nil {
		return 0, fmt.Errorf("create custom format: %w", err)
	}
	return result.LastInsertId()
}

// ListCustomFormats lists every configured custom format.
func (s *SQLite) ListCustomFormats(ctx context.Context) ([]store.CustomFormat, error) {
	const query = `SELECT id, name, expression, score FROM custom_format ORDER BY id ASC`

	s.mu.Lock()
	rows, err := s.rawDB(ctx).QueryContext(ctx, query)
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("list custom formats: %w", err)
	}
	defer rows.Close()

	var formats []store.CustomFormat
	for rows.Next() {
		var cf store.CustomFormat
		if err := rows.Scan(&cf.ID, &cf.Name, &cf.Expression, &cf.Score); err != nil {
			return nil, err
		}
		formats = append(formats, cf)
	}
	return formats, rows.Err()
}

// DeleteCustomFormat removes a custom format; its profile scores cascade.
func (s *SQLite) DeleteCustomFormat(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.rawDB(ctx).ExecContext(ctx, `DELETE FROM custom_format WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete custom format %d: %w", id, err)
	}
	return nil
}

// SetCustomFormatProfileScore sets the per-profile score override for a
// custom format, replacing any existing override.
func (s *SQLite) SetCustomFormatProfileScore(ctx context.Context, customFormatID, profileID int64, score int32) error {
	const query = `
		INSERT INTO custom_format_profile_score (custom_format_id, quality_profile_id, score)
		VALUES (?, ?, ?)
		ON CONFLICT(custom_format_id, quality_profile_id) DO UPDATE SET score = excluded.score
	`

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.rawDB(ctx).ExecContext(ctx, query, customFormatID, profileID, score)
	if err != nil {
		return fmt.Errorf("set custom format profile score: %w", err)
	}
	return nil
}

// ListCustomFormatProfileScores returns every per-profile score override for
// one profile, keyed by custom format id.
func (s *SQLite) ListCustomFormatProfileScores(ctx context.Context, profileID int64) (map[int64]int32, error) {
	const query = `SELECT custom_format_id, score FROM custom_format_profile_score WHERE quality_profile_id = ?`

	s.mu.Lock()
	rows, err := s.rawDB(ctx).QueryContext(ctx, query, profileID)
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("list custom format profile scores for profile %d: %w", profileID, err)
	}
	defer rows.Close()

	scores := make(map[int64]int32)
	for rows.Next() {
		var formatID int64
		var score int32
		if err := rows.Scan(&formatID, &score); err != nil {
			return nil, err
		}
		scores[formatID] = score
	}
	return scores, rows.Err()
}
