package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/reelforge/reelforge/pkg/store"
)

// LogActivity appends one entry to the append-only activity feed.
func (s *SQLite) LogActivity(ctx context.Context, e store.ActivityEntry) error {
	const query = `
		INSERT INTO activity_log (entity_type, entity_id, event_type, message, details)
		VALUES (?, ?, ?, ?, ?)
	`

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.rawDB(ctx).ExecContext(ctx, query, e.EntityType, e.EntityID, e.EventType, e.Message, e.Details)
	if err != nil {
		return fmt.Errorf("log activity: %w", err)
	}
	return nil
}

// ListActivity lists the activity feed for one entity, newest first.
func (s *SQLite) ListActivity(ctx context.Context, entityType string, entityID int64, limit int) ([]store.ActivityEntry, error) {
	const query = `
		SELECT id, entity_type, entity_id, event_type, message, details, created_at
		FROM activity_log
		WHERE entity_type = ? AND entity_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`

	s.mu.Lock()
	rows, err := s.rawDB(ctx).QueryContext(ctx, query, entityType, entityID, limit)
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("list activity for %s %d: %w", entityType, entityID, err)
	}
	defer rows.Close()

	return scanActivityRows(rows)
}

// ListRecentActivity lists the most recent activity across every entity.
func (s *SQLite) ListRecentActivity(ctx context.Context, limit int) ([]store.ActivityEntry, error) {
	const query = `
		SELECT id, entity_type, entity_id, event_type, message, details, created_at
		FROM activity_log
		ORDER BY created_at DESC
		LIMIT ?
	`

	s.mu.Lock()
	rows, err := s.rawDB(ctx).QueryContext(ctx, query, limit)
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("list recent activity: %w", err)
	}
	defer rows.Close()

	return scanActivityRows(rows)
}

// PruneActivityOlderThan deletes activity entries created before cutoff,
// returning the number of rows removed.
func (s *SQLite) PruneActivityOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	const query = `DELETE FROM activity_log WHERE created_at < ?`

	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.rawDB(ctx).ExecContext(ctx, query, cutoff.UTC().Format(timestampFormat))
	if err != nil {
		return 0, fmt.Errorf("prune activity: %w", err)
	}
	return result.RowsAffected()
}

func scanActivityRows(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]store.ActivityEntry, error) {
	var entries []store.ActivityEntry
	for rows.Next() {
		var e store.ActivityEntry
		var createdAt string
		if err := rows.Scan(&e.ID, &e.EntityType, &e.EntityID, &e.EventType, &e.Message, &e.Details, &createdAt); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(timestampFormat, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse activity created_at %q: %w", createdAt, err)
		}
		e.CreatedAt = parsed
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
