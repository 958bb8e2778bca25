package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/reelforge/reelforge/pkg/store"
)

// UpsertWorkerState persists a worker's last-known status so it survives a
// restart. pkg/scheduler calls this after every run; it is not the source
// of truth while the process is up, the in-memory registry is.
func (s *SQLite) UpsertWorkerState(ctx context.Context, w store.WorkerState) error {
	const query = `
		INSERT INTO worker (id, name, description, interval_ms, status, last_run_at, last_error, skip_initial)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			interval_ms = excluded.interval_ms,
			status = excluded.status,
			last_run_at = excluded.last_run_at,
			last_error = excluded.last_error,
			skip_initial = excluded.skip_initial
	`

	var lastRunAt *string
	if w.LastRunAt != nil {
		formatted := w.LastRunAt.UTC().Format(timestampFormat)
		lastRunAt = &formatted
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.rawDB(ctx).ExecContext(ctx, query, w.ID, w.Name, w.Description, w.IntervalMS, w.Status, lastRunAt, w.LastError, w.SkipInitial)
	if err != nil {
		return fmt.Errorf("upsert worker state %q: %w", w.ID, err)
	}
	return nil
}

// ListWorkerStates lists the last-known status of every worker.
func (s *SQLite) ListWorkerStates(ctx context.Context) ([]store.WorkerState, error) {
	const query = `
		SELECT id, name, description, interval_ms, status, last_run_at, last_error, skip_initial
		FROM worker ORDER BY id ASC
	`

	s.mu.Lock()
	rows, err := s.rawDB(ctx).QueryContext(ctx, query)
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("list worker states: %w", err)
	}
	defer rows.Close()

	var states []store.WorkerState
	for rows.Next() {
		var w store.WorkerState
		var lastRunAt *string
		if err := rows.Scan(&w.ID, &w.Name, &w.Description, &w.IntervalMS, &w.Status, &lastRunAt, &w.LastError, &w.SkipInitial); err != nil {
			return nil, err
		}
		if lastRunAt != nil {
			parsed, err := time.Parse(timestampFormat, *lastRunAt)
			if err != nil {
				return nil, fmt.Errorf("parse worker last_run_at %q: %w", *lastRunAt, err)
			}
			w.LastRunAt = &parsed
		}
		states = append(states, w)
	}
	return states, rows.Err()
}
