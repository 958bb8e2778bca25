package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/reelforge/reelforge/pkg/store"
)

// CreateImportList stores a new import list source configuration.
func (s *SQLite) CreateImportList(ctx context.Context, c store.ImportListConfig) (int64, error) {
	const query = `
		INSERT INTO import_list (
			type, media_type, enabled, list_id, url, quality_profile_id, root_folder,
			monitor_mode, minimum_availability, search_on_add, refresh_interval_minutes
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.rawDB(ctx).ExecContext(ctx, query,
		c.Type, string(c.MediaType), c.Enabled, c.ListID, c.URL, c.QualityProfileID, c.RootFolder,
		c.MonitorMode, c.MinimumAvailability, c.SearchOnAdd, c.RefreshIntervalMinutes,
	)
	if err != nil {
		return 0, fmt.Errorf("create import list: %w", err)
	}
	return result.LastInsertId()
}

// ListImportLists lists every configured import list.
func (s *SQLite) ListImportLists(ctx context.Context) ([]store.ImportListConfig, error) {
	const query = `
		SELECT id, type, media_type, enabled, list_id, url, quality_profile_id, root_folder,
			monitor_mode, minimum_availability, search_on_add, refresh_interval_minutes, last_sync
		FROM import_list ORDER BY id ASC
	`

	s.mu.Lock()
	rows, err := s.rawDB(ctx).QueryContext(ctx, query)
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("list import lists: %w", err)
	}
	defer rows.Close()

	var lists []store.ImportListConfig
	for rows.Next() {
		var c store.ImportListConfig
		var mediaType string
		var lastSync *string
		if err := rows.Scan(
			&c.ID, &c.Type, &mediaType, &c.Enabled, &c.ListID, &c.URL, &c.QualityProfileID, &c.RootFolder,
			&c.MonitorMode, &c.MinimumAvailability, &c.SearchOnAdd, &c.RefreshIntervalMinutes, &lastSync,
		); err != nil {
			return nil, err
		}
		c.MediaType = store.MediaType(mediaType)
		if lastSync != nil {
			parsed, err := time.Parse(timestampFormat, *lastSync)
			if err != nil {
				return nil, fmt.Errorf("parse import list last_sync %q: %w", *lastSync, err)
			}
			c.LastSync = &parsed
		}
		lists = append(lists, c)
	}
	return lists, rows.Err()
}

// UpdateImportListLastSync records the timestamp of the most recent sync.
func (s *SQLite) UpdateImportListLastSync(ctx context.Context, id int64, at time.Time) error {
	const query = `UPDATE import_list SET last_sync = ? WHERE id = ?`

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.rawDB(ctx).ExecContext(ctx, query, at.UTC().Format(timestampFormat), id)
	if err != nil {
		return fmt.Errorf("update import list last sync %d: %w", id, err)
	}
	return nil
}

// DeleteImportList removes an import list configuration.
func (s *SQLite) DeleteImportList(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.rawDB(ctx).ExecContext(ctx, `DELETE FROM import_list WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete import list %d: %w", id, err)
	}
	return nil
}
