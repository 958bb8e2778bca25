package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/reelforge/reelforge/pkg/store"
)

// CreateIndexerConfig stores a new indexer connection.
func (s *SQLite) CreateIndexerConfig(ctx context.Context, c store.IndexerConfig) (int64, error) {
	categories, err := json.Marshal(c.Categories)
	if err != nil {
		return 0, fmt.Errorf("marshal indexer categories: %w", err)
	}

	const query = `
		INSERT INTO indexer_config (name, uri, api_key, priority, categories, enabled, rss_enabled)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.rawDB(ctx).ExecContext(ctx, query, c.Name, c.URI, c.APIKey, c.Priority, string(categories), c.Enabled, c.RSSEnabled)
	if err != nil {
		return 0, fmt.Errorf("create indexer config: %w", err)
	}
	return result.LastInsertId()
}

// ListIndexerConfigs lists every configured indexer, highest priority first.
func (s *SQLite) ListIndexerConfigs(ctx context.Context) ([]store.IndexerConfig, error) {
	const query = `
		SELECT id, name, uri, api_key, priority, categories, enabled, rss_enabled
		FROM indexer_config ORDER BY priority DESC
	`

	s.mu.Lock()
	rows, err := s.rawDB(ctx).QueryContext(ctx, query)
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("list indexer configs: %w", err)
	}
	defer rows.Close()

	var configs []store.IndexerConfig
	for rows.Next() {
		var c store.IndexerConfig
		var categories string
		if err := rows.Scan(&c.ID, &c.Name, &c.URI, &c.APIKey, &c.Priority, &categories, &c.Enabled, &c.RSSEnabled); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(categories), &c.Categories); err != nil {
			return nil, fmt.Errorf("unmarshal indexer categories: %w", err)
		}
		configs = append(configs, c)
	}
	return configs, rows.Err()
}

// UpdateIndexerConfig replaces an indexer's configuration.
func (s *SQLite) UpdateIndexerConfig(ctx context.Context, c store.IndexerConfig) error {
	categories, err := json.Marshal(c.Categories)
	if err != nil {
		return fmt.Errorf("marshal indexer categories: %w", err)
	}

	const query = `
		UPDATE indexer_config SET
			name = ?, uri = ?, api_key = ?, priority = ?, categories = ?, enabled = ?, rss_enabled = ?
		WHERE id = ?
	`

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.rawDB(ctx).ExecContext(ctx, query, c.Name, c.URI, c.APIKey, c.Priority, string(categories), c.Enabled, c.RSSEnabled, c.ID)
	if err != nil {
		return fmt.Errorf("update indexer config %d: %w", c.ID, err)
	}
	return nil
}

// DeleteIndexerConfig removes an indexer's configuration.
func (s *SQLite) DeleteIndexerConfig(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.rawDB(ctx).ExecContext(ctx, `DELETE FROM indexer_config WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete indexer config %d: %w", id, err)
	}
	return nil
}
