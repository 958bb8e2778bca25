package sqlite

import (
	"context"
	"fmt"

	"github.com/reelforge/reelforge/pkg/store"
)

// CreateDownloadClientConfig stores a new download client connection.
func (s *SQLite) CreateDownloadClientConfig(ctx context.Context, c store.DownloadClientConfig) (int64, error) {
	const query = `
		INSERT INTO download_client_config (name, kind, host, port, username, password, category, protocol, enabled, keep_source_files)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.rawDB(ctx).ExecContext(ctx, query, c.Name, c.Kind, c.Host, c.Port, c.Username, c.Password, c.Category, c.Protocol, c.Enabled, c.KeepSourceFiles)
	if err != nil {
		return 0, fmt.Errorf("create download client config: %w", err)
	}
	return result.LastInsertId()
}

// ListDownloadClientConfigs lists every configured download client.
func (s *SQLite) ListDownloadClientConfigs(ctx context.Context) ([]store.DownloadClientConfig, error) {
	const query = `
		SELECT id, name, kind, host, port, username, password, category, protocol, enabled, keep_source_files
		FROM download_client_config ORDER BY id ASC
	`

	s.mu.Lock()
	rows, err := s.rawDB(ctx).QueryContext(ctx, query)
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("list download client configs: %w", err)
	}
	defer rows.Close()

	var configs []store.DownloadClientConfig
	for rows.Next() {
		var c store.DownloadClientConfig
		if err := rows.Scan(&c.ID, &c.Name, &c.Kind, &c.Host, &c.Port, &c.Username, &c.Password, &c.Category, &c.Protocol, &c.Enabled, &c.KeepSourceFiles); err != nil {
			return nil, err
		}
		configs = append(configs, c)
	}
	return configs, rows.Err()
}

// UpdateDownloadClientConfig replaces a download client's configuration.
func (s *SQLite) UpdateDownloadClientConfig(ctx context.Context, c store.DownloadClientConfig) error {
	const query = `
		UPDATE download_client_config SET
			name = ?, kind = ?, host = ?, port = ?, username = ?, password = ?, category = ?, protocol = ?, enabled = ?, keep_source_files = ?
		WHERE id = ?
	`

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.rawDB(ctx).ExecContext(ctx, query, c.Name, c.Kind, c.Host, c.Port, c.Username, c.Password, c.Category, c.Protocol, c.Enabled, c.KeepSourceFiles, c.ID)
	if err != nil {
		return fmt.Errorf("update download client config %d: %w", c.ID, err)
	}
	return nil
}

// DeleteDownloadClientConfig removes a download client's configuration.
func (s *SQLite) DeleteDownloadClientConfig(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.rawDB(ctx).ExecContext(ctx, `DELETE FROM download_client_config WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete download client config %d: %w", id, err)
	}
	return nil
}
