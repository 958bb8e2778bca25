package sqlite

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-jet/jet/v2/qrm"
	"github.com/go-jet/jet/v2/sqlite"
	"github.com/mattn/go-sqlite3"

	"github.com/reelforge/reelforge/pkg/store"
	"github.com/reelforge/reelforge/pkg/store/sqlite/schema/gen/model"
	"github.com/reelforge/reelforge/pkg/store/sqlite/schema/gen/table"
)

// CreateDownload inserts a download row. The partial unique index on
// (download_url) for active statuses enforces grab idempotency at the
// database layer; a conflicting insert surfaces as store.ErrConflict.
func (s *SQLite) CreateDownload(ctx context.Context, d model.Download) (int64, error) {
	stmt := table.Download.
		INSERT(table.Download.MutableColumns).
		MODEL(d).
		RETURNING(table.Download.ID)

	result, err := s.handleStatement(ctx, stmt)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return 0, fmt.Errorf("create download: %w", store.ErrConflict)
		}
		return 0, fmt.Errorf("create download: %w", err)
	}
	return result.LastInsertId()
}

// GetDownload fetches a download by id.
func (s *SQLite) GetDownload(ctx context.Context, id int64) (*model.Download, error) {
	stmt := table.Download.
		SELECT(table.Download.AllColumns).
		FROM(table.Download).
		WHERE(table.Download.ID.EQ(sqlite.Int64(id)))

	var d model.Download
	err := stmt.QueryContext(ctx, s.jetDB(ctx), &d)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("get download %d: %w", id, err)
	}
	return &d, nil
}

// GetActiveDownloadByURL returns the download row for url that is in an
// active status (queued, downloading, importing), or store.ErrNotFound.
func (s *SQLite) GetActiveDownloadByURL(ctx context.Context, url string) (*model.Download, error) {
	stmt := table.Download.
		SELECT(table.Download.AllColumns).
		FROM(table.Download).
		WHERE(
			table.Download.DownloadURL.EQ(sqlite.String(url)).
				AND(table.Download.Status.IN(sqlite.String("queued"), sqlite.String("downloading"), sqlite.String("importing"))),
		)

	var d model.Download
	err := stmt.QueryContext(ctx, s.jetDB(ctx), &d)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("get active download by url: %w", err)
	}
	return &d, nil
}

// ListDownloadsByStatus lists downloads in a given status, oldest first.
func (s *SQLite) ListDownloadsByStatus(ctx context.Context, status string) ([]*model.Download, error) {
	downloads := make([]*model.Download, 0)
	stmt := table.Download.
		SELECT(table.Download.AllColumns).
		FROM(table.Download).
		WHERE(table.Download.Status.EQ(sqlite.String(status))).
		ORDER_BY(table.Download.CreatedAt.ASC())

	err := stmt.QueryContext(ctx, s.jetDB(ctx), &downloads)
	if err != nil {
		return nil, fmt.Errorf("list downloads by status %q: %w", status, err)
	}
	return downloads, nil
}

// UpdateDownloadStatus updates a download's progress tuple.
func (s *SQLite) UpdateDownloadStatus(ctx context.Context, id int64, status string, progress float64, errMsg string) error {
	stmt := table.Download.
		UPDATE(table.Download.Status, table.Download.Progress, table.Download.ErrorMessage, table.Download.UpdatedAt).
		SET(
			table.Download.Status.SET(sqlite.String(status)),
			table.Download.Progress.SET(sqlite.Float(progress)),
			table.Download.ErrorMessage.SET(sqlite.String(errMsg)),
			table.Download.UpdatedAt.SET(sqlite.StringExp(sqlite.Raw("strftime('%Y-%m-%dT%H:%M:%fZ','now')"))),
		).
		WHERE(table.Download.ID.EQ(sqlite.Int64(id)))

	_, err := s.handleStatement(ctx, stmt)
	if err != nil {
		return fmt.Errorf("update download status %d: %w", id, err)
	}
	return nil
}

// UpdateDownloadClientJobID records the download client's own identifiers
// for a download once the grab has been submitted.
func (s *SQLite) UpdateDownloadClientJobID(ctx context.Context, id int64, clientID, clientJobID string) error {
	stmt := table.Download.
		UPDATE(table.Download.ClientID, table.Download.ClientJobID, table.Download.UpdatedAt).
		SET(
			table.Download.ClientID.SET(sqlite.String(clientID)),
			table.Download.ClientJobID.SET(sqlite.String(clientJobID)),
			table.Download.UpdatedAt.SET(sqlite.StringExp(sqlite.Raw("strftime('%Y-%m-%dT%H:%M:%fZ','now')"))),
		).
		WHERE(table.Download.ID.EQ(sqlite.Int64(id)))

	_, err := s.handleStatement(ctx, stmt)
	if err != nil {
		return fmt.Errorf("update download client job id %d: %w", id, err)
	}
	return nil
}

// DeleteDownload removes a download by id.
func (s *SQLite) DeleteDownload(ctx context.Context, id int64) error {
	stmt := table.Download.DELETE().WHERE(table.Download.ID.EQ(sqlite.Int64(id)))
	_, err := s.handleStatement(ctx, stmt)
	if err != nil {
		return fmt.Errorf("delete download %d: %w", id, err)
	}
	return nil
}
