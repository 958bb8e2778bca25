package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/reelforge/reelforge/pkg/store"
)

// InsertRSSEntry stores a feed item, returning (id, true, nil) when new or
// (0, false, nil) when (indexer_id, guid) was already cached.
func (s *SQLite) InsertRSSEntry(ctx context.Context, e store.RSSCacheEntry) (int64, bool, error) {
	const query = `
		INSERT INTO rss_release_cache (indexer_id, guid, title, download_url, size, publish_date)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	var publishDate *string
	if e.PublishDate != nil {
		formatted := e.PublishDate.UTC().Format(timestampFormat)
		publishDate = &formatted
	}

	s.mu.Lock()
	result, err := s.rawDB(ctx).ExecContext(ctx, query, e.IndexerID, e.GUID, e.Title, e.DownloadURL, e.Size, publishDate)
	s.mu.Unlock()
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("insert rss entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

// MarkRSSProcessed marks a cached release as having gone through selection,
// recording whether it was grabbed.
func (s *SQLite) MarkRSSProcessed(ctx context.Context, id int64, grabbed bool) error {
	const query = `UPDATE rss_release_cache SET processed = 1, grabbed = ? WHERE id = ?`

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.rawDB(ctx).ExecContext(ctx, query, grabbed, id)
	if err != nil {
		return fmt.Errorf("mark rss entry %d processed: %w", id, err)
	}
	return nil
}

// PruneRSSCacheOlderThan deletes cached entries created before cutoff,
// returning the number of rows removed.
func (s *SQLite) PruneRSSCacheOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	const query = `DELETE FROM rss_release_cache WHERE created_at < ?`

	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.rawDB(ctx).ExecContext(ctx, query, cutoff.UTC().Format(timestampFormat))
	if err != nil {
		return 0, fmt.Errorf("prune rss cache: %w", err)
	}
	return result.RowsAffected()
}
