package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/reelforge/reelforge/config"
	"github.com/reelforge/reelforge/pkg/autosearch"
	"github.com/reelforge/reelforge/pkg/backup"
	"github.com/reelforge/reelforge/pkg/importlist"
	"github.com/reelforge/reelforge/pkg/library"
	"github.com/reelforge/reelforge/pkg/lifecycle"
	"github.com/reelforge/reelforge/pkg/logger"
	"github.com/reelforge/reelforge/pkg/metadata"
	"github.com/reelforge/reelforge/pkg/rss"
	"github.com/reelforge/reelforge/pkg/scheduler"
	"github.com/reelforge/reelforge/pkg/store"
)

const (
	workerDownloadSync    = "download-sync"
	workerImportListSync  = "import-list-sync"
	workerLibraryRefresh  = "library-refresh"
	workerMetadataRefresh = "metadata-refresh"
	workerMissingSearch   = "missing-search"
	workerCutoffSearch    = "cutoff-search"
	workerRSSSync         = "rss-sync"
	workerActivityCleanup = "activity-cleanup"
	workerDatabaseBackup  = "database-backup"

	searchConcurrency = 5
	activityRetention = 7 * 24 * time.Hour
)

// registerWorkers wires the nine built-in background jobs into registry,
// each a thin adapter from scheduler.Func to the owning package's RunOnce
// (or equivalent) call.
func registerWorkers(
	registry *scheduler.Registry,
	intervals config.Scheduler,
	downloads *lifecycle.DownloadLifecycle,
	rssGrabber *rss.Grabber,
	importSync *importlist.Sync,
	search *autosearch.AutoSearch,
	mediaLibrary library.Library,
	metadataProvider metadata.Provider,
	backupDir string,
	s store.Store,
	log *zap.SugaredLogger,
) {
	registrations := []scheduler.Config{
		{
			ID:          workerDownloadSync,
			Name:        "Download sync",
			Description: "polls configured download clients for progress and imports completed jobs",
			Interval:    time.Duration(intervals.DownloadSyncSeconds) * time.Second,
			Run: func(ctx context.Context) error {
				_, err := downloads.RunOnce(ctx)
				return err
			},
		},
		{
			ID:          workerImportListSync,
			Name:        "Import list sync",
			Description: "reconciles configured import lists against the library",
			Interval:    time.Duration(intervals.ImportListSyncMinutes) * time.Minute,
			Run: func(ctx context.Context) error {
				_, err := importSync.RunOnce(ctx)
				return err
			},
		},
		{
			ID:          workerLibraryRefresh,
			Name:        "Library refresh",
			Description: "scans the movie/tv folders for files not yet tracked in the catalog",
			Interval:    time.Duration(intervals.LibraryRefreshMinutes) * time.Minute,
			Run: func(ctx context.Context) error {
				movies, err := mediaLibrary.FindMovies(ctx)
				if err != nil {
					return fmt.Errorf("scan movie library: %w", err)
				}
				episodes, err := mediaLibrary.FindEpisodes(ctx)
				if err != nil {
					return fmt.Errorf("scan tv library: %w", err)
				}
				logger.FromCtx(ctx).Infow("library refresh: scan complete", "movie_files", len(movies), "episode_files", len(episodes))
				return nil
			},
		},
		{
			ID:          workerMetadataRefresh,
			Name:        "Metadata refresh",
			Description: "refreshes cached metadata for monitored movies and series",
			Interval:    time.Duration(intervals.MetadataRefreshHours) * time.Hour,
			Run: func(ctx context.Context) error {
				return refreshMetadata(ctx, s, metadataProvider)
			},
		},
		{
			ID:          workerMissingSearch,
			Name:        "Missing search",
			Description: "searches for every monitored movie/episode with no file",
			Interval:    time.Duration(intervals.MissingSearchMinutes) * time.Minute,
			Run: func(ctx context.Context) error {
				_, err := search.SearchAllMissing(ctx, searchConcurrency)
				return err
			},
		},
		{
			ID:          workerCutoffSearch,
			Name:        "Cutoff search",
			Description: "searches for an upgrade on every file below its quality profile's cutoff",
			Interval:    time.Duration(intervals.CutoffSearchMinutes) * time.Minute,
			Run: func(ctx context.Context) error {
				_, err := search.SearchAllCutoffUnmet(ctx, searchConcurrency)
				return err
			},
		},
		{
			ID:          workerRSSSync,
			Name:        "RSS sync",
			Description: "polls every RSS-enabled indexer and grabs matching releases",
			Interval:    time.Duration(intervals.RSSSyncMinutes) * time.Minute,
			Run: func(ctx context.Context) error {
				_, err := rssGrabber.RunOnce(ctx)
				return err
			},
		},
		{
			ID:          workerActivityCleanup,
			Name:        "Activity cleanup",
			Description: "prunes the RSS dedup cache and stale activity log entries",
			Interval:    time.Duration(intervals.ActivityCleanupHours) * time.Hour,
			Run: func(ctx context.Context) error {
				cutoff := time.Now().Add(-activityRetention)
				if _, err := s.PruneActivityOlderThan(ctx, cutoff); err != nil {
					return err
				}
				_, err := s.PruneRSSCacheOlderThan(ctx, cutoff)
				return err
			},
		},
		{
			ID:          workerDatabaseBackup,
			Name:        "Database backup",
			Description: "snapshots the catalog and configuration tables to disk",
			Interval:    time.Duration(intervals.DatabaseBackupMinutes) * time.Minute,
			Run: func(ctx context.Context) error {
				return writeBackupSnapshot(ctx, s, backupDir)
			},
		},
	}

	for _, cfg := range registrations {
		if err := registry.Register(cfg); err != nil {
			log.Errorw("register worker", "worker_id", cfg.ID, "err", err)
		}
	}
}

// refreshMetadata re-fetches and overwrites the cached TMDB fields for
// every monitored movie and series, since a title can be re-rated,
// re-dated, or get a new poster long after it was first added.
func refreshMetadata(ctx context.Context, s store.Store, provider metadata.Provider) error {
	movies, err := s.ListMovies(ctx)
	if err != nil {
		return fmt.Errorf("list movies: %w", err)
	}
	for _, m := range movies {
		if !m.Monitored || m.TmdbID == nil {
			continue
		}
		fresh, err := provider.GetMovie(ctx, *m.TmdbID)
		if err != nil {
			logger.FromCtx(ctx).Warnw("metadata refresh: movie lookup failed", "movie_id", m.ID, "err", err)
			continue
		}
		m.Overview = fresh.Overview
		m.PosterPath = fresh.PosterPath
		m.BackdropPath = fresh.BackdropPath
		m.Status = fresh.Status
		if err := s.UpdateMovie(ctx, *m); err != nil {
			return fmt.Errorf("update movie %d: %w", m.ID, err)
		}
	}

	series, err := s.ListSeries(ctx)
	if err != nil {
		return fmt.Errorf("list series: %w", err)
	}
	for _, sr := range series {
		if !sr.Monitored || sr.TmdbID == nil {
			continue
		}
		fresh, err := provider.GetSeries(ctx, *sr.TmdbID)
		if err != nil {
			logger.FromCtx(ctx).Warnw("metadata refresh: series lookup failed", "series_id", sr.ID, "err", err)
			continue
		}
		sr.Status = fresh.Status
		sr.Network = fresh.Network
		if err := s.UpdateSeries(ctx, *sr); err != nil {
			return fmt.Errorf("update series %d: %w", sr.ID, err)
		}
	}
	return nil
}

// writeBackupSnapshot exports the current catalog/config state and writes
// it to a timestamped file under dir, matching the document /system/backup
// returns over HTTP.
func writeBackupSnapshot(ctx context.Context, s store.Store, dir string) error {
	snap, err := backup.Export(ctx, s)
	if err != nil {
		return fmt.Errorf("export snapshot: %w", err)
	}
	b, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create backup directory: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("backup-%d.json", time.Now().Unix()))
	return os.WriteFile(path, b, 0o644)
}
