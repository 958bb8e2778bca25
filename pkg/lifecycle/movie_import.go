package lifecycle

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/reelforge/reelforge/pkg/mediainfo"
	"github.com/reelforge/reelforge/pkg/naming"
	"github.com/reelforge/reelforge/pkg/notify"
	"github.com/reelforge/reelforge/pkg/release"
	"github.com/reelforge/reelforge/pkg/sse"
	"github.com/reelforge/reelforge/pkg/store/sqlite/schema/gen/model"
)

// importMovie places a completed movie job's file into the library.
func (l *DownloadLifecycle) importMovie(ctx context.Context, d *model.Download, resolved resolvedJob) error {
	if d.MovieID == nil {
		return fmt.Errorf("download %d has no movie id", d.ID)
	}

	sourcePath, _, err := largestVideoFile(l.fileio, resolved.job.FilePaths)
	if err != nil {
		return err
	}

	m, err := l.store.GetMovie(ctx, int64(*d.MovieID))
	if err != nil {
		return fmt.Errorf("get movie %d: %w", *d.MovieID, err)
	}
	if m.FolderPath == nil || *m.FolderPath == "" {
		return fmt.Errorf("%s: movie %d has no folder path", ErrCodeFS, m.ID)
	}

	engine, err := l.namingEngine(ctx)
	if err != nil {
		return err
	}

	info := l.probeFile(ctx, sourcePath)

	filename := engine.MovieFilename(naming.MovieInfo{
		Title:  m.Title,
		Year:   m.Year,
		TmdbID: derefInt32(m.TmdbID),
		ImdbID: derefString(m.ImdbID),
	}, info, filepath.Ext(sourcePath))
	destPath := filepath.Join(*m.FolderPath, filename)

	placed, err := placeFile(l.fileio, sourcePath, destPath)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrCodeFS, err)
	}

	l.finishImport(ctx, sourcePath, placed, *m.FolderPath, resolved.protocol)

	isProper := release.IsProperOrRepack(d.Title) || release.IsProperOrRepack(filepath.Base(sourcePath))
	finalInfo, err := l.fileio.Stat(placed.FinalPath)
	if err != nil {
		return fmt.Errorf("%s: stat final path: %w", ErrCodeFS, err)
	}
	if err := l.catalog.UpdateMovieFile(ctx, int64(m.ID), placed.FinalPath, info.Quality, finalInfo.Size(), isProper, isProper); err != nil {
		return fmt.Errorf("update movie file: %w", err)
	}

	if err := l.transition(ctx, d, statusCompleted, 100, ""); err != nil {
		return fmt.Errorf("mark completed: %w", err)
	}

	l.announceImport(ctx, "movie", int64(m.ID), m.Title, placed.Idempotent)
	return nil
}

// probeFile builds an Info for path, probing the real file when a Probe is
// configured and falling back to filename-derived fields otherwise —
// mirroring pkg/mediainfo's own ffprobe-with-fallback shape.
func (l *DownloadLifecycle) probeFile(ctx context.Context, path string) mediainfo.Info {
	base := mediainfo.FilenameOnly(path)
	if l.probe == nil {
		return base
	}
	probed, err := l.probe.Probe(ctx, path)
	if err != nil {
		return base
	}
	return mediainfo.Merge(base, probed)
}

// finishImport deletes the source file (unless the client's protocol keeps
// it) and removes the job's own source folder if that leaves it empty.
// Cleanup stops at the folder that holds the job's folder and never
// removes libraryRoot.
func (l *DownloadLifecycle) finishImport(ctx context.Context, sourcePath string, placed importResult, libraryRoot, protocol string) {
	if placed.Idempotent || placed.FinalPath == sourcePath {
		return
	}
	if l.keepSourceFiles(ctx, protocol) {
		return
	}
	if err := l.fileio.Remove(sourcePath); err != nil {
		return
	}
	sourceDir := filepath.Dir(sourcePath)
	if sourceDir == filepath.Clean(libraryRoot) {
		return
	}
	cleanupEmptySourceDirs(l.fileio, sourceDir, filepath.Dir(sourceDir))
}

func (l *DownloadLifecycle) announceImport(ctx context.Context, entityType string, entityID int64, title string, idempotent bool) {
	message := fmt.Sprintf("imported %q", title)
	if idempotent {
		message = fmt.Sprintf("%q already imported", title)
	}

	l.notifier.Notify(ctx, notify.Event{
		Type:     notify.EventImported,
		Message:  message,
		MediaRef: notify.MediaRef{EntityType: entityType, EntityID: entityID, Title: title},
	})

	if l.broadcaster != nil {
		l.broadcaster.Broadcast(sse.Event{
			Type: "activity",
			Data: map[string]any{
				"eventType": "IMPORTED",
				"entity":    entityType,
				"entityId":  entityID,
				"title":     title,
			},
		})
	}
}

func derefInt32(v *int32) int32 {
	if v == nil {
		return 0
	}
	return *v
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

