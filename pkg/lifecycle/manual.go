package lifecycle

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	libio "github.com/reelforge/reelforge/pkg/io"
	"github.com/reelforge/reelforge/pkg/naming"
	"github.com/reelforge/reelforge/pkg/release"
	"github.com/reelforge/reelforge/pkg/store"
)

// ManualImportMovie imports a file the operator points at directly, outside
// the download-client flow: sourcePath may be a video file or a directory
// holding one (the largest video file wins, as with a completed job). The
// destination is computed the same way importMovie computes it, so a manual
// import and an automatic one land in identical places.
func (l *DownloadLifecycle) ManualImportMovie(ctx context.Context, movieID int64, sourcePath string, deleteSource bool) (string, error) {
	srcInfo, err := l.fileio.Stat(sourcePath)
	if err != nil {
		return "", fmt.Errorf("%s: stat source: %w", ErrCodeFS, err)
	}

	// Cleanup may remove a named job directory once emptied, but never
	// walks above its parent.
	sourceFile := sourcePath
	boundary := filepath.Dir(sourcePath)
	if srcInfo.IsDir() {
		candidates := collectVideoFiles(l.fileio, sourcePath)
		sourceFile, _, err = largestVideoFile(l.fileio, candidates)
		if err != nil {
			return "", err
		}
	} else if !isVideoFile(sourceFile) {
		return "", errNoVideoFile
	}

	m, err := l.store.GetMovie(ctx, movieID)
	if err != nil {
		return "", fmt.Errorf("get movie %d: %w", movieID, err)
	}
	if m.FolderPath == nil || *m.FolderPath == "" {
		return "", fmt.Errorf("%s: movie %d has no folder path", ErrCodeFS, m.ID)
	}

	engine, err := l.namingEngine(ctx)
	if err != nil {
		return "", err
	}

	info := l.probeFile(ctx, sourceFile)
	filename := engine.MovieFilename(naming.MovieInfo{
		Title:  m.Title,
		Year:   m.Year,
		TmdbID: derefInt32(m.TmdbID),
		ImdbID: derefString(m.ImdbID),
	}, info, filepath.Ext(sourceFile))
	destPath := filepath.Join(*m.FolderPath, filename)

	placed, err := placeFile(l.fileio, sourceFile, destPath)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrCodeFS, err)
	}

	if deleteSource && !placed.Idempotent && placed.FinalPath != sourceFile {
		if err := l.fileio.Remove(sourceFile); err == nil {
			// cleanup is bounded to the staging directory the operator named;
			// it never walks into the library folder the file just landed in.
			cleanupEmptySourceDirs(l.fileio, filepath.Dir(sourceFile), boundary)
		}
	}

	isProper := release.IsProperOrRepack(filepath.Base(sourceFile))
	finalInfo, err := l.fileio.Stat(placed.FinalPath)
	if err != nil {
		return "", fmt.Errorf("%s: stat final path: %w", ErrCodeFS, err)
	}
	if err := l.catalog.UpdateMovieFile(ctx, movieID, placed.FinalPath, info.Quality, finalInfo.Size(), isProper, isProper); err != nil {
		return "", fmt.Errorf("update movie file: %w", err)
	}

	l.announceImport(ctx, "movie", movieID, m.Title, placed.Idempotent)
	return placed.FinalPath, nil
}

// collectVideoFiles walks dir and returns the absolute path of every video
// file beneath it, skipping hidden entries the way the library scanner does.
func collectVideoFiles(fileio libio.FileIO, dir string) []string {
	var paths []string
	_ = fileio.WalkDir(os.DirFS(dir), ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fs.SkipDir
		}
		if d.Name() != "." && d.Name()[0] == '.' {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.IsDir() && isVideoFile(path) {
			paths = append(paths, filepath.Join(dir, path))
		}
		return nil
	})
	return paths
}

// RenamePlan is what a rename preview (or an applied rename) reports for
// one file.
type RenamePlan struct {
	EntityType  string `json:"entityType"`
	EntityID    int64  `json:"entityId"`
	CurrentPath string `json:"currentPath"`
	NewPath     string `json:"newPath"`
	Changed     bool   `json:"changed"`
}

// RenameMoviePreview computes where the movie's current file would land
// under the current NamingConfig, without touching the filesystem.
func (l *DownloadLifecycle) RenameMoviePreview(ctx context.Context, movieID int64) (RenamePlan, error) {
	m, err := l.store.GetMovie(ctx, movieID)
	if err != nil {
		return RenamePlan{}, fmt.Errorf("get movie %d: %w", movieID, err)
	}
	if !m.HasFile || m.FilePath == nil || *m.FilePath == "" {
		return RenamePlan{}, fmt.Errorf("movie %d has no file to rename: %w", movieID, store.ErrNotFound)
	}
	if m.FolderPath == nil || *m.FolderPath == "" {
		return RenamePlan{}, fmt.Errorf("%s: movie %d has no folder path", ErrCodeFS, m.ID)
	}

	engine, err := l.namingEngine(ctx)
	if err != nil {
		return RenamePlan{}, err
	}

	info := l.probeFile(ctx, *m.FilePath)
	filename := engine.MovieFilename(naming.MovieInfo{
		Title:  m.Title,
		Year:   m.Year,
		TmdbID: derefInt32(m.TmdbID),
		ImdbID: derefString(m.ImdbID),
	}, info, filepath.Ext(*m.FilePath))
	newPath := filepath.Join(*m.FolderPath, filename)

	return RenamePlan{
		EntityType:  "movie",
		EntityID:    movieID,
		CurrentPath: *m.FilePath,
		NewPath:     newPath,
		Changed:     newPath != *m.FilePath,
	}, nil
}

// RenameMovie applies RenameMoviePreview's plan: the file is renamed on disk
// and the movie row's file_path follows it in the same pass.
func (l *DownloadLifecycle) RenameMovie(ctx context.Context, movieID int64) (RenamePlan, error) {
	plan, err := l.RenameMoviePreview(ctx, movieID)
	if err != nil {
		return RenamePlan{}, err
	}
	if !plan.Changed {
		return plan, nil
	}

	if err := l.fileio.MkdirAll(filepath.Dir(plan.NewPath), 0o755); err != nil {
		return RenamePlan{}, fmt.Errorf("%s: %w", ErrCodeFS, err)
	}
	if err := l.fileio.Rename(plan.CurrentPath, plan.NewPath); err != nil {
		return RenamePlan{}, fmt.Errorf("%s: rename: %w", ErrCodeFS, err)
	}

	err = l.store.WithTx(ctx, func(ctx context.Context) error {
		m, err := l.store.GetMovie(ctx, movieID)
		if err != nil {
			return err
		}
		m.FilePath = &plan.NewPath
		if err := l.store.UpdateMovie(ctx, *m); err != nil {
			return err
		}
		return l.store.LogActivity(ctx, store.ActivityEntry{
			EntityType: "movie",
			EntityID:   movieID,
			EventType:  "renamed",
			Message:    fmt.Sprintf("renamed to %q", filepath.Base(plan.NewPath)),
		})
	})
	if err != nil {
		return RenamePlan{}, fmt.Errorf("persist rename: %w", err)
	}
	return plan, nil
}

// DeleteEpisodeFile clears an episode's file bookkeeping and optionally
// removes the file from disk.
func (l *DownloadLifecycle) DeleteEpisodeFile(ctx context.Context, episodeID int64, deleteFromDisk bool) error {
	e, err := l.store.GetEpisode(ctx, episodeID)
	if err != nil {
		return fmt.Errorf("get episode %d: %w", episodeID, err)
	}
	if !e.HasFile || e.FilePath == nil || *e.FilePath == "" {
		return fmt.Errorf("episode %d has no file: %w", episodeID, store.ErrNotFound)
	}

	if deleteFromDisk {
		if err := l.fileio.Remove(*e.FilePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("%s: remove file: %w", ErrCodeFS, err)
		}
	}

	return l.catalog.ClearEpisodeFile(ctx, episodeID)
}
