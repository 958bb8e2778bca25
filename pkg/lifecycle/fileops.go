package lifecycle

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	libio "github.com/reelforge/reelforge/pkg/io"
)

// newFSBackoff builds the retry policy for transient filesystem failures
// encountered while placing an imported file (e.g. a network share briefly
// dropping, or an antivirus scanner holding a lock on a freshly-copied
// file). A handful of short retries is enough to ride out that class of
// blip without masking a genuine, permanent filesystem error.
func newFSBackoff() backoff.BackOff {
	return backoff.WithMaxRetries(backoff.NewConstantBackOff(250*time.Millisecond), 3)
}

// videoExtensions mirrors pkg/library's own list; kept as a separate literal
// since that one is unexported and this package has no reason to depend on
// pkg/library.
var videoExtensions = []string{".mp4", ".mkv", ".avi", ".m4v", ".ts", ".m2ts", ".iso"}

func isVideoFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, v := range videoExtensions {
		if ext == v {
			return true
		}
	}
	return false
}

// largestVideoFile returns the biggest video file among paths, using each
// file's on-disk size. A completed job can contain sample files, .nfo/.txt
// extras, or a multi-file season pack; the largest video stream is always
// the one worth importing.
func largestVideoFile(fileio libio.FileIO, paths []string) (string, int64, error) {
	var (
		best     string
		bestSize int64
	)
	for _, p := range paths {
		if !isVideoFile(p) {
			continue
		}
		info, err := fileio.Stat(p)
		if err != nil {
			continue
		}
		if info.Size() > bestSize {
			best = p
			bestSize = info.Size()
		}
	}
	if best == "" {
		return "", 0, errNoVideoFile
	}
	return best, bestSize, nil
}

// importResult is what placeFile reports back about where (and whether) a
// file actually landed.
type importResult struct {
	FinalPath  string
	Idempotent bool
}

// placeFile moves sourcePath to destPath: hardlink-first, copy-fallback,
// writing to a sibling temp name and renaming into place so a reader never
// observes a partially-written destination. A destination that already
// exists is compared by size: equal size is treated as an already-completed
// import (idempotent no-op); otherwise the existing file is replaced.
func placeFile(fileio libio.FileIO, sourcePath, destPath string) (importResult, error) {
	if sourcePath == destPath {
		return importResult{FinalPath: destPath, Idempotent: true}, nil
	}

	if existing, err := fileio.Stat(destPath); err == nil {
		srcInfo, srcErr := fileio.Stat(sourcePath)
		if srcErr == nil && srcInfo.Size() == existing.Size() {
			return importResult{FinalPath: destPath, Idempotent: true}, nil
		}
	}

	if err := fileio.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return importResult{}, fmt.Errorf("create destination directory: %w", err)
	}

	tempPath := destPath + ".importing"
	_ = fileio.Remove(tempPath) // clear a stale temp file left by a prior failed import

	sameFS, err := fileio.IsSameFileSystem(filepath.Dir(sourcePath), filepath.Dir(destPath))
	if err != nil {
		sameFS = false
	}

	placeErr := backoff.Retry(func() error {
		if sameFS {
			if err := fileio.Link(sourcePath, tempPath); err != nil {
				if _, copyErr := fileio.Copy(sourcePath, tempPath); copyErr != nil {
					return fmt.Errorf("hardlink and copy both failed: %w", copyErr)
				}
			}
			return nil
		}
		_, err := fileio.Copy(sourcePath, tempPath)
		return err
	}, newFSBackoff())
	if placeErr != nil {
		return importResult{}, fmt.Errorf("place file in temp path: %w", placeErr)
	}

	if err := fileio.Remove(destPath); err != nil {
		// destPath not existing is the common case; Remove erroring on a
		// genuinely missing file is fine to ignore here since Rename below
		// is the operation whose error actually matters.
		_ = err
	}

	renameErr := backoff.Retry(func() error {
		return fileio.Rename(tempPath, destPath)
	}, newFSBackoff())
	if renameErr != nil {
		return importResult{}, fmt.Errorf("rename into place: %w", renameErr)
	}

	return importResult{FinalPath: destPath}, nil
}

// cleanupEmptySourceDirs removes dir and walks upward removing now-empty
// parents, stopping at (and never removing) boundary — the caller-chosen
// folder that holds the job's own folder. Nothing outside boundary is removed.
func cleanupEmptySourceDirs(fileio libio.FileIO, dir, boundary string) {
	if boundary == "" {
		return
	}
	dir = filepath.Clean(dir)
	boundary = filepath.Clean(boundary)

	for dir != boundary && strings.HasPrefix(dir, boundary+string(filepath.Separator)) {
		entries, err := fileio.Stat(dir)
		if err != nil || !entries.IsDir() {
			return
		}
		if err := fileio.Remove(dir); err != nil {
			return
		}
		dir = filepath.Dir(dir)
	}
}
