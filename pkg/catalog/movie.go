package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/reelforge/reelforge/pkg/store"
	"github.com/reelforge/reelforge/pkg/store/sqlite/schema/gen/model"
)

// MinimumAvailability thresholds, ordered loosest to strictest. Values
// mirror model.Movie.MinimumAvailability.
const (
	AvailabilityAnnounced = "announced"
	AvailabilityInCinemas = "inCinemas"
	AvailabilityReleased  = "released"
	AvailabilityPreDB     = "preDB"
)

// CreateMovie inserts a movie and logs its addition in the same transaction.
func (c *Catalog) CreateMovie(ctx context.Context, m model.Movie) (int64, error) {
	var id int64
	err := c.store.WithTx(ctx, func(ctx context.Context) error {
		created, err := c.store.CreateMovie(ctx, m)
		if err != nil {
			return fmt.Errorf("create movie: %w", err)
		}
		id = created

		return c.logActivity(ctx, "movie", id, "added", fmt.Sprintf("added %q", m.Title), map[string]any{
			"title": m.Title,
			"year":  m.Year,
		})
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// UpdateMovieFile records that a file has landed for a movie, setting its
// file metadata and quality and logging the import.
func (c *Catalog) UpdateMovieFile(ctx context.Context, movieID int64, filePath, quality string, fileSize int64, isProper, isRepack bool) error {
	return c.store.WithTx(ctx, func(ctx context.Context) error {
		m, err := c.store.GetMovie(ctx, movieID)
		if err != nil {
			return fmt.Errorf("get movie %d: %w", movieID, err)
		}

		m.HasFile = true
		m.FilePath = &filePath
		m.Quality = &quality
		m.FileSize = fileSize
		m.IsProper = isProper
		m.IsRepack = isRepack

		if err := c.store.UpdateMovie(ctx, *m); err != nil {
			return fmt.Errorf("update movie %d: %w", movieID, err)
		}

		return c.logActivity(ctx, "movie", movieID, "imported", fmt.Sprintf("imported %q", quality), map[string]any{
			"file_path": filePath,
			"quality":   quality,
		})
	})
}

// FindMissingMovies lists monitored movies that have no file yet.
func (c *Catalog) FindMissingMovies(ctx context.Context) ([]*model.Movie, error) {
	return c.store.ListMoviesMissing(ctx)
}

// FindMoviesWithFiles lists every movie that already has a file.
func (c *Catalog) FindMoviesWithFiles(ctx context.Context) ([]*model.Movie, error) {
	all, err := c.store.ListMovies(ctx)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}

	withFiles := make([]*model.Movie, 0, len(all))
	for _, m := range all {
		if m.HasFile {
			withFiles = append(withFiles, m)
		}
	}
	return withFiles, nil
}

// FindMissingAndAvailable lists missing movies whose minimum-availability
// gate has been met as of now, i.e. the ones AutoSearch should actually try.
func (c *Catalog) FindMissingAndAvailable(ctx context.Context) ([]*model.Movie, error) {
	missing, err := c.store.ListMoviesMissing(ctx)
	if err != nil {
		return nil, fmt.Errorf("list missing movies: %w", err)
	}

	now := time.Now().UTC()
	available := make([]*model.Movie, 0, len(missing))
	for _, m := range missing {
		if MeetsAvailability(m, now) {
			available = append(available, m)
		}
	}
	return available, nil
}

// MeetsAvailability reports whether m's chosen minimum-availability
// threshold has been satisfied by now. Evaluated at search time, never at
// add time, so a movie can sit monitored-but-not-yet-searchable for months.
func MeetsAvailability(m *model.Movie, now time.Time) bool {
	switch m.MinimumAvailability {
	case AvailabilityAnnounced:
		return true
	case AvailabilityInCinemas:
		return dateReached(m.TheatricalReleaseDate, now)
	case AvailabilityReleased:
		return dateReached(m.TheatricalReleaseDate, now) || dateReached(m.PhysicalReleaseDate, now)
	case AvailabilityPreDB:
		return dateReached(m.DigitalReleaseDate, now) || dateReached(m.PhysicalReleaseDate, now)
	default:
		// Unknown threshold: conservative, same as an unresolvable quality
		// weight in QualityPolicy — never treat it as searchable.
		return false
	}
}

func dateReached(date *string, now time.Time) bool {
	if date == nil || *date == "" {
		return false
	}
	parsed, err := time.Parse("2006-01-02", (*date)[:min(10, len(*date))])
	if err != nil {
		return false
	}
	return !parsed.After(now)
}

// CountMoviesByState groups every movie into coarse buckets an AutoSearch
// dashboard cares about: missing, downloading, available, unmonitored.
func (c *Catalog) CountMoviesByState(ctx context.Context) (map[string]int, error) {
	all, err := c.store.ListMovies(ctx)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}

	counts := map[string]int{
		"missing":     0,
		"downloading": 0,
		"available":   0,
		"unmonitored": 0,
	}

	for _, m := range all {
		switch {
		case !m.Monitored:
			counts["unmonitored"]++
		case m.HasFile:
			counts["available"]++
		default:
			active, err := c.hasActiveDownload(ctx, m.ID)
			if err != nil {
				return nil, err
			}
			if active {
				counts["downloading"]++
			} else {
				counts["missing"]++
			}
		}
	}
	return counts, nil
}

func (c *Catalog) hasActiveDownload(ctx context.Context, movieID int32) (bool, error) {
	for _, status := range []string{"queued", "downloading", "importing"} {
		downloads, err := c.store.ListDownloadsByStatus(ctx, status)
		if err != nil {
			return false, fmt.Errorf("list downloads by status %q: %w", status, err)
		}
		for _, d := range downloads {
			if d.MovieID != nil && *d.MovieID == movieID {
				return true, nil
			}
		}
	}
	return false, nil
}

// DeleteMovie removes a movie, optionally recording a permanent exclusion so
// ImportListSync never re-adds it.
func (c *Catalog) DeleteMovie(ctx context.Context, movieID int64, tmdbID int32, exclude bool) error {
	return c.store.WithTx(ctx, func(ctx context.Context) error {
		if err := c.store.DeleteMovie(ctx, movieID); err != nil {
			return fmt.Errorf("delete movie %d: %w", movieID, err)
		}

		if exclude {
			if err := c.store.AddExclusion(ctx, int64(tmdbID), store.MediaMovie); err != nil {
				return fmt.Errorf("exclude movie %d: %w", tmdbID, err)
			}
		}

		return c.logActivity(ctx, "movie", movieID, "deleted", "removed from library", map[string]any{
			"excluded": exclude,
		})
	})
}
