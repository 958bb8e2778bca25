package lifecycle

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/reelforge/reelforge/pkg/naming"
	"github.com/reelforge/reelforge/pkg/release"
	"github.com/reelforge/reelforge/pkg/store/sqlite/schema/gen/model"
)

// importEpisode is FileImporter's episode variant: mirrors importMovie but
// resolves a season folder (respecting use_season_folder) and, when the
// grab's target episode is ambiguous (an RSS season-pack grab records only
// one representative episode), recovers season/episode from the release
// title rather than trusting the stored EpisodeID blindly.
func (l *DownloadLifecycle) importEpisode(ctx context.Context, d *model.Download, resolved resolvedJob) error {
	if d.EpisodeID == nil {
		return fmt.Errorf("download %d has no episode id", d.ID)
	}

	sourcePath, _, err := largestVideoFile(l.fileio, resolved.job.FilePaths)
	if err != nil {
		return err
	}

	e, err := l.store.GetEpisode(ctx, int64(*d.EpisodeID))
	if err != nil {
		return fmt.Errorf("get episode %d: %w", *d.EpisodeID, err)
	}

	s, err := l.store.GetSeries(ctx, int64(e.SeriesID))
	if err != nil {
		return fmt.Errorf("get series %d: %w", e.SeriesID, err)
	}
	if s.FolderPath == nil || *s.FolderPath == "" {
		return fmt.Errorf("%s: series %d has no folder path", ErrCodeFS, s.ID)
	}

	engine, err := l.namingEngine(ctx)
	if err != nil {
		return err
	}

	seasonNumber := e.SeasonNumber
	episodeNumber := e.EpisodeNumber
	if parsed := release.Parse(d.Title); parsed.Season > 0 && parsed.Episode > 0 {
		seasonNumber = int32(parsed.Season)
		episodeNumber = int32(parsed.Episode)
	}

	info := l.probeFile(ctx, sourcePath)

	seriesInfo := naming.SeriesInfo{
		Title:  s.Title,
		Year:   s.Year,
		TvdbID: derefInt32(s.TvdbID),
	}
	filename := engine.EpisodeFilename(naming.EpisodeInfo{
		Series:         seriesInfo,
		SeasonNumber:   seasonNumber,
		EpisodeNumber:  episodeNumber,
		AbsoluteNumber: derefInt32(e.AbsoluteNumber),
		Title:          e.Title,
		AirDate:        derefString(e.AirDate),
	}, info, s.SeriesType, filepath.Ext(sourcePath))

	destDir := *s.FolderPath
	if s.UseSeasonFolder {
		destDir = filepath.Join(destDir, engine.SeasonFolderName(seasonNumber))
	}
	destPath := filepath.Join(destDir, filename)

	placed, err := placeFile(l.fileio, sourcePath, destPath)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrCodeFS, err)
	}

	l.finishImport(ctx, sourcePath, placed, *s.FolderPath, resolved.protocol)

	isProper := release.IsProperOrRepack(d.Title) || release.IsProperOrRepack(filepath.Base(sourcePath))
	finalInfo, err := l.fileio.Stat(placed.FinalPath)
	if err != nil {
		return fmt.Errorf("%s: stat final path: %w", ErrCodeFS, err)
	}

	// A successful upgrade replaces the episode's previous file wholesale;
	// clearing first keeps ClearEpisodeFile's own activity-logging shape
	// intact rather than overwriting a prior file_path silently.
	if e.HasFile && e.FilePath != nil && *e.FilePath != placed.FinalPath {
		if err := l.catalog.ClearEpisodeFile(ctx, int64(e.ID)); err != nil {
			return fmt.Errorf("clear previous episode file: %w", err)
		}
	}

	if err := l.catalog.UpdateEpisodeFile(ctx, int64(e.ID), placed.FinalPath, info.Quality, info.VideoCodec, info.AudioCodec, info.ReleaseGroup, finalInfo.Size(), isProper, isProper); err != nil {
		return fmt.Errorf("update episode file: %w", err)
	}

	if err := l.transition(ctx, d, statusCompleted, 100, ""); err != nil {
		return fmt.Errorf("mark completed: %w", err)
	}

	l.announceImport(ctx, "episode", int64(e.ID), fmt.Sprintf("%s - S%02dE%02d", s.Title, seasonNumber, episodeNumber), placed.Idempotent)
	return nil
}
