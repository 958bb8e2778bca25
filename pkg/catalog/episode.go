package catalog

import (
	"context"
	"fmt"

	"github.com/reelforge/reelforge/pkg/store/sqlite/schema/gen/model"
)

// ClearEpisodeFile resets an episode's file bookkeeping, used when a file is
// removed from disk (manual deletion, a failed verify, or an upgrade that
// replaces the episode's file with a new one under a different path).
func (c *Catalog) ClearEpisodeFile(ctx context.Context, episodeID int64) error {
	return c.store.WithTx(ctx, func(ctx context.Context) error {
		e, err := c.store.GetEpisode(ctx, episodeID)
		if err != nil {
			return fmt.Errorf("get episode %d: %w", episodeID, err)
		}

		e.HasFile = false
		e.FilePath = nil
		e.Quality = nil
		e.FileSize = 0
		e.VideoCodec = ""
		e.AudioCodec = ""
		e.ReleaseGroup = ""
		e.IsProper = false
		e.IsRepack = false

		if err := c.store.UpdateEpisode(ctx, *e); err != nil {
			return fmt.Errorf("update episode %d: %w", episodeID, err)
		}

		return c.logActivity(ctx, "episode", episodeID, "file_cleared", "file removed", nil)
	})
}

// UpdateEpisodeFile records that a file has landed for an episode.
func (c *Catalog) UpdateEpisodeFile(ctx context.Context, episodeID int64, filePath, quality, videoCodec, audioCodec, releaseGroup string, fileSize int64, isProper, isRepack bool) error {
	return c.store.WithTx(ctx, func(ctx context.Context) error {
		e, err := c.store.GetEpisode(ctx, episodeID)
		if err != nil {
			return fmt.Errorf("get episode %d: %w", episodeID, err)
		}

		e.HasFile = true
		e.FilePath = &filePath
		e.Quality = &quality
		e.FileSize = fileSize
		e.VideoCodec = videoCodec
		e.AudioCodec = audioCodec
		e.ReleaseGroup = releaseGroup
		e.IsProper = isProper
		e.IsRepack = isRepack

		if err := c.store.UpdateEpisode(ctx, *e); err != nil {
			return fmt.Errorf("update episode %d: %w", episodeID, err)
		}

		return c.logActivity(ctx, "episode", episodeID, "imported", fmt.Sprintf("imported %q", quality), map[string]any{
			"file_path": filePath,
			"quality":   quality,
		})
	})
}

// FindMissingEpisodes lists monitored episodes with no file yet, across
// every series.
func (c *Catalog) FindMissingEpisodes(ctx context.Context) ([]*model.Episode, error) {
	return c.store.ListEpisodesMissing(ctx)
}

// FindEpisodesWithFiles lists every episode of seriesID that already has a
// file.
func (c *Catalog) FindEpisodesWithFiles(ctx context.Context, seriesID int64) ([]*model.Episode, error) {
	all, err := c.store.ListEpisodes(ctx, seriesID)
	if err != nil {
		return nil, fmt.Errorf("list episodes for series %d: %w", seriesID, err)
	}

	withFiles := make([]*model.Episode, 0, len(all))
	for _, e := range all {
		if e.HasFile {
			withFiles = append(withFiles, e)
		}
	}
	return withFiles, nil
}
