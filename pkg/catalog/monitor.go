package catalog

import (
	"context"
	"fmt"
)

// CascadeMonitor sets a series' monitored flag and propagates it down to
// every season and episode. Used when a user toggles monitoring at the
// series level rather than per-season or per-episode.
func (c *Catalog) CascadeMonitor(ctx context.Context, seriesID int64, monitored bool) error {
	return c.store.WithTx(ctx, func(ctx context.Context) error {
		sr, err := c.store.GetSeries(ctx, seriesID)
		if err != nil {
			return fmt.Errorf("get series %d: %w", seriesID, err)
		}
		sr.Monitored = monitored
		if err := c.store.UpdateSeries(ctx, *sr); err != nil {
			return fmt.Errorf("update series %d: %w", seriesID, err)
		}

		seasons, err := c.store.ListSeasons(ctx, seriesID)
		if err != nil {
			return fmt.Errorf("list seasons for series %d: %w", seriesID, err)
		}
		for _, season := range seasons {
			if err := c.store.SetSeasonMonitored(ctx, seriesID, season.SeasonNumber, monitored); err != nil {
				return fmt.Errorf("set season %d monitored: %w", season.SeasonNumber, err)
			}
		}

		episodes, err := c.store.ListEpisodes(ctx, seriesID)
		if err != nil {
			return fmt.Errorf("list episodes for series %d: %w", seriesID, err)
		}
		for _, e := range episodes {
			if e.Monitored == monitored {
				continue
			}
			e.Monitored = monitored
			if err := c.store.UpdateEpisode(ctx, *e); err != nil {
				return fmt.Errorf("update episode %d monitored: %w", e.ID, err)
			}
		}

		event := "unmonitored"
		if monitored {
			event = "monitored"
		}
		return c.logActivity(ctx, "series", seriesID, event, "monitoring cascaded to all seasons and episodes", nil)
	})
}

// SetSeasonMonitor toggles one season's monitored flag and, when that
// leaves every season of the series unmonitored, auto-unmonitors the
// series itself so it stops showing up as an active pickup.
func (c *Catalog) SetSeasonMonitor(ctx context.Context, seriesID int64, seasonNumber int32, monitored bool) error {
	return c.store.WithTx(ctx, func(ctx context.Context) error {
		if err := c.store.SetSeasonMonitored(ctx, seriesID, seasonNumber, monitored); err != nil {
			return fmt.Errorf("set season %d monitored: %w", seasonNumber, err)
		}

		if monitored {
			return c.logActivity(ctx, "series", seriesID, "season_monitored", fmt.Sprintf("season %d monitored", seasonNumber), nil)
		}

		seasons, err := c.store.ListSeasons(ctx, seriesID)
		if err != nil {
			return fmt.Errorf("list seasons for series %d: %w", seriesID, err)
		}

		allUnmonitored := true
		for _, season := range seasons {
			if season.Monitored {
				allUnmonitored = false
				break
			}
		}

		if err := c.logActivity(ctx, "series", seriesID, "season_unmonitored", fmt.Sprintf("season %d unmonitored", seasonNumber), nil); err != nil {
			return err
		}

		if !allUnmonitored {
			return nil
		}

		sr, err := c.store.GetSeries(ctx, seriesID)
		if err != nil {
			return fmt.Errorf("get series %d: %w", seriesID, err)
		}
		if !sr.Monitored {
			return nil
		}
		sr.Monitored = false
		if err := c.store.UpdateSeries(ctx, *sr); err != nil {
			return fmt.Errorf("auto-unmonitor series %d: %w", seriesID, err)
		}
		return c.logActivity(ctx, "series", seriesID, "unmonitored", "all seasons unmonitored", nil)
	})
}
