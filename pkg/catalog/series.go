package catalog

import (
	"context"
	"fmt"

	"github.com/reelforge/reelforge/pkg/store/sqlite/schema/gen/model"
)

// CreateSeries inserts a series and logs its addition in the same
// transaction, mirroring CreateMovie.
func (c *Catalog) CreateSeries(ctx context.Context, s model.Series) (int64, error) {
	var id int64
	err := c.store.WithTx(ctx, func(ctx context.Context) error {
		created, err := c.store.CreateSeries(ctx, s)
		if err != nil {
			return fmt.Errorf("create series: %w", err)
		}
		id = created

		return c.logActivity(ctx, "series", id, "added", fmt.Sprintf("added %q", s.Title), map[string]any{
			"title": s.Title,
			"year":  s.Year,
		})
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// CreateEpisode inserts one episode under an already-created series. Unlike
// CreateMovie/CreateSeries this does not log its own activity row — a
// series import creates dozens of episodes in one pass, and one "added"
// entry for the series is enough signal; per-episode noise would drown it.
func (c *Catalog) CreateEpisode(ctx context.Context, e model.Episode) (int64, error) {
	id, err := c.store.CreateEpisode(ctx, e)
	if err != nil {
		return 0, fmt.Errorf("create episode: %w", err)
	}
	return id, nil
}
