package autosearch

import (
	"context"
	"fmt"
	"sort"

	"github.com/reelforge/reelforge/pkg/quality"
	"github.com/reelforge/reelforge/pkg/store"
)

// LoadWeightTable builds a quality.Table from every persisted quality
// definition. Definitions are few and change rarely, so this is rebuilt on
// every search rather than cached — the cost is negligible next to the
// network calls a search makes.
func (a *AutoSearch) LoadWeightTable(ctx context.Context) (*quality.Table, error) {
	defs, err := a.store.ListQualityDefinitions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list quality definitions: %w", err)
	}

	converted := make([]quality.Definition, 0, len(defs))
	for _, d := range defs {
		converted = append(converted, quality.Definition{
			ID:         int64(d.ID),
			Name:       d.Name,
			Weight:     int(d.Weight),
			MinSize:    d.MinSize,
			MaxSize:    d.MaxSize,
			Preferred:  d.PreferredSize,
			Resolution: d.Resolution,
			Source:     d.Source,
		})
	}
	return quality.NewTable(converted), nil
}

// LoadProfile assembles a quality.Profile for profileID, pulling its
// ordered items and per-profile custom format score overrides out of the
// store's go-jet/raw-SQL models into the pure types pkg/selector expects.
func (a *AutoSearch) LoadProfile(ctx context.Context, profileID int64) (quality.Profile, error) {
	p, err := a.store.GetQualityProfile(ctx, profileID)
	if err != nil {
		return quality.Profile{}, fmt.Errorf("get quality profile %d: %w", profileID, err)
	}

	items, err := a.store.ListQualityProfileItems(ctx, profileID)
	if err != nil {
		return quality.Profile{}, fmt.Errorf("list quality profile items for %d: %w", profileID, err)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].SortOrder < items[j].SortOrder })

	profileItems := make([]quality.ProfileItem, 0, len(items))
	for _, item := range items {
		profileItems = append(profileItems, quality.ProfileItem{
			Quality: item.Quality,
			Allowed: item.Allowed,
		})
	}

	return quality.Profile{
		ID:                   int64(p.ID),
		Name:                 p.Name,
		MediaType:            quality.MediaType(p.MediaType),
		Items:                profileItems,
		Cutoff:               p.CutoffQuality,
		UpgradeAllowed:       p.UpgradeAllowed,
		MinCustomFormatScore: int(p.MinCustomFormatScore),
		PropersPreference:    quality.PreferencePolicy(p.PropersPreference),
	}, nil
}

// LoadCustomFormats loads every custom format with its score resolved for
// profileID, ready for quality.FormatScorer.Score.
func (a *AutoSearch) LoadCustomFormats(ctx context.Context, profileID int64) ([]quality.CustomFormat, error) {
	formats, err := a.store.ListCustomFormats(ctx)
	if err != nil {
		return nil, fmt.Errorf("list custom formats: %w", err)
	}

	scores, err := a.store.ListCustomFormatProfileScores(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("list custom format scores for profile %d: %w", profileID, err)
	}

	out := make([]quality.CustomFormat, 0, len(formats))
	for _, f := range formats {
		cf := quality.CustomFormat{
			ID:         f.ID,
			Name:       f.Name,
			Expression: f.Expression,
			Score:      int(f.Score),
		}
		if s, ok := scores[f.ID]; ok {
			cf.ProfileScores = map[int64]int{profileID: int(s)}
		}
		out = append(out, cf)
	}
	return out, nil
}

// IsBlacklisted reports whether the store already blacklisted releaseTitle
// for the given media reference.
func (a *AutoSearch) IsBlacklisted(ctx context.Context, releaseTitle string, movieID, episodeID *int64) (bool, error) {
	ok, err := a.store.IsBlacklisted(ctx, releaseTitle, movieID, episodeID)
	if err != nil {
		return false, fmt.Errorf("check blacklist: %w", err)
	}
	return ok, nil
}

// HasActiveDownload reports whether movieID or episodeID already has a
// download row in a non-terminal status. store.Store has no bulk query for
// this, so every in-flight status is scanned the way pkg/catalog's private
// hasActiveDownload does internally — that helper is unexported, so
// AutoSearch keeps its own copy (and exports it, since pkg/rss needs the
// same guard) rather than depending on catalog's implementation detail.
func (a *AutoSearch) HasActiveDownload(ctx context.Context, movieID, episodeID *int64) (bool, error) {
	for _, status := range []string{"queued", "downloading", "importing"} {
		downloads, err := a.store.ListDownloadsByStatus(ctx, status)
		if err != nil {
			return false, fmt.Errorf("list downloads by status %q: %w", status, err)
		}
		for _, d := range downloads {
			if movieID != nil && d.MovieID != nil && int64(*d.MovieID) == *movieID {
				return true, nil
			}
			if episodeID != nil && d.EpisodeID != nil && int64(*d.EpisodeID) == *episodeID {
				return true, nil
			}
		}
	}
	return false, nil
}

// HasActiveDownloadForURL reports whether downloadURL is already tracked by
// an active (non-terminal) download row, the second half of the
// active-download guard RSSGrabber and AutoSearch both need.
func (a *AutoSearch) HasActiveDownloadForURL(ctx context.Context, downloadURL string) (bool, error) {
	d, err := a.store.GetActiveDownloadByURL(ctx, downloadURL)
	if err != nil {
		if err == store.ErrNotFound {
			return false, nil
		}
		return false, fmt.Errorf("get active download by url: %w", err)
	}
	return d != nil, nil
}
