// Package rss implements RSSGrabber: one tick pulls every RSS-enabled
// indexer's feed, dedupes by (indexer_id, guid), and matches each new
// release against wanted movies and episodes using the same selection
// predicates pkg/autosearch applies to a direct search.
package rss

import (
	"context"
	"fmt"
	"time"

	"github.com/reelforge/reelforge/pkg/autosearch"
	"github.com/reelforge/reelforge/pkg/cache"
	"github.com/reelforge/reelforge/pkg/indexer"
	"github.com/reelforge/reelforge/pkg/logger"
	"github.com/reelforge/reelforge/pkg/quality"
	"github.com/reelforge/reelforge/pkg/release"
	"github.com/reelforge/reelforge/pkg/selector"
	"github.com/reelforge/reelforge/pkg/store"
	"github.com/reelforge/reelforge/pkg/store/sqlite/schema/gen/model"
)

// cacheRetention is how long a processed rss_release_cache row survives
// before the sweep removes it.
const cacheRetention = 7 * 24 * time.Hour

// Config wires Grabber's collaborators. AutoSearch is reused rather than
// re-implemented: Grabber calls its exported LoadProfile/LoadWeightTable/
// HasActiveDownload/HasActiveDownloadForURL/BuildBlacklist/ClearsUpgradeBar/
// Selector/Grab helpers so an RSS match is scored and grabbed under
// identical rules to a direct search.
type Config struct {
	Store      store.Store
	Indexer    indexer.Client
	AutoSearch *autosearch.AutoSearch
	Matcher    *release.Matcher
}

// Grabber runs one RSS polling pass across every enabled, RSS-opted-in
// indexer.
type Grabber struct {
	store      store.Store
	indexer    indexer.Client
	autosearch *autosearch.AutoSearch
	matcher    *release.Matcher

	// seen short-circuits the cache-insert round trip for guids already
	// handled this process lifetime; the (indexer_id, guid) unique
	// constraint in the store remains the real idempotency key.
	seen *cache.Cache[string, struct{}]
}

// New builds a Grabber from its collaborators.
func New(cfg Config) *Grabber {
	return &Grabber{
		store:      cfg.Store,
		indexer:    cfg.Indexer,
		autosearch: cfg.AutoSearch,
		matcher:    cfg.Matcher,
		seen:       cache.New[string, struct{}](),
	}
}

// Result summarizes one RunOnce pass.
type Result struct {
	Indexers  int
	Fetched   int
	New       int
	Grabbed   int
	Swept     int64
}

// RunOnce executes a single tick: pull every enabled+RSS-enabled indexer's
// feed, dedupe, match, grab, and sweep stale cache rows.
func (g *Grabber) RunOnce(ctx context.Context) (Result, error) {
	var result Result

	configs, err := g.store.ListIndexerConfigs(ctx)
	if err != nil {
		return result, fmt.Errorf("list indexer configs: %w", err)
	}

	for _, cfg := range configs {
		if !cfg.Enabled || !cfg.RSSEnabled {
			continue
		}
		result.Indexers++

		items, err := g.indexer.FetchRSS(ctx, cfg.ID)
		if err != nil {
			logger.FromCtx(ctx).Warnw("rss: fetch failed", "indexer", cfg.Name, "err", err)
			continue
		}
		result.Fetched += len(items)

		for _, item := range items {
			isNew, grabbed, err := g.processItem(ctx, cfg, item)
			if err != nil {
				logger.FromCtx(ctx).Warnw("rss: process item failed", "indexer", cfg.Name, "guid", item.GUID, "err", err)
				continue
			}
			if isNew {
				result.New++
			}
			if grabbed {
				result.Grabbed++
			}
		}
	}

	swept, err := g.store.PruneRSSCacheOlderThan(ctx, time.Now().UTC().Add(-cacheRetention))
	if err != nil {
		logger.FromCtx(ctx).Errorw("rss: sweep failed", "err", err)
	} else {
		result.Swept = swept
	}

	return result, nil
}

// processItem inserts item into the cache (skipping if its guid was already
// seen), then — for genuinely new releases only — tries to match it against
// a wanted movie, then a wanted episode, then a season pack.
func (g *Grabber) processItem(ctx context.Context, cfg store.IndexerConfig, item indexer.RSSItem) (isNew, grabbed bool, err error) {
	seenKey := fmt.Sprintf("%d:%s", cfg.ID, item.GUID)
	if _, ok := g.seen.Get(seenKey); ok {
		return false, false, nil
	}
	defer func() {
		// a failed item stays unmarked so the next tick retries it
		if err == nil {
			g.seen.Set(seenKey, struct{}{})
		}
	}()

	published := item.Published
	cacheID, inserted, err := g.store.InsertRSSEntry(ctx, store.RSSCacheEntry{
		IndexerID:   cfg.ID,
		GUID:        item.GUID,
		Title:       item.Candidate.Title,
		DownloadURL: item.Candidate.DownloadURL,
		Size:        item.Candidate.Size,
		PublishDate: &published,
	})
	if err != nil {
		return false, false, fmt.Errorf("insert rss entry: %w", err)
	}
	if !inserted {
		return false, false, nil
	}

	candidate := item.Candidate
	candidate.Indexer = cfg.Name

	grabbed, err = g.matchRelease(ctx, candidate)
	if err != nil {
		return true, false, err
	}

	if markErr := g.store.MarkRSSProcessed(ctx, cacheID, grabbed); markErr != nil {
		logger.FromCtx(ctx).Errorw("rss: failed to mark cache row processed", "cache_id", cacheID, "err", markErr)
	}

	return true, grabbed, nil
}

// matchRelease tries, in order, a movie match, an exact episode match, and
// a season-pack match. The first successful match grabs and stops.
func (g *Grabber) matchRelease(ctx context.Context, candidate selector.Candidate) (bool, error) {
	parsed := release.Parse(candidate.Title)

	if parsed.Season == 0 {
		return g.matchMovie(ctx, candidate)
	}

	if parsed.Episode > 0 {
		if grabbed, err := g.matchEpisode(ctx, candidate, parsed); err != nil || grabbed {
			return grabbed, err
		}
		return false, nil
	}

	return g.matchSeasonPack(ctx, candidate, parsed)
}

func (g *Grabber) matchMovie(ctx context.Context, candidate selector.Candidate) (bool, error) {
	movies, err := g.store.ListMoviesMonitored(ctx)
	if err != nil {
		return false, fmt.Errorf("list monitored movies: %w", err)
	}

	for _, m := range movies {
		if !g.matcher.Matches(release.MatchInput{Title: m.Title, Year: int(m.Year), IsMovie: true}, candidate.Title) {
			continue
		}

		grabbed, err := g.evaluateMovie(ctx, m, candidate)
		if err != nil {
			return false, err
		}
		if grabbed {
			return true, nil
		}
	}
	return false, nil
}

func (g *Grabber) evaluateMovie(ctx context.Context, m *model.Movie, candidate selector.Candidate) (bool, error) {
	if m.QualityProfileID == nil {
		return false, nil
	}
	movieID := int64(m.ID)
	profileID := int64(*m.QualityProfileID)

	if active, err := g.autosearch.HasActiveDownload(ctx, &movieID, nil); err != nil {
		return false, err
	} else if active {
		return false, nil
	}
	if active, err := g.autosearch.HasActiveDownloadForURL(ctx, candidate.DownloadURL); err != nil {
		return false, err
	} else if active {
		return false, nil
	}

	table, err := g.autosearch.LoadWeightTable(ctx)
	if err != nil {
		return false, err
	}
	profile, err := g.autosearch.LoadProfile(ctx, profileID)
	if err != nil {
		return false, err
	}
	formats, err := g.autosearch.LoadCustomFormats(ctx, profileID)
	if err != nil {
		return false, err
	}
	blacklist, err := g.autosearch.BuildBlacklist(ctx, []selector.Candidate{candidate}, &movieID, nil)
	if err != nil {
		return false, err
	}

	policy := quality.NewPolicy(table)
	sel := g.autosearch.Selector(policy)
	best, ok := sel.Select(ctx, selector.Request{
		Candidates:    []selector.Candidate{candidate},
		Profile:       profile,
		ExpectedTitle: m.Title,
		ExpectedYear:  int(m.Year),
		IsMovie:       true,
		Blacklist:     blacklist,
		CustomFormats: formats,
	})
	if !ok {
		return false, nil
	}

	var currentQuality string
	if m.HasFile {
		if !profile.UpgradeAllowed {
			return false, nil
		}
		if m.Quality != nil {
			currentQuality = *m.Quality
		}
		if !g.autosearch.ClearsUpgradeBar(policy, profile, table, currentQuality, best) {
			return false, nil
		}
	}

	savePath := ""
	if m.FolderPath != nil {
		savePath = *m.FolderPath
	}
	outcome, err := g.autosearch.Grab(ctx, autosearch.GrabTarget{
		MediaType: store.MediaMovie,
		MovieID:   &movieID,
		Title:     m.Title,
		SavePath:  savePath,
	}, best)
	if err != nil {
		return false, err
	}
	return outcome.Grabbed, nil
}

func (g *Grabber) matchEpisode(ctx context.Context, candidate selector.Candidate, parsed release.Parsed) (bool, error) {
	series, err := g.store.ListSeries(ctx)
	if err != nil {
		return false, fmt.Errorf("list series: %w", err)
	}

	for _, s := range series {
		if !g.matcher.Matches(release.MatchInput{Title: s.Title, IsMovie: false}, candidate.Title) {
			continue
		}

		episodes, err := g.store.ListEpisodesBySeason(ctx, int64(s.ID), int32(parsed.Season))
		if err != nil {
			return false, fmt.Errorf("list episodes for series %d season %d: %w", s.ID, parsed.Season, err)
		}
		for _, e := range episodes {
			if int(e.EpisodeNumber) != parsed.Episode {
				continue
			}
			grabbed, err := g.evaluateEpisode(ctx, s, e, candidate)
			if err != nil {
				return false, err
			}
			if grabbed {
				return true, nil
			}
		}
	}
	return false, nil
}

// matchSeasonPack handles a release with only a season token (no episode
// number). The series lookup here is by title
// only — there is no separate "this is a season pack" flag on the release,
// so a generic-enough series title can still mismatch. The pack is scored
// and, if it clears selection, grabbed against the first monitored episode
// in that season missing a file; the rest of the season is left for the
// next AutoSearch/RSS pass to discover once the file importer has run,
// rather than this pass guessing which of several episodes the pack
// actually contains.
func (g *Grabber) matchSeasonPack(ctx context.Context, candidate selector.Candidate, parsed release.Parsed) (bool, error) {
	series, err := g.store.ListSeries(ctx)
	if err != nil {
		return false, fmt.Errorf("list series: %w", err)
	}

	for _, s := range series {
		if !g.matcher.Matches(release.MatchInput{Title: s.Title, IsMovie: false}, candidate.Title) {
			continue
		}

		episodes, err := g.store.ListEpisodesBySeason(ctx, int64(s.ID), int32(parsed.Season))
		if err != nil {
			return false, fmt.Errorf("list episodes for series %d season %d: %w", s.ID, parsed.Season, err)
		}

		var target *model.Episode
		for _, e := range episodes {
			if e.Monitored && !e.HasFile {
				target = e
				break
			}
		}
		if target == nil {
			continue
		}

		grabbed, err := g.evaluateEpisode(ctx, s, target, candidate)
		if err != nil {
			return false, err
		}
		if grabbed {
			return true, nil
		}
	}
	return false, nil
}

func (g *Grabber) evaluateEpisode(ctx context.Context, s *model.Series, e *model.Episode, candidate selector.Candidate) (bool, error) {
	if s.QualityProfileID == nil {
		return false, nil
	}
	episodeID := int64(e.ID)
	profileID := int64(*s.QualityProfileID)

	if active, err := g.autosearch.HasActiveDownload(ctx, nil, &episodeID); err != nil {
		return false, err
	} else if active {
		return false, nil
	}
	if active, err := g.autosearch.HasActiveDownloadForURL(ctx, candidate.DownloadURL); err != nil {
		return false, err
	} else if active {
		return false, nil
	}

	table, err := g.autosearch.LoadWeightTable(ctx)
	if err != nil {
		return false, err
	}
	profile, err := g.autosearch.LoadProfile(ctx, profileID)
	if err != nil {
		return false, err
	}
	formats, err := g.autosearch.LoadCustomFormats(ctx, profileID)
	if err != nil {
		return false, err
	}
	blacklist, err := g.autosearch.BuildBlacklist(ctx, []selector.Candidate{candidate}, nil, &episodeID)
	if err != nil {
		return false, err
	}

	policy := quality.NewPolicy(table)
	sel := g.autosearch.Selector(policy)
	best, ok := sel.Select(ctx, selector.Request{
		Candidates:    []selector.Candidate{candidate},
		Profile:       profile,
		ExpectedTitle: s.Title,
		IsMovie:       false,
		Blacklist:     blacklist,
		CustomFormats: formats,
	})
	if !ok {
		return false, nil
	}

	var currentQuality string
	if e.HasFile {
		if !profile.UpgradeAllowed {
			return false, nil
		}
		if e.Quality != nil {
			currentQuality = *e.Quality
		}
		if !g.autosearch.ClearsUpgradeBar(policy, profile, table, currentQuality, best) {
			return false, nil
		}
	}

	savePath := ""
	if s.FolderPath != nil {
		savePath = *s.FolderPath
	}
	outcome, err := g.autosearch.Grab(ctx, autosearch.GrabTarget{
		MediaType: store.MediaSeries,
		EpisodeID: &episodeID,
		Title:     fmt.Sprintf("%s S%02dE%02d", s.Title, e.SeasonNumber, e.EpisodeNumber),
		SavePath:  savePath,
	}, best)
	if err != nil {
		return false, err
	}
	return outcome.Grabbed, nil
}
