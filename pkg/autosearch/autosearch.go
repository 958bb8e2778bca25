// Package autosearch implements the search-and-grab decision for a single
// movie or episode, plus the batched "search all missing" and "search all
// cutoff unmet" sweeps the scheduler drives.
package autosearch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/reelforge/reelforge/pkg/catalog"
	"github.com/reelforge/reelforge/pkg/download"
	"github.com/reelforge/reelforge/pkg/indexer"
	"github.com/reelforge/reelforge/pkg/logger"
	"github.com/reelforge/reelforge/pkg/notify"
	"github.com/reelforge/reelforge/pkg/quality"
	"github.com/reelforge/reelforge/pkg/release"
	"github.com/reelforge/reelforge/pkg/selector"
	"github.com/reelforge/reelforge/pkg/store"
	"github.com/reelforge/reelforge/pkg/store/sqlite/schema/gen/model"
)

// batchPause and siblingStagger set the batching cadence: a short
// stagger between concurrent searches in one batch so an indexer never
// sees every query in the exact same instant, and a longer pause between
// batches so a large missing-list sweep doesn't hammer indexers back to
// back.
const (
	batchPause      = 3 * time.Second
	siblingStagger  = 500 * time.Millisecond
	defaultWorkers  = 5
)

// Config wires AutoSearch's collaborators.
type Config struct {
	Store         store.Store
	Indexer       indexer.Client
	DownloadClients map[string]download.Client // keyed by download.ProtocolTorrent / ProtocolUsenet
	Notifier      notify.Notifier
	Matcher       *release.Matcher
	Scorer        *quality.FormatScorer
}

// AutoSearch runs the search-select-grab pipeline for movies and episodes.
type AutoSearch struct {
	store           store.Store
	indexer         indexer.Client
	downloadClients map[string]download.Client
	notifier        notify.Notifier
	matcher         *release.Matcher
	scorer          *quality.FormatScorer
	catalog         *catalog.Catalog
}

// New builds an AutoSearch from its collaborators.
func New(cfg Config) *AutoSearch {
	return &AutoSearch{
		store:           cfg.Store,
		indexer:         cfg.Indexer,
		downloadClients: cfg.DownloadClients,
		notifier:        cfg.Notifier,
		matcher:         cfg.Matcher,
		scorer:          cfg.Scorer,
		catalog:         catalog.New(cfg.Store),
	}
}

// Selector builds a selector.Selector around policy using the same
// Matcher/Scorer AutoSearch searches with, so pkg/rss scores RSS releases
// against a wanted item with identical rules to a direct search.
func (a *AutoSearch) Selector(policy *quality.Policy) *selector.Selector {
	return selector.New(policy, a.matcher, a.scorer)
}

// Outcome reports what a single search-and-grab attempt did.
type Outcome struct {
	Grabbed    bool
	Reason     string // set when Grabbed is false
	DownloadID int64
	Release    selector.Scored
}

func skipped(reason string) Outcome { return Outcome{Reason: reason} }

// SearchAndDownloadMovie runs the full pipeline for one movie. forceUpgrade
// bypasses the pre-search cutoff-met gate (but not the per-candidate
// shouldUpgrade check against the actually selected release).
func (a *AutoSearch) SearchAndDownloadMovie(ctx context.Context, movieID int64, forceUpgrade bool) (Outcome, error) {
	m, err := a.store.GetMovie(ctx, movieID)
	if err != nil {
		return Outcome{}, fmt.Errorf("get movie %d: %w", movieID, err)
	}
	if m.QualityProfileID == nil {
		return skipped("no quality profile assigned"), nil
	}
	profileID := int64(*m.QualityProfileID)

	active, err := a.HasActiveDownload(ctx, &movieID, nil)
	if err != nil {
		return Outcome{}, err
	}
	if active {
		return skipped("active download already in flight"), nil
	}

	table, err := a.LoadWeightTable(ctx)
	if err != nil {
		return Outcome{}, err
	}
	profile, err := a.LoadProfile(ctx, profileID)
	if err != nil {
		return Outcome{}, err
	}
	policy := quality.NewPolicy(table)

	var currentQuality string
	if m.HasFile {
		if m.Quality != nil {
			currentQuality = *m.Quality
		}
		if !forceUpgrade {
			if !profile.UpgradeAllowed {
				return skipped("movie has a file and upgrades are disabled"), nil
			}
			if policy.MeetsCutoff(profile, currentQuality) {
				return skipped("movie already meets its quality cutoff"), nil
			}
		}
	}

	formats, err := a.LoadCustomFormats(ctx, profileID)
	if err != nil {
		return Outcome{}, err
	}

	query := fmt.Sprintf("%s %d", m.Title, m.Year)
	candidates, err := a.searchAllIndexers(ctx, indexer.MediaMovie, query)
	if err != nil {
		return Outcome{}, err
	}

	blacklist, err := a.BuildBlacklist(ctx, candidates, &movieID, nil)
	if err != nil {
		return Outcome{}, err
	}

	sel := selector.New(policy, a.matcher, a.scorer)
	best, ok := sel.Select(ctx, selector.Request{
		Candidates:    candidates,
		Profile:       profile,
		ExpectedTitle: m.Title,
		ExpectedYear:  int(m.Year),
		IsMovie:       true,
		Blacklist:     blacklist,
		CustomFormats: formats,
	})
	if !ok {
		return skipped("no candidate release survived selection"), nil
	}

	if m.HasFile {
		if !a.ClearsUpgradeBar(policy, profile, table, currentQuality, best) {
			return skipped("selected release would not be an upgrade"), nil
		}
	}

	savePath := ""
	if m.FolderPath != nil {
		savePath = *m.FolderPath
	}
	return a.Grab(ctx, GrabTarget{
		MediaType: store.MediaMovie,
		MovieID:   &movieID,
		Title:     m.Title,
		SavePath:  savePath,
	}, best)
}

// SearchAndDownloadEpisode mirrors SearchAndDownloadMovie for a single
// episode. Season-pack matching is RSSGrabber's concern (prefix `S##`
// without `E##`); a direct episode search always targets one SxxEyy query.
func (a *AutoSearch) SearchAndDownloadEpisode(ctx context.Context, episodeID int64, forceUpgrade bool) (Outcome, error) {
	e, err := a.store.GetEpisode(ctx, episodeID)
	if err != nil {
		return Outcome{}, fmt.Errorf("get episode %d: %w", episodeID, err)
	}

	series, err := a.store.GetSeries(ctx, int64(e.SeriesID))
	if err != nil {
		return Outcome{}, fmt.Errorf("get series %d: %w", e.SeriesID, err)
	}
	if series.QualityProfileID == nil {
		return skipped("no quality profile assigned"), nil
	}
	profileID := int64(*series.QualityProfileID)

	active, err := a.HasActiveDownload(ctx, nil, &episodeID)
	if err != nil {
		return Outcome{}, err
	}
	if active {
		return skipped("active download already in flight"), nil
	}

	table, err := a.LoadWeightTable(ctx)
	if err != nil {
		return Outcome{}, err
	}
	profile, err := a.LoadProfile(ctx, profileID)
	if err != nil {
		return Outcome{}, err
	}
	policy := quality.NewPolicy(table)

	var currentQuality string
	if e.HasFile {
		if e.Quality != nil {
			currentQuality = *e.Quality
		}
		if !forceUpgrade {
			if !profile.UpgradeAllowed {
				return skipped("episode has a file and upgrades are disabled"), nil
			}
			if policy.MeetsCutoff(profile, currentQuality) {
				return skipped("episode already meets its quality cutoff"), nil
			}
		}
	}

	formats, err := a.LoadCustomFormats(ctx, profileID)
	if err != nil {
		return Outcome{}, err
	}

	query := fmt.Sprintf("%s %s", series.Title, seasonEpisodeLabel(e.SeasonNumber, e.EpisodeNumber))
	candidates, err := a.searchAllIndexers(ctx, indexer.MediaSeries, query)
	if err != nil {
		return Outcome{}, err
	}

	blacklist, err := a.BuildBlacklist(ctx, candidates, nil, &episodeID)
	if err != nil {
		return Outcome{}, err
	}

	sel := selector.New(policy, a.matcher, a.scorer)
	best, ok := sel.Select(ctx, selector.Request{
		Candidates:    candidates,
		Profile:       profile,
		ExpectedTitle: series.Title,
		IsMovie:       false,
		Blacklist:     blacklist,
		CustomFormats: formats,
	})
	if !ok {
		return skipped("no candidate release survived selection"), nil
	}

	if e.HasFile {
		if !a.ClearsUpgradeBar(policy, profile, table, currentQuality, best) {
			return skipped("selected release would not be an upgrade"), nil
		}
	}

	savePath := ""
	if series.FolderPath != nil {
		savePath = *series.FolderPath
	}
	return a.Grab(ctx, GrabTarget{
		MediaType: store.MediaSeries,
		EpisodeID: &episodeID,
		Title:     fmt.Sprintf("%s %s", series.Title, seasonEpisodeLabel(e.SeasonNumber, e.EpisodeNumber)),
		SavePath:  savePath,
	}, best)
}

func seasonEpisodeLabel(season, episode int32) string {
	return fmt.Sprintf("S%02dE%02d", season, episode)
}

// ClearsUpgradeBar implements step 5 of the movie/episode algorithm: only
// candidates that are strictly better survive unchecked; a same-or-lower
// quality candidate must additionally pass the proper/repack-aware
// shouldUpgrade decision.
func (a *AutoSearch) ClearsUpgradeBar(policy *quality.Policy, profile quality.Profile, table *quality.Table, currentQuality string, best selector.Scored) bool {
	currentWeight, currentOK := table.Weight(currentQuality)
	selectedWeight, selectedOK := table.Weight(best.Quality)

	sameOrLower := !currentOK || !selectedOK || selectedWeight <= currentWeight
	if !sameOrLower {
		return true
	}

	flags := quality.UpgradeFlags{
		CurrentIsProperOrRepack:   release.IsProperOrRepack(currentQuality),
		CandidateIsProperOrRepack: release.IsProperOrRepack(best.Candidate.Title),
	}
	return policy.ShouldUpgrade(profile, currentQuality, best.Quality, flags)
}

// searchAllIndexers queries every enabled indexer config in parallel and
// flattens the results. A single indexer failing contributes zero
// candidates rather than aborting the whole search.
func (a *AutoSearch) searchAllIndexers(ctx context.Context, mediaType indexer.MediaType, query string) ([]selector.Candidate, error) {
	configs, err := a.store.ListIndexerConfigs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list indexer configs: %w", err)
	}

	results := make(chan []selector.Candidate, len(configs))
	inflight := 0

	for _, cfg := range configs {
		if !cfg.Enabled {
			continue
		}
		inflight++
		go func(cfg store.IndexerConfig) {
			candidates, err := a.indexer.Search(ctx, cfg.ID, mediaType, query)
			if err != nil {
				logger.FromCtx(ctx).Warnw("autosearch: indexer search failed", "indexer", cfg.Name, "err", err)
				results <- nil
				return
			}
			results <- candidates
		}(cfg)
	}

	var all []selector.Candidate
	for i := 0; i < inflight; i++ {
		all = append(all, <-results...)
	}
	return all, nil
}

// BuildBlacklist checks every candidate's title against the store's
// per-title blacklist, returning a lookup map keyed the same way
// pkg/selector normalizes titles internally (lowercased, trimmed).
func (a *AutoSearch) BuildBlacklist(ctx context.Context, candidates []selector.Candidate, movieID, episodeID *int64) (map[string]bool, error) {
	blacklist := make(map[string]bool)
	seen := make(map[string]bool)
	for _, c := range candidates {
		key := normalizeTitle(c.Title)
		if seen[key] {
			continue
		}
		seen[key] = true

		ok, err := a.IsBlacklisted(ctx, c.Title, movieID, episodeID)
		if err != nil {
			return nil, err
		}
		if ok {
			blacklist[key] = true
		}
	}
	return blacklist, nil
}

func normalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

// GrabTarget identifies the media a selected release is being grabbed for;
// shared with pkg/rss so an RSS match can call Grab the same way a direct
// search does.
type GrabTarget struct {
	MediaType store.MediaType
	MovieID   *int64
	EpisodeID *int64
	Title     string
	SavePath  string
}

// Grab persists a Download row, dispatches it to the matching download
// client, and records the outcome: GRABBED activity + notification on
// success, a `failed` status on dispatch failure.
func (a *AutoSearch) Grab(ctx context.Context, target GrabTarget, best selector.Scored) (Outcome, error) {
	client, ok := a.downloadClients[best.Candidate.Protocol]
	if !ok {
		return Outcome{}, fmt.Errorf("no download client configured for protocol %q", best.Candidate.Protocol)
	}

	var movieID32, episodeID32 *int32
	if target.MovieID != nil {
		v := int32(*target.MovieID)
		movieID32 = &v
	}
	if target.EpisodeID != nil {
		v := int32(*target.EpisodeID)
		episodeID32 = &v
	}

	downloadID, err := a.store.CreateDownload(ctx, model.Download{
		MediaType:   string(target.MediaType),
		MovieID:     movieID32,
		EpisodeID:   episodeID32,
		Title:       best.Candidate.Title,
		DownloadURL: best.Candidate.DownloadURL,
		Size:        best.Candidate.Size,
		Indexer:     best.Candidate.Indexer,
		Quality:     best.Quality,
		Status:      "queued",
	})
	if err != nil {
		if err == store.ErrConflict {
			return skipped("release already has an active download"), nil
		}
		return Outcome{}, fmt.Errorf("create download: %w", err)
	}

	result, err := client.Add(ctx, download.AddRequest{
		URL:      best.Candidate.DownloadURL,
		SavePath: target.SavePath,
		Category: string(target.MediaType),
		Protocol: best.Candidate.Protocol,
	})
	if err != nil || !result.OK {
		message := ""
		if err != nil {
			message = err.Error()
		} else {
			message = result.Message
		}
		if updErr := a.store.UpdateDownloadStatus(ctx, downloadID, "failed", 0, message); updErr != nil {
			logger.FromCtx(ctx).Errorw("autosearch: failed to mark download failed", "download_id", downloadID, "err", updErr)
		}
		a.notifier.Notify(ctx, notify.Event{
			Type:     notify.EventFailed,
			Message:  fmt.Sprintf("failed to grab %q: %s", best.Candidate.Title, message),
			MediaRef: notify.MediaRef{EntityType: string(target.MediaType), EntityID: entityID(target), Title: target.Title},
		})
		return Outcome{DownloadID: downloadID}, fmt.Errorf("download client add: %s", message)
	}

	if err := a.store.UpdateDownloadClientJobID(ctx, downloadID, result.ClientID, result.ClientID); err != nil {
		logger.FromCtx(ctx).Errorw("autosearch: failed to persist client job id", "download_id", downloadID, "err", err)
	}

	entityType := "movie"
	if target.EpisodeID != nil {
		entityType = "episode"
	}
	if err := a.store.LogActivity(ctx, store.ActivityEntry{
		EntityType: entityType,
		EntityID:   entityID(target),
		EventType:  "GRABBED",
		Message:    fmt.Sprintf("grabbed %q (%s)", best.Candidate.Title, best.Quality),
	}); err != nil {
		logger.FromCtx(ctx).Errorw("autosearch: failed to log grab activity", "download_id", downloadID, "err", err)
	}

	a.notifier.Notify(ctx, notify.Event{
		Type:     notify.EventGrabbed,
		Message:  fmt.Sprintf("grabbed %q (%s)", target.Title, best.Quality),
		MediaRef: notify.MediaRef{EntityType: entityType, EntityID: entityID(target), Title: target.Title},
	})

	return Outcome{Grabbed: true, DownloadID: downloadID, Release: best}, nil
}

func entityID(target GrabTarget) int64 {
	if target.MovieID != nil {
		return *target.MovieID
	}
	if target.EpisodeID != nil {
		return *target.EpisodeID
	}
	return 0
}
