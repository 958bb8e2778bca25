// Package importlist periodically pulls external movie/series lists (TMDB
// lists, Trakt-shaped JSON feeds, scraped HTML pages) and reconciles them
// against the catalog: items already present are counted and skipped,
// excluded items are skipped, and everything else becomes a placeholder
// Movie or Series that metadata enrichment and auto search pick up later.
package importlist

import (
	"context"
	"fmt"
	"time"

	"github.com/reelforge/reelforge/pkg/autosearch"
	"github.com/reelforge/reelforge/pkg/catalog"
	"github.com/reelforge/reelforge/pkg/metadata"
	"github.com/reelforge/reelforge/pkg/store"
	"github.com/reelforge/reelforge/pkg/store/sqlite/schema/gen/model"
)

// interItemDelay rate-limits list reconciliation the same way RSS cache
// sweeps and AutoSearch batches pace themselves against external APIs.
const interItemDelay = 250 * time.Millisecond

// RawItem is one entry a Source produces before reconciliation. A source
// resolves everything it can to a TMDB id itself; Sync only falls back to
// findByExternalId when TmdbID is zero and ImdbID is set.
type RawItem struct {
	TmdbID    int32
	ImdbID    string
	MediaType store.MediaType
}

// Source fetches the raw item list for one configured import list. The two
// concrete kinds are JSONListSource and HTMLListSource; cfg carries the
// list's URL/ListID plus whatever the kind needs to know how to parse it.
type Source interface {
	FetchItems(ctx context.Context, cfg store.ImportListConfig) ([]RawItem, error)
}

// Sync drives one reconciliation pass across every due import list.
type Sync struct {
	store      store.Store
	catalog    *catalog.Catalog
	metadata   metadata.Provider
	autosearch *autosearch.AutoSearch
	sources    map[string]Source
}

// Config wires Sync's collaborators. Sources maps an ImportListConfig.Type
// value ("tmdb_list", "trakt_list", "html", ...) to the Source that knows
// how to fetch it.
type Config struct {
	Store      store.Store
	Catalog    *catalog.Catalog
	Metadata   metadata.Provider
	AutoSearch *autosearch.AutoSearch
	Sources    map[string]Source
}

// New builds a Sync from cfg.
func New(cfg Config) *Sync {
	return &Sync{
		store:      cfg.Store,
		catalog:    cfg.Catalog,
		metadata:   cfg.Metadata,
		autosearch: cfg.AutoSearch,
		sources:    cfg.Sources,
	}
}

// Result tallies one RunOnce pass across every due list.
type Result struct {
	ListsSynced int
	Fetched     int
	Existing    int
	Excluded    int
	Created     int
}

// RunOnce reconciles every enabled import list whose refresh interval has
// elapsed since its last sync.
func (s *Sync) RunOnce(ctx context.Context) (Result, error) {
	var result Result

	lists, err := s.store.ListImportLists(ctx)
	if err != nil {
		return result, fmt.Errorf("list import lists: %w", err)
	}

	for _, cfg := range lists {
		if !cfg.Enabled || !due(cfg, time.Now()) {
			continue
		}

		listResult, err := s.syncOne(ctx, cfg)
		if err != nil {
			continue
		}

		result.ListsSynced++
		result.Fetched += listResult.Fetched
		result.Existing += listResult.Existing
		result.Excluded += listResult.Excluded
		result.Created += listResult.Created
	}

	return result, nil
}

func due(cfg store.ImportListConfig, now time.Time) bool {
	if cfg.LastSync == nil {
		return true
	}
	interval := time.Duration(cfg.RefreshIntervalMinutes) * time.Minute
	return now.Sub(*cfg.LastSync) >= interval
}

func (s *Sync) syncOne(ctx context.Context, cfg store.ImportListConfig) (Result, error) {
	var result Result

	source, ok := s.sources[cfg.Type]
	if !ok {
		return result, fmt.Errorf("import list %d: no source registered for type %q", cfg.ID, cfg.Type)
	}

	items, err := source.FetchItems(ctx, cfg)
	if err != nil {
		return result, fmt.Errorf("fetch import list %d: %w", cfg.ID, err)
	}
	result.Fetched = len(items)

	for i, item := range items {
		if i > 0 {
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			case <-time.After(interItemDelay):
			}
		}

		resolved, err := s.resolveTmdbID(ctx, item)
		if err != nil || resolved == 0 {
			continue
		}

		outcome, err := s.reconcileItem(ctx, cfg, resolved, item.MediaType)
		if err != nil {
			continue
		}
		switch outcome {
		case outcomeExisting:
			result.Existing++
		case outcomeExcluded:
			result.Excluded++
		case outcomeCreated:
			result.Created++
		}
	}

	if err := s.store.UpdateImportListLastSync(ctx, cfg.ID, time.Now()); err != nil {
		return result, fmt.Errorf("update last sync for list %d: %w", cfg.ID, err)
	}

	return result, nil
}

// resolveTmdbID fills in a TMDB id for items a Source could only resolve to
// an IMDb id, via the metadata provider's external-id lookup. Items that
// still have no TMDB id afterward are dropped, per the sync algorithm.
func (s *Sync) resolveTmdbID(ctx context.Context, item RawItem) (int32, error) {
	if item.TmdbID != 0 {
		return item.TmdbID, nil
	}
	if item.ImdbID == "" {
		return 0, nil
	}

	kind := metadata.KindMovie
	if item.MediaType == store.MediaSeries {
		kind = metadata.KindSeries
	}

	movie, series, err := s.metadata.FindByExternalID(ctx, item.ImdbID, kind)
	if err != nil {
		return 0, err
	}
	if movie != nil {
		return movie.TmdbID, nil
	}
	if series != nil {
		return series.TmdbID, nil
	}
	return 0, nil
}

type itemOutcome int

const (
	outcomeExisting itemOutcome = iota
	outcomeExcluded
	outcomeCreated
)

func (s *Sync) reconcileItem(ctx context.Context, cfg store.ImportListConfig, tmdbID int32, mediaType store.MediaType) (itemOutcome, error) {
	switch mediaType {
	case store.MediaSeries:
		return s.reconcileSeries(ctx, cfg, tmdbID)
	default:
		return s.reconcileMovie(ctx, cfg, tmdbID)
	}
}

func (s *Sync) reconcileMovie(ctx context.Context, cfg store.ImportListConfig, tmdbID int32) (itemOutcome, error) {
	if _, err := s.store.GetMovieByTmdbID(ctx, tmdbID); err == nil {
		return outcomeExisting, nil
	} else if err != store.ErrNotFound {
		return 0, err
	}

	excluded, err := s.store.IsExcluded(ctx, int64(tmdbID), store.MediaMovie)
	if err != nil {
		return 0, err
	}
	if excluded {
		return outcomeExcluded, nil
	}

	meta, err := s.metadata.GetMovie(ctx, tmdbID)
	if err != nil {
		return 0, fmt.Errorf("fetch movie metadata %d: %w", tmdbID, err)
	}

	movieID, err := s.catalog.CreateMovie(ctx, model.Movie{
		TmdbID:              &meta.TmdbID,
		Title:               meta.Title,
		Year:                meta.Year,
		Overview:            meta.Overview,
		Runtime:             meta.Runtime,
		PosterPath:          meta.PosterPath,
		BackdropPath:        meta.BackdropPath,
		Status:              meta.Status,
		MinimumAvailability: cfg.MinimumAvailability,
		QualityProfileID:    profileID32(cfg.QualityProfileID),
		FolderPath:          rootFolder(cfg.RootFolder, meta.Title, meta.Year),
		Monitored:           true,
	})
	if err != nil {
		return 0, fmt.Errorf("create placeholder movie %d: %w", tmdbID, err)
	}

	if cfg.SearchOnAdd && s.autosearch != nil {
		go func() {
			_, _ = s.autosearch.SearchAndDownloadMovie(context.WithoutCancel(ctx), movieID, false)
		}()
	}

	return outcomeCreated, nil
}

func (s *Sync) reconcileSeries(ctx context.Context, cfg store.ImportListConfig, tmdbID int32) (itemOutcome, error) {
	if _, err := s.store.GetSeriesByTmdbID(ctx, tmdbID); err == nil {
		return outcomeExisting, nil
	} else if err != store.ErrNotFound {
		return 0, err
	}

	excluded, err := s.store.IsExcluded(ctx, int64(tmdbID), store.MediaSeries)
	if err != nil {
		return 0, err
	}
	if excluded {
		return outcomeExcluded, nil
	}

	meta, err := s.metadata.GetSeries(ctx, tmdbID)
	if err != nil {
		return 0, fmt.Errorf("fetch series metadata %d: %w", tmdbID, err)
	}

	seriesID, err := s.catalog.CreateSeries(ctx, model.Series{
		TvdbID:            optionalInt32(meta.TvdbID),
		TmdbID:            &meta.TmdbID,
		Title:             meta.Title,
		Year:              meta.Year,
		Network:           meta.Network,
		Status:            meta.Status,
		SeriesType:        "standard",
		MonitorNewSeasons: "all",
		QualityProfileID:  profileID32(cfg.QualityProfileID),
		FolderPath:        rootFolder(cfg.RootFolder, meta.Title, meta.Year),
		Monitored:         true,
	})
	if err != nil {
		return 0, fmt.Errorf("create placeholder series %d: %w", tmdbID, err)
	}

	if err := s.createEpisodes(ctx, seriesID, meta, cfg.MonitorMode); err != nil {
		return 0, fmt.Errorf("create episodes for series %d: %w", seriesID, err)
	}

	if cfg.SearchOnAdd && s.autosearch != nil {
		go s.searchSeriesOnAdd(seriesID)
	}

	return outcomeCreated, nil
}

// createEpisodes seeds every season's episodes (skipping season 0) with
// the monitor state monitorMode maps it to.
func (s *Sync) createEpisodes(ctx context.Context, seriesID int64, series *metadata.Series, monitorMode string) error {
	highestSeason := series.NumberOfSeasons

	for seasonNumber := int32(1); seasonNumber <= series.NumberOfSeasons; seasonNumber++ {
		season, err := s.metadata.GetSeason(ctx, series.TmdbID, seasonNumber)
		if err != nil {
			return fmt.Errorf("fetch season %d: %w", seasonNumber, err)
		}

		monitored := seasonMonitored(monitorMode, seasonNumber, highestSeason)
		if _, err := s.store.UpsertSeason(ctx, seriesID, seasonNumber, monitored); err != nil {
			return fmt.Errorf("upsert season %d: %w", seasonNumber, err)
		}

		for _, ep := range season.Episodes {
			_, err := s.catalog.CreateEpisode(ctx, model.Episode{
				SeriesID:      int32(seriesID),
				SeasonNumber:  seasonNumber,
				EpisodeNumber: ep.EpisodeNumber,
				Title:         ep.Title,
				Overview:      ep.Overview,
				AirDate:       optionalString(ep.AirDate),
				Monitored:     monitored,
			})
			if err != nil {
				return fmt.Errorf("create episode s%02de%02d: %w", seasonNumber, ep.EpisodeNumber, err)
			}
		}
	}
	return nil
}

// seasonMonitored maps an ImportListConfig.MonitorMode value to whether a
// non-zero season starts monitored. Season 0 (specials) is never created
// by createEpisodes in the first place, so it never reaches here.
func seasonMonitored(mode string, seasonNumber, highestSeason int32) bool {
	switch mode {
	case "firstSeason":
		return seasonNumber == 1
	case "latestSeason":
		return seasonNumber == highestSeason
	case "none":
		return false
	default: // "all"
		return true
	}
}

func (s *Sync) searchSeriesOnAdd(seriesID int64) {
	ctx := context.Background()
	episodes, err := s.store.ListEpisodes(ctx, seriesID)
	if err != nil {
		return
	}
	for _, e := range episodes {
		if !e.Monitored {
			continue
		}
		_, _ = s.autosearch.SearchAndDownloadEpisode(ctx, int64(e.ID), false)
	}
}

func profileID32(id *int64) *int32 {
	if id == nil {
		return nil
	}
	v := int32(*id)
	return &v
}

func optionalInt32(v int32) *int32 {
	if v == 0 {
		return nil
	}
	return &v
}

func optionalString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func rootFolder(root, title string, year int32) *string {
	if root == "" {
		return nil
	}
	path := fmt.Sprintf("%s/%s (%d)", root, title, year)
	return &path
}
