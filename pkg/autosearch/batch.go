package autosearch

import (
	"context"
	"sync"
	"time"

	"github.com/reelforge/reelforge/pkg/logger"
	"github.com/reelforge/reelforge/pkg/quality"
	"github.com/reelforge/reelforge/pkg/store/sqlite/schema/gen/model"
)

// BatchResult summarizes one searchAllMissing/searchAllCutoffUnmet sweep.
type BatchResult struct {
	Attempted int
	Grabbed   int
	Skipped   int
	Failed    int
}

// searchJob is one unit of work in a batch: either a movie or an episode
// id, dispatched to the matching AutoSearch method.
type searchJob func(ctx context.Context) (Outcome, error)

// SearchAllMissing sweeps every monitored, available-by-date, file-less
// movie and every monitored, aired, file-less episode, in batches of
// concurrency with a short stagger between siblings and a longer pause
// between batches so indexers never see a burst of simultaneous queries.
func (a *AutoSearch) SearchAllMissing(ctx context.Context, concurrency int) (BatchResult, error) {
	jobs, err := a.missingJobs(ctx)
	if err != nil {
		return BatchResult{}, err
	}
	return a.runBatches(ctx, jobs, concurrency), nil
}

// SearchAllCutoffUnmet sweeps every item that already has a file, whose
// profile allows upgrades, and whose current quality hasn't reached its
// profile's cutoff yet.
func (a *AutoSearch) SearchAllCutoffUnmet(ctx context.Context, concurrency int) (BatchResult, error) {
	jobs, err := a.cutoffUnmetJobs(ctx)
	if err != nil {
		return BatchResult{}, err
	}
	return a.runBatches(ctx, jobs, concurrency), nil
}

func (a *AutoSearch) missingJobs(ctx context.Context) ([]searchJob, error) {
	var jobs []searchJob

	movies, err := a.catalog.FindMissingAndAvailable(ctx)
	if err != nil {
		return nil, err
	}
	for _, m := range movies {
		id := int64(m.ID)
		jobs = append(jobs, func(ctx context.Context) (Outcome, error) {
			return a.SearchAndDownloadMovie(ctx, id, false)
		})
	}

	episodes, err := a.catalog.FindMissingEpisodes(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	for _, e := range episodes {
		if !episodeAired(e.AirDate, now) {
			continue
		}
		id := int64(e.ID)
		jobs = append(jobs, func(ctx context.Context) (Outcome, error) {
			return a.SearchAndDownloadEpisode(ctx, id, false)
		})
	}

	return jobs, nil
}

func (a *AutoSearch) cutoffUnmetJobs(ctx context.Context) ([]searchJob, error) {
	var jobs []searchJob

	movies, err := a.catalog.FindMoviesWithFiles(ctx)
	if err != nil {
		return nil, err
	}
	for _, m := range movies {
		if m.QualityProfileID == nil {
			continue
		}
		unmet, err := a.movieCutoffUnmet(ctx, m)
		if err != nil {
			logger.FromCtx(ctx).Warnw("autosearch: cutoff check failed", "movie_id", m.ID, "err", err)
			continue
		}
		if !unmet {
			continue
		}
		id := int64(m.ID)
		jobs = append(jobs, func(ctx context.Context) (Outcome, error) {
			return a.SearchAndDownloadMovie(ctx, id, false)
		})
	}

	series, err := a.store.ListSeries(ctx)
	if err != nil {
		return nil, err
	}
	for _, s := range series {
		episodes, err := a.catalog.FindEpisodesWithFiles(ctx, int64(s.ID))
		if err != nil {
			return nil, err
		}
		for _, e := range episodes {
			if s.QualityProfileID == nil {
				continue
			}
			unmet, err := a.episodeCutoffUnmet(ctx, s, e)
			if err != nil {
				logger.FromCtx(ctx).Warnw("autosearch: cutoff check failed", "episode_id", e.ID, "err", err)
				continue
			}
			if !unmet {
				continue
			}
			id := int64(e.ID)
			jobs = append(jobs, func(ctx context.Context) (Outcome, error) {
				return a.SearchAndDownloadEpisode(ctx, id, false)
			})
		}
	}

	return jobs, nil
}

func (a *AutoSearch) movieCutoffUnmet(ctx context.Context, m *model.Movie) (bool, error) {
	if m.QualityProfileID == nil {
		return false, nil
	}
	profile, err := a.LoadProfile(ctx, int64(*m.QualityProfileID))
	if err != nil {
		return false, err
	}
	if !profile.UpgradeAllowed {
		return false, nil
	}
	table, err := a.LoadWeightTable(ctx)
	if err != nil {
		return false, err
	}
	current := ""
	if m.Quality != nil {
		current = *m.Quality
	}
	return !quality.NewPolicy(table).MeetsCutoff(profile, current), nil
}

func (a *AutoSearch) episodeCutoffUnmet(ctx context.Context, s *model.Series, e *model.Episode) (bool, error) {
	if s.QualityProfileID == nil {
		return false, nil
	}
	profile, err := a.LoadProfile(ctx, int64(*s.QualityProfileID))
	if err != nil {
		return false, err
	}
	if !profile.UpgradeAllowed {
		return false, nil
	}
	table, err := a.LoadWeightTable(ctx)
	if err != nil {
		return false, err
	}
	current := ""
	if e.Quality != nil {
		current = *e.Quality
	}
	return !quality.NewPolicy(table).MeetsCutoff(profile, current), nil
}

func episodeAired(airDate *string, now time.Time) bool {
	if airDate == nil || *airDate == "" {
		return false
	}
	cutoff := *airDate
	if len(cutoff) > 10 {
		cutoff = cutoff[:10]
	}
	parsed, err := time.Parse("2006-01-02", cutoff)
	if err != nil {
		return false
	}
	return !parsed.After(now)
}

// runBatches executes jobs in chunks of size concurrency. Within a batch,
// each job starts `siblingStagger` after the previous one so a burst of
// concurrent searches doesn't hit every indexer in the same instant;
// `batchPause` separates one batch from the next.
func (a *AutoSearch) runBatches(ctx context.Context, jobs []searchJob, concurrency int) BatchResult {
	if concurrency <= 0 {
		concurrency = defaultWorkers
	}

	var result BatchResult
	var mu sync.Mutex

	for start := 0; start < len(jobs); start += concurrency {
		end := start + concurrency
		if end > len(jobs) {
			end = len(jobs)
		}
		batch := jobs[start:end]

		var wg sync.WaitGroup
		for i, job := range batch {
			wg.Add(1)
			go func(i int, job searchJob) {
				defer wg.Done()
				time.Sleep(time.Duration(i) * siblingStagger)

				outcome, err := job(ctx)

				mu.Lock()
				defer mu.Unlock()
				result.Attempted++
				switch {
				case err != nil:
					result.Failed++
					logger.FromCtx(ctx).Warnw("autosearch: batch job failed", "err", err)
				case outcome.Grabbed:
					result.Grabbed++
				default:
					result.Skipped++
				}
			}(i, job)
		}
		wg.Wait()

		if end < len(jobs) {
			select {
			case <-ctx.Done():
				return result
			case <-time.After(batchPause):
			}
		}
	}

	return result
}
