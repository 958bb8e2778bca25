package importlist_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelforge/reelforge/pkg/catalog"
	"github.com/reelforge/reelforge/pkg/importlist"
	"github.com/reelforge/reelforge/pkg/metadata"
	"github.com/reelforge/reelforge/pkg/store"
	"github.com/reelforge/reelforge/pkg/store/sqlite"
	"github.com/reelforge/reelforge/pkg/store/sqlite/schema/gen/model"
)

type fakeSource struct {
	items []importlist.RawItem
	err   error
}

func (f *fakeSource) FetchItems(ctx context.Context, cfg store.ImportListConfig) ([]importlist.RawItem, error) {
	return f.items, f.err
}

type fakeMetadata struct {
	movies  map[int32]*metadata.Movie
	series  map[int32]*metadata.Series
	seasons map[int32]map[int32]*metadata.Season
}

func newFakeMetadata() *fakeMetadata {
	return &fakeMetadata{
		movies:  map[int32]*metadata.Movie{},
		series:  map[int32]*metadata.Series{},
		seasons: map[int32]map[int32]*metadata.Season{},
	}
}

func (f *fakeMetadata) GetMovie(ctx context.Context, tmdbID int32) (*metadata.Movie, error) {
	m, ok := f.movies[tmdbID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return m, nil
}

func (f *fakeMetadata) GetSeries(ctx context.Context, tmdbID int32) (*metadata.Series, error) {
	s, ok := f.series[tmdbID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return s, nil
}

func (f *fakeMetadata) GetSeason(ctx context.Context, seriesTmdbID, seasonNumber int32) (*metadata.Season, error) {
	bySeason, ok := f.seasons[seriesTmdbID]
	if !ok {
		return nil, store.ErrNotFound
	}
	season, ok := bySeason[seasonNumber]
	if !ok {
		return nil, store.ErrNotFound
	}
	return season, nil
}

func (f *fakeMetadata) FindByExternalID(ctx context.Context, externalID string, kind metadata.ExternalIDKind) (*metadata.Movie, *metadata.Series, error) {
	for _, m := range f.movies {
		if m.ImdbID == externalID {
			return m, nil, nil
		}
	}
	for _, s := range f.series {
		if s.ImdbID == externalID {
			return nil, s, nil
		}
	}
	return nil, nil, nil
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	s, err := sqlite.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.Init(context.Background()))
	return s
}

func TestRunOnce_CreatesPlaceholderMovie(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	c := catalog.New(s)
	md := newFakeMetadata()
	md.movies[550] = &metadata.Movie{TmdbID: 550, Title: "Fight Club", Year: 1999, Overview: "..."}

	listID, err := s.CreateImportList(ctx, store.ImportListConfig{
		Type: "tmdb_list", MediaType: store.MediaMovie, Enabled: true,
		URL: "https://example.test/list", RefreshIntervalMinutes: 60,
	})
	require.NoError(t, err)

	src := &fakeSource{items: []importlist.RawItem{{TmdbID: 550, MediaType: store.MediaMovie}}}
	sync := importlist.New(importlist.Config{
		Store: s, Catalog: c, Metadata: md,
		Sources: map[string]importlist.Source{"tmdb_list": src},
	})

	result, err := sync.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.ListsSynced)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 0, result.Existing)

	movie, err := s.GetMovieByTmdbID(ctx, 550)
	require.NoError(t, err)
	assert.Equal(t, "Fight Club", movie.Title)

	lists, err := s.ListImportLists(ctx)
	require.NoError(t, err)
	require.Len(t, lists, 1)
	assert.Equal(t, listID, lists[0].ID)
	assert.NotNil(t, lists[0].LastSync)
}

func TestRunOnce_SkipsExistingMovie(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	c := catalog.New(s)
	md := newFakeMetadata()
	md.movies[550] = &metadata.Movie{TmdbID: 550, Title: "Fight Club", Year: 1999}

	tmdb := int32(550)
	_, err := s.CreateMovie(ctx, model.Movie{TmdbID: &tmdb, Title: "Fight Club", Year: 1999, MinimumAvailability: "released"})
	require.NoError(t, err)

	_, err = s.CreateImportList(ctx, store.ImportListConfig{
		Type: "tmdb_list", MediaType: store.MediaMovie, Enabled: true, RefreshIntervalMinutes: 60,
	})
	require.NoError(t, err)

	src := &fakeSource{items: []importlist.RawItem{{TmdbID: 550, MediaType: store.MediaMovie}}}
	sync := importlist.New(importlist.Config{
		Store: s, Catalog: c, Metadata: md,
		Sources: map[string]importlist.Source{"tmdb_list": src},
	})

	result, err := sync.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Existing)
	assert.Equal(t, 0, result.Created)
}

func TestRunOnce_SkipsExcludedItem(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	c := catalog.New(s)
	md := newFakeMetadata()
	md.movies[550] = &metadata.Movie{TmdbID: 550, Title: "Fight Club", Year: 1999}

	require.NoError(t, s.AddExclusion(ctx, 550, store.MediaMovie))

	_, err := s.CreateImportList(ctx, store.ImportListConfig{
		Type: "tmdb_list", MediaType: store.MediaMovie, Enabled: true, RefreshIntervalMinutes: 60,
	})
	require.NoError(t, err)

	src := &fakeSource{items: []importlist.RawItem{{TmdbID: 550, MediaType: store.MediaMovie}}}
	sync := importlist.New(importlist.Config{
		Store: s, Catalog: c, Metadata: md,
		Sources: map[string]importlist.Source{"tmdb_list": src},
	})

	result, err := sync.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Excluded)
	assert.Equal(t, 0, result.Created)
}

func TestRunOnce_SkipsListNotYetDue(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	c := catalog.New(s)
	md := newFakeMetadata()

	listID, err := s.CreateImportList(ctx, store.ImportListConfig{
		Type: "tmdb_list", MediaType: store.MediaMovie, Enabled: true, RefreshIntervalMinutes: 1440,
	})
	require.NoError(t, err)
	require.NoError(t, s.UpdateImportListLastSync(ctx, listID, time.Now()))

	src := &fakeSource{items: []importlist.RawItem{{TmdbID: 550, MediaType: store.MediaMovie}}}
	sync := importlist.New(importlist.Config{
		Store: s, Catalog: c, Metadata: md,
		Sources: map[string]importlist.Source{"tmdb_list": src},
	})

	result, err := sync.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, result.ListsSynced, "a list synced moments ago with a 24h interval must not re-sync")
}

func TestRunOnce_CreatesSeriesWithEpisodes(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	c := catalog.New(s)
	md := newFakeMetadata()
	md.series[1399] = &metadata.Series{TmdbID: 1399, TvdbID: 121361, Title: "Game of Thrones", Year: 2011, NumberOfSeasons: 2}
	md.seasons[1399] = map[int32]*metadata.Season{
		1: {SeasonNumber: 1, Episodes: []metadata.Episode{{EpisodeNumber: 1, Title: "Winter Is Coming"}, {EpisodeNumber: 2, Title: "The Kingsroad"}}},
		2: {SeasonNumber: 2, Episodes: []metadata.Episode{{EpisodeNumber: 1, Title: "The North Remembers"}}},
	}

	_, err := s.CreateImportList(ctx, store.ImportListConfig{
		Type: "tmdb_list", MediaType: store.MediaSeries, Enabled: true,
		RefreshIntervalMinutes: 60, MonitorMode: "firstSeason",
	})
	require.NoError(t, err)

	src := &fakeSource{items: []importlist.RawItem{{TmdbID: 1399, MediaType: store.MediaSeries}}}
	sync := importlist.New(importlist.Config{
		Store: s, Catalog: c, Metadata: md,
		Sources: map[string]importlist.Source{"tmdb_list": src},
	})

	result, err := sync.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)

	series, err := s.GetSeriesByTmdbID(ctx, 1399)
	require.NoError(t, err)

	episodes, err := s.ListEpisodes(ctx, int64(series.ID))
	require.NoError(t, err)
	require.Len(t, episodes, 3)

	for _, e := range episodes {
		if e.SeasonNumber == 1 {
			assert.True(t, e.Monitored, "firstSeason mode must monitor season 1")
		} else {
			assert.False(t, e.Monitored, "firstSeason mode must not monitor season 2")
		}
	}
}
