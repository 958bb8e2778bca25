package lifecycle_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelforge/reelforge/pkg/catalog"
	"github.com/reelforge/reelforge/pkg/download"
	libio "github.com/reelforge/reelforge/pkg/io"
	"github.com/reelforge/reelforge/pkg/lifecycle"
	"github.com/reelforge/reelforge/pkg/mediainfo"
	"github.com/reelforge/reelforge/pkg/notify"
	"github.com/reelforge/reelforge/pkg/store"
	"github.com/reelforge/reelforge/pkg/store/sqlite"
	"github.com/reelforge/reelforge/pkg/store/sqlite/schema/gen/model"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	s, err := sqlite.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.Init(context.Background()))
	return s
}

// fakeClient reports a single job, fixed at construction, keyed by ClientID.
type fakeClient struct {
	job download.Job
}

func (f *fakeClient) Add(ctx context.Context, req download.AddRequest) (download.AddResult, error) {
	return download.AddResult{OK: true, ClientID: f.job.ClientID}, nil
}

func (f *fakeClient) List(ctx context.Context, category string) ([]download.Job, error) {
	return []download.Job{f.job}, nil
}

func (f *fakeClient) Remove(ctx context.Context, clientID string, deleteFiles bool) error {
	return nil
}

// fakeProbe reports a fixed mediainfo.Info regardless of path, standing in
// for a real ffprobe shell-out.
type fakeProbe struct {
	info mediainfo.Info
}

func (f *fakeProbe) Probe(ctx context.Context, path string) (mediainfo.Info, error) {
	return f.info, nil
}

// fakeNotifier records delivered events without posting anywhere.
type fakeNotifier struct {
	events []notify.Event
}

func (f *fakeNotifier) Notify(ctx context.Context, event notify.Event) {
	f.events = append(f.events, event)
}

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
}

func TestRunOnce_ImportsCompletedMovie(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	c := catalog.New(s)
	tmp := t.TempDir()

	libraryRoot := filepath.Join(tmp, "library", "Fight Club (1999)")
	sourceDir := filepath.Join(tmp, "downloads", "Fight.Club.1999.1080p.BluRay-GROUP")
	sourcePath := filepath.Join(sourceDir, "Fight.Club.1999.1080p.BluRay-GROUP.mkv")
	writeFile(t, sourcePath, 2048)

	movieID, err := c.CreateMovie(ctx, model.Movie{
		TmdbID: int32Ptr(550), Title: "Fight Club", Year: 1999,
		MinimumAvailability: "released", Status: "released", Monitored: true,
		FolderPath: &libraryRoot,
	})
	require.NoError(t, err)

	downloadID, err := s.CreateDownload(ctx, model.Download{
		MediaType: string(store.MediaMovie), MovieID: int32Ptr(int32(movieID)), Title: "Fight.Club.1999.1080p.BluRay-GROUP",
		Status: "downloading", ClientJobID: "job-1",
	})
	require.NoError(t, err)

	client := &fakeClient{job: download.Job{ClientID: "job-1", Done: true, Progress: 100, FilePaths: []string{sourcePath}}}
	notifier := &fakeNotifier{}

	lc := lifecycle.New(lifecycle.Config{
		Store:    s,
		Catalog:  c,
		Clients:  map[string]download.Client{download.ProtocolTorrent: client},
		Probe:    &fakeProbe{info: mediainfo.Info{Quality: "Bluray-1080p"}},
		FileIO:   &libio.MediaFileSystem{},
		Notifier: notifier,
	})

	result, err := lc.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Polled)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 0, result.Failed)

	movie, err := s.GetMovie(ctx, movieID)
	require.NoError(t, err)
	assert.True(t, movie.HasFile)
	require.NotNil(t, movie.FilePath)
	assert.FileExists(t, *movie.FilePath)
	assert.Equal(t, "Bluray-1080p", *movie.Quality)

	d, err := s.GetDownload(ctx, downloadID)
	require.NoError(t, err)
	assert.Equal(t, "completed", d.Status)

	require.Len(t, notifier.events, 1)
	assert.Equal(t, notify.EventImported, notifier.events[0].Type)

	// Torrent clients always keep their source file for seeding.
	assert.FileExists(t, sourcePath)
}

func TestRunOnce_ImportsEpisodeIntoSeasonFolder(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	c := catalog.New(s)
	tmp := t.TempDir()

	libraryRoot := filepath.Join(tmp, "library", "Breaking Bad")
	sourceDir := filepath.Join(tmp, "downloads", "Breaking.Bad.S01E01.1080p-GROUP")
	sourcePath := filepath.Join(sourceDir, "Breaking.Bad.S01E01.1080p-GROUP.mkv")
	writeFile(t, sourcePath, 4096)

	seriesID, err := c.CreateSeries(ctx, model.Series{
		Title: "Breaking Bad", Year: 2008, SeriesType: "standard",
		UseSeasonFolder: true, Monitored: true, FolderPath: &libraryRoot,
	})
	require.NoError(t, err)

	episodeID, err := c.CreateEpisode(ctx, model.Episode{
		SeriesID: int32(seriesID), SeasonNumber: 1, EpisodeNumber: 1,
		Title: "Pilot", Monitored: true,
	})
	require.NoError(t, err)

	downloadID, err := s.CreateDownload(ctx, model.Download{
		MediaType: string(store.MediaSeries), EpisodeID: int32Ptr(int32(episodeID)),
		Title: "Breaking.Bad.S01E01.1080p-GROUP", Status: "downloading", ClientJobID: "job-2",
	})
	require.NoError(t, err)

	client := &fakeClient{job: download.Job{ClientID: "job-2", Done: true, Progress: 100, FilePaths: []string{sourcePath}}}

	lc := lifecycle.New(lifecycle.Config{
		Store:    s,
		Catalog:  c,
		Clients:  map[string]download.Client{download.ProtocolTorrent: client},
		Probe:    nil,
		FileIO:   &libio.MediaFileSystem{},
		Notifier: &fakeNotifier{},
	})

	result, err := lc.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)

	e, err := s.GetEpisode(ctx, episodeID)
	require.NoError(t, err)
	require.NotNil(t, e.FilePath)
	assert.Contains(t, *e.FilePath, filepath.Join("Season 01"))
	assert.FileExists(t, *e.FilePath)

	d, err := s.GetDownload(ctx, downloadID)
	require.NoError(t, err)
	assert.Equal(t, "completed", d.Status)
}

func TestRunOnce_ReimportOfIdenticalFileIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	c := catalog.New(s)
	tmp := t.TempDir()

	libraryRoot := filepath.Join(tmp, "library", "Fight Club (1999)")
	destPath := filepath.Join(libraryRoot, "Fight Club (1999) Bluray-1080p.mkv")
	writeFile(t, destPath, 2048)

	sourceDir := filepath.Join(tmp, "downloads", "Fight.Club.1999.1080p.BluRay-GROUP")
	sourcePath := filepath.Join(sourceDir, "Fight.Club.1999.1080p.BluRay-GROUP.mkv")
	writeFile(t, sourcePath, 2048)

	movieID, err := c.CreateMovie(ctx, model.Movie{
		TmdbID: int32Ptr(550), Title: "Fight Club", Year: 1999,
		MinimumAvailability: "released", Status: "released", Monitored: true,
		FolderPath: &libraryRoot,
	})
	require.NoError(t, err)

	_, err = s.CreateDownload(ctx, model.Download{
		MediaType: string(store.MediaMovie), MovieID: int32Ptr(int32(movieID)), Title: "Fight.Club.1999.1080p.BluRay-GROUP",
		Status: "downloading", ClientJobID: "job-3",
	})
	require.NoError(t, err)

	client := &fakeClient{job: download.Job{ClientID: "job-3", Done: true, Progress: 100, FilePaths: []string{sourcePath}}}

	lc := lifecycle.New(lifecycle.Config{
		Store:    s,
		Catalog:  c,
		Clients:  map[string]download.Client{download.ProtocolTorrent: client},
		FileIO:   &libio.MediaFileSystem{},
		Notifier: &fakeNotifier{},
	})

	result, err := lc.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 0, result.Failed)

	// The pre-existing destination of identical size was left untouched
	// (treated as already-imported) rather than erroring or re-copying.
	assert.FileExists(t, destPath)
}

func TestRunOnce_NoVideoFileMarksDownloadFailed(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	c := catalog.New(s)
	tmp := t.TempDir()

	libraryRoot := filepath.Join(tmp, "library", "Fight Club (1999)")
	sourceDir := filepath.Join(tmp, "downloads", "Fight.Club.1999.1080p.BluRay-GROUP")
	nfoPath := filepath.Join(sourceDir, "release.nfo")
	writeFile(t, nfoPath, 128)

	movieID, err := c.CreateMovie(ctx, model.Movie{
		TmdbID: int32Ptr(550), Title: "Fight Club", Year: 1999,
		MinimumAvailability: "released", Status: "released", Monitored: true,
		FolderPath: &libraryRoot,
	})
	require.NoError(t, err)

	downloadID, err := s.CreateDownload(ctx, model.Download{
		MediaType: string(store.MediaMovie), MovieID: int32Ptr(int32(movieID)), Title: "Fight.Club.1999.1080p.BluRay-GROUP",
		Status: "downloading", ClientJobID: "job-4",
	})
	require.NoError(t, err)

	client := &fakeClient{job: download.Job{ClientID: "job-4", Done: true, Progress: 100, FilePaths: []string{nfoPath}}}

	lc := lifecycle.New(lifecycle.Config{
		Store:    s,
		Catalog:  c,
		Clients:  map[string]download.Client{download.ProtocolTorrent: client},
		FileIO:   &libio.MediaFileSystem{},
		Notifier: &fakeNotifier{},
	})

	result, err := lc.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 0, result.Imported)

	d, err := s.GetDownload(ctx, downloadID)
	require.NoError(t, err)
	assert.Equal(t, "failed", d.Status)
	assert.Equal(t, lifecycle.ErrCodeNoVideo, d.ErrorMessage)
}

func TestRunOnce_UsenetKeepSourceFilesFalseDeletesSource(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	c := catalog.New(s)
	tmp := t.TempDir()

	libraryRoot := filepath.Join(tmp, "library", "Fight Club (1999)")
	sourceDir := filepath.Join(tmp, "downloads", "Fight.Club.1999.1080p.NZB-GROUP")
	sourcePath := filepath.Join(sourceDir, "Fight.Club.1999.1080p.NZB-GROUP.mkv")
	writeFile(t, sourcePath, 2048)

	_, err := s.CreateDownloadClientConfig(ctx, store.DownloadClientConfig{
		Name: "sab", Kind: "sabnzbd", Protocol: download.ProtocolUsenet, Enabled: true,
		KeepSourceFiles: false,
	})
	require.NoError(t, err)

	movieID, err := c.CreateMovie(ctx, model.Movie{
		TmdbID: int32Ptr(550), Title: "Fight Club", Year: 1999,
		MinimumAvailability: "released", Status: "released", Monitored: true,
		FolderPath: &libraryRoot,
	})
	require.NoError(t, err)

	_, err = s.CreateDownload(ctx, model.Download{
		MediaType: string(store.MediaMovie), MovieID: int32Ptr(int32(movieID)), Title: "Fight.Club.1999.1080p.NZB-GROUP",
		Status: "downloading", ClientJobID: "job-5",
	})
	require.NoError(t, err)

	client := &fakeClient{job: download.Job{ClientID: "job-5", Done: true, Progress: 100, FilePaths: []string{sourcePath}}}

	lc := lifecycle.New(lifecycle.Config{
		Store:    s,
		Catalog:  c,
		Clients:  map[string]download.Client{download.ProtocolUsenet: client},
		FileIO:   &libio.MediaFileSystem{},
		Notifier: &fakeNotifier{},
	})

	result, err := lc.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)

	assert.NoFileExists(t, sourcePath)
	_, statErr := os.Stat(sourceDir)
	assert.True(t, os.IsNotExist(statErr), "emptied source directory should be cleaned up")
}

func int32Ptr(v int32) *int32 { return &v }
