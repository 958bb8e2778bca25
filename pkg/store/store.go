// Package store defines the persistence boundary for reelforge's catalog,
// quality, download, and configuration state. Sqlite is the only
// implementation, but callers depend on this interface so other layers never
// import database/sql directly.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/reelforge/reelforge/pkg/store/sqlite/schema/gen/model"
)

// ErrNotFound is returned by Get-style methods when no row matches.
var ErrNotFound = errors.New("store: not found")

// ErrConflict is returned when a write would violate a uniqueness invariant,
// e.g. grabbing a release URL that already has an active download.
var ErrConflict = errors.New("store: conflict")

// MediaType distinguishes movie from series/episode records across tables
// that are shared between both (exclusion, custom format, quality profile).
type MediaType string

const (
	MediaMovie  MediaType = "movie"
	MediaSeries MediaType = "series"
)

// Store is the full repository surface. Primary entities (movie, episode,
// download, quality profile/definition/item) are backed by go-jet generated
// query builders; peripheral configuration and log tables are backed by
// hand-written parameterized SQL. Callers should not care which.
type Store interface {
	Init(ctx context.Context) error
	MigrationVersion() (version uint, dirty bool, err error)
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error

	MovieStore
	SeriesStore
	EpisodeStore
	QualityStore
	CustomFormatStore
	DownloadStore
	ExclusionStore
	BlacklistStore
	ActivityStore
	RSSCacheStore
	ImportListStore
	NamingConfigStore
	IndexerConfigStore
	DownloadClientConfigStore
	WorkerStateStore
}

type MovieStore interface {
	CreateMovie(ctx context.Context, m model.Movie) (int64, error)
	GetMovie(ctx context.Context, id int64) (*model.Movie, error)
	GetMovieByTmdbID(ctx context.Context, tmdbID int32) (*model.Movie, error)
	ListMovies(ctx context.Context) ([]*model.Movie, error)
	ListMoviesMonitored(ctx context.Context) ([]*model.Movie, error)
	ListMoviesMissing(ctx context.Context) ([]*model.Movie, error)
	UpdateMovie(ctx context.Context, m model.Movie) error
	DeleteMovie(ctx context.Context, id int64) error
}

type SeriesStore interface {
	CreateSeries(ctx context.Context, s model.Series) (int64, error)
	GetSeries(ctx context.Context, id int64) (*model.Series, error)
	GetSeriesByTvdbID(ctx context.Context, tvdbID int32) (*model.Series, error)
	GetSeriesByTmdbID(ctx context.Context, tmdbID int32) (*model.Series, error)
	ListSeries(ctx context.Context) ([]*model.Series, error)
	UpdateSeries(ctx context.Context, s model.Series) error
	DeleteSeries(ctx context.Context, id int64) error

	UpsertSeason(ctx context.Context, seriesID int64, seasonNumber int32, monitored bool) (int64, error)
	ListSeasons(ctx context.Context, seriesID int64) ([]Season, error)
	SetSeasonMonitored(ctx context.Context, seriesID int64, seasonNumber int32, monitored bool) error
}

// Season has no dedicated go-jet model; it is a narrow projection used only
// by the cascading monitor operations.
type Season struct {
	ID           int64
	SeriesID     int64
	SeasonNumber int32
	Monitored    bool
}

type EpisodeStore interface {
	CreateEpisode(ctx context.Context, e model.Episode) (int64, error)
	GetEpisode(ctx context.Context, id int64) (*model.Episode, error)
	ListEpisodes(ctx context.Context, seriesID int64) ([]*model.Episode, error)
	ListEpisodesBySeason(ctx context.Context, seriesID int64, seasonNumber int32) ([]*model.Episode, error)
	ListEpisodesMissing(ctx context.Context) ([]*model.Episode, error)
	UpdateEpisode(ctx context.Context, e model.Episode) error
	DeleteEpisode(ctx context.Context, id int64) error
}

type QualityStore interface {
	CreateQualityDefinition(ctx context.Context, d model.QualityDefinition) (int64, error)
	ListQualityDefinitions(ctx context.Context) ([]*model.QualityDefinition, error)
	UpdateQualityDefinition(ctx context.Context, d model.QualityDefinition) error
	DeleteQualityDefinition(ctx context.Context, id int64) error

	CreateQualityProfile(ctx context.Context, p model.QualityProfile) (int64, error)
	GetQualityProfile(ctx context.Context, id int64) (*model.QualityProfile, error)
	ListQualityProfiles(ctx context.Context) ([]*model.QualityProfile, error)
	UpdateQualityProfile(ctx context.Context, p model.QualityProfile) error
	DeleteQualityProfile(ctx context.Context, id int64) error

	CreateQualityProfileItem(ctx context.Context, item model.QualityProfileItem) (int64, error)
	ListQualityProfileItems(ctx context.Context, profileID int64) ([]*model.QualityProfileItem, error)
	DeleteQualityProfileItemsForProfile(ctx context.Context, profileID int64) error
}

type CustomFormatStore interface {
	CreateCustomFormat(ctx context.Context, name, expression string, score int32) (int64, error)
	ListCustomFormats(ctx context.Context) ([]CustomFormat, error)
	DeleteCustomFormat(ctx context.Context, id int64) error

	SetCustomFormatProfileScore(ctx context.Context, customFormatID, profileID int64, score int32) error
	ListCustomFormatProfileScores(ctx context.Context, profileID int64) (map[int64]int32, error)
}

// CustomFormat mirrors the custom_format table; it has no go-jet model
// because it is managed with raw SQL alongside its join table.
type CustomFormat struct {
	ID         int64
	Name       string
	Expression string
	Score      int32
}

type DownloadStore interface {
	CreateDownload(ctx context.Context, d model.Download) (int64, error)
	GetDownload(ctx context.Context, id int64) (*model.Download, error)
	GetActiveDownloadByURL(ctx context.Context, url string) (*model.Download, error)
	ListDownloadsByStatus(ctx context.Context, status string) ([]*model.Download, error)
	UpdateDownloadStatus(ctx context.Context, id int64, status string, progress float64, errMsg string) error
	UpdateDownloadClientJobID(ctx context.Context, id int64, clientID, clientJobID string) error
	DeleteDownload(ctx context.Context, id int64) error
}

type ExclusionStore interface {
	AddExclusion(ctx context.Context, tmdbID int64, mediaType MediaType) error
	IsExcluded(ctx context.Context, tmdbID int64, mediaType MediaType) (bool, error)
	RemoveExclusion(ctx context.Context, tmdbID int64, mediaType MediaType) error
}

type BlacklistStore interface {
	AddToBlacklist(ctx context.Context, releaseTitle string, mediaType MediaType, movieID, episodeID *int64) error
	IsBlacklisted(ctx context.Context, releaseTitle string, movieID, episodeID *int64) (bool, error)
}

// ActivityEntry mirrors activity_log; it is written far more often than
// queried in structured form, so it has no go-jet model either.
type ActivityEntry struct {
	ID         int64
	EntityType string
	EntityID   int64
	EventType  string
	Message    string
	Details    string
	CreatedAt  time.Time
}

type ActivityStore interface {
	LogActivity(ctx context.Context, e ActivityEntry) error
	ListActivity(ctx context.Context, entityType string, entityID int64, limit int) ([]ActivityEntry, error)
	ListRecentActivity(ctx context.Context, limit int) ([]ActivityEntry, error)
	PruneActivityOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// RSSCacheEntry mirrors rss_release_cache.
type RSSCacheEntry struct {
	ID          int64
	IndexerID   int64
	GUID        string
	Title       string
	DownloadURL string
	Size        int64
	PublishDate *time.Time
	Processed   bool
	Grabbed     bool
}

type RSSCacheStore interface {
	InsertRSSEntry(ctx context.Context, e RSSCacheEntry) (int64, bool, error)
	MarkRSSProcessed(ctx context.Context, id int64, grabbed bool) error
	PruneRSSCacheOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// ImportListConfig mirrors import_list.
type ImportListConfig struct {
	ID                     int64
	Type                   string
	MediaType              MediaType
	Enabled                bool
	ListID                 string
	URL                    string
	QualityProfileID       *int64
	RootFolder             string
	MonitorMode            string
	MinimumAvailability    string
	SearchOnAdd            bool
	RefreshIntervalMinutes int32
	LastSync               *time.Time
}

type ImportListStore interface {
	CreateImportList(ctx context.Context, c ImportListConfig) (int64, error)
	ListImportLists(ctx context.Context) ([]ImportListConfig, error)
	UpdateImportListLastSync(ctx context.Context, id int64, at time.Time) error
	DeleteImportList(ctx context.Context, id int64) error
}

// NamingConfig mirrors the singleton naming_config row.
type NamingConfig struct {
	MovieFileFormat       string
	MovieFolderFormat     string
	StandardEpisodeFormat string
	DailyEpisodeFormat    string
	AnimeEpisodeFormat    string
	SeriesFolderFormat    string
	SeasonFolderFormat    string
	SpecialsFolderFormat  string
	ColonReplacement      string
	MultiEpisodeStyle     string
}

type NamingConfigStore interface {
	GetNamingConfig(ctx context.Context) (NamingConfig, error)
	UpdateNamingConfig(ctx context.Context, c NamingConfig) error
}

// IndexerConfig mirrors indexer_config.
type IndexerConfig struct {
	ID         int64
	Name       string
	URI        string
	APIKey     string
	Priority   int32
	Categories []int
	Enabled    bool
	RSSEnabled bool
}

type IndexerConfigStore interface {
	CreateIndexerConfig(ctx context.Context, c IndexerConfig) (int64, error)
	ListIndexerConfigs(ctx context.Context) ([]IndexerConfig, error)
	UpdateIndexerConfig(ctx context.Context, c IndexerConfig) error
	DeleteIndexerConfig(ctx context.Context, id int64) error
}

// DownloadClientConfig mirrors download_client_config.
type DownloadClientConfig struct {
	ID       int64
	Name     string
	Kind     string
	Host     string
	Port     int32
	Username string
	Password string
	Category string
	Protocol string
	Enabled  bool
	// KeepSourceFiles, when true, tells the importer to leave the source
	// file/directory in place after a successful import instead of deleting
	// it — relevant for clients (e.g. a seeding torrent client) where
	// removing the source would break seeding.
	KeepSourceFiles bool
}

type DownloadClientConfigStore interface {
	CreateDownloadClientConfig(ctx context.Context, c DownloadClientConfig) (int64, error)
	ListDownloadClientConfigs(ctx context.Context) ([]DownloadClientConfig, error)
	UpdateDownloadClientConfig(ctx context.Context, c DownloadClientConfig) error
	DeleteDownloadClientConfig(ctx context.Context, id int64) error
}

// WorkerState mirrors the worker table, a durable mirror of pkg/scheduler's
// in-memory registry so the last-known status survives a restart.
type WorkerState struct {
	ID           string
	Name         string
	Description  string
	IntervalMS   int64
	Status       string
	LastRunAt    *time.Time
	LastError    string
	SkipInitial  bool
}

type WorkerStateStore interface {
	UpsertWorkerState(ctx context.Context, w WorkerState) error
	ListWorkerStates(ctx context.Context) ([]WorkerState, error)
}
