package cmd

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/reelforge/reelforge/config"
	"github.com/reelforge/reelforge/pkg/autosearch"
	"github.com/reelforge/reelforge/pkg/catalog"
	"github.com/reelforge/reelforge/pkg/download"
	"github.com/reelforge/reelforge/pkg/download/sabnzbd"
	"github.com/reelforge/reelforge/pkg/download/transmission"
	"github.com/reelforge/reelforge/pkg/httpclient"
	"github.com/reelforge/reelforge/pkg/importlist"
	"github.com/reelforge/reelforge/pkg/indexer"
	"github.com/reelforge/reelforge/pkg/indexer/prowlarr"
	libio "github.com/reelforge/reelforge/pkg/io"
	"github.com/reelforge/reelforge/pkg/library"
	"github.com/reelforge/reelforge/pkg/lifecycle"
	"github.com/reelforge/reelforge/pkg/logger"
	"github.com/reelforge/reelforge/pkg/mediainfo/ffprobe"
	"github.com/reelforge/reelforge/pkg/metadata/tmdb"
	"github.com/reelforge/reelforge/pkg/notify"
	"github.com/reelforge/reelforge/pkg/quality"
	"github.com/reelforge/reelforge/pkg/release"
	"github.com/reelforge/reelforge/pkg/rss"
	"github.com/reelforge/reelforge/pkg/scheduler"
	"github.com/reelforge/reelforge/pkg/sse"
	"github.com/reelforge/reelforge/pkg/store"
	"github.com/reelforge/reelforge/pkg/store/sqlite"
	"github.com/reelforge/reelforge/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "run the reelforge HTTP server and background workers",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New(viper.GetViper())
		if err != nil {
			return fmt.Errorf("read configuration: %w", err)
		}
		if cfg.Log.Level != "" {
			_ = os.Setenv("LOG_LEVEL", cfg.Log.Level)
		}

		log := logger.Get()
		ctx := context.Background()

		s, err := sqlite.New(cfg.Storage.FilePath)
		if err != nil {
			return fmt.Errorf("open storage: %w", err)
		}
		if err := s.Init(ctx); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}

		cat := catalog.New(s)

		indexerClient, err := buildIndexerClient(cfg)
		if err != nil {
			return fmt.Errorf("build indexer client: %w", err)
		}

		downloadClients, err := buildDownloadClients(ctx, s)
		if err != nil {
			return fmt.Errorf("build download clients: %w", err)
		}

		metadataProvider, err := tmdb.New(tmdb.Config{
			BaseURL: (&url.URL{Scheme: cfg.TMDB.Scheme, Host: cfg.TMDB.Host}).String(),
			APIKey:  cfg.TMDB.APIKey,
		})
		if err != nil {
			return fmt.Errorf("build tmdb client: %w", err)
		}

		notifier := notify.New(notify.Config{})
		probe := ffprobe.New("ffprobe")
		matcher := release.NewMatcher()
		scorer := quality.NewFormatScorer()
		fileio := &libio.MediaFileSystem{}
		activity := sse.New()

		search := autosearch.New(autosearch.Config{
			Store:           s,
			Indexer:         indexerClient,
			DownloadClients: downloadClients,
			Notifier:        notifier,
			Matcher:         matcher,
			Scorer:          scorer,
		})

		rssGrabber := rss.New(rss.Config{
			Store:      s,
			Indexer:    indexerClient,
			AutoSearch: search,
			Matcher:    matcher,
		})

		httpc := httpclient.New()
		importSync := importlist.New(importlist.Config{
			Store:      s,
			Catalog:    cat,
			Metadata:   metadataProvider,
			AutoSearch: search,
			Sources: map[string]importlist.Source{
				"tmdb_list": importlist.NewJSONListSource(httpc),
				"html":      importlist.NewHTMLListSource(httpc, "a.title", "data-id"),
			},
		})

		downloadLifecycle := lifecycle.New(lifecycle.Config{
			Store:       s,
			Catalog:     cat,
			Clients:     downloadClients,
			Probe:       probe,
			FileIO:      fileio,
			Notifier:    notifier,
			Broadcaster: activity,
		})

		mediaLibrary := library.New(
			library.FileSystem{FS: os.DirFS(cfg.Library.MovieDir), Path: cfg.Library.MovieDir},
			library.FileSystem{FS: os.DirFS(cfg.Library.TVDir), Path: cfg.Library.TVDir},
			fileio,
		)

		registry, err := scheduler.New(workerStatePersister{s})
		if err != nil {
			return fmt.Errorf("build scheduler: %w", err)
		}
		backupDir := filepath.Join(filepath.Dir(cfg.Storage.FilePath), "backups")
		registerWorkers(registry, cfg.Scheduler.Defaults(), downloadLifecycle, rssGrabber, importSync, search, mediaLibrary, metadataProvider, backupDir, s, log)

		srv := server.New(server.Config{
			Logger:     log,
			Store:      s,
			Catalog:    cat,
			AutoSearch: search,
			RSS:        rssGrabber,
			ImportList: importSync,
			Scheduler:  registry,
			Lifecycle:  downloadLifecycle,
			Activity:   activity,
			Indexers:   map[string]indexer.Client{"prowlarr": indexerClient},
			Downloads:  downloadClients,
			AppConfig:  cfg,
		})

		return srv.Serve(ctx, cfg.Server.Port)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// workerStatePersister adapts scheduler.PersistedState to store.WorkerState
// so pkg/scheduler never needs to import pkg/store directly.
type workerStatePersister struct {
	store store.Store
}

func (p workerStatePersister) UpsertWorkerState(ctx context.Context, s scheduler.PersistedState) error {
	var lastRun *time.Time
	if !s.LastRunAt.IsZero() {
		t := s.LastRunAt
		lastRun = &t
	}
	return p.store.UpsertWorkerState(ctx, store.WorkerState{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		IntervalMS:  s.Interval.Milliseconds(),
		Status:      s.Status,
		LastRunAt:   lastRun,
		LastError:   s.LastError,
		SkipInitial: s.SkipInitialRun,
	})
}

func buildIndexerClient(cfg config.Config) (indexer.Client, error) {
	return prowlarr.New(prowlarr.Config{
		BaseURL:    (&url.URL{Scheme: cfg.Prowlarr.Scheme, Host: cfg.Prowlarr.Host}).String(),
		APIKey:     cfg.Prowlarr.APIKey,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	})
}

// buildDownloadClients constructs one download.Client per enabled,
// store-configured download client, keyed by protocol. Only one client per
// protocol is kept since every collaborator that consumes this map
// (AutoSearch, RSSGrabber, DownloadLifecycle) addresses a client by its
// protocol, not its store row id.
func buildDownloadClients(ctx context.Context, s store.Store) (map[string]download.Client, error) {
	configs, err := s.ListDownloadClientConfigs(ctx)
	if err != nil {
		return nil, err
	}

	clients := map[string]download.Client{}
	httpClient := &http.Client{Timeout: 30 * time.Second}
	for _, c := range configs {
		if !c.Enabled {
			continue
		}
		switch c.Protocol {
		case download.ProtocolTorrent:
			clients[download.ProtocolTorrent] = transmission.New(httpClient, "http", c.Host, int(c.Port))
		case download.ProtocolUsenet:
			clients[download.ProtocolUsenet] = sabnzbd.New(httpClient, "http", c.Host, c.Password)
		}
	}
	return clients, nil
}
