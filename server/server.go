// Package server wires the HTTP surface: library CRUD,
// system/worker control, automation endpoints, and the activity SSE
// stream. Auth, TLS, and route framing beyond this are left to a reverse
// proxy or embedding binary.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/reelforge/reelforge/config"
	"github.com/reelforge/reelforge/pkg/autosearch"
	"github.com/reelforge/reelforge/pkg/catalog"
	"github.com/reelforge/reelforge/pkg/download"
	"github.com/reelforge/reelforge/pkg/importlist"
	"github.com/reelforge/reelforge/pkg/indexer"
	"github.com/reelforge/reelforge/pkg/lifecycle"
	"github.com/reelforge/reelforge/pkg/logger"
	"github.com/reelforge/reelforge/pkg/rss"
	"github.com/reelforge/reelforge/pkg/scheduler"
	"github.com/reelforge/reelforge/pkg/sse"
	"github.com/reelforge/reelforge/pkg/store"
)

// GenericResponse is the envelope every handler returns.
type GenericResponse struct {
	Error    string `json:"error,omitempty"`
	Response any    `json:"response"`
}

// Server holds every collaborator a handler might need.
type Server struct {
	baseLogger *zap.SugaredLogger
	store      store.Store
	catalog    *catalog.Catalog
	autosearch *autosearch.AutoSearch
	rss        *rss.Grabber
	importlist *importlist.Sync
	scheduler  *scheduler.Registry
	lifecycle  *lifecycle.DownloadLifecycle
	activity   *sse.Hub
	indexers   map[string]indexer.Client
	downloads  map[string]download.Client
	config     config.Config
}

// Config wires Server's collaborators.
type Config struct {
	Logger     *zap.SugaredLogger
	Store      store.Store
	Catalog    *catalog.Catalog
	AutoSearch *autosearch.AutoSearch
	RSS        *rss.Grabber
	ImportList *importlist.Sync
	Scheduler  *scheduler.Registry
	Lifecycle  *lifecycle.DownloadLifecycle
	Activity   *sse.Hub
	Indexers   map[string]indexer.Client
	Downloads  map[string]download.Client
	AppConfig  config.Config
}

// New builds a Server from cfg.
func New(cfg Config) *Server {
	return &Server{
		baseLogger: cfg.Logger,
		store:      cfg.Store,
		catalog:    cfg.Catalog,
		autosearch: cfg.AutoSearch,
		rss:        cfg.RSS,
		importlist: cfg.ImportList,
		scheduler:  cfg.Scheduler,
		lifecycle:  cfg.Lifecycle,
		activity:   cfg.Activity,
		indexers:   cfg.Indexers,
		downloads:  cfg.Downloads,
		config:     cfg.AppConfig,
	}
}

func writeErrorResponse(w http.ResponseWriter, status int, err error) {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	writeResponse(w, status, GenericResponse{Error: msg})
}

func writeResponse(w http.ResponseWriter, status int, body any) {
	b, err := json.Marshal(body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("content-type", "application/json")
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	_, _ = w.Write(b)
}

// statusForError maps a store/domain sentinel to its HTTP status;
// anything unrecognized is a 500.
func statusForError(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case isNotFound(err):
		return http.StatusNotFound
	case isConflict(err):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) router() http.Handler {
	rtr := mux.NewRouter()
	rtr.Use(s.logMiddleware())
	rtr.HandleFunc("/healthz", s.Healthz()).Methods(http.MethodGet)
	rtr.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := rtr.PathPrefix("/api").Subrouter()
	v1 := api.PathPrefix("/v1").Subrouter()

	v1.HandleFunc("/library/movies", s.ListMovies()).Methods(http.MethodGet)
	v1.HandleFunc("/library/movies", s.CreateMovie()).Methods(http.MethodPost)
	v1.HandleFunc("/library/movies/{id}", s.GetMovie()).Methods(http.MethodGet)
	v1.HandleFunc("/library/movies/{id}", s.UpdateMovie()).Methods(http.MethodPut)
	v1.HandleFunc("/library/movies/{id}", s.DeleteMovie()).Methods(http.MethodDelete)
	v1.HandleFunc("/library/movies/{id}/search", s.SearchMovie()).Methods(http.MethodPost)
	v1.HandleFunc("/library/movies/bulk/search", s.BulkSearchMovies()).Methods(http.MethodPost)
	v1.HandleFunc("/library/movies/{id}/rename", s.PreviewRenameMovie()).Methods(http.MethodGet)
	v1.HandleFunc("/library/movies/{id}/rename", s.RenameMovie()).Methods(http.MethodPost)
	v1.HandleFunc("/library/movies/{id}/manual-import", s.ManualImportMovie()).Methods(http.MethodPost)

	v1.HandleFunc("/library/series", s.ListSeries()).Methods(http.MethodGet)
	v1.HandleFunc("/library/series", s.CreateSeries()).Methods(http.MethodPost)
	v1.HandleFunc("/library/series/{id}", s.GetSeries()).Methods(http.MethodGet)
	v1.HandleFunc("/library/series/{id}", s.UpdateSeries()).Methods(http.MethodPut)
	v1.HandleFunc("/library/series/{id}", s.DeleteSeries()).Methods(http.MethodDelete)
	v1.HandleFunc("/library/series/{id}/seasons", s.ListSeasons()).Methods(http.MethodGet)
	v1.HandleFunc("/library/series/{id}/episodes", s.ListEpisodes()).Methods(http.MethodGet)
	v1.HandleFunc("/library/episodes/{id}", s.GetEpisode()).Methods(http.MethodGet)
	v1.HandleFunc("/library/episodes/{id}/search", s.SearchEpisode()).Methods(http.MethodPost)
	v1.HandleFunc("/library/episodes/{id}/file", s.GetEpisodeFile()).Methods(http.MethodGet)
	v1.HandleFunc("/library/episodes/{id}/file", s.DeleteEpisodeFile()).Methods(http.MethodDelete)

	v1.HandleFunc("/library/activity/stream", s.ActivityStream()).Methods(http.MethodGet)
	v1.HandleFunc("/library/activity", s.ListActivity()).Methods(http.MethodGet)

	v1.HandleFunc("/system/workers", s.ListWorkers()).Methods(http.MethodGet)
	v1.HandleFunc("/system/workers/{id}", s.GetWorker()).Methods(http.MethodGet)
	v1.HandleFunc("/system/workers/{id}/start", s.StartWorker()).Methods(http.MethodPost)
	v1.HandleFunc("/system/workers/{id}/stop", s.StopWorker()).Methods(http.MethodPost)
	v1.HandleFunc("/system/workers/{id}/restart", s.RestartWorker()).Methods(http.MethodPost)
	v1.HandleFunc("/system/workers/{id}/run-now", s.RunWorkerNow()).Methods(http.MethodPost)
	v1.HandleFunc("/system/workers/{id}/interval", s.SetWorkerInterval()).Methods(http.MethodPut)

	v1.HandleFunc("/system/backup", s.ExportBackup()).Methods(http.MethodGet)
	v1.HandleFunc("/system/backup/preview", s.PreviewBackup()).Methods(http.MethodGet)
	v1.HandleFunc("/system/backup/restore", s.RestoreBackup()).Methods(http.MethodPost)

	v1.HandleFunc("/automation/indexers", s.ListIndexerConfigs()).Methods(http.MethodGet)
	v1.HandleFunc("/automation/indexers", s.CreateIndexerConfig()).Methods(http.MethodPost)
	v1.HandleFunc("/automation/indexers/{id}", s.UpdateIndexerConfig()).Methods(http.MethodPut)
	v1.HandleFunc("/automation/indexers/{id}", s.DeleteIndexerConfig()).Methods(http.MethodDelete)

	v1.HandleFunc("/automation/download-clients", s.ListDownloadClientConfigs()).Methods(http.MethodGet)
	v1.HandleFunc("/automation/download-clients", s.CreateDownloadClientConfig()).Methods(http.MethodPost)
	v1.HandleFunc("/automation/download-clients/{id}", s.UpdateDownloadClientConfig()).Methods(http.MethodPut)
	v1.HandleFunc("/automation/download-clients/{id}", s.DeleteDownloadClientConfig()).Methods(http.MethodDelete)

	v1.HandleFunc("/automation/import-lists", s.ListImportLists()).Methods(http.MethodGet)
	v1.HandleFunc("/automation/import-lists", s.CreateImportList()).Methods(http.MethodPost)
	v1.HandleFunc("/automation/import-lists/{id}", s.DeleteImportList()).Methods(http.MethodDelete)

	v1.HandleFunc("/automation/blacklist", s.AddToBlacklist()).Methods(http.MethodPost)
	v1.HandleFunc("/automation/search", s.TriggerSearch()).Methods(http.MethodPost)
	v1.HandleFunc("/automation/downloads", s.ListActiveDownloads()).Methods(http.MethodGet)

	return handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		handlers.ExposedHeaders([]string{"Content-Length"}),
		handlers.MaxAge(3600),
	)(rtr)
}

// Serve starts the HTTP server and blocks until an interrupt signal is
// received, then drains in-flight requests before returning.
func (s *Server) Serve(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		s.baseLogger.Infow("serving", "port", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.baseLogger.Errorw("server error", "err", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	select {
	case <-c:
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.baseLogger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

// Healthz is a liveness probe endpoint.
func (s *Server) Healthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeResponse(w, http.StatusOK, GenericResponse{Response: "ok"})
	}
}

func (s *Server) logMiddleware() mux.MiddlewareFunc {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := s.baseLogger.With("path", r.URL.Path, "method", r.Method)
			h.ServeHTTP(w, r.WithContext(logger.WithCtx(r.Context(), log)))
		})
	}
}
