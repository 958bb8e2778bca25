package server

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/reelforge/reelforge/pkg/logger"
	"github.com/reelforge/reelforge/pkg/store/sqlite/schema/gen/model"
)

func idFromPath(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

// movieWithStatus is one list row: the movie plus the status of its active
// download, if it has one in flight.
type movieWithStatus struct {
	*model.Movie
	DownloadStatus string `json:"downloadStatus,omitempty"`
}

// ListMovies returns the movie library, filterable by monitored/missing and
// paged with limit/offset. Each row carries its active download's status.
func (s *Server) ListMovies() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())
		movies, err := s.store.ListMovies(r.Context())
		if err != nil {
			log.Errorw("list movies", "err", err)
			writeErrorResponse(w, statusForError(err), err)
			return
		}

		q := r.URL.Query()
		filtered := movies[:0:0]
		for _, m := range movies {
			if v := q.Get("monitored"); v != "" && strconv.FormatBool(m.Monitored) != v {
				continue
			}
			if v := q.Get("missing"); v != "" && strconv.FormatBool(!m.HasFile) != v {
				continue
			}
			filtered = append(filtered, m)
		}

		offset, _ := strconv.Atoi(q.Get("offset"))
		if offset < 0 || offset > len(filtered) {
			offset = len(filtered)
		}
		limit, _ := strconv.Atoi(q.Get("limit"))
		end := len(filtered)
		if limit > 0 && offset+limit < end {
			end = offset + limit
		}
		page := filtered[offset:end]

		statuses, err := s.activeDownloadStatuses(r.Context())
		if err != nil {
			log.Warnw("list movies: active download lookup failed", "err", err)
		}

		rows := make([]movieWithStatus, 0, len(page))
		for _, m := range page {
			rows = append(rows, movieWithStatus{Movie: m, DownloadStatus: statuses[m.ID]})
		}
		writeResponse(w, http.StatusOK, GenericResponse{Response: map[string]any{
			"items": rows,
			"total": len(filtered),
		}})
	}
}

// activeDownloadStatuses maps movie id to the status of its in-flight
// download, covering every non-terminal download state.
func (s *Server) activeDownloadStatuses(ctx context.Context) (map[int32]string, error) {
	statuses := map[int32]string{}
	for _, state := range []string{"queued", "downloading", "importing"} {
		downloads, err := s.store.ListDownloadsByStatus(ctx, state)
		if err != nil {
			return nil, err
		}
		for _, d := range downloads {
			if d.MovieID != nil {
				statuses[*d.MovieID] = d.Status
			}
		}
	}
	return statuses, nil
}

// GetMovie returns one movie by id.
func (s *Server) GetMovie() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idFromPath(r)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}
		m, err := s.store.GetMovie(r.Context(), id)
		if err != nil {
			writeErrorResponse(w, statusForError(err), err)
			return
		}
		writeResponse(w, http.StatusOK, GenericResponse{Response: m})
	}
}

// CreateMovie adds a movie to the library for monitoring.
func (s *Server) CreateMovie() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())
		var m model.Movie
		if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}
		id, err := s.catalog.CreateMovie(r.Context(), m)
		if err != nil {
			log.Errorw("create movie", "err", err)
			writeErrorResponse(w, statusForError(err), err)
			return
		}
		m.ID = int32(id)
		writeResponse(w, http.StatusCreated, GenericResponse{Response: m})
	}
}

// UpdateMovie updates a movie's monitored state, quality profile, or
// metadata fields.
func (s *Server) UpdateMovie() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idFromPath(r)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}
		var m model.Movie
		if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}
		m.ID = int32(id)
		if err := s.store.UpdateMovie(r.Context(), m); err != nil {
			writeErrorResponse(w, statusForError(err), err)
			return
		}
		writeResponse(w, http.StatusOK, GenericResponse{Response: m})
	}
}

// DeleteMovie removes a movie from the library, optionally excluding it
// from future import-list auto-adds.
func (s *Server) DeleteMovie() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idFromPath(r)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}
		exclude := r.URL.Query().Get("addExclusion") == "true" || r.URL.Query().Get("exclude") == "true"
		deleteFiles := r.URL.Query().Get("deleteFiles") == "true"

		m, err := s.store.GetMovie(r.Context(), id)
		if err != nil {
			writeErrorResponse(w, statusForError(err), err)
			return
		}
		var tmdbID int32
		if m.TmdbID != nil {
			tmdbID = *m.TmdbID
		}
		if deleteFiles && m.HasFile && m.FilePath != nil {
			if err := os.Remove(*m.FilePath); err != nil && !os.IsNotExist(err) {
				logger.FromCtx(r.Context()).Warnw("delete movie: file removal failed", "path", *m.FilePath, "err", err)
			}
		}
		if err := s.catalog.DeleteMovie(r.Context(), id, tmdbID, exclude); err != nil {
			writeErrorResponse(w, statusForError(err), err)
			return
		}
		writeResponse(w, http.StatusOK, GenericResponse{Response: "deleted"})
	}
}

// SearchMovie triggers an immediate manual search and grab for one movie.
func (s *Server) SearchMovie() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())
		id, err := idFromPath(r)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}
		forceUpgrade := r.URL.Query().Get("force_upgrade") == "true"

		outcome, err := s.autosearch.SearchAndDownloadMovie(r.Context(), id, forceUpgrade)
		if err != nil {
			log.Errorw("search movie", "movie_id", id, "err", err)
			writeErrorResponse(w, http.StatusInternalServerError, err)
			return
		}
		writeResponse(w, http.StatusOK, GenericResponse{Response: outcome})
	}
}

// BulkSearchMovies searches every missing or cutoff-unmet movie, depending
// on the "mode" query parameter ("missing" or "cutoff").
func (s *Server) BulkSearchMovies() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const concurrency = 5
		mode := r.URL.Query().Get("mode")

		var (
			result any
			err    error
		)
		switch mode {
		case "cutoff":
			result, err = s.autosearch.SearchAllCutoffUnmet(r.Context(), concurrency)
		default:
			result, err = s.autosearch.SearchAllMissing(r.Context(), concurrency)
		}
		if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, err)
			return
		}
		writeResponse(w, http.StatusOK, GenericResponse{Response: result})
	}
}
