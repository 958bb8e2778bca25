package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/reelforge/reelforge/pkg/logger"
	"github.com/reelforge/reelforge/pkg/store/sqlite/schema/gen/model"
)

// ListSeries returns every series in the library.
func (s *Server) ListSeries() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		series, err := s.store.ListSeries(r.Context())
		if err != nil {
			writeErrorResponse(w, statusForError(err), err)
			return
		}
		writeResponse(w, http.StatusOK, GenericResponse{Response: series})
	}
}

// GetSeries returns one series by id.
func (s *Server) GetSeries() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idFromPath(r)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}
		sr, err := s.store.GetSeries(r.Context(), id)
		if err != nil {
			writeErrorResponse(w, statusForError(err), err)
			return
		}
		writeResponse(w, http.StatusOK, GenericResponse{Response: sr})
	}
}

// CreateSeries adds a series to the library and seeds its episode rows.
func (s *Server) CreateSeries() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())
		var sr model.Series
		if err := json.NewDecoder(r.Body).Decode(&sr); err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}
		id, err := s.catalog.CreateSeries(r.Context(), sr)
		if err != nil {
			log.Errorw("create series", "err", err)
			writeErrorResponse(w, statusForError(err), err)
			return
		}
		sr.ID = int32(id)
		writeResponse(w, http.StatusCreated, GenericResponse{Response: sr})
	}
}

// UpdateSeries updates a series's monitored state, quality profile, or
// metadata fields, cascading a monitored-state change to its episodes.
func (s *Server) UpdateSeries() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idFromPath(r)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}
		var sr model.Series
		if err := json.NewDecoder(r.Body).Decode(&sr); err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}
		sr.ID = int32(id)
		if err := s.store.UpdateSeries(r.Context(), sr); err != nil {
			writeErrorResponse(w, statusForError(err), err)
			return
		}
		if err := s.catalog.CascadeMonitor(r.Context(), id, sr.Monitored); err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, err)
			return
		}
		writeResponse(w, http.StatusOK, GenericResponse{Response: sr})
	}
}

// DeleteSeries removes a series and its episodes from the library.
func (s *Server) DeleteSeries() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idFromPath(r)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}
		if err := s.store.DeleteSeries(r.Context(), id); err != nil {
			writeErrorResponse(w, statusForError(err), err)
			return
		}
		writeResponse(w, http.StatusOK, GenericResponse{Response: "deleted"})
	}
}

// ListSeasons returns a series's seasons with their monitored state.
func (s *Server) ListSeasons() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idFromPath(r)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}
		seasons, err := s.store.ListSeasons(r.Context(), id)
		if err != nil {
			writeErrorResponse(w, statusForError(err), err)
			return
		}
		writeResponse(w, http.StatusOK, GenericResponse{Response: seasons})
	}
}

// ListEpisodes returns a series's episodes, optionally narrowed to one
// season via the "season" query parameter.
func (s *Server) ListEpisodes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idFromPath(r)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}

		if raw := r.URL.Query().Get("season"); raw != "" {
			season, err := strconv.ParseInt(raw, 10, 32)
			if err != nil {
				writeErrorResponse(w, http.StatusBadRequest, err)
				return
			}
			episodes, err := s.store.ListEpisodesBySeason(r.Context(), id, int32(season))
			if err != nil {
				writeErrorResponse(w, statusForError(err), err)
				return
			}
			writeResponse(w, http.StatusOK, GenericResponse{Response: episodes})
			return
		}

		episodes, err := s.store.ListEpisodes(r.Context(), id)
		if err != nil {
			writeErrorResponse(w, statusForError(err), err)
			return
		}
		writeResponse(w, http.StatusOK, GenericResponse{Response: episodes})
	}
}

// GetEpisode returns one episode by id.
func (s *Server) GetEpisode() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idFromPath(r)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}
		e, err := s.store.GetEpisode(r.Context(), id)
		if err != nil {
			writeErrorResponse(w, statusForError(err), err)
			return
		}
		writeResponse(w, http.StatusOK, GenericResponse{Response: e})
	}
}

// SearchEpisode triggers an immediate manual search and grab for one
// episode.
func (s *Server) SearchEpisode() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())
		id, err := idFromPath(r)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}
		forceUpgrade := r.URL.Query().Get("force_upgrade") == "true"

		outcome, err := s.autosearch.SearchAndDownloadEpisode(r.Context(), id, forceUpgrade)
		if err != nil {
			log.Errorw("search episode", "episode_id", id, "err", err)
			writeErrorResponse(w, http.StatusInternalServerError, err)
			return
		}
		writeResponse(w, http.StatusOK, GenericResponse{Response: outcome})
	}
}
