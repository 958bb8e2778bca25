package server

import (
	"encoding/json"
	"net/http"

	"github.com/reelforge/reelforge/pkg/logger"
	"github.com/reelforge/reelforge/pkg/store"
)

// ListIndexerConfigs returns every configured indexer.
func (s *Server) ListIndexerConfigs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		configs, err := s.store.ListIndexerConfigs(r.Context())
		if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, err)
			return
		}
		writeResponse(w, http.StatusOK, GenericResponse{Response: configs})
	}
}

// CreateIndexerConfig adds a new indexer.
func (s *Server) CreateIndexerConfig() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var c store.IndexerConfig
		if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}
		id, err := s.store.CreateIndexerConfig(r.Context(), c)
		if err != nil {
			writeErrorResponse(w, statusForError(err), err)
			return
		}
		c.ID = id
		writeResponse(w, http.StatusCreated, GenericResponse{Response: c})
	}
}

// UpdateIndexerConfig updates an existing indexer's settings.
func (s *Server) UpdateIndexerConfig() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idFromPath(r)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}
		var c store.IndexerConfig
		if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}
		c.ID = id
		if err := s.store.UpdateIndexerConfig(r.Context(), c); err != nil {
			writeErrorResponse(w, statusForError(err), err)
			return
		}
		writeResponse(w, http.StatusOK, GenericResponse{Response: c})
	}
}

// DeleteIndexerConfig removes an indexer.
func (s *Server) DeleteIndexerConfig() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idFromPath(r)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}
		if err := s.store.DeleteIndexerConfig(r.Context(), id); err != nil {
			writeErrorResponse(w, statusForError(err), err)
			return
		}
		writeResponse(w, http.StatusOK, GenericResponse{Response: "deleted"})
	}
}

// ListDownloadClientConfigs returns every configured download client.
func (s *Server) ListDownloadClientConfigs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		configs, err := s.store.ListDownloadClientConfigs(r.Context())
		if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, err)
			return
		}
		writeResponse(w, http.StatusOK, GenericResponse{Response: configs})
	}
}

// CreateDownloadClientConfig adds a new download client.
func (s *Server) CreateDownloadClientConfig() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var c store.DownloadClientConfig
		if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}
		id, err := s.store.CreateDownloadClientConfig(r.Context(), c)
		if err != nil {
			writeErrorResponse(w, statusForError(err), err)
			return
		}
		c.ID = id
		writeResponse(w, http.StatusCreated, GenericResponse{Response: c})
	}
}

// UpdateDownloadClientConfig updates an existing download client's
// settings.
func (s *Server) UpdateDownloadClientConfig() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idFromPath(r)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}
		var c store.DownloadClientConfig
		if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}
		c.ID = id
		if err := s.store.UpdateDownloadClientConfig(r.Context(), c); err != nil {
			writeErrorResponse(w, statusForError(err), err)
			return
		}
		writeResponse(w, http.StatusOK, GenericResponse{Response: c})
	}
}

// DeleteDownloadClientConfig removes a download client.
func (s *Server) DeleteDownloadClientConfig() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idFromPath(r)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}
		if err := s.store.DeleteDownloadClientConfig(r.Context(), id); err != nil {
			writeErrorResponse(w, statusForError(err), err)
			return
		}
		writeResponse(w, http.StatusOK, GenericResponse{Response: "deleted"})
	}
}

// ListImportLists returns every configured import list.
func (s *Server) ListImportLists() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lists, err := s.store.ListImportLists(r.Context())
		if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, err)
			return
		}
		writeResponse(w, http.StatusOK, GenericResponse{Response: lists})
	}
}

// CreateImportList adds a new import list.
func (s *Server) CreateImportList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var c store.ImportListConfig
		if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}
		id, err := s.store.CreateImportList(r.Context(), c)
		if err != nil {
			writeErrorResponse(w, statusForError(err), err)
			return
		}
		c.ID = id
		writeResponse(w, http.StatusCreated, GenericResponse{Response: c})
	}
}

// DeleteImportList removes an import list.
func (s *Server) DeleteImportList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idFromPath(r)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}
		if err := s.store.DeleteImportList(r.Context(), id); err != nil {
			writeErrorResponse(w, statusForError(err), err)
			return
		}
		writeResponse(w, http.StatusOK, GenericResponse{Response: "deleted"})
	}
}

type addBlacklistRequest struct {
	ReleaseTitle string `json:"release_title"`
	MediaType    string `json:"media_type"`
	MovieID      *int64 `json:"movie_id,omitempty"`
	EpisodeID    *int64 `json:"episode_id,omitempty"`
}

// AddToBlacklist prevents a release title from being grabbed again.
func (s *Server) AddToBlacklist() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addBlacklistRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}
		err := s.store.AddToBlacklist(r.Context(), req.ReleaseTitle, store.MediaType(req.MediaType), req.MovieID, req.EpisodeID)
		if err != nil {
			writeErrorResponse(w, statusForError(err), err)
			return
		}
		writeResponse(w, http.StatusCreated, GenericResponse{Response: "blacklisted"})
	}
}

// TriggerSearch runs one RSS sync pass out of band, the same pass the
// rss-sync worker runs. It does not run an import-list sync.
func (s *Server) TriggerSearch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())
		rssResult, err := s.rss.RunOnce(r.Context())
		if err != nil {
			log.Errorw("trigger rss sync", "err", err)
			writeErrorResponse(w, http.StatusInternalServerError, err)
			return
		}
		writeResponse(w, http.StatusOK, GenericResponse{Response: rssResult})
	}
}

// ListActiveDownloads returns every download currently queued,
// downloading, or importing.
func (s *Server) ListActiveDownloads() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var all []any
		for _, status := range []string{"queued", "downloading", "importing"} {
			downloads, err := s.store.ListDownloadsByStatus(r.Context(), status)
			if err != nil {
				writeErrorResponse(w, http.StatusInternalServerError, err)
				return
			}
			for _, d := range downloads {
				all = append(all, d)
			}
		}
		writeResponse(w, http.StatusOK, GenericResponse{Response: all})
	}
}
