package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/reelforge/reelforge/pkg/logger"
)

// PreviewRenameMovie reports where the movie's file would land under the
// current naming config, without touching disk.
func (s *Server) PreviewRenameMovie() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idFromPath(r)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}
		plan, err := s.lifecycle.RenameMoviePreview(r.Context(), id)
		if err != nil {
			writeErrorResponse(w, statusForError(err), err)
			return
		}
		writeResponse(w, http.StatusOK, GenericResponse{Response: plan})
	}
}

// RenameMovie applies the preview: the file moves on disk and the catalog
// row follows.
func (s *Server) RenameMovie() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())
		id, err := idFromPath(r)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}
		plan, err := s.lifecycle.RenameMovie(r.Context(), id)
		if err != nil {
			log.Errorw("rename movie", "movie_id", id, "err", err)
			writeErrorResponse(w, statusForError(err), err)
			return
		}
		writeResponse(w, http.StatusOK, GenericResponse{Response: plan})
	}
}

type manualImportRequest struct {
	SourcePath   string `json:"sourcePath"`
	DeleteSource bool   `json:"deleteSource"`
}

// ManualImportMovie imports an operator-named file into the movie's library
// folder through the same placement path an automatic import takes.
func (s *Server) ManualImportMovie() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())
		id, err := idFromPath(r)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}

		var req manualImportRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}
		if req.SourcePath == "" {
			writeErrorResponse(w, http.StatusBadRequest, errors.New("sourcePath is required"))
			return
		}

		finalPath, err := s.lifecycle.ManualImportMovie(r.Context(), id, req.SourcePath, req.DeleteSource)
		if err != nil {
			log.Errorw("manual import", "movie_id", id, "source", req.SourcePath, "err", err)
			writeErrorResponse(w, statusForError(err), err)
			return
		}
		writeResponse(w, http.StatusOK, GenericResponse{Response: map[string]string{"importedPath": finalPath}})
	}
}

// GetEpisodeFile returns the file bookkeeping for one episode.
func (s *Server) GetEpisodeFile() http.HandlerFunc {
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
		writeResponse(w, http.StatusOK, GenericResponse{Response: map[string]any{
			"hasFile":      e.HasFile,
			"filePath":     e.FilePath,
			"fileSize":     e.FileSize,
			"quality":      e.Quality,
			"videoCodec":   e.VideoCodec,
			"audioCodec":   e.AudioCodec,
			"releaseGroup": e.ReleaseGroup,
			"isProper":     e.IsProper,
			"isRepack":     e.IsRepack,
		}})
	}
}

// DeleteEpisodeFile clears an episode's file record, removing the file from
// disk as well when deleteFiles=true.
func (s *Server) DeleteEpisodeFile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idFromPath(r)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}
		deleteFiles := r.URL.Query().Get("deleteFiles") == "true"

		if err := s.lifecycle.DeleteEpisodeFile(r.Context(), id, deleteFiles); err != nil {
			writeErrorResponse(w, statusForError(err), err)
			return
		}
		writeResponse(w, http.StatusOK, GenericResponse{Response: "deleted"})
	}
}
