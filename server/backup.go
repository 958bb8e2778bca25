package server

import (
	"encoding/json"
	"net/http"

	"github.com/reelforge/reelforge/pkg/backup"
	"github.com/reelforge/reelforge/pkg/logger"
)

// ExportBackup returns a full JSON snapshot of the catalog and
// configuration tables.
func (s *Server) ExportBackup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := backup.Export(r.Context(), s.store)
		if err != nil {
			logger.FromCtx(r.Context()).Errorw("export backup", "err", err)
			writeErrorResponse(w, http.StatusInternalServerError, err)
			return
		}
		writeResponse(w, http.StatusOK, GenericResponse{Response: snap})
	}
}

// PreviewBackup returns only the row counts a full export would contain.
func (s *Server) PreviewBackup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		meta, err := backup.Preview(r.Context(), s.store)
		if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, err)
			return
		}
		writeResponse(w, http.StatusOK, GenericResponse{Response: meta})
	}
}

// RestoreBackup replaces the catalog and configuration tables with the
// contents of an uploaded snapshot.
func (s *Server) RestoreBackup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())
		var snap backup.Snapshot
		if err := json.NewDecoder(r.Body).Decode(&snap); err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}
		if err := backup.Restore(r.Context(), s.store, snap); err != nil {
			log.Errorw("restore backup", "err", err)
			writeErrorResponse(w, http.StatusInternalServerError, err)
			return
		}
		writeResponse(w, http.StatusOK, GenericResponse{Response: "restored"})
	}
}
