package server

import (
	"net/http"
	"strconv"
)

// ActivityStream upgrades the request to an SSE connection and streams
// every Broadcast event as it happens.
func (s *Server) ActivityStream() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.activity.ServeHTTP(w, r)
	}
}

// ListActivity returns recent activity log entries, newest first.
func (s *Server) ListActivity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 100
		if raw := r.URL.Query().Get("limit"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 {
				limit = n
			}
		}
		entries, err := s.store.ListRecentActivity(r.Context(), limit)
		if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, err)
			return
		}
		writeResponse(w, http.StatusOK, GenericResponse{Response: entries})
	}
}
