package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// ListWorkers returns every registered scheduled worker and its status.
func (s *Server) ListWorkers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeResponse(w, http.StatusOK, GenericResponse{Response: s.scheduler.List()})
	}
}

// GetWorker returns one worker's status by id.
func (s *Server) GetWorker() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		info, err := s.scheduler.Get(id)
		if err != nil {
			writeErrorResponse(w, http.StatusNotFound, err)
			return
		}
		writeResponse(w, http.StatusOK, GenericResponse{Response: info})
	}
}

// StartWorker starts a stopped worker.
func (s *Server) StartWorker() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		if err := s.scheduler.Start(id, false); err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}
		writeResponse(w, http.StatusOK, GenericResponse{Response: "started"})
	}
}

// StopWorker stops a running worker.
func (s *Server) StopWorker() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		if err := s.scheduler.Stop(id); err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}
		writeResponse(w, http.StatusOK, GenericResponse{Response: "stopped"})
	}
}

// RestartWorker stops and restarts a worker.
func (s *Server) RestartWorker() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		if err := s.scheduler.Restart(id); err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}
		writeResponse(w, http.StatusOK, GenericResponse{Response: "restarted"})
	}
}

// RunWorkerNow triggers an out-of-band run of a worker without disturbing
// its schedule.
func (s *Server) RunWorkerNow() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		if err := s.scheduler.RunNow(id); err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}
		writeResponse(w, http.StatusOK, GenericResponse{Response: "triggered"})
	}
}

type setIntervalRequest struct {
	IntervalSeconds int `json:"interval_seconds"`
}

// SetWorkerInterval changes how often a worker runs.
func (s *Server) SetWorkerInterval() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		var req setIntervalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}
		if err := s.scheduler.SetInterval(id, time.Duration(req.IntervalSeconds)*time.Second); err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}
		writeResponse(w, http.StatusOK, GenericResponse{Response: "updated"})
	}
}
