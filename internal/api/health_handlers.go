package api

import (
	"net/http"

	"github.com/prepdeck/prepdeck/internal/logger"
)

// handleHealthz reports process liveness.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]any{
		"status": "ok",
	})
}

// handleReadyz reports readiness: the database must answer a ping.
func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if err := s.DB.PingContext(r.Context()); err != nil {
		logger.FromContext(r.Context()).Error("readiness check failed: %v", err)
		respondJSON(w, r, http.StatusServiceUnavailable, map[string]any{
			"status": "unavailable",
			"reason": "database unreachable",
		})
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{
		"status":     "ok",
		"queue_size": s.CompletionPool.QueueSize(),
	})
}
