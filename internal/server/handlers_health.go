package server

import (
	"net/http"
)

// handleHealth godoc
// @Title Health check
// @Description Returns service health and uptime information.
// @Resource System
// @Produce json
// @Success 200 {object} HealthResponse
// @Route /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) error {
	s.log.Debug().Str("method", r.Method).Str("path", r.URL.Path).Msg("request")

	now := s.now()
	payload := HealthResponse{
		Status:        statusHealthy,
		Timestamp:     formatTimestamp(now),
		UptimeSeconds: s.uptimeSeconds(now),
	}
	s.writeJSON(w, http.StatusOK, payload)
	return nil
}
