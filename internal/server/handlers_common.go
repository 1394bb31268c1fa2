package server

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"
)

const (
	timestampLayout = "2006-01-02 15:04:05"
	statusHealthy   = "healthy"
)

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			s.log.Warn().Err(err).Msg("encode response")
		}
	}
}

func (s *Server) writeHTML(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// uptimeSeconds returns whole seconds elapsed between the server start and now,
// never negative.
func (s *Server) uptimeSeconds(now time.Time) int64 {
	elapsed := now.Sub(s.startedAt)
	if elapsed < 0 {
		return 0
	}
	return int64(elapsed / time.Second)
}

func humanUptime(seconds int64) string {
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	return fmt.Sprintf("%d hours, %d minutes", hours, minutes)
}

func formatTimestamp(t time.Time) string {
	return t.Format(timestampLayout)
}

// clientIP strips the port from RemoteAddr. After chi's RealIP middleware the
// address may already be a bare IP.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func userAgent(r *http.Request) *string {
	values, ok := r.Header["User-Agent"]
	if !ok || len(values) == 0 {
		return nil
	}
	ua := values[0]
	return &ua
}
