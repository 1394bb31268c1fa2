package server

import (
	"fmt"
	"net/http"
)

// handleInfo godoc
// @Title Service information
// @Description System and service info about the server.
// @Resource System
// @Produce json
// @Success 200 {object} InfoResponse
// @Route / [get]
func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) error {
	s.log.Debug().Str("method", r.Method).Str("path", r.URL.Path).Msg("request")

	now := s.now()
	uptime := s.uptimeSeconds(now)

	system, err := s.system.Collect(r.Context())
	if err != nil {
		return &HTTPError{
			Code:   http.StatusInternalServerError,
			Detail: "Unable to read system information",
			Err:    fmt.Errorf("collect system info: %w", err),
		}
	}

	zone, _ := now.Zone()
	payload := InfoResponse{
		Service: ServiceInfo{
			Name:        ServiceName,
			Version:     ServiceVersion,
			Description: ServiceDescription,
			Framework:   ServiceFramework,
		},
		System: system,
		Runtime: RuntimeInfo{
			UptimeSeconds: uptime,
			UptimeHuman:   humanUptime(uptime),
			CurrentTime:   formatTimestamp(now),
			Timezone:      zone,
		},
		Request: RequestInfo{
			ClientIP:  clientIP(r),
			UserAgent: userAgent(r),
			Method:    r.Method,
			Path:      r.URL.Path,
		},
		Endpoints: s.endpointList(),
	}

	s.writeJSON(w, http.StatusOK, payload)
	return nil
}

func (s *Server) endpointList() []EndpointResponse {
	out := make([]EndpointResponse, 0, len(s.endpoints))
	for _, e := range s.endpoints {
		out = append(out, EndpointResponse{
			Path:        e.Path,
			Method:      e.Method,
			Description: e.Description,
		})
	}
	return out
}
