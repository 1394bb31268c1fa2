package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// endpoint is one (path, method) pair served by the router. The same table
// drives route registration and the endpoint list on the info response.
type endpoint struct {
	Method      string
	Path        string
	Description string
	Handler     http.Handler
}

func (s *Server) endpointTable() []endpoint {
	return []endpoint{
		{
			Method:      http.MethodGet,
			Path:        "/",
			Description: "System and service info about the server",
			Handler:     s.handle(s.handleInfo),
		},
		{
			Method:      http.MethodGet,
			Path:        "/health",
			Description: "Service health check",
			Handler:     s.handle(s.handleHealth),
		},
		{
			Method:      http.MethodGet,
			Path:        "/metrics",
			Description: "Prometheus metrics",
			Handler:     promhttp.Handler(),
		},
	}
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(s.requestIDMiddleware)
	r.Use(s.realIPMiddleware)
	r.Use(s.metricsMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoverMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.NotFound(s.handleNotFound)
	r.MethodNotAllowed(s.handleMethodNotAllowed)

	for _, e := range s.endpoints {
		r.Method(e.Method, e.Path, e.Handler)
	}

	return r
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		duration := time.Since(start)
		s.log.Info().
			Str("request_id", RequestIDFromContext(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("client_ip", clientIP(r)).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", duration).
			Msg("http request")
	})
}
