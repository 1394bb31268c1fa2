package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"time"

	"devops/info/internal/config"
	"devops/info/internal/sysinfo"

	"github.com/rs/zerolog"
)

// Service identity reported on every info response.
const (
	ServiceName        = "devops-info-service"
	ServiceVersion     = "1.0.0"
	ServiceDescription = "DevOps course info service"
	ServiceFramework   = "chi"
)

// SystemReader returns live host facts.
type SystemReader interface {
	Collect(ctx context.Context) (sysinfo.System, error)
}

// Server wires configuration, dependencies and HTTP routing together.
type Server struct {
	cfg       config.Config
	log       zerolog.Logger
	system    SystemReader
	now       func() time.Time
	startedAt time.Time
	endpoints []endpoint

	trustedProxies []netip.Prefix
}

// Option customises a Server built by New.
type Option func(*Server)

// WithSystemReader replaces the gopsutil backed host collector.
func WithSystemReader(r SystemReader) Option {
	return func(s *Server) {
		s.system = r
	}
}

// WithClock replaces time.Now. The start time is read from the same clock.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// New instantiates the HTTP server and records the process start time.
func New(cfg config.Config, log zerolog.Logger, opts ...Option) *Server {
	srv := &Server{
		cfg:    cfg,
		log:    log,
		system: sysinfo.NewCollector(log),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(srv)
	}

	srv.startedAt = srv.now()
	srv.endpoints = srv.endpointTable()
	srv.trustedProxies = parseTrustedProxies(cfg.TrustedProxies, log)
	recordStart(srv.startedAt)

	return srv
}

// StartedAt is the instant uptime is measured from.
func (s *Server) StartedAt() time.Time {
	return s.startedAt
}

// Handler returns the fully wired router.
func (s *Server) Handler() http.Handler {
	return s.routes()
}

// Run listens on the configured address and serves until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Address())
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Address(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln and blocks until the context is cancelled or an unrecoverable error occurs.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:      s.routes(),
		ReadTimeout:  s.cfg.HTTP.ReadTimeout,
		WriteTimeout: s.cfg.HTTP.WriteTimeout,
		IdleTimeout:  s.cfg.HTTP.IdleTimeout,
	}

	// stop releases the shutdown goroutine when Serve fails before ctx is done.
	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		select {
		case <-ctx.Done():
		case <-stop:
			return
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			s.log.Error().Err(err).Msg("graceful shutdown failed")
		}
	}()

	s.log.Info().Str("addr", ln.Addr().String()).Time("started_at", s.startedAt).Msg("http server listening")
	if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		close(stop)
		<-done
		return fmt.Errorf("serve: %w", err)
	}

	<-done
	s.log.Info().Msg("http server stopped")
	return nil
}
