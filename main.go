// Package main wires configuration, logging, and HTTP server startup.
//
// @Title DevOps Info Service
// @Version 1.0.0
// @Description Reports service, host and runtime information plus a health check.
// @Server http://localhost:5000 Local development
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"devops/info/internal/config"
	"devops/info/internal/server"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCommand().Run(ctx, os.Args); err != nil {
		log.Fatal().Err(err).Msg(server.ServiceName)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:    server.ServiceName,
		Usage:   "Report service, host and runtime information over HTTP",
		Version: server.ServiceVersion,
		Description: `Serves two read-only endpoints:

  GET /        service identity, host facts, uptime and request echo
  GET /health  health status with uptime

Configuration is read from the environment (HOST, PORT, DEBUG, LOG_LEVEL,
LOG_FILE, APP_ENV, TRUSTED_PROXIES, HTTP_*_TIMEOUT).`,
		Action: serve,
		Commands: []*cli.Command{
			healthcheckCmd(),
		},
	}
}

func serve(ctx context.Context, _ *cli.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, closeLog := newLogger(cfg, os.Stdout)
	defer func() {
		if err := closeLog(); err != nil {
			fmt.Fprintf(os.Stderr, "close log file: %v\n", err)
		}
	}()

	srv := server.New(cfg, logger)
	logger.Info().
		Str("version", server.ServiceVersion).
		Str("addr", cfg.Address()).
		Bool("debug", cfg.Debug).
		Msg("starting")

	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("run server: %w", err)
	}
	return nil
}

// newLogger builds the process logger. When LOG_FILE is set, entries are
// also written to a size-rotated file. The returned func closes that file.
func newLogger(cfg config.Config, stdout io.Writer) (zerolog.Logger, func() error) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	level, err := zerolog.ParseLevel(cfg.EffectiveLogLevel())
	if err != nil {
		level = zerolog.InfoLevel
	}

	out := stdout
	if cfg.Env == "development" {
		out = zerolog.ConsoleWriter{Out: stdout, TimeFormat: time.RFC822}
	}

	closeLog := func() error { return nil }
	if cfg.LogFile != "" {
		rotator := &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    50, // megabytes
			MaxBackups: 3,
			MaxAge:     14, // days
			Compress:   true,
		}
		out = zerolog.MultiLevelWriter(out, rotator)
		closeLog = rotator.Close
	}

	logger := zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("env", cfg.Env).
		Str("app", cfg.AppName).
		Logger()
	return logger, closeLog
}
