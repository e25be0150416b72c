// Copyright (c) 2026 ArchMap. All rights reserved.
// Author: shirakawa.arch.jp@gmail.com

// Command api is the entry point for the ArchMap HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Prepare the lazy dataset connection (no network yet).
//  4. Wire HTTP handlers.
//  5. Start HTTP server with graceful shutdown.
//
// The dataset connection is deliberately NOT opened at startup: the first
// request (or the first /ready probe) triggers it. A dataset host outage
// therefore degrades the API instead of preventing the process from booting.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/shirakawa/archmap/internal/api"
	"github.com/shirakawa/archmap/internal/catalog/person"
	"github.com/shirakawa/archmap/internal/catalog/tag"
	"github.com/shirakawa/archmap/internal/catalog/work"
	"github.com/shirakawa/archmap/internal/platform/config"
	"github.com/shirakawa/archmap/internal/platform/constants"
	"github.com/shirakawa/archmap/internal/platform/datastore"
	"github.com/shirakawa/archmap/internal/platform/querycache"
	"github.com/shirakawa/archmap/internal/platform/remotedb"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(os.Stdout, slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("[ArchMap] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	logOutput := io.Writer(os.Stdout)
	if cfg.LogFile != "" {
		// Rotated file logging alongside stdout for containerized deploys.
		logOutput = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    50, // megabytes
			MaxBackups: 5,
			MaxAge:     28, // days
			Compress:   true,
		})
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	log = newLogger(logOutput, level)
	slog.SetDefault(log)

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("dataset_url", cfg.DatasetURL),
		slog.Int("fetch_chunk_size", cfg.FetchChunkSize),
	)

	// Root context for background middleware (rate limiter cleanup).
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	// ── 3. Dataset Connection (lazy) ──────────────────────────────────────
	opener := func(ctx context.Context) (datastore.Executor, error) {
		return remotedb.Open(ctx, cfg.DatasetURL, cfg.FetchChunkSize, cfg.FetchTimeout(), log)
	}
	db := datastore.New(opener, querycache.New(), log)
	defer func() {
		if err := db.Shutdown(); err != nil {
			log.Error("datastore shutdown error", slog.Any("error", err))
		}
	}()

	// ── 4. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDataset: func() error {
			ctx, cancel := context.WithTimeout(context.Background(), constants.DefaultFetchTimeout)
			defer cancel()
			return db.Ping(ctx)
		},
		DatasetState: func() string {
			return db.State().String()
		},
	}, log)

	// ── 5. Domain Wiring ──────────────────────────────────────────────────
	workHandler := work.NewHandler(work.NewService(work.NewRepository(db), log))
	personHandler := person.NewHandler(person.NewService(person.NewRepository(db), log))
	tagHandler := tag.NewHandler(tag.NewService(tag.NewRepository(db), log))

	// ── 6. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Work:      workHandler,
		Person:    personHandler,
		Tag:       tagHandler,
	}

	server := api.NewServer(rootCtx, cfg, log, handlers)

	// ── 7. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

func newLogger(output io.Writer, level slog.Level) *slog.Logger {
	raw := slog.New(slog.NewJSONHandler(output, &slog.HandlerOptions{Level: level}))
	return raw.With(slog.String("app", constants.AppName))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
