// Copyright (c) 2026 ArchMap. All rights reserved.
// Author: shirakawa.arch.jp@gmail.com

// Package api contains the health check handlers for liveness and readiness probes.
package api

import (
	"log/slog"
	"net/http"

	"github.com/shirakawa/archmap/internal/platform/respond"
)

// HealthDependencies holds the injectable dependency checkers for the /ready endpoint.
type HealthDependencies struct {
	// CheckDataset pings the remote dataset through the connection
	// singleton, forcing lazy initialization if it has not happened yet.
	CheckDataset func() error

	// DatasetState reports the connection lifecycle phase for the payload.
	DatasetState func() string
}

type healthHandler struct {
	dependencies HealthDependencies
	logger       *slog.Logger
}

// NewHealthHandlers creates the /health and /ready http.HandlerFuncs.
func NewHealthHandlers(deps HealthDependencies, logger *slog.Logger) (liveness, readiness http.HandlerFunc) {
	handler := &healthHandler{dependencies: deps, logger: logger}
	return handler.liveness, handler.readiness
}

// liveness handles GET /health (Liveness probe).
func (handler *healthHandler) liveness(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, map[string]string{"status": "ok"})
}

// readiness handles GET /ready (Readiness probe).
//
// Ready means the remote dataset answered a query just now. The connection
// lifecycle state rides along so operators can tell a cold process from a
// broken dataset host.
func (handler *healthHandler) readiness(writer http.ResponseWriter, request *http.Request) {
	payload := map[string]any{"status": "ready"}
	httpStatus := http.StatusOK

	if handler.dependencies.CheckDataset != nil {
		if err := handler.dependencies.CheckDataset(); err != nil {
			handler.logger.Error("readiness_check_failed",
				slog.String("dependency", "dataset"),
				slog.Any("error", err),
			)
			payload["status"] = "degraded"
			payload["error"] = err.Error()
			httpStatus = http.StatusServiceUnavailable
		}
	}

	// Reported after the check so a just-triggered initialization shows its
	// resulting state, not the cold one.
	if handler.dependencies.DatasetState != nil {
		payload["dataset_state"] = handler.dependencies.DatasetState()
	}

	respond.JSON(writer, httpStatus, respond.SuccessEnvelope{Data: payload})
}
