// Copyright (c) 2026 ArchMap. All rights reserved.
// Author: shirakawa.arch.jp@gmail.com

package tag

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shirakawa/archmap/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listBaseTags)
	router.Get("/{base}/years", handler.listYearSuffixes)
}

func (handler *Handler) listBaseTags(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.service.ListBaseTags(request.Context()))
}

func (handler *Handler) listYearSuffixes(writer http.ResponseWriter, request *http.Request) {
	base := chi.URLParam(request, "base")
	respond.OK(writer, handler.service.ListYearSuffixes(request.Context(), base))
}
