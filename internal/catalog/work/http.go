// Copyright (c) 2026 ArchMap. All rights reserved.
// Author: shirakawa.arch.jp@gmail.com

package work

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shirakawa/archmap/internal/platform/apperr"
	requestutil "github.com/shirakawa/archmap/internal/platform/request"
	"github.com/shirakawa/archmap/internal/platform/respond"
	"github.com/shirakawa/archmap/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.searchWorks)
	router.Get("/map", handler.worksForMap)
	router.Get("/{id}", handler.getWork)
}

func (handler *Handler) searchWorks(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	term := requestutil.Query(request, "q")
	sortKey := requestutil.Query(request, "sort")

	result := handler.service.SearchWorks(request.Context(), params.Page, params.Limit, term, sortKey)
	respond.OK(writer, result)
}

func (handler *Handler) getWork(writer http.ResponseWriter, request *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(request, "id"))
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("work id must be an integer"))
		return
	}

	work, err := handler.service.GetWork(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, work)
}

func (handler *Handler) worksForMap(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.service.WorksForMap(request.Context()))
}
