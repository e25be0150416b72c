// Copyright (c) 2026 ArchMap. All rights reserved.
// Author: shirakawa.arch.jp@gmail.com

package person

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shirakawa/archmap/internal/platform/apperr"
	requestutil "github.com/shirakawa/archmap/internal/platform/request"
	"github.com/shirakawa/archmap/internal/platform/respond"
	"github.com/shirakawa/archmap/pkg/pagination"
	"github.com/shirakawa/archmap/pkg/query"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.searchPeople)
	router.Get("/{id}", handler.getPerson)
}

func (handler *Handler) searchPeople(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	filter := Filter{
		Term:          requestutil.Query(request, "q"),
		SelectedTags:  query.StringSlice(requestutil.Query(request, "tags")),
		Nationality:   requestutil.OptionalString(request, "nationality"),
		Category:      requestutil.OptionalString(request, "category"),
		School:        requestutil.OptionalString(request, "school"),
		BirthYearFrom: requestutil.OptionalInt(request, "born_from"),
		BirthYearTo:   requestutil.OptionalInt(request, "born_to"),
		DeathYear:     requestutil.OptionalInt(request, "died"),
	}

	result := handler.service.SearchPeople(
		request.Context(),
		params.Page, params.Limit,
		filter,
		requestutil.Query(request, "sort"),
		requestutil.Query(request, "dir"),
	)
	respond.OK(writer, result)
}

func (handler *Handler) getPerson(writer http.ResponseWriter, request *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(request, "id"))
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("person id must be an integer"))
		return
	}

	person, err := handler.service.GetPerson(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, person)
}
