// Copyright (c) 2026 ArchMap. All rights reserved.
// Author: shirakawa.arch.jp@gmail.com

package person

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/shirakawa/archmap/internal/platform/apperr"
	"github.com/shirakawa/archmap/pkg/pagination"
)

// Service is the failure-containment boundary for the architects catalog,
// mirroring the works side: data-layer failures become benign empties.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// SearchPeople returns one page of filtered people, or the empty sentinel on
// any data-layer failure.
func (service *Service) SearchPeople(ctx context.Context, page, pageSize int, filter Filter, sortKey, sortDir string) *SearchResult {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = pagination.DefaultLimit
	}

	items, total, err := service.repo.Search(ctx, filter, sortKey, sortDir, pageSize, (page-1)*pageSize)
	if err != nil {
		service.logger.Warn("person_search_degraded",
			slog.String("term", filter.Term),
			slog.Any("error", err),
		)
		return EmptyResult(page)
	}
	if items == nil {
		items = []*Person{}
	}

	return &SearchResult{
		Items:     items,
		Total:     total,
		Page:      page,
		PageCount: pagination.PageCount(total, pageSize),
	}
}

// GetPerson returns one person with their works. Data-layer failures are
// logged and masked as not-found, like the works side.
func (service *Service) GetPerson(ctx context.Context, id int) (*Person, error) {
	person, err := service.repo.GetByID(ctx, id)
	if err != nil {
		if appError := apperr.As(err); appError == nil || appError.HTTPStatus != http.StatusNotFound {
			service.logger.Warn("person_detail_degraded",
				slog.Int("id", id),
				slog.Any("error", err),
			)
		}
		return nil, apperr.NotFound("person")
	}
	return person, nil
}
