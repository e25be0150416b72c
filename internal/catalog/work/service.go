// Copyright (c) 2026 ArchMap. All rights reserved.
// Author: shirakawa.arch.jp@gmail.com

package work

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/shirakawa/archmap/internal/platform/apperr"
	"github.com/shirakawa/archmap/pkg/pagination"
)

// Service is the failure-containment boundary for the works catalog: every
// data-layer failure is logged and converted into a benign empty state here,
// so callers above never branch on dataset errors.
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

// SearchWorks returns one page of search results. On any data-layer failure
// it returns the empty sentinel — a search that errors and a search that
// matches nothing are indistinguishable to the UI, by contract.
func (service *Service) SearchWorks(ctx context.Context, page, pageSize int, term, sortKey string) *SearchResult {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = pagination.DefaultLimit
	}

	items, total, err := service.repo.Search(ctx, term, sortKey, pageSize, (page-1)*pageSize)
	if err != nil {
		service.logger.Warn("work_search_degraded",
			slog.String("term", term),
			slog.Any("error", err),
		)
		return EmptyResult(page)
	}
	if items == nil {
		items = []*Work{}
	}

	return &SearchResult{
		Items:     items,
		Total:     total,
		Page:      page,
		PageCount: pagination.PageCount(total, pageSize),
	}
}

// GetWork returns one work. A genuine miss and a data-layer failure both
// surface as not-found; the failure is logged before it is masked.
func (service *Service) GetWork(ctx context.Context, id int) (*Work, error) {
	work, err := service.repo.GetByID(ctx, id)
	if err != nil {
		if appError := apperr.As(err); appError == nil || appError.HTTPStatus != http.StatusNotFound {
			service.logger.Warn("work_detail_degraded",
				slog.Int("id", id),
				slog.Any("error", err),
			)
		}
		return nil, apperr.NotFound("work")
	}
	return work, nil
}

// WorksForMap returns every plottable work, or an empty slice on failure.
func (service *Service) WorksForMap(ctx context.Context) []*MapPoint {
	points, err := service.repo.MapPoints(ctx)
	if err != nil {
		service.logger.Warn("work_map_degraded", slog.Any("error", err))
		return []*MapPoint{}
	}
	if points == nil {
		points = []*MapPoint{}
	}
	return points
}
