// Copyright (c) 2026 ArchMap. All rights reserved.
// Author: shirakawa.arch.jp@gmail.com

package tag

import (
	"context"
	"log/slog"
	"sort"
	"strings"
)

// Service aggregates raw tag fields into facet listings.
//
// The facet endpoints sit behind the failure-containment boundary: a dataset
// failure is logged and surfaces to the caller as an empty listing, never as
// an error response. A search page with empty facets is degraded but usable;
// a 500 on a facet fetch breaks the whole page.
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

// ListBaseTags returns every distinct base tag in the dataset, sorted.
func (service *Service) ListBaseTags(ctx context.Context) []string {
	fields, err := service.repo.TagFields(ctx)
	if err != nil {
		service.logger.Warn("tag_listing_degraded", slog.Any("error", err))
		return []string{}
	}

	seen := make(map[string]struct{})
	bases := make([]string, 0, len(fields))

	for _, field := range fields {
		for _, token := range SplitField(field) {
			base := Base(token)
			if _, duplicate := seen[base]; duplicate {
				continue
			}
			seen[base] = struct{}{}
			bases = append(bases, base)
		}
	}

	sort.Strings(bases)
	return bases
}

// ListYearSuffixes returns the variant suffixes observed under one base tag,
// in display order. A token that contains the base but matches no grammar
// rule contributes its literal remainder after the base is removed.
func (service *Service) ListYearSuffixes(ctx context.Context, base string) []string {
	if base == "" {
		return []string{}
	}

	fields, err := service.repo.TagFieldsContaining(ctx, base)
	if err != nil {
		service.logger.Warn("tag_suffix_listing_degraded",
			slog.String("base", base),
			slog.Any("error", err),
		)
		return []string{}
	}

	seen := make(map[string]struct{})
	suffixes := make([]string, 0, len(fields))

	for _, field := range fields {
		for _, token := range SplitField(field) {
			if token == base || !strings.Contains(token, base) {
				continue
			}

			suffix, ok := Suffix(token)
			if !ok {
				suffix = strings.TrimSpace(strings.Replace(token, base, "", 1))
			}
			if suffix == "" {
				continue
			}

			if _, duplicate := seen[suffix]; duplicate {
				continue
			}
			seen[suffix] = struct{}{}
			suffixes = append(suffixes, suffix)
		}
	}

	SortSuffixes(suffixes)
	return suffixes
}
