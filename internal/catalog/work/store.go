// Copyright (c) 2026 ArchMap. All rights reserved.
// Author: shirakawa.arch.jp@gmail.com

package work

import "context"

// Repository is the data access surface for the works catalog.
type Repository interface {
	// Search returns one page of works matching the search term, plus the
	// total match count from a parallel COUNT sharing the same filter.
	Search(ctx context.Context, term, sortKey string, limit, offset int) ([]*Work, int, error)

	// GetByID returns one work with its architect id resolved, or
	// apperr.NotFound.
	GetByID(ctx context.Context, id int) (*Work, error)

	// MapPoints returns every work that has both coordinates.
	MapPoints(ctx context.Context) ([]*MapPoint, error)
}
