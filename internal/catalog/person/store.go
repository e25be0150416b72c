// Copyright (c) 2026 ArchMap. All rights reserved.
// Author: shirakawa.arch.jp@gmail.com

package person

import "context"

// Repository is the data access surface for the architects catalog.
type Repository interface {
	// Search returns one page of people matching the resolved filter, plus
	// the total match count from a parallel COUNT sharing the same filter.
	Search(ctx context.Context, filter Filter, sortKey, sortDir string, limit, offset int) ([]*Person, int, error)

	// GetByID returns one person with their works attached, or
	// apperr.NotFound.
	GetByID(ctx context.Context, id int) (*Person, error)
}
