// Copyright (c) 2026 ArchMap. All rights reserved.
// Author: shirakawa.arch.jp@gmail.com

package tag

import "context"

// Repository fetches raw tag column values for client-side aggregation.
type Repository interface {
	// TagFields returns every distinct non-empty tag column value.
	TagFields(ctx context.Context) ([]string, error)

	// TagFieldsContaining returns the distinct tag column values containing
	// the given fragment as a substring.
	TagFieldsContaining(ctx context.Context, fragment string) ([]string, error)
}
