// Copyright (c) 2026 ArchMap. All rights reserved.
// Author: shirakawa.arch.jp@gmail.com

package tag

import (
	"context"
	"fmt"

	"github.com/shirakawa/archmap/internal/platform/database/schema"
	"github.com/shirakawa/archmap/internal/platform/datastore"
	"github.com/shirakawa/archmap/internal/platform/remotedb"
)

type repository struct {
	db *datastore.DB
}

// NewRepository creates a tag repository over the remote dataset.
func NewRepository(db *datastore.DB) Repository {
	return &repository{db: db}
}

// DISTINCT keeps the transferred row set small and marks the query for the
// aggregate cache tier.
func (repository *repository) TagFields(ctx context.Context) ([]string, error) {
	query := fmt.Sprintf(
		"SELECT DISTINCT %s FROM %s WHERE %s IS NOT NULL AND %s != ''",
		schema.Works.Tag, schema.Works.Table, schema.Works.Tag, schema.Works.Tag,
	)

	rows, err := repository.db.Query(ctx, query, datastore.Positional())
	if err != nil {
		return nil, err
	}

	return fieldValues(rows), nil
}

func (repository *repository) TagFieldsContaining(ctx context.Context, fragment string) ([]string, error) {
	query := fmt.Sprintf(
		"SELECT DISTINCT %s FROM %s WHERE %s LIKE :fragment",
		schema.Works.Tag, schema.Works.Table, schema.Works.Tag,
	)

	rows, err := repository.db.Query(ctx, query, datastore.Named(map[string]any{
		"fragment": "%" + fragment + "%",
	}))
	if err != nil {
		return nil, err
	}

	return fieldValues(rows), nil
}

func fieldValues(rows []remotedb.Row) []string {
	fields := make([]string, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		fields = append(fields, remotedb.AsString(row[0]))
	}
	return fields
}
