// Copyright (c) 2026 ArchMap. All rights reserved.
// Author: shirakawa.arch.jp@gmail.com

package work

import (
	"context"
	"fmt"
	"strings"

	"github.com/shirakawa/archmap/internal/catalog/tag"
	"github.com/shirakawa/archmap/internal/platform/apperr"
	"github.com/shirakawa/archmap/internal/platform/database/schema"
	"github.com/shirakawa/archmap/internal/platform/datastore"
	"github.com/shirakawa/archmap/internal/platform/dberr"
	"github.com/shirakawa/archmap/internal/platform/remotedb"
	"github.com/shirakawa/archmap/pkg/pointer"
)

type repository struct {
	db *datastore.DB
}

// NewRepository creates a works repository over the remote dataset.
func NewRepository(db *datastore.DB) Repository {
	return &repository{db: db}
}

func (repository *repository) Search(ctx context.Context, term, sortKey string, limit, offset int) ([]*Work, int, error) {
	conditions, args := buildFilter(term)
	whereSQL := strings.Join(conditions, " AND ")

	listQuery := fmt.Sprintf(`
		SELECT %s
		FROM %s w
		WHERE %s
		ORDER BY %s
		LIMIT ? OFFSET ?
	`, ColumnList(), schema.Works.Table, whereSQL, orderClause(sortKey))

	listArgs := append(append([]any{}, args...), limit, offset)
	rows, err := repository.db.Query(ctx, listQuery, datastore.Positional(listArgs...))
	if err != nil {
		return nil, 0, dberr.Wrap(err, "search_works")
	}

	// Parallel COUNT over the identical filter; the shape lands in the
	// aggregate cache tier so repeat pages of one search reuse it.
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s w WHERE %s", schema.Works.Table, whereSQL)
	countRows, err := repository.db.Query(ctx, countQuery, datastore.Positional(args...))
	if err != nil {
		return nil, 0, dberr.Wrap(err, "count_works")
	}

	total, err := scalarCount(countRows)
	if err != nil {
		return nil, 0, err
	}

	works := make([]*Work, 0, len(rows))
	for _, row := range rows {
		works = append(works, ScanRow(row))
	}
	return works, total, nil
}

func (repository *repository) GetByID(ctx context.Context, id int) (*Work, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s w WHERE w.%s = :id",
		ColumnList(), schema.Works.Table, schema.Works.ID,
	)

	rows, err := repository.db.Query(ctx, query, datastore.Named(map[string]any{"id": id}))
	if err != nil {
		return nil, dberr.Wrap(err, "get_work")
	}
	if len(rows) == 0 {
		return nil, apperr.NotFound("work")
	}

	work := ScanRow(rows[0])

	// Best-effort architect resolution by display-name equality. A miss or a
	// lookup failure leaves ArchitectID nil; the work itself still renders.
	if work.Architect != "" {
		lookup := fmt.Sprintf(
			"SELECT %s FROM %s WHERE %s = :name LIMIT 1",
			schema.Architects.ID, schema.Architects.Table, schema.Architects.Name,
		)
		architectRows, err := repository.db.Query(ctx, lookup, datastore.Named(map[string]any{
			"name": work.Architect,
		}))
		if err == nil && len(architectRows) > 0 && len(architectRows[0]) > 0 {
			work.ArchitectID = pointer.To(remotedb.AsInt(architectRows[0][0]))
		}
	}

	return work, nil
}

func (repository *repository) MapPoints(ctx context.Context) ([]*MapPoint, error) {
	query := fmt.Sprintf(`
		SELECT w.%s, w.%s, w.%s, w.%s, w.%s, w.%s, w.%s
		FROM %s w
		WHERE w.%s IS NOT NULL AND w.%s IS NOT NULL AND %s
	`,
		schema.Works.ID, schema.Works.Title, schema.Works.Prefecture, schema.Works.Architect,
		schema.Works.CompletionYear, schema.Works.Latitude, schema.Works.Longitude,
		schema.Works.Table,
		schema.Works.Latitude, schema.Works.Longitude, addendumExclusion,
	)

	rows, err := repository.db.Query(ctx, query, datastore.Positional())
	if err != nil {
		return nil, dberr.Wrap(err, "map_points")
	}

	points := make([]*MapPoint, 0, len(rows))
	for _, row := range rows {
		points = append(points, &MapPoint{
			ID:             remotedb.AsInt(row[0]),
			Title:          remotedb.AsString(row[1]),
			Prefecture:     remotedb.AsString(row[2]),
			Architect:      remotedb.AsString(row[3]),
			CompletionYear: remotedb.AsInt(row[4]),
			Latitude:       remotedb.AsFloat(row[5]),
			Longitude:      remotedb.AsFloat(row[6]),
		})
	}
	return points, nil
}

// ColumnList renders the works column list with the 'w' alias. Shared with
// the person repository, which embeds a works listing in person details.
func ColumnList() string {
	columns := schema.Works.Columns()
	for i := range columns {
		columns[i] = "w." + columns[i]
	}
	return strings.Join(columns, ", ")
}

// ScanRow maps a row in schema.Works.Columns() order.
func ScanRow(row remotedb.Row) *Work {
	return &Work{
		ID:             remotedb.AsInt(row[0]),
		Title:          remotedb.AsString(row[1]),
		Address:        remotedb.AsString(row[2]),
		Prefecture:     remotedb.AsString(row[3]),
		CompletionYear: remotedb.AsInt(row[4]),
		Architect:      remotedb.AsString(row[5]),
		Latitude:       remotedb.AsNullableFloat(row[6]),
		Longitude:      remotedb.AsNullableFloat(row[7]),
		Category:       remotedb.AsString(row[8]),
		ParentCategory: remotedb.AsString(row[9]),
		Tags:           tag.SplitField(remotedb.AsString(row[10])),
	}
}

// scalarCount extracts a COUNT(*) result, treating a missing or malformed
// scalar as an error so the containment boundary can catch it.
func scalarCount(rows []remotedb.Row) (int, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return 0, fmt.Errorf("work: count query returned no scalar")
	}
	return remotedb.AsInt(rows[0][0]), nil
}
