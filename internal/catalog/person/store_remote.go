// Copyright (c) 2026 ArchMap. All rights reserved.
// Author: shirakawa.arch.jp@gmail.com

package person

import (
	"context"
	"fmt"
	"strings"

	"github.com/shirakawa/archmap/internal/catalog/tag"
	"github.com/shirakawa/archmap/internal/catalog/work"
	"github.com/shirakawa/archmap/internal/platform/apperr"
	"github.com/shirakawa/archmap/internal/platform/database/schema"
	"github.com/shirakawa/archmap/internal/platform/datastore"
	"github.com/shirakawa/archmap/internal/platform/dberr"
	"github.com/shirakawa/archmap/internal/platform/remotedb"
)

type repository struct {
	db *datastore.DB
}

// NewRepository creates a person repository over the remote dataset.
func NewRepository(db *datastore.DB) Repository {
	return &repository{db: db}
}

func (repository *repository) Search(ctx context.Context, filter Filter, sortKey, sortDir string, limit, offset int) ([]*Person, int, error) {
	conditions, args := buildConditions(applyTokens(filter))

	whereSQL := "1=1"
	if len(conditions) > 0 {
		whereSQL = strings.Join(conditions, " AND ")
	}

	listQuery := fmt.Sprintf(`
		SELECT %s
		FROM %s a
		WHERE %s
		ORDER BY %s
		LIMIT ? OFFSET ?
	`, columnList(), schema.Architects.Table, whereSQL, orderClause(sortKey, sortDir))

	listArgs := append(append([]any{}, args...), limit, offset)
	rows, err := repository.db.Query(ctx, listQuery, datastore.Positional(listArgs...))
	if err != nil {
		return nil, 0, dberr.Wrap(err, "search_people")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s a WHERE %s", schema.Architects.Table, whereSQL)
	countRows, err := repository.db.Query(ctx, countQuery, datastore.Positional(args...))
	if err != nil {
		return nil, 0, dberr.Wrap(err, "count_people")
	}

	total, err := scalarCount(countRows)
	if err != nil {
		return nil, 0, err
	}

	people := make([]*Person, 0, len(rows))
	for _, row := range rows {
		people = append(people, scanPerson(row))
	}
	return people, total, nil
}

func (repository *repository) GetByID(ctx context.Context, id int) (*Person, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s a WHERE a.%s = :id",
		columnList(), schema.Architects.Table, schema.Architects.ID,
	)

	rows, err := repository.db.Query(ctx, query, datastore.Named(map[string]any{"id": id}))
	if err != nil {
		return nil, dberr.Wrap(err, "get_person")
	}
	if len(rows) == 0 {
		return nil, apperr.NotFound("person")
	}

	person := scanPerson(rows[0])

	// The person's works, newest first. A failure here degrades the detail
	// to person-only rather than failing the whole fetch.
	worksQuery := fmt.Sprintf(`
		SELECT %s
		FROM %s w
		WHERE w.%s = :name AND (w.%s IS NULL OR w.%s NOT LIKE '%%%s%%')
		ORDER BY w.%s DESC, w.%s ASC
	`,
		work.ColumnList(), schema.Works.Table,
		schema.Works.Architect, schema.Works.Tag, schema.Works.Tag, tag.AddendumMarker,
		schema.Works.CompletionYear, schema.Works.ID,
	)
	workRows, err := repository.db.Query(ctx, worksQuery, datastore.Named(map[string]any{
		"name": person.Name,
	}))
	if err == nil {
		person.Works = make([]*work.Work, 0, len(workRows))
		for _, row := range workRows {
			person.Works = append(person.Works, work.ScanRow(row))
		}
	}

	return person, nil
}

// columnList renders the architects column list with the 'a' alias.
func columnList() string {
	columns := schema.Architects.Columns()
	for i := range columns {
		columns[i] = "a." + columns[i]
	}
	return strings.Join(columns, ", ")
}

// scanPerson maps a row in schema.Architects.Columns() order.
func scanPerson(row remotedb.Row) *Person {
	person := &Person{
		ID:             remotedb.AsInt(row[0]),
		Name:           remotedb.AsString(row[1]),
		NameEn:         remotedb.AsString(row[2]),
		Nationality:    remotedb.AsString(row[3]),
		BirthYear:      remotedb.AsInt(row[4]),
		DeathYear:      remotedb.AsInt(row[5]),
		School:         remotedb.AsString(row[6]),
		Faculty:        remotedb.AsString(row[7]),
		OverseasSchool: remotedb.AsString(row[8]),
		Category:       remotedb.AsString(row[12]),
		Biography:      remotedb.AsString(row[13]),
	}

	for _, mentor := range []any{row[9], row[10], row[11]} {
		if name := remotedb.AsString(mentor); name != "" {
			person.Mentors = append(person.Mentors, name)
		}
	}

	return person
}

func scalarCount(rows []remotedb.Row) (int, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return 0, fmt.Errorf("person: count query returned no scalar")
	}
	return remotedb.AsInt(rows[0][0]), nil
}
