// Copyright (c) 2026 ArchMap. All rights reserved.
// Author: shirakawa.arch.jp@gmail.com

// Package schema defines the column layout of the published dataset file.
//
// The dataset is built offline and shipped as a single immutable SQLite file;
// this package is the one place its physical names appear, so a dataset
// rebuild with renamed columns touches exactly these definitions.
package schema

// WorksTable represents the 'works' table (one row per building/project).
type WorksTable struct {
	Table          string
	ID             string
	Title          string
	Address        string
	Prefecture     string
	CompletionYear string
	Architect      string
	Latitude       string
	Longitude      string
	Category       string
	ParentCategory string
	Tag            string
}

// Works is the schema definition for the works table.
//
// Architect is a display name, not a foreign key; joins against the
// architects table are by name equality. Tag holds zero or more
// comma-separated tag tokens in a single string.
var Works = WorksTable{
	Table:          "works",
	ID:             "id",
	Title:          "title",
	Address:        "address",
	Prefecture:     "prefecture",
	CompletionYear: "completion_year",
	Architect:      "architect",
	Latitude:       "latitude",
	Longitude:      "longitude",
	Category:       "category",
	ParentCategory: "parent_category",
	Tag:            "tag",
}

func (t WorksTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Address, t.Prefecture, t.CompletionYear,
		t.Architect, t.Latitude, t.Longitude, t.Category, t.ParentCategory, t.Tag,
	}
}
