// Copyright (c) 2026 ArchMap. All rights reserved.
// Author: shirakawa.arch.jp@gmail.com

package schema

// ArchitectsTable represents the 'architects' table (one row per person).
type ArchitectsTable struct {
	Table          string
	ID             string
	Name           string
	NameEn         string
	Nationality    string
	BirthYear      string
	DeathYear      string
	School         string
	Faculty        string
	OverseasSchool string
	Mentor1        string
	Mentor2        string
	Mentor3        string
	Category       string
	Biography      string
}

// Architects is the schema definition for the architects table.
//
// Mentor columns store display names; resolving them to architect ids is a
// best-effort lookup by name equality. A death year of 0 means unknown or
// still living.
var Architects = ArchitectsTable{
	Table:          "architects",
	ID:             "id",
	Name:           "name",
	NameEn:         "name_en",
	Nationality:    "nationality",
	BirthYear:      "birth_year",
	DeathYear:      "death_year",
	School:         "school",
	Faculty:        "faculty",
	OverseasSchool: "overseas_school",
	Mentor1:        "mentor1",
	Mentor2:        "mentor2",
	Mentor3:        "mentor3",
	Category:       "category",
	Biography:      "biography",
}

func (t ArchitectsTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.NameEn, t.Nationality, t.BirthYear, t.DeathYear,
		t.School, t.Faculty, t.OverseasSchool,
		t.Mentor1, t.Mentor2, t.Mentor3, t.Category, t.Biography,
	}
}
