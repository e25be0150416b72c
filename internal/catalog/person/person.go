// Copyright (c) 2026 ArchMap. All rights reserved.
// Author: shirakawa.arch.jp@gmail.com

// Package person serves the architects catalog: filtered search over the
// architects table and single-person detail with the person's works.
package person

import "github.com/shirakawa/archmap/internal/catalog/work"

// Person represents one architect in the dataset.
//
// DeathYear 0 means unknown or still living. Mentors are display names; the
// dataset carries no mentor foreign keys, so they stay unresolved.
type Person struct {
	ID             int          `json:"id"`
	Name           string       `json:"name"`
	NameEn         string       `json:"name_en"`
	Nationality    string       `json:"nationality"`
	BirthYear      int          `json:"birth_year"`
	DeathYear      int          `json:"death_year"`
	School         string       `json:"school"`
	Faculty        string       `json:"faculty"`
	OverseasSchool string       `json:"overseas_school"`
	Mentors        []string     `json:"mentors"`
	Category       string       `json:"category"`
	Biography      string       `json:"biography"`
	Works          []*work.Work `json:"works,omitempty"`
}

// Filter holds the composable search predicates. Pointer fields distinguish
// "not supplied" from a zero value; supplied predicates all apply at once.
type Filter struct {
	Term          string
	SelectedTags  []string
	Nationality   *string
	Category      *string
	School        *string
	BirthYearFrom *int
	BirthYearTo   *int
	DeathYear     *int
}

// SearchResult is the paginated search payload.
type SearchResult struct {
	Items     []*Person `json:"items"`
	Total     int       `json:"total"`
	Page      int       `json:"page"`
	PageCount int       `json:"page_count"`
}

// EmptyResult is the benign sentinel returned when the data layer fails.
func EmptyResult(page int) *SearchResult {
	return &SearchResult{Items: []*Person{}, Page: page}
}

// Sort keys accepted by the people search; direction is a separate
// asc/desc parameter. Unrecognized values fall back silently.
const (
	SortName      = "name"
	SortBirthYear = "born"
	SortDeathYear = "died"

	SortDefault = SortName

	DirAsc     = "asc"
	DirDesc    = "desc"
	DirDefault = DirAsc
)
