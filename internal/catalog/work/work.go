// Copyright (c) 2026 ArchMap. All rights reserved.
// Author: shirakawa.arch.jp@gmail.com

// Package work serves the building catalog: paginated search over the works
// table, single-work detail, and the map projection.
package work

// Work represents one building or project in the dataset.
//
// Architect is a display name; ArchitectID is populated on detail fetches by
// a best-effort name-equality lookup against the architects table. Tags is
// the tag column split into clean tokens, addendum markers already removed.
type Work struct {
	ID             int      `json:"id"`
	Title          string   `json:"title"`
	Address        string   `json:"address"`
	Prefecture     string   `json:"prefecture"`
	CompletionYear int      `json:"completion_year"`
	Architect      string   `json:"architect"`
	ArchitectID    *int     `json:"architect_id,omitempty"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	Category       string   `json:"category"`
	ParentCategory string   `json:"parent_category"`
	Tags           []string `json:"tags"`
}

// MapPoint is the reduced projection the map view plots. Only works with
// both coordinates present ever become map points.
type MapPoint struct {
	ID             int     `json:"id"`
	Title          string  `json:"title"`
	Prefecture     string  `json:"prefecture"`
	Architect      string  `json:"architect"`
	CompletionYear int     `json:"completion_year"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
}

// SearchResult is the paginated search payload.
type SearchResult struct {
	Items     []*Work `json:"items"`
	Total     int     `json:"total"`
	Page      int     `json:"page"`
	PageCount int     `json:"page_count"`
}

// EmptyResult is the benign sentinel the containment boundary hands the UI
// when the data layer fails. Items is non-nil so it serializes as [].
func EmptyResult(page int) *SearchResult {
	return &SearchResult{Items: []*Work{}, Page: page}
}

// Sort keys accepted by the search endpoint. Anything else silently falls
// back to SortDefault.
const (
	SortYearAsc       = "year_asc"
	SortYearDesc      = "year_desc"
	SortNameAsc       = "name_asc"
	SortNameDesc      = "name_desc"
	SortArchitectAsc  = "architect_asc"
	SortArchitectDesc = "architect_desc"

	SortDefault = SortYearDesc
)
