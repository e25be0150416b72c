// Copyright (c) 2026 ArchMap. All rights reserved.
// Author: shirakawa.arch.jp@gmail.com

package work

import (
	"fmt"
	"strings"

	"github.com/shirakawa/archmap/internal/catalog/tag"
	"github.com/shirakawa/archmap/internal/platform/database/schema"
	"github.com/shirakawa/archmap/pkg/jptext"
	"github.com/shirakawa/archmap/pkg/query"
)

// The works search grammar: a term either starts with one recognized prefix,
// selecting a dedicated filter branch, or is treated as free text matched
// against title, address, prefecture and architect name. List-valued
// prefixes take comma-separated values combined with OR.
const (
	prefixTag        = "tag:"
	prefixYear       = "year:"
	prefixPrefecture = "prefecture:"
	prefixCategory   = "category:"
	prefixArchitect  = "architect:"
)

// addendumExclusion is appended to every works WHERE clause, whatever branch
// the grammar selects. Addendum-marker rows are never search results.
var addendumExclusion = fmt.Sprintf(
	"(w.%s IS NULL OR w.%s NOT LIKE '%%%s%%')",
	schema.Works.Tag, schema.Works.Tag, tag.AddendumMarker,
)

// buildFilter translates a search term into WHERE conditions and their
// positional arguments. The term is width-folded first so full-width digits
// and parentheses from Japanese IMEs match the dataset's ASCII forms.
func buildFilter(term string) ([]string, []any) {
	conditions := []string{addendumExclusion}
	args := []any{}

	term = jptext.Fold(term)

	switch {
	case term == "":
		// Unfiltered listing.

	case strings.HasPrefix(term, prefixTag):
		likes := make([]string, 0, 2)
		for _, value := range query.StringSlice(strings.TrimPrefix(term, prefixTag)) {
			likes = append(likes, fmt.Sprintf("w.%s LIKE ?", schema.Works.Tag))
			args = append(args, "%"+value+"%")
		}
		if len(likes) > 0 {
			conditions = append(conditions, "("+strings.Join(likes, " OR ")+")")
		}

	case strings.HasPrefix(term, prefixYear):
		// Bound as text; SQLite's column affinity coerces the comparison, so
		// a malformed year matches nothing instead of erroring.
		conditions = append(conditions, fmt.Sprintf("w.%s = ?", schema.Works.CompletionYear))
		args = append(args, strings.TrimSpace(strings.TrimPrefix(term, prefixYear)))

	case strings.HasPrefix(term, prefixPrefecture):
		conditions = append(conditions, fmt.Sprintf("w.%s = ?", schema.Works.Prefecture))
		args = append(args, strings.TrimSpace(strings.TrimPrefix(term, prefixPrefecture)))

	case strings.HasPrefix(term, prefixCategory):
		value := strings.TrimSpace(strings.TrimPrefix(term, prefixCategory))
		conditions = append(conditions, fmt.Sprintf(
			"(w.%s = ? OR w.%s = ?)", schema.Works.Category, schema.Works.ParentCategory,
		))
		args = append(args, value, value)

	case strings.HasPrefix(term, prefixArchitect):
		likes := make([]string, 0, 2)
		for _, value := range query.StringSlice(strings.TrimPrefix(term, prefixArchitect)) {
			likes = append(likes, fmt.Sprintf("w.%s LIKE ?", schema.Works.Architect))
			args = append(args, "%"+value+"%")
		}
		if len(likes) > 0 {
			conditions = append(conditions, "("+strings.Join(likes, " OR ")+")")
		}

	default:
		pattern := "%" + term + "%"
		conditions = append(conditions, fmt.Sprintf(
			"(w.%s LIKE ? OR w.%s LIKE ? OR w.%s LIKE ? OR w.%s LIKE ?)",
			schema.Works.Title, schema.Works.Address, schema.Works.Prefecture, schema.Works.Architect,
		))
		args = append(args, pattern, pattern, pattern, pattern)
	}

	return conditions, args
}

// orderClause maps a sort key to its ORDER BY expression. Unrecognized keys
// fall back to the default silently — sort is cosmetic, never an error. The
// id tiebreaker keeps pagination stable across identical sort values.
func orderClause(sortKey string) string {
	column, direction := schema.Works.CompletionYear, "DESC"

	switch sortKey {
	case SortYearAsc:
		column, direction = schema.Works.CompletionYear, "ASC"
	case SortYearDesc:
	case SortNameAsc:
		column, direction = schema.Works.Title, "ASC"
	case SortNameDesc:
		column, direction = schema.Works.Title, "DESC"
	case SortArchitectAsc:
		column, direction = schema.Works.Architect, "ASC"
	case SortArchitectDesc:
		column, direction = schema.Works.Architect, "DESC"
	}

	return fmt.Sprintf("w.%s %s, w.%s ASC", column, direction, schema.Works.ID)
}
