// Copyright (c) 2026 ArchMap. All rights reserved.
// Author: shirakawa.arch.jp@gmail.com

package person

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shirakawa/archmap/internal/catalog/tag"
	"github.com/shirakawa/archmap/internal/platform/database/schema"
	"github.com/shirakawa/archmap/pkg/jptext"
	"github.com/shirakawa/archmap/pkg/pointer"
)

// The people search accepts a token vocabulary inside the free-text term.
// A token only takes effect when the corresponding direct filter field was
// not supplied: direct parameters always win over token-derived values.
const (
	tokenNationality = "nationality:"
	tokenBorn        = "born:"
	tokenDied        = "died:"
	tokenCategory    = "category:"
	tokenSchool      = "school:"
)

// applyTokens resolves the token vocabulary against the filter. A recognized
// token is consumed — it never doubles as free text — whether or not its
// value ends up applied.
func applyTokens(filter Filter) Filter {
	term := jptext.Fold(filter.Term)
	filter.Term = term

	switch {
	case strings.HasPrefix(term, tokenNationality):
		value := strings.TrimSpace(strings.TrimPrefix(term, tokenNationality))
		if filter.Nationality == nil && value != "" {
			filter.Nationality = pointer.To(value)
		}
		filter.Term = ""

	case strings.HasPrefix(term, tokenBorn):
		value := strings.TrimSpace(strings.TrimPrefix(term, tokenBorn))
		if year, err := strconv.Atoi(value); err == nil && filter.BirthYearFrom == nil && filter.BirthYearTo == nil {
			filter.BirthYearFrom = pointer.To(year)
			filter.BirthYearTo = pointer.To(year)
		}
		filter.Term = ""

	case strings.HasPrefix(term, tokenDied):
		value := strings.TrimSpace(strings.TrimPrefix(term, tokenDied))
		if year, err := strconv.Atoi(value); err == nil && filter.DeathYear == nil {
			filter.DeathYear = pointer.To(year)
		}
		filter.Term = ""

	case strings.HasPrefix(term, tokenCategory):
		value := strings.TrimSpace(strings.TrimPrefix(term, tokenCategory))
		if filter.Category == nil && value != "" {
			filter.Category = pointer.To(value)
		}
		filter.Term = ""

	case strings.HasPrefix(term, tokenSchool):
		value := strings.TrimSpace(strings.TrimPrefix(term, tokenSchool))
		if filter.School == nil && value != "" {
			filter.School = pointer.To(value)
		}
		filter.Term = ""
	}

	return filter
}

// buildConditions translates a resolved filter into WHERE conditions and
// positional arguments. Every supplied predicate applies simultaneously.
func buildConditions(filter Filter) ([]string, []any) {
	conditions := []string{}
	args := []any{}

	if filter.Term != "" {
		pattern := "%" + filter.Term + "%"
		conditions = append(conditions, fmt.Sprintf(
			"(a.%s LIKE ? OR a.%s LIKE ? OR a.%s LIKE ?)",
			schema.Architects.Name, schema.Architects.NameEn, schema.Architects.Biography,
		))
		args = append(args, pattern, pattern, pattern)
	}

	if filter.Nationality != nil {
		conditions = append(conditions, fmt.Sprintf("a.%s = ?", schema.Architects.Nationality))
		args = append(args, *filter.Nationality)
	}

	if filter.Category != nil {
		conditions = append(conditions, fmt.Sprintf("a.%s = ?", schema.Architects.Category))
		args = append(args, *filter.Category)
	}

	if filter.School != nil {
		pattern := "%" + *filter.School + "%"
		conditions = append(conditions, fmt.Sprintf(
			"(a.%s LIKE ? OR a.%s LIKE ? OR a.%s LIKE ?)",
			schema.Architects.School, schema.Architects.Faculty, schema.Architects.OverseasSchool,
		))
		args = append(args, pattern, pattern, pattern)
	}

	if filter.BirthYearFrom != nil {
		conditions = append(conditions, fmt.Sprintf("a.%s >= ?", schema.Architects.BirthYear))
		args = append(args, *filter.BirthYearFrom)
	}

	if filter.BirthYearTo != nil {
		conditions = append(conditions, fmt.Sprintf("a.%s <= ?", schema.Architects.BirthYear))
		args = append(args, *filter.BirthYearTo)
	}

	if filter.DeathYear != nil {
		conditions = append(conditions, fmt.Sprintf("a.%s = ?", schema.Architects.DeathYear))
		args = append(args, *filter.DeathYear)
	}

	// Each selected tag must be witnessed by at least one of the person's
	// works. The join is by display-name equality; addendum-marker rows never
	// count as witnesses.
	for _, selected := range filter.SelectedTags {
		conditions = append(conditions, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM %s w WHERE w.%s = a.%s AND w.%s LIKE ? AND w.%s NOT LIKE '%%%s%%')",
			schema.Works.Table, schema.Works.Architect, schema.Architects.Name,
			schema.Works.Tag, schema.Works.Tag, tag.AddendumMarker,
		))
		args = append(args, "%"+selected+"%")
	}

	return conditions, args
}

// orderClause maps sort key and direction to an ORDER BY expression; both
// fall back to their defaults silently.
func orderClause(sortKey, sortDir string) string {
	column := schema.Architects.Name
	switch sortKey {
	case SortBirthYear:
		column = schema.Architects.BirthYear
	case SortDeathYear:
		column = schema.Architects.DeathYear
	case SortName:
	}

	direction := "ASC"
	if sortDir == DirDesc {
		direction = "DESC"
	}

	return fmt.Sprintf("a.%s %s, a.%s ASC", column, direction, schema.Architects.ID)
}
