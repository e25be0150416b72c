// Copyright (c) 2026 ArchMap. All rights reserved.
// Author: shirakawa.arch.jp@gmail.com

package work

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
TestBuildFilter_PrefixPrecedence verifies that a recognized prefix selects
exactly its branch and that the addendum exclusion appears in every branch.
*/
func TestBuildFilter_PrefixPrecedence(t *testing.T) {
	cases := []struct {
		name     string
		term     string
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "tag_list_or_match",
			term:     "tag:A,B",
			wantSQL:  "(w.tag LIKE ? OR w.tag LIKE ?)",
			wantArgs: []any{"%A%", "%B%"},
		},
		{
			name:     "year_equality_only",
			term:     "year:2020",
			wantSQL:  "w.completion_year = ?",
			wantArgs: []any{"2020"},
		},
		{
			name:     "prefecture_equality",
			term:     "prefecture:東京都",
			wantSQL:  "w.prefecture = ?",
			wantArgs: []any{"東京都"},
		},
		{
			name:     "category_matches_both_columns",
			term:     "category:美術館",
			wantSQL:  "(w.category = ? OR w.parent_category = ?)",
			wantArgs: []any{"美術館", "美術館"},
		},
		{
			name:     "architect_list_or_match",
			term:     "architect:隈研吾,安藤忠雄",
			wantSQL:  "(w.architect LIKE ? OR w.architect LIKE ?)",
			wantArgs: []any{"%隈研吾%", "%安藤忠雄%"},
		},
		{
			name:     "free_text_spans_four_columns",
			term:     "美術館",
			wantSQL:  "(w.title LIKE ? OR w.address LIKE ? OR w.prefecture LIKE ? OR w.architect LIKE ?)",
			wantArgs: []any{"%美術館%", "%美術館%", "%美術館%", "%美術館%"},
		},
	}

	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			conditions, args := buildFilter(testCase.term)

			require.Len(t, conditions, 2)
			assert.Equal(t, addendumExclusion, conditions[0])
			assert.Equal(t, testCase.wantSQL, conditions[1])
			assert.Equal(t, testCase.wantArgs, args)
		})
	}
}

/*
TestBuildFilter_EmptyTerm verifies the unfiltered listing still carries the
addendum exclusion and nothing else.
*/
func TestBuildFilter_EmptyTerm(t *testing.T) {
	conditions, args := buildFilter("")

	assert.Equal(t, []string{addendumExclusion}, conditions)
	assert.Empty(t, args)
}

/*
TestBuildFilter_WidthFolding verifies full-width IME input matches the
dataset's ASCII forms.
*/
func TestBuildFilter_WidthFolding(t *testing.T) {
	// Full-width "year:2020" folds to ASCII and hits the year branch.
	conditions, args := buildFilter("ｙｅａｒ：２０２０")

	require.Len(t, conditions, 2)
	assert.Equal(t, "w.completion_year = ?", conditions[1])
	assert.Equal(t, []any{"2020"}, args)
}

/*
TestBuildFilter_AddendumExclusionShape pins the clause itself: NULL tags pass
(works without tags are legitimate results), marker-bearing tags do not.
*/
func TestBuildFilter_AddendumExclusionShape(t *testing.T) {
	assert.Equal(t,
		"(w.tag IS NULL OR w.tag NOT LIKE '%の追加建築%')",
		addendumExclusion)
}

func TestOrderClause(t *testing.T) {
	assert.Equal(t, "w.completion_year DESC, w.id ASC", orderClause(SortYearDesc))
	assert.Equal(t, "w.title ASC, w.id ASC", orderClause(SortNameAsc))
	assert.Equal(t, "w.architect DESC, w.id ASC", orderClause(SortArchitectDesc))

	// Unrecognized keys fall back silently.
	assert.Equal(t, orderClause(SortDefault), orderClause("popularity"))
	assert.Equal(t, orderClause(SortDefault), orderClause(""))
}

/*
TestOrderClause_NeverInterpolatesInput guards the one place ORDER BY is
assembled from strings: the sort key must select from the fixed enum, never
flow into the SQL.
*/
func TestOrderClause_NeverInterpolatesInput(t *testing.T) {
	clause := orderClause("title; DROP TABLE works")
	assert.False(t, strings.Contains(clause, "DROP"))
}
