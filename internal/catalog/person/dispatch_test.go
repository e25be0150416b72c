// Copyright (c) 2026 ArchMap. All rights reserved.
// Author: shirakawa.arch.jp@gmail.com

package person

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shirakawa/archmap/pkg/pointer"
)

/*
TestApplyTokens verifies the token vocabulary populates the filter when the
direct field is absent.
*/
func TestApplyTokens(t *testing.T) {
	resolved := applyTokens(Filter{Term: "nationality:日本"})
	require.NotNil(t, resolved.Nationality)
	assert.Equal(t, "日本", *resolved.Nationality)
	assert.Empty(t, resolved.Term)

	resolved = applyTokens(Filter{Term: "born:1941"})
	require.NotNil(t, resolved.BirthYearFrom)
	require.NotNil(t, resolved.BirthYearTo)
	assert.Equal(t, 1941, *resolved.BirthYearFrom)
	assert.Equal(t, 1941, *resolved.BirthYearTo)

	resolved = applyTokens(Filter{Term: "school:東京大学"})
	require.NotNil(t, resolved.School)
	assert.Equal(t, "東京大学", *resolved.School)

	// Free text stays free text.
	resolved = applyTokens(Filter{Term: "安藤忠雄"})
	assert.Equal(t, "安藤忠雄", resolved.Term)
	assert.Nil(t, resolved.Nationality)
}

/*
TestApplyTokens_DirectParameterWins pins the precedence rule: a direct
parameter is never overwritten by a token, and the consumed token does not
leak into free text.
*/
func TestApplyTokens_DirectParameterWins(t *testing.T) {
	resolved := applyTokens(Filter{
		Term:        "nationality:アメリカ",
		Nationality: pointer.To("日本"),
	})

	require.NotNil(t, resolved.Nationality)
	assert.Equal(t, "日本", *resolved.Nationality)
	assert.Empty(t, resolved.Term)
}

/*
TestBuildConditions verifies simultaneous predicates and the argument order
matching the condition order.
*/
func TestBuildConditions(t *testing.T) {
	conditions, args := buildConditions(Filter{
		Term:          "建築家",
		Nationality:   pointer.To("日本"),
		BirthYearFrom: pointer.To(1900),
		BirthYearTo:   pointer.To(1950),
	})

	require.Len(t, conditions, 4)
	assert.Equal(t, "(a.name LIKE ? OR a.name_en LIKE ? OR a.biography LIKE ?)", conditions[0])
	assert.Equal(t, "a.nationality = ?", conditions[1])
	assert.Equal(t, "a.birth_year >= ?", conditions[2])
	assert.Equal(t, "a.birth_year <= ?", conditions[3])
	assert.Equal(t, []any{"%建築家%", "%建築家%", "%建築家%", "日本", 1900, 1950}, args)
}

/*
TestBuildConditions_SelectedTags verifies each selected tag becomes its own
works-witness subquery with the addendum exclusion inside.
*/
func TestBuildConditions_SelectedTags(t *testing.T) {
	conditions, args := buildConditions(Filter{
		SelectedTags: []string{"BCS賞", "新建築"},
	})

	require.Len(t, conditions, 2)
	for _, condition := range conditions {
		assert.True(t, strings.HasPrefix(condition, "EXISTS (SELECT 1 FROM works w"))
		assert.Contains(t, condition, "w.architect = a.name")
		assert.Contains(t, condition, "の追加建築")
	}
	assert.Equal(t, []any{"%BCS賞%", "%新建築%"}, args)
}

func TestBuildConditions_Empty(t *testing.T) {
	conditions, args := buildConditions(Filter{})
	assert.Empty(t, conditions)
	assert.Empty(t, args)
}

func TestOrderClause(t *testing.T) {
	assert.Equal(t, "a.name ASC, a.id ASC", orderClause(SortName, DirAsc))
	assert.Equal(t, "a.birth_year DESC, a.id ASC", orderClause(SortBirthYear, DirDesc))

	// Unrecognized key and direction both fall back silently.
	assert.Equal(t, "a.name ASC, a.id ASC", orderClause("popularity", "sideways"))
}
