// Copyright (c) 2026 ArchMap. All rights reserved.
// Author: shirakawa.arch.jp@gmail.com

package tag_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shirakawa/archmap/internal/catalog/tag"
)

/*
TestBase exercises the variant grammar rule by rule, including rule priority
and the never-empty fallback.
*/
func TestBase(t *testing.T) {
	cases := []struct {
		name  string
		token string
		want  string
	}{
		{"year_month_issue", "新建築2014年7月号", "新建築"},
		{"year_month_no_issue_mark", "新建築2016年3月", "新建築"},
		{"fiscal_year", "JIA新人賞2010年度", "JIA新人賞"},
		{"plain_year", "グッドデザイン賞2005年", "グッドデザイン賞"},
		{"iteration", "第10回木材活用コンクール", "木材活用コンクール"},
		{"paren_year", "BCS賞(2018)", "BCS賞"},
		{"no_suffix", "日本建築学会賞", "日本建築学会賞"},
		{"suffix_only_token_falls_back", "2014年7月号", "2014年7月号"},
		{"interior_whitespace_trimmed", "住宅特集 2014年7月号", "住宅特集"},
	}

	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, tag.Base(testCase.token))
		})
	}
}

/*
TestBase_Idempotent pins the invariant the facet index depends on: deriving a
base from a base changes nothing.
*/
func TestBase_Idempotent(t *testing.T) {
	tokens := []string{
		"新建築2014年7月号",
		"BCS賞(2018)",
		"第10回木材活用コンクール",
		"日本建築学会賞",
		"2014年7月号",
	}

	for _, token := range tokens {
		base := tag.Base(token)
		assert.Equal(t, base, tag.Base(base), "token %q", token)
	}
}

func TestSuffix(t *testing.T) {
	suffix, ok := tag.Suffix("新建築2014年7月号")
	assert.True(t, ok)
	assert.Equal(t, "2014年7月号", suffix)

	suffix, ok = tag.Suffix("BCS賞(2018)")
	assert.True(t, ok)
	assert.Equal(t, "(2018)", suffix)

	_, ok = tag.Suffix("日本建築学会賞")
	assert.False(t, ok)
}

/*
TestSplitField verifies comma splitting, trimming, and the permanent addendum
exclusion.
*/
func TestSplitField(t *testing.T) {
	// 1. Mixed field with whitespace and an empty segment
	tokens := tag.SplitField("新建築2014年7月号, BCS賞(2018),,日本建築学会賞")
	assert.Equal(t, []string{"新建築2014年7月号", "BCS賞(2018)", "日本建築学会賞"}, tokens)

	// 2. Addendum tokens never survive
	tokens = tag.SplitField("BCS賞(2018),国立競技場の追加建築")
	assert.Equal(t, []string{"BCS賞(2018)"}, tokens)

	// 3. Empty field
	assert.Nil(t, tag.SplitField(""))
}

func TestCleanField(t *testing.T) {
	assert.Equal(t, "BCS賞(2018)", tag.CleanField("BCS賞(2018),旧庁舎の追加建築"))
	assert.Equal(t, "", tag.CleanField("旧庁舎の追加建築"))
}

/*
TestSortSuffixes verifies numeric-first ordering and the lexicographic
fallback when a suffix has no embedded number.
*/
func TestSortSuffixes(t *testing.T) {
	// 1. All numeric: ordered by first embedded number
	suffixes := []string{"2016年3月号", "2014年7月号", "(2015)"}
	tag.SortSuffixes(suffixes)
	assert.Equal(t, []string{"2014年7月号", "(2015)", "2016年3月号"}, suffixes)

	// 2. Mixed: plain lexicographic
	mixed := []string{"特別号", "2014年7月号"}
	tag.SortSuffixes(mixed)
	assert.Equal(t, []string{"2014年7月号", "特別号"}, mixed)
}
