// Copyright (c) 2026 ArchMap. All rights reserved.
// Author: shirakawa.arch.jp@gmail.com

/*
Package tag supports faceted browsing over the dataset's compound tag field.

A work's tag column holds zero or more comma-separated tokens. A token is
either a bare category ("BCS賞") or a category with an embedded variant
suffix ("新建築2014年7月号", "BCS賞(2018)", "第10回"). There is no separate
tags table: the variant grammar cannot be expressed as a column-level GROUP
BY, so aggregation happens here, client-side, after a single tag-column
fetch.
*/
package tag

import (
	"regexp"
	"sort"
	"strings"
)

// AddendumMarker flags tokens meaning "additional building of X". Such
// tokens are categorically excluded everywhere tags are read. This is a
// permanent content filter, not a user-toggleable option.
const AddendumMarker = "の追加建築"

// suffixRule is one pattern→extractor entry of the variant grammar.
type suffixRule struct {
	name    string
	pattern *regexp.Regexp
}

// suffixRules is the variant grammar in priority order. Order matters: the
// fiscal-year rule is a prefix of the year-month-issue rule, so the more
// specific rule must win.
var suffixRules = []suffixRule{
	{"year_month_issue", regexp.MustCompile(`[0-9]{4}年[0-9]{1,2}月号?`)},
	{"fiscal_year", regexp.MustCompile(`[0-9]{4}年度?`)},
	{"iteration", regexp.MustCompile(`第[0-9]+回`)},
	{"paren_year", regexp.MustCompile(`\([0-9]{4}\)`)},
}

// firstNumber extracts the first run of digits in a string.
var firstNumber = regexp.MustCompile(`[0-9]+`)

// Base returns the token with its variant suffix removed.
//
// The first rule (in priority order) that matches anywhere in the token has
// its first match removed. If removal leaves an empty string the original
// token is returned — a base tag is never empty. Base is idempotent:
// Base(Base(x)) == Base(x).
func Base(token string) string {
	for _, rule := range suffixRules {
		location := rule.pattern.FindStringIndex(token)
		if location == nil {
			continue
		}

		base := strings.TrimSpace(token[:location[0]] + token[location[1]:])
		if base == "" {
			return token
		}
		return base
	}

	return strings.TrimSpace(token)
}

// Suffix returns the variant suffix embedded in the token, if any rule of
// the grammar matches.
func Suffix(token string) (string, bool) {
	for _, rule := range suffixRules {
		if match := rule.pattern.FindString(token); match != "" {
			return match, true
		}
	}
	return "", false
}

// IsAddendum reports whether the token carries the addendum marker.
func IsAddendum(token string) bool {
	return strings.Contains(token, AddendumMarker)
}

// SplitField splits a raw tag column value into clean tokens: comma-split,
// trimmed, empties dropped, addendum-marker tokens dropped.
func SplitField(field string) []string {
	if field == "" {
		return nil
	}

	var tokens []string
	for _, raw := range strings.Split(field, ",") {
		token := strings.TrimSpace(raw)
		if token == "" || IsAddendum(token) {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}

// CleanField rejoins the clean tokens of a raw tag column value. Used when
// a work's tag string is exposed through the API.
func CleanField(field string) string {
	return strings.Join(SplitField(field), ",")
}

// SortSuffixes orders variant suffixes for display: numerically by each
// suffix's first embedded number when every suffix has one (ties broken
// lexicographically), otherwise plain lexicographic order.
func SortSuffixes(suffixes []string) {
	numbers := make(map[string]int, len(suffixes))
	allNumeric := true

	for _, suffix := range suffixes {
		match := firstNumber.FindString(suffix)
		if match == "" {
			allNumeric = false
			break
		}
		// Digits only, length-bounded by the grammar: cannot fail.
		value := 0
		for _, digit := range match {
			value = value*10 + int(digit-'0')
		}
		numbers[suffix] = value
	}

	if !allNumeric {
		sort.Strings(suffixes)
		return
	}

	sort.Slice(suffixes, func(i, j int) bool {
		if numbers[suffixes[i]] != numbers[suffixes[j]] {
			return numbers[suffixes[i]] < numbers[suffixes[j]]
		}
		return suffixes[i] < suffixes[j]
	})
}
