// Copyright (c) 2026 ArchMap. All rights reserved.
// Author: shirakawa.arch.jp@gmail.com

// Package jptext normalizes Japanese user input for substring search.
//
// # Usage
//
// Catalog search terms arrive in mixed full-width/half-width forms
// (e.g. "ＢＣＳ賞" vs "BCS賞", "２０２０" vs "2020"). The dataset stores
// half-width ASCII, so search input is folded before it reaches the query
// builders.
package jptext

import (
	"strings"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Fold canonicalizes a search term for comparison against dataset columns.
//
// # Transformation Pipeline
//
// 1. NFKC normalization (composes compatibility forms, e.g. ㍻ → 平成).
// 2. Width folding (full-width ASCII/digits → half-width, half-width kana → full-width).
// 3. Whitespace trimming.
func Fold(s string) string {
	folded := width.Fold.String(norm.NFKC.String(s))
	return strings.TrimSpace(folded)
}
