// Copyright (c) 2026 ArchMap. All rights reserved.
// Author: shirakawa.arch.jp@gmail.com

package datastore

import (
	"fmt"
	"regexp"
)

// Params is a tagged variant over the two parameter shapes the query layer
// accepts: an already-ordered positional list, or a mapping from named
// placeholders to values.
type Params struct {
	positional []any
	named      map[string]any
	isNamed    bool
}

// Positional wraps an ordered parameter list. It is passed through to the
// adapter unchanged.
func Positional(values ...any) Params {
	return Params{positional: values}
}

// Named wraps a map of placeholder names to values. Bind rewrites the query
// text's :name placeholders into the adapter's numbered ?N syntax.
func Named(values map[string]any) Params {
	return Params{named: values, isNamed: true}
}

// namedPlaceholder matches :name placeholders. Queries in this codebase
// never contain ':' inside string literals, so a lexical scan is sufficient.
var namedPlaceholder = regexp.MustCompile(`:([A-Za-z_][A-Za-z0-9_]*)`)

// Bind resolves the parameter variant against the query text.
//
// # Repeated-Name Policy
//
// A name that appears multiple times in the text is bound to a single
// parameter slot, numbered by the left-to-right order of each name's first
// occurrence; later occurrences reuse that slot (?N syntax). This is the one
// documented policy — values are never duplicated per occurrence.
//
// Unknown placeholders and unused values are both errors: a silent mismatch
// here would surface as a confusing SQLite bind error (or worse, a wrong
// result) far from the call site.
func (params Params) Bind(query string) (string, []any, error) {
	if !params.isNamed {
		return query, params.positional, nil
	}

	slots := make(map[string]int, len(params.named))
	ordered := make([]any, 0, len(params.named))

	var bindErr error
	rewritten := namedPlaceholder.ReplaceAllStringFunc(query, func(match string) string {
		name := match[1:]

		value, ok := params.named[name]
		if !ok {
			if bindErr == nil {
				bindErr = fmt.Errorf("datastore: query references unbound parameter :%s", name)
			}
			return match
		}

		slot, seen := slots[name]
		if !seen {
			ordered = append(ordered, value)
			slot = len(ordered)
			slots[name] = slot
		}

		return fmt.Sprintf("?%d", slot)
	})
	if bindErr != nil {
		return "", nil, bindErr
	}

	if len(slots) != len(params.named) {
		for name := range params.named {
			if _, used := slots[name]; !used {
				return "", nil, fmt.Errorf("datastore: parameter :%s not referenced by query", name)
			}
		}
	}

	return rewritten, ordered, nil
}
