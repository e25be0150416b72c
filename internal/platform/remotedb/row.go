// Copyright (c) 2026 ArchMap. All rights reserved.
// Author: shirakawa.arch.jp@gmail.com

package remotedb

import (
	"fmt"
	"strconv"
)

// Coercion helpers for Row values. SQLite columns are dynamically typed and
// the dataset is assembled from scraped sources, so a nominally-INTEGER
// column can still hand back TEXT. Repositories use these instead of bare
// type assertions so a single odd row degrades to a zero value instead of a
// panic.

// AsString coerces a row value to a string. NULL becomes "".
func AsString(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case []byte:
		return string(typed)
	default:
		return fmt.Sprint(typed)
	}
}

// AsInt coerces a row value to an int. NULL and unparseable text become 0.
func AsInt(value any) int {
	switch typed := value.(type) {
	case int64:
		return int(typed)
	case float64:
		return int(typed)
	case string:
		parsed, _ := strconv.Atoi(typed)
		return parsed
	default:
		return 0
	}
}

// AsFloat coerces a row value to a float64. NULL becomes 0.
func AsFloat(value any) float64 {
	switch typed := value.(type) {
	case float64:
		return typed
	case int64:
		return float64(typed)
	case string:
		parsed, _ := strconv.ParseFloat(typed, 64)
		return parsed
	default:
		return 0
	}
}

// AsNullableFloat preserves NULL as nil; anything else goes through AsFloat.
func AsNullableFloat(value any) *float64 {
	if value == nil {
		return nil
	}
	parsed := AsFloat(value)
	return &parsed
}

// AsNullableInt preserves NULL as nil; anything else goes through AsInt.
func AsNullableInt(value any) *int {
	if value == nil {
		return nil
	}
	parsed := AsInt(value)
	return &parsed
}
