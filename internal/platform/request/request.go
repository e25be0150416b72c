// Copyright (c) 2026 ArchMap. All rights reserved.
// Author: shirakawa.arch.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
query-string decoding patterns, ensuring consistent error handling and type
safety across the read-only catalog endpoints.
*/
package requestutil

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
IntParam retrieves a named URL parameter and parses it as an integer.

Returns:
  - int: The parsed value
  - bool: false if the parameter is missing or malformed
*/
func IntParam(request *http.Request, name string) (int, bool) {
	raw := chi.URLParam(request, name)
	if raw == "" {
		return 0, false
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}

	return value, true
}

/*
Query retrieves a query-string parameter, "" when absent.
*/
func Query(request *http.Request, key string) string {
	return request.URL.Query().Get(key)
}

/*
OptionalInt parses an optional integer query parameter.

Returns nil when the parameter is absent or malformed, so that downstream
filters can distinguish "not supplied" from a zero value.
*/
func OptionalInt(request *http.Request, key string) *int {
	raw := request.URL.Query().Get(key)
	if raw == "" {
		return nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}

	return &value
}

/*
OptionalString returns a pointer to a query parameter value, or nil when the
parameter is absent or empty.
*/
func OptionalString(request *http.Request, key string) *string {
	raw := request.URL.Query().Get(key)
	if raw == "" {
		return nil
	}
	return &raw
}
