// Copyright (c) 2026 ArchMap. All rights reserved.
// Author: shirakawa.arch.jp@gmail.com

// Package dberr provides a bridge between low-level datastore errors and
// higher-level application errors.
package dberr

import (
	"database/sql"
	"errors"

	"github.com/shirakawa/archmap/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a datastore error and wraps it into a meaningful [apperr.AppError].
// It hides internal query details from the client while classifying the error type.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}

	// 2. Unknown query errors become Internal Server Errors.
	// Transport failures against the dataset host land here as well; the
	// action string survives in the logged cause for diagnosis.
	return apperr.Internal(&actionError{action: action, cause: err})
}

// actionError annotates a datastore failure with the repository action that
// produced it.
type actionError struct {
	action string
	cause  error
}

func (e *actionError) Error() string { return e.action + ": " + e.cause.Error() }

func (e *actionError) Unwrap() error { return e.cause }
