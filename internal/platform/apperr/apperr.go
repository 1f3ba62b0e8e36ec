// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the centralized error-handling framework for the
movies-etl pipeline.

It provides a rich error type that bridges low-level I/O failures (pgx
connection errors, search-engine HTTP responses) to a three-class
taxonomy: Transient (retry with backoff), Fatal (abort the tick or the
process), and Skip (log, count, continue the batch).

Every error that crosses a stage boundary (Source Reader, Sink Writer,
Cursor Store) should be wrapped as a [PipelineError] so the Pipeline
Driver can route it correctly without re-deriving its meaning from string
matching at every call site.
*/
package apperr

import (
	"errors"
	"fmt"
)

// Severity classifies how the Pipeline Driver must react to an error.
type Severity string

const (
	// Transient errors are I/O failures that may succeed on retry
	// (connection refused, read timeout, 5xx, pgx connection reset). The
	// Sink Writer retries them with exponential backoff; the Source Reader
	// returns them to its caller without retrying.
	Transient Severity = "transient"

	// Fatal errors are not retried (schema/4xx, cursor-store write
	// failure, SQL syntax, unknown column). The pipeline drivers do not
	// tell these apart: any error that ends a tick also ends the
	// pipeline's Run loop.
	Fatal Severity = "fatal"

	// Skip errors apply to a single malformed row; the batch continues.
	Skip Severity = "skip"
)

// PipelineError is the canonical error type for the movies-etl pipeline.
//
// # Logging
//
// Cause is the underlying error, always safe to log (there is no external
// client surface in this process to leak internal detail to).
type PipelineError struct {
	// Severity determines how the Pipeline Driver reacts (§7).
	Severity Severity
	// Stage names the pipeline stage that raised the error (e.g.
	// "producer:film_work", "sink:bulk_upsert").
	Stage string
	// Message is a short human-readable description for logs.
	Message string
	// Cause is the underlying error.
	Cause error
}

// Error implements the error interface.
func (e *PipelineError) Error() string {
	if e.Stage != "" {
		return fmt.Sprintf("%s: %s: %s", e.Stage, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Message, e.Cause)
}

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *PipelineError) Unwrap() error { return e.Cause }

// # Constructors

// TransientErr wraps cause as a retryable I/O error originating from stage.
func TransientErr(stage string, cause error) *PipelineError {
	return &PipelineError{Severity: Transient, Stage: stage, Message: "transient I/O error", Cause: cause}
}

// FatalErr wraps cause as a non-retryable error originating from stage.
func FatalErr(stage string, cause error) *PipelineError {
	return &PipelineError{Severity: Fatal, Stage: stage, Message: "fatal error", Cause: cause}
}

// SkipErr wraps cause as a single-row failure that does not abort the batch.
func SkipErr(stage string, cause error) *PipelineError {
	return &PipelineError{Severity: Skip, Stage: stage, Message: "malformed row skipped", Cause: cause}
}

// # Helpers

// As extracts the [*PipelineError] from err's chain. It returns nil if not found.
func As(err error) *PipelineError {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe
	}
	return nil
}

// IsTransient reports whether err (or any error in its chain) is a
// [*PipelineError] classified as [Transient].
func IsTransient(err error) bool {
	pe := As(err)
	return pe != nil && pe.Severity == Transient
}

// IsFatal reports whether err (or any error in its chain) is a
// [*PipelineError] classified as [Fatal].
func IsFatal(err error) bool {
	pe := As(err)
	return pe != nil && pe.Severity == Fatal
}
