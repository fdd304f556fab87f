package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown source kind or plugin name.
	ErrUnsupportedType = errors.New("unsupported type")

	// Pipeline Errors.

	// ErrInvalidRequest indicates a request is missing its target or objective.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrIngestionTimeout indicates every selected source timed out.
	// A partial timeout is not an error; the timed-out sources contribute nothing.
	ErrIngestionTimeout = errors.New("ingestion timed out")

	// ErrStageFailed indicates a pipeline stage could not complete.
	ErrStageFailed = errors.New("stage failed")

	// ErrJobNotFound indicates no job exists with the given ID.
	ErrJobNotFound = errors.New("job not found")

	// Source Errors.

	// ErrSourceUnavailable indicates a source adapter is misconfigured or unreachable.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrRateLimited indicates an upstream API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
