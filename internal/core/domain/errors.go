package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDataDirNotConfigured indicates no data directory could be
	// resolved. The service still starts; auto-ingestion is disabled
	// until a directory is configured.
	ErrDataDirNotConfigured = errors.New("no data directory configured")

	// ErrInvalidChunking indicates chunk size or overlap values that
	// violate the chunking contract. Reported, never silently clamped.
	ErrInvalidChunking = errors.New("invalid chunking configuration")

	// ErrEmptyQuery indicates a missing or blank query string.
	ErrEmptyQuery = errors.New("query cannot be empty")

	// ErrParseUnavailable indicates a binary format needs the external
	// parsing service and none is configured. Files hitting this are
	// skipped with a warning, not fatal.
	ErrParseUnavailable = errors.New("document parsing unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// reachable. Vector operations cannot proceed without it.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")
)
