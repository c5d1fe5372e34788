package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrStoreFailure indicates the index store failed to read or write.
	ErrStoreFailure = errors.New("index store failure")

	// ErrListingFailure indicates the page provider could not enumerate pages.
	ErrListingFailure = errors.New("page listing failure")

	// ErrUnsupportedBackend indicates an unknown storage backend name.
	ErrUnsupportedBackend = errors.New("unsupported storage backend")
)
