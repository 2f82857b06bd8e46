package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoContainer indicates the document container element is not
	// available, so layout measurement cannot run.
	ErrNoContainer = errors.New("document container unavailable")

	// ErrElementMissing indicates a highlight or card element has not
	// been rendered yet. This is a benign, retryable condition.
	ErrElementMissing = errors.New("element not rendered")

	// ErrNoActivePlacement indicates a placement commit was requested
	// with no placement in progress.
	ErrNoActivePlacement = errors.New("no active placement")

	// ErrUnsupportedAction indicates an assistant directive type the
	// dispatcher does not handle.
	ErrUnsupportedAction = errors.New("unsupported assistant action")

	// ErrRateLimited indicates assistant directives arrived faster
	// than the dispatcher allows.
	ErrRateLimited = errors.New("rate limited")

	// ErrBundleInvalid indicates a review bundle that cannot be parsed.
	ErrBundleInvalid = errors.New("invalid review bundle")
)
