package domain

import "errors"

var (
	// ErrNotFound reports an absent record or index node. It is a normal,
	// non-fatal outcome everywhere except delete, where it surfaces to the
	// operator.
	ErrNotFound = errors.New("not found")

	// ErrStoreUnavailable reports a network or connection failure at the
	// index-read or delete boundary. It is fatal for that call and is never
	// retried by the core.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrInvalidDeletePath reports an empty or malformed delete path,
	// rejected before any network call.
	ErrInvalidDeletePath = errors.New("invalid delete path")
)
