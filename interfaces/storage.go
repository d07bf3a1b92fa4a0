package interfaces

import (
	"context"
	"errors"
)

// Storage errors returned by content store backends.
var (
	// ErrStoreNotConfigured indicates missing content store credentials or
	// location. Returned before any network call is made.
	ErrStoreNotConfigured = errors.New("content store not configured")

	// ErrStoreUnavailable indicates the content store cannot be reached.
	ErrStoreUnavailable = errors.New("content store unavailable")

	// ErrContentNotFound indicates the requested content does not exist in
	// the store.
	ErrContentNotFound = errors.New("content not found")

	// ErrInvalidLocationURI indicates a malformed store location URI.
	ErrInvalidLocationURI = errors.New("invalid storage location URI")
)

// ContentStore provides content-addressed payload storage. Stores are
// append-only from the client's perspective: there is no delete primitive,
// so a payload uploaded for a registration that later fails remains in the
// store as a known, surfaced inconsistency.
type ContentStore interface {
	// Upload stores the payload and returns its content identifier.
	Upload(ctx context.Context, data []byte) (ContentID, error)

	// Fetch retrieves a payload by its content identifier.
	Fetch(ctx context.Context, id ContentID) ([]byte, error)

	// Available checks whether the store is reachable.
	Available(ctx context.Context) bool

	// ContentURL returns a public retrieval URL for a content identifier,
	// templated on the store's gateway.
	ContentURL(id ContentID) string

	// Name returns a unique identifier for this store backend.
	Name() string

	// LocationURI returns the URI this backend was created from.
	LocationURI() string
}
