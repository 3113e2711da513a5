package metadata

import "errors"

// Sentinel errors shared by the provider clients so callers can map provider
// outcomes without knowing which client produced them.
var (
	// ErrNotFound means the provider answered but has no record for the id
	ErrNotFound = errors.New("metadata: record not found")

	// ErrInvalidID means the external id is malformed and was rejected
	// before any request was sent
	ErrInvalidID = errors.New("metadata: invalid external id")
)
