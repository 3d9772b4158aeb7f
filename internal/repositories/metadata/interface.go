// Package metadata stores the key material that lives inside the diary
// file next to the entries: the KDF salt and the master key verifier.
package metadata

import (
	"context"
)

// Keys stored by the diary store.
const (
	KeySalt     = "salt"
	KeyVerifier = "verifier"
)

// Repository is a small key/value store for opaque blobs.
type Repository interface {
	// Get returns (nil, nil) when key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set inserts or overwrites key.
	Set(ctx context.Context, key string, value []byte) error
}
