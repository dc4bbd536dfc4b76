// Package cache stores computed layouts and rendered artifacts.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under the user cache directory
//     (the CLI default)
//   - [RedisCache]: shared cache for the HTTP service
//   - [NullCache]: never stores anything (--no-cache)
//
// # Keys
//
// A [Keyer] derives keys from content hashes: layouts are keyed by the hash
// of the filtered input records plus every engine setting, artifacts by the
// layout ID plus render options. Changing any input therefore misses the
// cache instead of returning a stale result.
//
//	k := cache.NewDefaultKeyer()
//	key := k.LayoutKey(cache.Hash(data), cache.LayoutKeyOpts{Width: 700, Height: 500, Seed: 42})
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the value and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data. A ttl of 0 never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Default lifetimes.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)
