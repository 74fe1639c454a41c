// Package cache provides byte-oriented caching for rendered images and
// resolved icon glyphs.
//
// Three backends are provided:
//   - FileCache: directory-backed, for CLI and single-instance deployments
//   - RedisCache: shared cache for multi-instance production deployments
//   - NullCache: caching disabled
//
// All backends are safe for concurrent use. Entries are never invalidated
// in place; expiry (TTL) and process restart are the eviction mechanisms.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys with optional TTL.
type Cache interface {
	// Get returns the cached value and whether it was found.
	// A miss is (nil, false, nil); errors are backend failures only.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
