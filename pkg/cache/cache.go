// Package cache stores fetched rasters so repeated exports of the same link
// do not hit the QR-rendering service or the logo host again.
//
// Backends:
//   - [FileCache]: hashed files under a directory, for CLI use
//   - [RedisCache]: shared cache for the HTTP API across instances
//   - [NullCache]: caching disabled
//
// Keys are produced by a [Keyer] so every backend agrees on naming.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry TTL.
type Cache interface {
	// Get returns the cached bytes and whether the key was present and fresh.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
