// Package cache provides caching for rendered tree diagrams.
//
// Rendering goes through Graphviz and, for PDF, an external converter, so a
// repeated request for the same tree, mode and format is served from cache.
// Keys are derived from a hash of the tree's canonical JSON, which means two
// trees that differ only in node IDs share an entry.
//
// # Backends
//
//   - [NullCache]: never stores anything (caching disabled)
//   - [FileCache]: one JSON file per entry under a sharded directory
//   - [RedisCache]: a shared Redis instance, for several servers
//
// # Keys
//
// A [Keyer] builds keys for each cached artifact type. [NewScopedKeyer]
// prefixes every key so several editors can share one backend.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values with an optional TTL.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value for key. A miss is reported as (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}
