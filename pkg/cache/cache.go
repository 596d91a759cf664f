// Package cache stores registry lookup results between runs.
//
// # Backends
//
// [Cache] is implemented by:
//
//   - [FileCache]: one JSON file per entry under ~/.cache/stackforge (CLI default)
//   - [RedisCache]: a shared Redis instance (server deployments)
//   - [NullCache]: no caching (--no-cache, tests)
//
// Use [Open] to construct a backend from its name.
//
// # Keys
//
// [Keyer] builds namespaced keys so that Maven artifacts and Gradle plugins
// never collide, and so that several deployments can share one Redis:
//
//	k := cache.NewKeyer("prod:")
//	k.VersionKey("maven", "org.projectlombok:lombok") // "prod:version:maven:org.projectlombok:lombok"
//
// # Retries
//
// [RetryWithBackoff] retries transient failures wrapped with [Retryable].
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry TTL.
//
// Implementations must be safe for concurrent use: version lookups for one
// composition run in parallel goroutines that share a cache.
type Cache interface {
	// Get returns the value stored under key. hit is false on a miss or an
	// expired entry; err is only set for backend failures.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key. A ttl of 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Backend names accepted by [Open].
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Options selects and configures a cache backend.
type Options struct {
	Backend  string // "file" (default), "redis" or "none"
	Dir      string // FileCache directory
	RedisURL string // RedisCache connection URL (redis://host:6379/0)
}

// Open constructs the backend named by opts.Backend.
func Open(opts Options) (Cache, error) {
	switch opts.Backend {
	case "", BackendFile:
		c, err := NewFileCache(opts.Dir)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendRedis:
		c, err := NewRedisCache(opts.RedisURL)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendNone:
		return NewNullCache(), nil
	default:
		return nil, &UnknownBackendError{Backend: opts.Backend}
	}
}

// UnknownBackendError is returned by [Open] for an unsupported backend name.
type UnknownBackendError struct{ Backend string }

func (e *UnknownBackendError) Error() string {
	return "unknown cache backend: " + e.Backend
}

// Keyer builds cache keys with an optional prefix for multi-tenant isolation.
type Keyer struct {
	prefix string
}

// NewKeyer creates a keyer that prepends prefix to every key.
func NewKeyer(prefix string) Keyer {
	return Keyer{prefix: prefix}
}

// VersionKey returns the key for a latest-version lookup of coordinate in the
// given registry namespace.
func (k Keyer) VersionKey(namespace, coordinate string) string {
	return k.prefix + "version:" + namespace + ":" + coordinate
}
