package port

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned by Get when the key is absent, so callers can tell a
// miss apart from a transport failure.
var ErrMiss = errors.New("cache: miss")

// Cache is the key-value contract the application layer caches through.
// Values are plain strings; callers own serialization. Implementations must
// be safe for concurrent use.
type Cache interface {
	// Get returns the value at key, or ErrMiss when the key is absent.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value at key. A zero or negative ttl stores without
	// expiration.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	// Del removes the given keys and reports how many existed.
	Del(ctx context.Context, keys ...string) (int64, error)

	// Ping checks connectivity with the backend.
	Ping(ctx context.Context) error

	Close() error
}
