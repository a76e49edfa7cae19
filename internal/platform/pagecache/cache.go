// Package pagecache stores rendered pages and regenerates them incrementally:
// a page older than the revalidation interval is still served while a fresh
// copy is built in the background.
package pagecache

import (
	"context"
	"time"
)

// Cache is the byte store under the regenerator. Implementations must be safe
// for concurrent use.
type Cache interface {
	// Get returns ErrCacheMiss when key is absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value. A ttl of 0 uses the implementation's default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Error is a cache error constant.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrCacheMiss   Error = "cache miss"
	ErrCacheClosed Error = "cache closed"
)
