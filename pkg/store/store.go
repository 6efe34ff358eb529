// Package store provides the keyed session store used by the API layer.
// What the original automation scripts kept in process-wide dictionaries
// lives here behind an explicit interface, passed by reference to whichever
// service needs it.
package store

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Store is a small TTL-aware key/value store. A zero TTL means no expiry.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close(ctx context.Context) error
}

// NewFromURL selects a store implementation from a URL scheme:
// "redis://..." connects to Redis, "memory://" (or empty) is in-process.
func NewFromURL(url string) (Store, error) {
	switch {
	case url == "" || strings.HasPrefix(url, "memory://"):
		return NewMemory(), nil
	case strings.HasPrefix(url, "redis://"), strings.HasPrefix(url, "rediss://"):
		return NewRedis(url)
	default:
		return nil, fmt.Errorf("unsupported store URL: %s", url)
	}
}
