// Package cache stores serialized scan results and HTTP responses.
//
// Three backends implement [Cache]:
//
//   - [FileCache]: JSON envelopes on local disk, for CLI use
//   - [RedisCache]: a shared Redis instance, for fleets of scanners
//   - [NullCache]: never stores anything
//
// Values are opaque bytes; [GetJSON] and [SetJSON] add JSON encoding and
// report hits, misses and writes to the observability cache hooks.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/loic-sharma/NuGet.Dependents/pkg/observability"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is reported
	// as ok=false with a nil error.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}

// ScanKey is the key a repository's scan result is stored under. Results are
// immutable per commit, so the commit hash is part of the key.
func ScanKey(cloneURL, commit string) string {
	return "scan:" + cloneURL + "@" + commit
}

// HTTPKey is the key an HTTP response is stored under.
func HTTPKey(namespace, url string) string {
	return hashKey("http:"+namespace, url)
}

// keyType is the prefix of key up to the first colon, used to label hook
// events without leaking full keys.
func keyType(key string) string {
	for i := 0; i < len(key); i++ {
		if key[i] == ':' {
			return key[:i]
		}
	}
	return key
}

// GetJSON looks key up and decodes it into v. A value that no longer decodes
// is deleted and reported as a miss.
func GetJSON(ctx context.Context, c Cache, key string, v any) (bool, error) {
	data, ok, err := c.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if !ok {
		observability.Cache().OnCacheMiss(ctx, keyType(key))
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		_ = c.Delete(ctx, key)
		observability.Cache().OnCacheMiss(ctx, keyType(key))
		return false, nil
	}
	observability.Cache().OnCacheHit(ctx, keyType(key))
	return true, nil
}

// SetJSON encodes v and stores it under key.
func SetJSON(ctx context.Context, c Cache, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := c.Set(ctx, key, data, ttl); err != nil {
		return err
	}
	observability.Cache().OnCacheSet(ctx, keyType(key), len(data))
	return nil
}
