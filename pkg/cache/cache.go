// Package cache stores rendered artifacts between runs.
//
// Rendering a routing graph to SVG is much slower than building it, and the
// same document usually produces the same DOT text. Callers key entries by
// a hash of their input with [Key], so a changed document never hits a
// stale entry.
//
//	c, _ := cache.NewFileCache(dir)
//	key := cache.Key("svg", dotText)
//	if svg, ok, _ := c.Get(ctx, key); ok {
//	    return svg
//	}
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the value under key. A missing or expired entry is a
	// miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}

// Hash computes the SHA-256 of data as 64 hex characters.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Key returns "namespace:" followed by the hash of input.
func Key(namespace, input string) string {
	return namespace + ":" + Hash([]byte(input))
}
