// Package cache stores rendered artifacts keyed by their DOT text and
// invocation options, so repeated renders of an unchanged graph skip
// Graphviz entirely.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Cache is a byte-oriented cache with optional expiry. Get reports a
// miss with hit=false and a nil error; errors mean the backend itself
// failed.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// RenderKey derives the cache key for a rendered artifact. Everything
// that shapes the output bytes participates: the DOT text and the
// program, format, and geometry options of the invocation. Fields are
// NUL-separated before hashing so adjacent fields cannot collide by
// concatenation.
func RenderKey(dotText, program, format, size, ratio string, dpi float64) string {
	return "render:" + Hash(fmt.Appendf(nil,
		"%s\x00%s\x00%s\x00%s\x00%s\x00%g",
		dotText, program, format, size, ratio, dpi))
}

// Hash digests data to a 64-character hex string. FileCache also uses
// it to shard entries on disk.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
