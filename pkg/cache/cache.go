// Package cache stores built scenes and rendered artifacts.
//
// All backends implement [Cache], a byte-oriented key/value store with
// per-entry TTL:
//
//   - [NullCache] stores nothing (caching disabled)
//   - [FileCache] keeps entries as JSON files, for the CLI
//   - [RedisCache] and [MongoCache] share entries between server replicas
//
// Keys come from a [Keyer]. The default keyer hashes its inputs, so a key
// changes whenever the document, the requested size or the render options
// change:
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.SceneKey(doc.Hash(), cache.SceneKeyOpts{Width: 800, Height: 600})
//	if data, ok, _ := c.Get(ctx, key); ok { ... }
package cache

import (
	"context"
	"time"
)

// Cache is a key/value store for cached bytes.
type Cache interface {
	// Get returns the value for key and whether it was found. Expired
	// entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error
	// Close releases the backend's resources.
	Close() error
}

// Clearer is implemented by caches that can drop every entry at once.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Default TTLs.
const (
	SceneTTL    = 24 * time.Hour
	ArtifactTTL = 7 * 24 * time.Hour
)
