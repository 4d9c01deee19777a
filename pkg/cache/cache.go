// Package cache stores resolved placements and rendered artifacts.
//
// Three backends share the [Cache] contract: [NullCache] disables caching,
// [FileCache] keeps entries on disk for the CLI, and [RedisCache] shares them
// between server instances. A [Keyer] builds the keys so the CLI and the
// server agree on them.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the stored value and whether it was found. Expired
	// entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// ResultKey identifies a resolved scene by the hash of its encoded form.
	ResultKey(sceneHash string) string

	// ArtifactKey identifies a rendered artifact of a resolved scene.
	ArtifactKey(resultHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render options that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format  string  `json:"format"`
	Scale   float64 `json:"scale,omitempty"`
	Hidden  bool    `json:"hidden,omitempty"`
	Caption string  `json:"caption,omitempty"`
}

// Key namespaces, also reported to the cache hooks.
const (
	KeyTypeResult   = "result"
	KeyTypeArtifact = "artifact"
)

// DefaultKeyer hashes key components under a namespace prefix.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) ResultKey(sceneHash string) string {
	return hashKey(KeyTypeResult, sceneHash)
}

func (DefaultKeyer) ArtifactKey(resultHash string, opts ArtifactKeyOpts) string {
	return hashKey(KeyTypeArtifact, resultHash, opts)
}

// Default TTLs.
const (
	ResultTTL   = 24 * time.Hour
	ArtifactTTL = 7 * 24 * time.Hour
)
