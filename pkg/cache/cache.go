// Package cache provides content-addressed caching for encoding results and
// rendered artifacts.
//
// Encoding a flowsheet is cheap, but rendering (Graphviz) is not, and the
// server archives both; caching keyed on the flowsheet's content hash lets
// repeated runs over the same input skip the work entirely. Backends:
//
//   - FileCache: directory-based, for CLI usage
//   - RedisCache: shared cache for server deployments
//   - NullCache: caching disabled
package cache

import (
	"context"
	"time"
)

// Default TTLs per cached value kind. Notations are pure functions of their
// input, so the TTL exists only to bound disk usage.
const (
	// TTLNotation is the lifetime of cached SFILES strings.
	TTLNotation = 30 * 24 * time.Hour

	// TTLArtifact is the lifetime of cached rendered artifacts (SVG, PNG).
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is the interface for cache backends.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// NotationKey generates a key for a cached SFILES string from the
	// flowsheet's content hash.
	NotationKey(sheetHash string) string

	// ArtifactKey generates a key for a rendered artifact from the
	// flowsheet's content hash and the render parameters.
	ArtifactKey(sheetHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render parameters that distinguish artifacts of the
// same flowsheet.
type ArtifactKeyOpts struct {
	Format   string // "dot", "svg", "png"
	Detailed bool
	Rankdir  string
}

// DefaultKeyer hashes key components with SHA-256 under a kind prefix.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// NotationKey generates a key for a cached SFILES string.
func (k *DefaultKeyer) NotationKey(sheetHash string) string {
	return hashKey("notation", sheetHash)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(sheetHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", sheetHash, opts)
}
