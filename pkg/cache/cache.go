// Package cache memoizes computed layouts within a single process.
//
// The timeline view recomputes a layout every time the selected year changes.
// Stepping back and forth over the same years with the same seed would redo
// identical work, so the pipeline consults a [Cache] keyed by a hash of the
// filtered graph and every option that influences the engine.
//
// Entries live in memory only and vanish with the process. [NullCache]
// disables caching entirely.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte payloads under string keys.
type Cache interface {
	// Get returns the payload and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data. A zero ttl keeps the entry until it is evicted.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes the entry if present.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey keys a layout by the hash of its input graph and the engine options.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string

	// ArtifactKey keys a rendered artifact by the hash of its layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts lists every option that changes engine output.
type LayoutKeyOpts struct {
	Extents     []float64 `json:"extents"`
	Margin      float64   `json:"margin"`
	Iterations  int       `json:"iterations"`
	Temperature float64   `json:"temperature"`
	Cooling     float64   `json:"cooling"`
	Repulsion   float64   `json:"repulsion"`
	Attraction  float64   `json:"attraction"`
	Seed        uint64    `json:"seed"`
	Trials      int       `json:"trials"`
	Init        string    `json:"init"`
	GroupBy     string    `json:"group_by"`
}

// ArtifactKeyOpts lists every option that changes rendered output.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Style    string  `json:"style"`
	Rotation float64 `json:"rotation"`
	Scale    float64 `json:"scale"`
	Detailed bool    `json:"detailed"`
	Title    string  `json:"title"`
}

// DefaultKeyer produces prefix:sha256 keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
