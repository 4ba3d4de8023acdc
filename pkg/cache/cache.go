// Package cache stores derived artifacts (graphs, renders) keyed by content hash.
//
// Derivation is a pure function of the document text, so a graph computed for
// one revision can be reused whenever the same text comes back (undoing an
// edit by hand, reopening a file, several servers sharing Redis).
//
// Backends:
//   - [FileCache]: one file per entry under a directory, for the CLI
//   - [RedisCache]: shared cache for servers
//   - [NullCache]: caching disabled
//
// Keys come from a [Keyer] so that callers never build key strings by hand.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the entry and true, or false on a miss. Expired entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes an entry. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Default TTLs per artifact type.
const (
	TTLGraph  = 7 * 24 * time.Hour
	TTLRender = 24 * time.Hour
)

// GraphKeyOpts holds derivation settings that change the resulting graph.
type GraphKeyOpts struct {
	Version int `json:"v"`
}

// RenderKeyOpts holds render settings that change the output bytes.
type RenderKeyOpts struct {
	Format   string `json:"format"`
	Detailed bool   `json:"detailed,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// GraphKey returns the key for the graph derived from a document hash.
	GraphKey(docHash string, opts GraphKeyOpts) string

	// RenderKey returns the key for a rendered graph.
	RenderKey(graphHash string, opts RenderKeyOpts) string
}

// DefaultKeyer produces "graph:<sha256>" and "render:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// GraphKey implements Keyer.
func (DefaultKeyer) GraphKey(docHash string, opts GraphKeyOpts) string {
	return hashKey("graph", docHash, opts)
}

// RenderKey implements Keyer.
func (DefaultKeyer) RenderKey(graphHash string, opts RenderKeyOpts) string {
	return hashKey("render", graphHash, opts)
}
