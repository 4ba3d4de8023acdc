package graph

import (
	"bytes"
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/jsongraph/pkg/cache"
	"github.com/matzehuels/jsongraph/pkg/observability"
)

// Deriver turns document text into a graph.
type Deriver interface {
	Derive(ctx context.Context, text string) (*Graph, error)
}

// DeriverFunc adapts a function to the Deriver interface.
type DeriverFunc func(ctx context.Context, text string) (*Graph, error)

// Derive calls f.
func (f DeriverFunc) Derive(ctx context.Context, text string) (*Graph, error) { return f(ctx, text) }

// derivationVersion is part of every cache key; bump it when the derivation
// rules change so stale graphs are not served.
const derivationVersion = 1

// CachingDeriver derives graphs and caches them by document hash.
//
// It is stateless apart from the cache and logger, so one instance can serve
// several stores and goroutines.
type CachingDeriver struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides cache.TTLGraph when positive.
	TTL time.Duration
}

// NewDeriver creates a caching deriver.
// If c is nil, a NullCache is used (caching disabled).
// If logger is nil, the default logger is used.
func NewDeriver(c cache.Cache, logger *log.Logger) *CachingDeriver {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &CachingDeriver{
		Cache:  c,
		Keyer:  cache.NewDefaultKeyer(),
		Logger: logger,
	}
}

// Derive implements Deriver.
func (d *CachingDeriver) Derive(ctx context.Context, text string) (*Graph, error) {
	g, _, err := d.DeriveWithCacheInfo(ctx, text)
	return g, err
}

// DeriveWithCacheInfo derives the graph and reports whether it came from cache.
func (d *CachingDeriver) DeriveWithCacheInfo(ctx context.Context, text string) (*Graph, bool, error) {
	start := time.Now()
	hooks := observability.Graph()
	hooks.OnDeriveStart(ctx, len(text))

	key := d.Keyer.GraphKey(cache.Hash([]byte(text)), cache.GraphKeyOpts{Version: derivationVersion})

	if data, hit, err := d.Cache.Get(ctx, key); err == nil && hit {
		if g, err := Read(bytes.NewReader(data)); err == nil {
			observability.Cache().OnCacheHit(ctx, "graph")
			hooks.OnDeriveComplete(ctx, g.NodeCount(), g.EdgeCount(), time.Since(start), nil)
			return g, true, nil
		}
		// Undecodable entry: fall through and overwrite it.
	} else if err != nil {
		d.Logger.Debug("graph cache unavailable", "error", err)
	}
	observability.Cache().OnCacheMiss(ctx, "graph")

	g, err := Derive(text)
	if err != nil {
		hooks.OnDeriveComplete(ctx, 0, 0, time.Since(start), err)
		return nil, false, err
	}

	if data, err := Marshal(g); err == nil {
		ttl := cache.TTLGraph
		if d.TTL > 0 {
			ttl = d.TTL
		}
		if err := d.Cache.Set(ctx, key, data, ttl); err != nil {
			d.Logger.Debug("graph cache write failed", "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "graph", len(data))
		}
	}

	d.Logger.Debug("derived graph",
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"duration", time.Since(start))
	hooks.OnDeriveComplete(ctx, g.NodeCount(), g.EdgeCount(), time.Since(start), nil)
	return g, false, nil
}

// Close releases the cache.
func (d *CachingDeriver) Close() error {
	if d.Cache != nil {
		return d.Cache.Close()
	}
	return nil
}

var _ Deriver = (*CachingDeriver)(nil)
