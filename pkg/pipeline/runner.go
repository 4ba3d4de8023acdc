package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/jsongraph/pkg/cache"
	"github.com/matzehuels/jsongraph/pkg/graph"
	"github.com/matzehuels/jsongraph/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger, so multiple
// goroutines can safely share one.
type Runner struct {
	Cache   cache.Cache
	Keyer   cache.Keyer
	Logger  *log.Logger
	Deriver *graph.CachingDeriver

	// TTL overrides the default cache lifetimes when positive.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		Deriver: &graph.CachingDeriver{
			Cache:  c,
			Keyer:  keyer,
			Logger: logger,
		},
	}
}

// Execute derives the graph of text and renders it.
func (r *Runner) Execute(ctx context.Context, text string, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{Format: opts.Format}

	deriveStart := time.Now()
	g, hit, err := r.Deriver.DeriveWithCacheInfo(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("derive: %w", err)
	}
	result.Graph = g
	result.Stats.DeriveTime = time.Since(deriveStart)
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()
	result.CacheInfo.DeriveHit = hit

	r.Logger.Debug("derived graph",
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"cached", hit,
		"duration", result.Stats.DeriveTime)

	renderStart := time.Now()
	artifact, graphHash, hit, err := r.RenderWithCacheInfo(ctx, g, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifact = artifact
	result.GraphHash = graphHash
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = hit

	r.Logger.Debug("rendered graph",
		"format", opts.Format,
		"bytes", len(artifact),
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Derive returns the graph of text.
func (r *Runner) Derive(ctx context.Context, text string) (*graph.Graph, error) {
	return r.Deriver.Derive(ctx, text)
}

// RenderWithCacheInfo renders g with caching. It also returns the graph hash
// used in the cache key and whether the artifact came from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, g *graph.Graph, opts Options) ([]byte, string, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, "", false, err
	}

	graphData, err := graph.Marshal(g)
	if err != nil {
		return nil, "", false, fmt.Errorf("serialize graph for cache key: %w", err)
	}
	graphHash := cache.Hash(graphData)
	key := r.Keyer.RenderKey(graphHash, opts.RenderKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "render")
			return data, graphHash, true, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "render")

	data, err := Render(ctx, g, opts)
	if err != nil {
		return nil, graphHash, false, err
	}

	ttl := cache.TTLRender
	if r.TTL > 0 {
		ttl = r.TTL
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Debug("render cache write failed", "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "render", len(data))
	}
	return data, graphHash, false, nil
}

// SetTTL sets the cache lifetime for both derived graphs and renders.
func (r *Runner) SetTTL(ttl time.Duration) {
	r.TTL = ttl
	r.Deriver.TTL = ttl
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
