// Package pipeline runs the derive → render pipeline for jsongraph.
//
// The CLI and the HTTP API both turn document text into rendered output.
// Centralizing it here keeps caching and defaults the same across entry
// points.
//
// # Stages
//
//  1. Derive: build the node/edge graph from the document text
//  2. Render: produce JSON, DOT or SVG output from the graph
//
// Both stages are cached: graphs by document hash, renders by graph hash and
// render options.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, text, pipeline.Options{Format: render.FormatSVG})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Stdout.Write(result.Artifact)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/jsongraph/pkg/cache"
	"github.com/matzehuels/jsongraph/pkg/graph"
	"github.com/matzehuels/jsongraph/pkg/render"
)

// DefaultFormat is used when Options.Format is empty.
const DefaultFormat = render.FormatSVG

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures a pipeline run. It supports JSON for API requests.
type Options struct {
	Format   render.Format `json:"format,omitempty"`
	Detailed bool          `json:"detailed,omitempty"`

	// Refresh bypasses cached renders.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`
}

// ValidateAndSetDefaults fills in defaults and checks the format.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if _, err := render.ParseFormat(string(o.Format)); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// RenderKeyOpts returns the cache key options for the render stage.
func (o *Options) RenderKeyOpts() cache.RenderKeyOpts {
	return cache.RenderKeyOpts{
		Format:   string(o.Format),
		Detailed: o.Detailed,
	}
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	Graph     *graph.Graph
	GraphHash string
	Artifact  []byte
	Format    render.Format
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	DeriveTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each stage.
type CacheInfo struct {
	DeriveHit bool
	RenderHit bool
}

// String summarizes the stats for log lines.
func (s Stats) String() string {
	return fmt.Sprintf("%d nodes, %d edges (derive %s, render %s)",
		s.NodeCount, s.EdgeCount,
		s.DeriveTime.Round(time.Millisecond), s.RenderTime.Round(time.Millisecond))
}
