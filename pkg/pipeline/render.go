package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/jsongraph/pkg/graph"
	"github.com/matzehuels/jsongraph/pkg/render"
	"github.com/matzehuels/jsongraph/pkg/render/nodelink"
)

// Render produces the artifact for g in the requested format, without caching.
func Render(ctx context.Context, g *graph.Graph, opts Options) ([]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	if opts.Format == render.FormatJSON {
		return graph.Marshal(g)
	}

	d, err := graph.ToDAG(g)
	if err != nil {
		return nil, fmt.Errorf("build layered graph: %w", err)
	}
	dot := nodelink.ToDOT(d, nodelink.Options{Detailed: opts.Detailed})

	switch opts.Format {
	case render.FormatDOT:
		return []byte(dot), nil
	case render.FormatSVG:
		svg, err := nodelink.RenderSVG(ctx, dot)
		if err != nil {
			return nil, fmt.Errorf("render svg: %w", err)
		}
		return svg, nil
	}
	return nil, fmt.Errorf("unsupported format: %s", opts.Format)
}
