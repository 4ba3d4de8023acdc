package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jsongraph/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string // output file; derived from the input when empty
	format   string // svg, dot or json; derived from output when empty
	detailed bool   // show node IDs and depths
	noCache  bool
	refresh  bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Render the document graph as SVG, DOT or JSON",
		Example: `  jsongraph render doc.json
  jsongraph render doc.json -o doc.dot --detailed
  jsongraph render doc.json -f svg -o - > doc.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (- for stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: svg (default), dot, json")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show node IDs and depths")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached renders")
	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, input string, opts renderOpts) error {
	ctx := cmd.Context()

	format, err := formatFor(opts.format, opts.output)
	if err != nil {
		return err
	}
	output := opts.output
	if output == "" {
		output = defaultOutput(input, format)
	}

	ws, err := c.openWorkspace(ctx, input, openOptions{noCache: opts.noCache})
	if err != nil {
		return err
	}
	defer ws.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, cmd.ErrOrStderr(), fmt.Sprintf("Rendering %s...", format))
	spinner.Start()
	defer spinner.Stop()

	g := ws.view.Graph()
	data, _, hit, err := ws.runner.RenderWithCacheInfo(ctx, g, pipeline.Options{
		Format:   format,
		Detailed: opts.detailed,
		Refresh:  opts.refresh,
		Logger:   c.Logger,
	})
	if err != nil {
		return err
	}

	spinner.Update("Writing " + output + "...")
	out, err := openOutput(output)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := out.Write(data); err != nil {
		return err
	}
	c.Logger.Debug("render finished", "format", format, "bytes", len(data), "elapsed", spinner.Stop())

	if output != stdoutPath {
		prog.done("Rendered " + input)
		printSuccess("Rendered %s", format)
		printFile(output)
		printStats(g.NodeCount(), g.EdgeCount(), hit)
	}
	return nil
}
