package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/jsongraph/pkg/graph"
)

// graphCommand creates the graph command.
func (c *CLI) graphCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "graph FILE",
		Short: "Write the derived graph as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := c.openWorkspace(cmd.Context(), args[0], openOptions{})
			if err != nil {
				return err
			}
			defer ws.Close()

			g := ws.view.Graph()
			if output == stdoutPath {
				out, _ := openOutput(stdoutPath)
				return graph.Write(g, out)
			}
			if err := graph.WriteFile(g, output); err != nil {
				return err
			}
			printSuccess("Derived graph")
			printFile(output)
			printStats(g.NodeCount(), g.EdgeCount(), ws.cached)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", stdoutPath, "output file (- for stdout)")
	return cmd
}
