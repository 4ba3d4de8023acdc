package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/jsongraph/pkg/graph"
	"github.com/matzehuels/jsongraph/pkg/jsonvalue"
)

// showCommand creates the show command.
func (c *CLI) showCommand() *cobra.Command {
	var nodes bool

	cmd := &cobra.Command{
		Use:   "show FILE",
		Short: "Print the canonical document and graph stats",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := c.openWorkspace(cmd.Context(), args[0], openOptions{})
			if err != nil {
				return err
			}
			defer ws.Close()

			g := ws.view.Graph()
			if nodes {
				fmt.Println(nodeTable(g))
			} else {
				v, err := ws.store.Value()
				if err != nil {
					return err
				}
				text, err := jsonvalue.Format(v)
				if err != nil {
					return err
				}
				fmt.Println(text)
			}
			printNewline()
			printStats(g.NodeCount(), g.EdgeCount(), ws.cached)
			return nil
		},
	}

	cmd.Flags().BoolVar(&nodes, "nodes", false, "list graph nodes instead of the document")
	return cmd
}

// nodeTable renders the graph's nodes as a table, one row per node.
func nodeTable(g *graph.Graph) string {
	rows := make([][]string, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		lines := make([]string, len(n.Text))
		for i, r := range n.Text {
			lines[i] = r.String()
		}
		rows = append(rows, []string{n.ID, strconv.Itoa(n.Depth), strings.Join(lines, "\n")})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		BorderRow(true).
		Headers("Node", "Depth", "Rows").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorCyan)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		}).
		Render()
}
