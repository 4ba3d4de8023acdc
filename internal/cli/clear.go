package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jsongraph/pkg/contents"
)

// clearCommand creates the clear command.
func (c *CLI) clearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear FILE",
		Short: "Reset the document to {}",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ws, err := c.openWorkspace(ctx, args[0], openOptions{create: true, persist: true})
			if err != nil {
				return err
			}
			defer ws.Close()

			if err := ws.store.Clear(ctx); err != nil {
				return err
			}
			// Clearing is an external change, which observers do not persist.
			if ws.sink != nil {
				if err := ws.sink.SetContents(ctx, contents.New(ws.store.Read())); err != nil {
					return err
				}
				printSuccess("Cleared document")
				printFile(fmt.Sprint(ws.sink))
			}
			return nil
		},
	}
}
