package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// editCommand creates the interactive edit command.
func (c *CLI) editCommand() *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:   "edit FILE",
		Short: "Edit the document interactively, node by node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ws, err := c.openWorkspace(ctx, args[0], openOptions{create: true, persist: true})
			if err != nil {
				return err
			}
			defer ws.Close()

			model := NewEditorModel(ctx, ws.store, ws.view, replace)
			if _, err := tea.NewProgram(model, tea.WithContext(ctx)).Run(); err != nil {
				return err
			}
			printInfo("Revision %d", ws.store.Revision())
			return nil
		},
	}

	cmd.Flags().BoolVar(&replace, "replace", false, "node edits replace objects instead of merging")
	return cmd
}
