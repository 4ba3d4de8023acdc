package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jsongraph/pkg/edit"
	"github.com/matzehuels/jsongraph/pkg/errors"
)

// setCommand creates the set command.
func (c *CLI) setCommand() *cobra.Command {
	var (
		mode    string
		dryRun  bool
		replace bool
	)

	cmd := &cobra.Command{
		Use:   "set FILE ACCESSOR VALUE",
		Short: "Write a value at an accessor",
		Long: `Write VALUE at ACCESSOR. Objects written onto objects are deep-merged;
anything else replaces the current value. Missing containers along the path
are created.

VALUE is read according to --mode:
  scalar  true, false, null and numbers are typed; anything else is a string
  raw     like scalar, but text starting with { or [ must be JSON (default)
  strict  the whole value must be JSON`,
		Example: `  jsongraph set doc.json user.name Bob
  jsongraph set doc.json user '{"age": 30}'
  jsongraph set doc.json tags[2] 7 --mode strict`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, acc, input := args[0], args[1], args[2]
			if err := errors.ValidateAccessor(acc); err != nil {
				return err
			}
			if !cmd.Flags().Changed("mode") {
				mode = c.config().Edit.Mode
			}
			m, err := edit.ParseMode(mode)
			if err != nil {
				return err
			}
			value, err := edit.Coerce(input, m)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			ws, err := c.openWorkspace(ctx, path, openOptions{create: true, persist: !dryRun})
			if err != nil {
				return err
			}
			defer ws.Close()

			write := ws.store.Mutate
			if replace {
				write = ws.store.Set
			}
			change, err := write(ctx, acc, value)
			if change == nil {
				return err
			}

			if dryRun {
				fmt.Println(change.Text)
				printInfo("Dry run, %s not written", path)
				return nil
			}
			printSuccess("Set %s", StyleHighlight.Render(change.Path.String()))
			printDetail("revision %d, patch %s", change.Revision, change.Patch)
			if ws.sink != nil {
				printFile(fmt.Sprint(ws.sink))
			}
			return err
		},
	}

	cmd.Flags().StringVar(&mode, "mode", string(edit.ModeRaw), "how VALUE is read: scalar, raw, strict")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the result without writing it")
	cmd.Flags().BoolVar(&replace, "replace", false, "replace objects instead of merging")
	return cmd
}
