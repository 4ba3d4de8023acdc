package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

// Execute runs the jsongraph CLI and returns an error if any command fails.
//
// Logging goes to stderr at info level, or debug with --verbose (-v).
func Execute(ctx context.Context) error {
	var verbose bool

	c := New(os.Stderr, LogInfo)
	root := c.RootCommand()
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	loadConfig := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		level := LogInfo
		if verbose {
			level = LogDebug
		}
		c.SetLogLevel(level)
		return loadConfig(cmd, args)
	}

	return root.ExecuteContext(ctx)
}
