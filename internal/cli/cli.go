// Package cli implements the jsongraph command-line interface.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/jsongraph/pkg/buildinfo"
	"github.com/matzehuels/jsongraph/pkg/cache"
	"github.com/matzehuels/jsongraph/pkg/config"
	"github.com/matzehuels/jsongraph/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = config.AppName

// redisCachePrefix namespaces cache entries in a shared redis database.
const redisCachePrefix = appName + ":cache:"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded in the root command's PersistentPreRunE. Commands
	// fall back to config.Default when it is nil.
	Config     *config.Config
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "jsongraph edits JSON documents through their graph",
		Long: `jsongraph is a CLI for inspecting and editing JSON documents. Values are
addressed by accessors such as user.tags[0]; objects written onto objects are
deep-merged, everything else is replaced. The document is also shown as a
graph of nodes and edges that can be rendered or edited interactively.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/jsongraph/config.toml)")

	root.AddCommand(c.showCommand())
	root.AddCommand(c.getCommand())
	root.AddCommand(c.setCommand())
	root.AddCommand(c.clearCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	return nil
}

func (c *CLI) config() *config.Config {
	if c.Config == nil {
		c.Config = config.Default()
	}
	return c.Config
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cfg := c.config()
	ch, err := c.newCache(ctx, cfg, noCache)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if cfg.Cache.Namespace != "" {
		keyer = cache.NewScopedKeyer(nil, cfg.Cache.Namespace+":")
	}
	r := pipeline.NewRunner(ch, keyer, c.Logger)
	r.SetTTL(cfg.Cache.TTL.Duration)
	return r, nil
}

// newCache opens the configured cache. An unreachable redis cache degrades
// to no caching rather than failing the command.
func (c *CLI) newCache(ctx context.Context, cfg *config.Config, noCache bool) (cache.Cache, error) {
	if noCache || !cfg.Cache.Enabled {
		return cache.NewNullCache(), nil
	}
	if cfg.Cache.Backend == config.BackendRedis {
		client := newRedisClient(cfg)
		pingCtx, cancel := context.WithTimeout(ctx, backendTimeout)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			client.Close()
			c.Logger.Warn("redis cache unavailable, caching disabled", "addr", cfg.Redis.Addr, "error", err)
			return cache.NewNullCache(), nil
		}
		return cache.NewRedisCache(client, redisCachePrefix), nil
	}
	dir, err := cfg.CacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}
