// Package cli implements the gridboard command-line interface.
//
// # Commands
//
// The main commands are:
//   - serve: Run the layout store HTTP service
//   - layout: Show and edit the stored dashboard layout per breakpoint
//   - scale: Print the autoscale parameters for a widget size
//   - preview: Interactive terminal preview of the dashboard grid
//   - cache: Manage the local layout cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridboard/pkg/buildinfo"
	"github.com/matzehuels/gridboard/pkg/cache"
	"github.com/matzehuels/gridboard/pkg/config"
	"github.com/matzehuels/gridboard/pkg/controller"
	"github.com/matzehuels/gridboard/pkg/layout"
	"github.com/matzehuels/gridboard/pkg/observability"
	"github.com/matzehuels/gridboard/pkg/persist"
	"github.com/matzehuels/gridboard/pkg/remote"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "gridboard"

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

	// Global flags. Empty values leave the config file in charge.
	verbose    bool
	configPath string
	owner      string
	remoteURL  string
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
		Use:           appName,
		Short:         "Gridboard arranges dashboard widgets on a responsive grid",
		Long:          `Gridboard manages dashboard widget layouts: per-breakpoint placement, collapse state, persistence to a layout store with a local fallback, and size-driven autoscaling of widget content.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	flags.StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/gridboard/config.toml)")
	flags.StringVar(&c.owner, "owner", "", "layout owner (overrides client.owner)")
	flags.StringVar(&c.remoteURL, "remote", "", "layout store URL (overrides client.remote_url)")

	root.AddCommand(c.serveCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.scaleCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// FormatError renders a command error for the terminal.
func FormatError(err error) string {
	return styleIconError.Render(iconError) + " " + err.Error()
}

// =============================================================================
// Config & Persistence Factory
// =============================================================================

// loadConfig reads the config file and applies global flag overrides.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if c.owner != "" {
		cfg.Client.Owner = c.owner
	}
	if c.remoteURL != "" {
		cfg.Client.RemoteURL = c.remoteURL
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newCache opens the local layout cache. A cache that cannot be opened
// degrades to the null cache so commands still work from the remote.
func (c *CLI) newCache(cfg *config.Config) cache.Cache {
	dir, err := cfg.CacheDir()
	if err != nil {
		c.Logger.Warn("local cache disabled", "error", err)
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir, cache.WithQuota(cfg.Client.QuotaBytes))
	if err != nil {
		c.Logger.Warn("local cache disabled", "dir", dir, "error", err)
		return cache.NewNullCache()
	}
	return fc
}

// newChain wires the persistence chain from config. offline drops the
// remote leg.
func (c *CLI) newChain(cfg *config.Config, offline bool) (*persist.Chain, error) {
	observability.SetLayoutHooks(&layoutLogHooks{logger: c.Logger})
	observability.SetCacheHooks(&cacheLogHooks{logger: c.Logger})
	observability.SetHTTPHooks(&httpLogHooks{logger: c.Logger})

	owner := cfg.Client.Owner
	local := persist.NewLocalCache(c.newCache(cfg), nil, owner)
	opts := []persist.Option{
		persist.WithDebounce(cfg.Client.Debounce.Duration),
		persist.WithRemoteTimeout(cfg.Client.Timeout.Duration),
	}

	if offline || cfg.Client.RemoteURL == "" {
		c.Logger.Debug("remote layout store disabled")
		return persist.NewChain(nil, local, c.Logger, opts...), nil
	}

	client, err := remote.New(cfg.Client.RemoteURL, owner, remote.WithAttempts(cfg.Client.WriteAttempts))
	if err != nil {
		return nil, fmt.Errorf("layout store client: %w", err)
	}
	return persist.NewChain(client, local, c.Logger, opts...), nil
}

// newController builds a controller for bp and loads its layout.
func (c *CLI) newController(cmd *cobra.Command, bp layout.Breakpoint, offline bool) (*controller.Controller, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	chain, err := c.newChain(cfg, offline)
	if err != nil {
		return nil, err
	}

	ctx := cmd.Context()
	ctrl := controller.New(chain, controller.WithBreakpoint(bp), controller.WithLogger(c.Logger))

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Loading %s layout...", bp))
	spinner.Start()
	_, err = ctrl.Load(ctx)
	spinner.Stop()
	if err != nil {
		return nil, err
	}
	return ctrl, nil
}
