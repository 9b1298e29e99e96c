package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	apperr "github.com/matzehuels/gridboard/pkg/errors"
	"github.com/matzehuels/gridboard/pkg/server"
	"github.com/matzehuels/gridboard/pkg/store"
)

// serveCommand runs the layout store HTTP service.
func (c *CLI) serveCommand() *cobra.Command {
	var addr, backend, dataDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the layout store HTTP service",
		Long: `Run the layout store that dashboards load layouts from and save them to.

Backends:
  memory  layouts are lost on restart
  file    one JSON file per owner and breakpoint (default)
  redis   shared store for several instances ([redis] in the config file)
  mongo   shared store for several instances ([mongo] in the config file)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("addr") {
				cfg.Server.Addr = addr
			}
			if flags.Changed("backend") {
				if !slices.Contains(store.Backends(), backend) {
					return apperr.New(apperr.ErrCodeInvalidInput, "unknown backend %q (want %s)", backend, strings.Join(store.Backends(), ", "))
				}
				cfg.Server.Backend = backend
			}
			if flags.Changed("data-dir") {
				cfg.Server.DataDir = dataDir
			}

			ctx := cmd.Context()
			st, err := store.Open(ctx, cfg.StoreConfig())
			if err != nil {
				return fmt.Errorf("open %s store: %w", cfg.Server.Backend, err)
			}
			defer st.Close()
			c.Logger.Info("layout store ready", "backend", cfg.Server.Backend)

			srv := server.New(st,
				server.WithLogger(c.Logger),
				server.WithWriteLimit(cfg.Server.WriteRate, cfg.Server.WriteBurst),
			)

			prog := newProgress(c.Logger)
			if err := srv.ListenAndServe(ctx, cfg.Server.Addr); err != nil {
				return fmt.Errorf("serve %s: %w", cfg.Server.Addr, err)
			}
			prog.done("Layout store stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address (overrides server.addr)")
	cmd.Flags().StringVar(&backend, "backend", store.BackendFile, "store backend: "+strings.Join(store.Backends(), ", "))
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "data directory for the file backend")

	return cmd
}
