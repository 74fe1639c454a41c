package cli

import (
	"github.com/spf13/cobra"

	"github.com/zzaoclub/imgx/internal/server"
)

// serveCommand creates the serve command that runs the HTTP server.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the image rendering HTTP server",
		Long: `Serve runs the imgx HTTP server.

Render routes take a preset code and optional path text:

  GET /{presetCode}/{text}?format=svg
  GET /{presetCode}/default
  POST /{presetCode}

Preset metadata is served under /presets. The listen address, environment,
preset store and cache backend come from the TOML config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			ctx := cmd.Context()
			gen, store, closeAll, err := c.buildGenerator(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeAll()

			srv := server.New(server.Config{
				Addr:       cfg.Server.Addr,
				Production: cfg.Production(),
				Logger:     c.Logger,
			}, gen, store)

			c.Logger.Info("starting server", "addr", cfg.Server.Addr, "environment", cfg.Server.Environment)
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (overrides config)")
	return cmd
}
