package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/stackforge/internal/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr        string
		catalogPath string
		noCache     bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the composition HTTP API",
		Long: `Serve the composition HTTP API.

  POST /v1/descriptors/{maven|gradle}  compose a descriptor
  GET  /v1/features                    list catalog features
  GET  /metrics                        Prometheus metrics`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if catalogPath != "" {
				cfg.Catalog = catalogPath
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			cat, err := loadCatalog(cfg.Catalog)
			if err != nil {
				return err
			}
			store, err := openCache(cfg, noCache)
			if err != nil {
				return err
			}
			defer store.Close()

			metrics := server.NewMetrics()
			metrics.Install()

			logger.Info("catalog loaded", "path", cfg.Catalog, "features", len(cat), "cache", cfg.Cache.Backend)
			srv := server.New(server.Options{
				Catalog:  cat,
				Resolver: newResolver(cfg, store, false, logger),
				Logger:   logger,
				Metrics:  metrics,
			})
			return srv.ListenAndServe(ctx, cfg.Server.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "feature catalog TOML file (default from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the version lookup cache")
	return cmd
}
