package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/waffle/internal/server"
	"github.com/matzehuels/waffle/pkg/cache"
	"github.com/matzehuels/waffle/pkg/demo"
	"github.com/matzehuels/waffle/pkg/observability"
	"github.com/matzehuels/waffle/pkg/pipeline"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		seed    uint64
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP rendering API",
		Long: `Run the HTTP rendering API.

Routes:
  POST /render?format=svg   render the posted document (JSON, YAML or TOML)
  POST /locate?x=&y=        resolve a pointer position to its tooltip
  GET  /gallery             demo gallery
  GET  /gallery/{kind}.svg  one demo chart
  GET  /healthz             build information and counters

Artifacts are cached in the configured backend under a "serve" scope, so
a shared redis or mongo cache can back several replicas.`,
		Example: `  waffle serve --addr :9000
  curl -X POST -H 'Content-Type: application/yaml' --data-binary @sales.yaml localhost:8080/render`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := c.config()

			ch, err := c.openCache(ctx, noCache)
			if err != nil {
				return fmt.Errorf("initialize cache: %w", err)
			}
			runner := pipeline.NewRunner(ch, cache.NewScopedKeyer(cache.NewDefaultKeyer(), "serve:"), c.Logger)
			defer runner.Close()

			stats := server.NewStats(c.Logger)
			observability.SetPipelineHooks(stats)
			observability.SetCacheHooks(stats)
			defer observability.Reset()

			srv := server.New(server.Config{
				Addr:         cfg.Serve.Addr,
				ReadTimeout:  cfg.Serve.ReadTimeout,
				WriteTimeout: cfg.Serve.WriteTimeout,
				Seed:         seed,
			}, runner, c.Logger).WithStats(stats)

			printInfo("Serving on %s", StyleLink.Render(cfg.Serve.Addr))
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().String("addr", ":8080", "listen address")
	cmd.Flags().Uint64Var(&seed, "seed", demo.DefaultSeed, "seed for the demo gallery data")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
