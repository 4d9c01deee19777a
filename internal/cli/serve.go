package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/popover/internal/server"
	"github.com/matzehuels/popover/pkg/cache"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr   string
		flags  cacheFlags
		prefix string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP playground API",
		Long: `Serve answers:

  POST /v1/resolve   resolve a posted scene (JSON, TOML or YAML body)
  POST /v1/render    render a posted scene (?format=svg|json|png|pdf)
  GET  /v1/states    the visibility state machine (?format=svg|dot)
  GET  /healthz      build information

With --redis, results are shared between instances through Redis.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, flags.noCache, flags.redis)
			if err != nil {
				return err
			}
			defer runner.Close()
			if prefix != "" {
				runner.Keyer = cache.NewScopedKeyer(runner.Keyer, prefix)
			}

			printInfo("Serving on %s", StyleHighlight.Render("http://"+addr))
			return server.New(runner, loggerFromContext(ctx)).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "listen address")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&flags.redis, "redis", "", "redis URL for a shared cache")
	cmd.Flags().StringVar(&prefix, "key-prefix", "", "namespace prefix for cache keys")
	return cmd
}
