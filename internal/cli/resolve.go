package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/popover/pkg/render"
	"github.com/matzehuels/popover/pkg/visibility"
)

// cacheFlags are shared by commands that go through the pipeline runner.
type cacheFlags struct {
	noCache bool
	refresh bool
	redis   string
}

func (f *cacheFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached results")
	cmd.Flags().StringVar(&f.redis, "redis", os.Getenv("POPOVER_REDIS_URL"), "redis URL for a shared cache (default $POPOVER_REDIS_URL)")
}

func (c *CLI) resolveCommand() *cobra.Command {
	var (
		flags     cacheFlags
		placement string
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "resolve <scene>",
		Short: "Resolve the placement of a scene's popover",
		Long: `Resolve loads a scene (.toml, .yaml or .json), runs one placement pass
and prints the resolved placement and style.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadScene(args[0], placement)
			if err != nil {
				return err
			}
			runner, err := c.newRunner(cmd.Context(), flags.noCache, flags.redis)
			if err != nil {
				return err
			}
			defer runner.Close()

			res, err := runner.Resolve(cmd.Context(), s, flags.refresh)
			if err != nil {
				return err
			}

			if asJSON {
				out, err := json.MarshalIndent(render.Document{Scene: s.Name, State: visibility.Open, Placed: res.Placed}, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(out))
				return nil
			}

			p := res.Placed
			st := res.Result.Style
			fmt.Println(StyleTitle.Render(s.Name))
			printKeyValue("requested", string(p.Requested))
			printKeyValue("placement", StyleHighlight.Render(string(p.Placement)))
			printKeyValue("position", fmt.Sprintf("top=%.1f left=%.1f", st.Position.Top, st.Position.Left))
			if st.Arrow != nil {
				printKeyValue("arrow", fmt.Sprintf("%s edge, offset %.1f", st.Arrow.Side, st.Arrow.Offset))
			}
			if st.MaxWidth > 0 || st.MaxHeight > 0 {
				printKeyValue("max size", fmt.Sprintf("%.0f x %.0f", st.MaxWidth, st.MaxHeight))
			}
			printKeyValue("content", p.Content.String())
			printCacheStatus(res.CacheHit)
			if p.Placement != p.Requested {
				printWarning("moved from %s to %s to stay inside %q", p.Requested, p.Placement, s.Container)
			}
			fmt.Println()
			printNextStep("Preview it", "popover render "+args[0])
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&placement, "placement", "p", "", "override the requested placement")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}
