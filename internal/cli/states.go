package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/popover/pkg/errors"
	"github.com/matzehuels/popover/pkg/render"
	"github.com/matzehuels/popover/pkg/visibility"
)

func (c *CLI) statesCommand() *cobra.Command {
	var output, format, current string

	cmd := &cobra.Command{
		Use:   "states",
		Short: "Draw the visibility state machine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var cur *visibility.State
			if current != "" {
				st, err := visibility.ParseState(current)
				if err != nil {
					return err
				}
				cur = &st
			}

			var data []byte
			switch format {
			case "dot":
				data = []byte(render.StatesDOT(cur))
			case "svg":
				svg, err := render.StatesSVG(cmd.Context(), cur)
				if err != nil {
					return err
				}
				data = svg
			default:
				return errors.New(errors.ErrCodeInvalidFormat, "format must be dot or svg, got %q", format)
			}

			if output == "" {
				fmt.Fprint(cmd.OutOrStdout(), string(data))
				return nil
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", output)
			}
			printSuccess("Wrote state diagram")
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "dot", "output format: dot, svg")
	cmd.Flags().StringVar(&current, "current", "", "highlight a state: closed, pendingMeasurement, open")
	return cmd
}
