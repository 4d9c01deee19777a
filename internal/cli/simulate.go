package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/popover/pkg/pipeline"
	"github.com/matzehuels/popover/pkg/scene"
)

func (c *CLI) simulateCommand() *cobra.Command {
	var (
		placement string
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "simulate <scene>",
		Short: "Play a scene's script and print every frame",
		Long: `Simulate drives the popover through the scene's script on a virtual
clock, so delays and debouncing play out instantly and reproducibly.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadScene(args[0], placement)
			if err != nil {
				return err
			}
			if len(s.Script) == 0 {
				printWarning("%s has no script; only pending timers will run", args[0])
			}

			trace, err := pipeline.NewRunner(nil, nil, c.Logger).Simulate(cmd.Context(), s)
			if err != nil {
				return err
			}

			if asJSON {
				out, err := json.MarshalIndent(trace, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(out))
				return nil
			}

			fmt.Println(StyleTitle.Render(s.Name))
			fmt.Println(traceTable(s, trace))
			printKeyValue("final", trace.Final.String())
			printKeyValue("elapsed", fmt.Sprintf("%dms", trace.Elapsed))
			if len(trace.Changes) > 0 {
				printKeyValue("requests", fmt.Sprint(trace.Changes))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&placement, "placement", "p", "", "override the requested placement")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the trace as JSON")
	return cmd
}

func traceTable(s *scene.Scene, trace *pipeline.Trace) string {
	rows := make([][]string, 0, len(trace.Frames))
	for _, f := range trace.Frames {
		cause := "timer"
		if f.Step >= 0 {
			cause = s.Script[f.Step].Event
		}
		pos := "-"
		if f.View.HasStyle {
			pos = fmt.Sprintf("%.0f, %.0f", f.View.Style.Position.Top, f.View.Style.Position.Left)
		}
		rows = append(rows, []string{
			strconv.FormatInt(f.At, 10) + "ms",
			cause,
			f.View.State.String(),
			string(f.View.Placement),
			pos,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("at", "cause", "state", "placement", "top, left").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 2 && rows[row][2] == "open" {
				return lipgloss.NewStyle().Foreground(colorGreen)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		}).
		Render()
}
