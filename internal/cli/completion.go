package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// shell describes one completion target: how to generate the script and
// where a user usually installs it.
type shell struct {
	name    string
	install string
	gen     func(root *cobra.Command, w io.Writer) error
}

var shells = []shell{
	{"bash", "source <(popover completion bash)", func(r *cobra.Command, w io.Writer) error {
		return r.GenBashCompletionV2(w, true)
	}},
	{"zsh", `popover completion zsh > "${fpath[1]}/_popover"`, func(r *cobra.Command, w io.Writer) error {
		return r.GenZshCompletion(w)
	}},
	{"fish", "popover completion fish > ~/.config/fish/completions/popover.fish", func(r *cobra.Command, w io.Writer) error {
		return r.GenFishCompletion(w, true)
	}},
	{"powershell", "popover completion powershell | Out-String | Invoke-Expression", func(r *cobra.Command, w io.Writer) error {
		return r.GenPowerShellCompletionWithDesc(w)
	}},
}

func (c *CLI) completionCommand() *cobra.Command {
	var names []string
	var long strings.Builder
	long.WriteString("Generate a shell completion script.\n\nInstall:\n")
	for _, s := range shells {
		names = append(names, s.name)
		fmt.Fprintf(&long, "  %-11s %s\n", s.name, s.install)
	}

	return &cobra.Command{
		Use:                   "completion [" + strings.Join(names, "|") + "]",
		Short:                 "Generate shell completion scripts",
		Long:                  long.String(),
		DisableFlagsInUseLine: true,
		ValidArgs:             names,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, s := range shells {
				if s.name == args[0] {
					return s.gen(cmd.Root(), cmd.OutOrStdout())
				}
			}
			return nil
		},
	}
}
