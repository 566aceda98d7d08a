package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/moverboard/pkg/pipeline"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for moverboard.

Bash:
  $ source <(moverboard completion bash)

Zsh:
  $ moverboard completion zsh > "${fpath[1]}/_moverboard"

Fish:
  $ moverboard completion fish > ~/.config/fish/completions/moverboard.fish

PowerShell:
  PS> moverboard completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}

// completeInputFile completes the single input argument with movers files.
func completeInputFile(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"json", "xlsx", "xlsm"}, cobra.ShellCompDirectiveFilterFileExt
}

// completeFormats completes the comma-separated --format flag.
func completeFormats(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return pipeline.AllFormats, cobra.ShellCompDirectiveNoFileComp
}

// registerInputCompletion wires file and flag completion for commands
// that read an input file.
func registerInputCompletion(cmd *cobra.Command) {
	cmd.ValidArgsFunction = completeInputFile
	if cmd.Flags().Lookup("format") != nil {
		_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
	}
	if cmd.Flags().Lookup("backend") != nil {
		_ = cmd.RegisterFlagCompletionFunc("backend", cobra.FixedCompletions([]string{"native", "rsvg"}, cobra.ShellCompDirectiveNoFileComp))
	}
}
