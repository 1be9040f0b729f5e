package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/supernova/pkg/center"
	"github.com/matzehuels/supernova/pkg/sink"
	"github.com/matzehuels/supernova/pkg/style"
	"github.com/matzehuels/supernova/pkg/trait"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for supernova.

To load completions:

Bash:
  $ source <(supernova completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ supernova completion bash > /etc/bash_completion.d/supernova
  # macOS:
  $ supernova completion bash > $(brew --prefix)/etc/bash_completion.d/supernova

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ supernova completion zsh > "${fpath[1]}/_supernova"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ supernova completion fish | source

  # To load completions for each session, execute once:
  $ supernova completion fish > ~/.config/fish/completions/supernova.fish

PowerShell:
  PS> supernova completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> supernova completion powershell > supernova.ps1
  # and source this file from your PowerShell profile.
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

// registerFlagCompletions completes registry-backed flag values.
func registerFlagCompletions(cmd *cobra.Command) {
	fixed := func(values []string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			return values, cobra.ShellCompDirectiveNoFileComp
		}
	}

	_ = cmd.RegisterFlagCompletionFunc("center", fixed(center.Names()))
	_ = cmd.RegisterFlagCompletionFunc("format", fixed(sink.Names()))
	_ = cmd.RegisterFlagCompletionFunc("background", fixed(style.ColorNames()))
	for _, t := range trait.All {
		_ = cmd.RegisterFlagCompletionFunc(string(t)+"-color", fixed(style.ColorNames()))
	}
	_ = cmd.MarkFlagFilename("config", "toml")
}
