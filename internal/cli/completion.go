package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for osicards.

To load completions:

Bash:
  $ source <(osicards completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ osicards completion bash > /etc/bash_completion.d/osicards
  # macOS:
  $ osicards completion bash > $(brew --prefix)/etc/bash_completion.d/osicards

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ osicards completion zsh > "${fpath[1]}/_osicards"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ osicards completion fish | source

  # To load completions for each session, execute once:
  $ osicards completion fish > ~/.config/fish/completions/osicards.fish

PowerShell:
  PS> osicards completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> osicards completion powershell > osicards.ps1
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
