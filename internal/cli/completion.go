package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/keyforge/pkg/profile"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for keyforge.

To load completions:

Bash:
  $ source <(keyforge completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ keyforge completion bash > /etc/bash_completion.d/keyforge
  # macOS:
  $ keyforge completion bash > $(brew --prefix)/etc/bash_completion.d/keyforge

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ keyforge completion zsh > "${fpath[1]}/_keyforge"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ keyforge completion fish | source

  # To load completions for each session, execute once:
  $ keyforge completion fish > ~/.config/fish/completions/keyforge.fish

PowerShell:
  PS> keyforge completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> keyforge completion powershell > keyforge.ps1
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

// completeProfiles completes embedded profile names.
func completeProfiles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var out []string
	for _, name := range profile.Names() {
		if strings.HasPrefix(name, strings.ToLower(toComplete)) {
			out = append(out, name)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

// completeLabels completes variant labels of every embedded profile.
func completeLabels(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var out []string
	for _, name := range profile.Names() {
		p, err := profile.Load(name)
		if err != nil {
			continue
		}
		for _, mx := range []bool{false, true} {
			for _, v := range profile.Enumerate(p, mx) {
				if l := v.Label.String(); strings.HasPrefix(strings.ToLower(l), strings.ToLower(toComplete)) {
					out = append(out, l)
				}
			}
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
