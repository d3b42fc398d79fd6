// Package completion provides shell completion generation commands.
package completion

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

type shell struct {
	name    string
	install string
	gen     func(root *cobra.Command, w io.Writer) error
}

var shells = []shell{
	{
		name: "bash",
		install: `  # Current session
  source <(mcml completion bash)

  # Linux
  mcml completion bash > /etc/bash_completion.d/mcml

  # macOS (requires bash-completion)
  mcml completion bash > $(brew --prefix)/etc/bash_completion.d/mcml`,
		gen: func(root *cobra.Command, w io.Writer) error {
			return root.GenBashCompletionV2(w, true)
		},
	},
	{
		name: "zsh",
		install: `  # Enable completion once, if needed
  echo "autoload -U compinit; compinit" >> ~/.zshrc

  # Current session
  source <(mcml completion zsh)

  # Every session
  mcml completion zsh > "${fpath[1]}/_mcml"`,
		gen: func(root *cobra.Command, w io.Writer) error {
			return root.GenZshCompletion(w)
		},
	},
	{
		name: "fish",
		install: `  # Current session
  mcml completion fish | source

  # Every session
  mcml completion fish > ~/.config/fish/completions/mcml.fish`,
		gen: func(root *cobra.Command, w io.Writer) error {
			return root.GenFishCompletion(w, true)
		},
	},
	{
		name: "powershell",
		install: `  # Current session
  mcml completion powershell | Out-String | Invoke-Expression

  # Every session
  mcml completion powershell >> $PROFILE`,
		gen: func(root *cobra.Command, w io.Writer) error {
			return root.GenPowerShellCompletionWithDesc(w)
		},
	},
}

// NewCmdCompletion creates the completion command.
func NewCmdCompletion() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for mcml.

These scripts enable tab-completion for commands, flags, and template
names. See each sub-command's help for installation instructions.`,
	}

	for _, sh := range shells {
		cmd.AddCommand(newShellCmd(sh))
	}

	return cmd
}

func newShellCmd(sh shell) *cobra.Command {
	return &cobra.Command{
		Use:                   sh.name,
		Short:                 fmt.Sprintf("Generate %s completion script", sh.name),
		Long:                  fmt.Sprintf("Generate %s completion script for mcml.", sh.name),
		Example:               sh.install,
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return sh.gen(cmd.Root(), cmd.OutOrStdout())
		},
	}
}
