// Package root provides the root command for the mcml CLI.
package root

import (
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/mcml-cli/internal/cmd/cmdutil"
	"github.com/open-cli-collective/mcml-cli/internal/cmd/completion"
	"github.com/open-cli-collective/mcml-cli/internal/cmd/configcmd"
	"github.com/open-cli-collective/mcml-cli/internal/cmd/convertcmd"
	initcmd "github.com/open-cli-collective/mcml-cli/internal/cmd/init"
	"github.com/open-cli-collective/mcml-cli/internal/cmd/lint"
	"github.com/open-cli-collective/mcml-cli/internal/cmd/preview"
	"github.com/open-cli-collective/mcml-cli/internal/cmd/render"
	"github.com/open-cli-collective/mcml-cli/internal/cmd/send"
	"github.com/open-cli-collective/mcml-cli/internal/cmd/syntax"
	"github.com/open-cli-collective/mcml-cli/internal/config"
	"github.com/open-cli-collective/mcml-cli/internal/version"
)

// NewCmdRoot creates the root command for mcml.
func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcml",
		Short: "Parse and send chat markup",
		Long: `mcml parses chat markup into styled, clickable text.

Color and format codes, escapes, {n} placeholders and [text](!"cmd")
event groups are turned into style runs, which can be printed for a
terminal, exported as chat component JSON, checked for problems or
broadcast to a server.

Get started by running: mcml syntax`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.LoadDotEnv(); err != nil {
				return err
			}
			cmdutil.SetupLogging(cmdutil.Globals(cmd))
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().StringP("config", "c", "", "config file (default: ~/.config/mcml/config.yml)")
	cmd.PersistentFlags().StringP("output", "o", "", "output format: ansi, plain, legacy, irc, json, table")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "log parser diagnostics to stderr")

	_ = cmd.RegisterFlagCompletionFunc("output", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return config.OutputFormats(), cobra.ShellCompDirectiveNoFileComp
	})

	cmd.SetVersionTemplate(version.String() + "\n")

	// Subcommands
	cmd.AddCommand(render.NewCmdRender())
	cmd.AddCommand(lint.NewCmdLint())
	cmd.AddCommand(convertcmd.NewCmdConvert())
	cmd.AddCommand(send.NewCmdSend())
	cmd.AddCommand(preview.NewCmdPreview())
	cmd.AddCommand(syntax.NewCmdSyntax())
	cmd.AddCommand(initcmd.NewCmdInit())
	cmd.AddCommand(configcmd.NewCmdConfig())
	cmd.AddCommand(completion.NewCmdCompletion())

	return cmd
}
