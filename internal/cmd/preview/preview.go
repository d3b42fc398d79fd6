// Package preview provides the interactive preview command.
package preview

import (
	"errors"
	"fmt"
	"strings"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/mcml-cli/api"
	"github.com/open-cli-collective/mcml-cli/internal/cmd/cmdutil"
	"github.com/open-cli-collective/mcml-cli/internal/config"
	"github.com/open-cli-collective/mcml-cli/internal/tui"
	"github.com/open-cli-collective/mcml-cli/internal/version"
)

type previewOptions struct {
	cmdutil.GlobalOptions
	file     string
	template string
	target   string
}

// NewCmdPreview creates the preview command.
func NewCmdPreview() *cobra.Command {
	opts := &previewOptions{}

	cmd := &cobra.Command{
		Use:   "preview [markup]",
		Short: "Edit markup with a live preview",
		Long: `Open an editor that re-renders the markup on every keystroke and lists
each run with its style and actions.

Press ctrl+s to send the message to the configured endpoint, esc to quit.`,
		Example: `  mcml preview
  mcml preview '&aHello [&lthere](!"/spawn")'
  mcml preview --template welcome`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.GlobalOptions = cmdutil.Globals(cmd)
			cfg, err := opts.LoadConfig()
			if err != nil {
				return err
			}
			topts, err := buildOptions(opts, cfg, args)
			if err != nil {
				return err
			}
			return tui.Run(topts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Load initial markup from a file")
	cmd.Flags().StringVarP(&opts.template, "template", "t", "", "Load initial markup from a named template")
	cmd.Flags().StringVar(&opts.target, "target", api.DefaultTarget, "Recipient for ctrl+s")
	_ = cmd.RegisterFlagCompletionFunc("template", cmdutil.CompleteTemplates)

	return cmd
}

func buildOptions(opts *previewOptions, cfg *config.Config, args []string) (tui.Options, error) {
	initial, err := initialMarkup(opts, cfg, args)
	if err != nil {
		return tui.Options{}, err
	}

	topts := tui.Options{
		Parser:  cmdutil.NewParser(cfg, nil),
		Target:  opts.target,
		Initial: initial,
		Profile: termenv.EnvColorProfile(),
	}
	if opts.NoColor {
		topts.Profile = termenv.Ascii
	}
	if cfg.Endpoint != "" {
		topts.Sender = api.NewClient(cfg.Endpoint, cfg.Token, api.WithUserAgent(version.UserAgent()))
	}
	return topts, nil
}

// The editor owns stdin, so "-" is rejected.
func initialMarkup(opts *previewOptions, cfg *config.Config, args []string) (string, error) {
	switch {
	case opts.template != "" && opts.file != "":
		return "", errors.New("--template and --file cannot be used together")
	case opts.file == "-":
		return "", errors.New("preview cannot read markup from stdin")
	case opts.template != "":
		tmpl, ok := cfg.Templates[opts.template]
		if !ok {
			return "", fmt.Errorf("unknown template %q", opts.template)
		}
		return tmpl, nil
	case opts.file != "":
		return cmdutil.ReadInput(opts.file, nil, nil)
	}
	return strings.Join(args, " "), nil
}
