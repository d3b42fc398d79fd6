// Package render provides the render command.
package render

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/mcml-cli/internal/cmd/cmdutil"
	"github.com/open-cli-collective/mcml-cli/internal/config"
	"github.com/open-cli-collective/mcml-cli/internal/schema"
	"github.com/open-cli-collective/mcml-cli/internal/view"
	"github.com/open-cli-collective/mcml-cli/pkg/mcml"
)

type renderOptions struct {
	cmdutil.GlobalOptions
	source   cmdutil.Source
	offset   *int
	validate bool
	out      io.Writer
}

// NewCmdRender creates the render command.
func NewCmdRender() *cobra.Command {
	opts := &renderOptions{}
	var offset int

	cmd := &cobra.Command{
		Use:   "render <markup> [values...]",
		Short: "Parse markup and print the result",
		Long: `Parse markup into styled runs and print them.

Placeholders {1}, {2}, ... are filled from the extra arguments; named
placeholders come from --set. Substituted values are always literal text.`,
		Example: `  # Colored terminal output
  mcml render '&aHello &l{1}' Steve

  # Chat component JSON, checked against the schema
  mcml render '[&bSpawn](!"/spawn" T"Teleport home")' -o json --validate

  # One row per run
  mcml render '&cRed &lbold' -o table

  # Named template from the config file
  mcml render --template welcome --set player=Steve`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.GlobalOptions = cmdutil.Globals(cmd)
			if cmd.Flags().Changed("offset") {
				opts.offset = &offset
			}
			cfg, err := opts.LoadConfig()
			if err != nil {
				return err
			}
			return runRender(opts, cfg, args)
		},
	}

	opts.source.AddFlags(cmd)
	cmd.Flags().IntVar(&offset, "offset", mcml.DefaultPlaceholderOffset, "Index of the first ordered placeholder")
	cmd.Flags().BoolVar(&opts.validate, "validate", false, "Check the component JSON against the schema")

	return cmd
}

func runRender(opts *renderOptions, cfg *config.Config, args []string) error {
	format, err := opts.Format(cfg, view.FormatANSI)
	if err != nil {
		return err
	}

	parser := cmdutil.NewParser(cfg, opts.offset)
	offset := cfg.Offset()
	if opts.offset != nil {
		offset = *opts.offset
	}

	markup, replacements, err := opts.source.Resolve(cfg, offset, args)
	if err != nil {
		return err
	}

	runs := parser.Parse(markup, replacements)

	if opts.validate {
		if err := schema.ValidateValue(mcml.Root(runs)); err != nil {
			return fmt.Errorf("component failed validation: %w", err)
		}
	}

	out := opts.out
	if out == nil {
		out = os.Stdout
	}
	renderer := view.NewRenderer(format, opts.NoColor)
	renderer.SetWriter(out)

	return renderer.RenderRuns(runs, cfg.ColorRune())
}
