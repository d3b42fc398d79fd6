// Package lint provides the lint command.
package lint

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/mcml-cli/internal/cmd/cmdutil"
	"github.com/open-cli-collective/mcml-cli/internal/config"
	"github.com/open-cli-collective/mcml-cli/internal/view"
	"github.com/open-cli-collective/mcml-cli/pkg/mcml"
)

type lintOptions struct {
	cmdutil.GlobalOptions
	source cmdutil.Source
	strict bool
	out    io.Writer
}

// NewCmdLint creates the lint command.
func NewCmdLint() *cobra.Command {
	opts := &lintOptions{}

	cmd := &cobra.Command{
		Use:   "lint <markup> [values...]",
		Short: "Report markup the parser had to guess about",
		Long: `Parse markup and list every place where it was ambiguous or malformed:
unknown codes, unmatched brackets, stray characters in event group bodies,
duplicate triggers, empty hovers, and dangling escapes or color characters.

Parsing always succeeds; lint shows how each problem was resolved.`,
		Example: `  # Find problems
  mcml lint '&zOops [broken](!"/x"'

  # Fail a CI step on any issue
  mcml lint --file motd.mcml --strict`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.GlobalOptions = cmdutil.Globals(cmd)
			cfg, err := opts.LoadConfig()
			if err != nil {
				return err
			}
			return runLint(opts, cfg, args)
		},
	}

	opts.source.AddFlags(cmd)
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Exit with an error when any issue is found")

	return cmd
}

// warningHeaders are the columns of the issue table.
var warningHeaders = []string{"POS", "ISSUE", "DETAIL"}

func runLint(opts *lintOptions, cfg *config.Config, args []string) error {
	format, err := opts.Format(cfg, view.FormatTable)
	if err != nil {
		return err
	}

	markup, replacements, err := opts.source.Resolve(cfg, cfg.Offset(), args)
	if err != nil {
		return err
	}

	result := cmdutil.NewParser(cfg, nil).ParseResult(markup, replacements)

	out := opts.out
	if out == nil {
		out = os.Stdout
	}
	renderer := view.NewRenderer(format, opts.NoColor)
	renderer.SetWriter(out)

	switch {
	case format == view.FormatJSON:
		renderer.RenderTable(warningHeaders, warningRows(result.Warnings))
	case len(result.Warnings) == 0:
		renderer.Success("No issues found")
	case format == view.FormatTable || format == view.FormatPlain:
		renderer.RenderTable(warningHeaders, warningRows(result.Warnings))
	default:
		for _, w := range result.Warnings {
			renderer.Warning(w.String())
		}
	}

	if opts.strict && len(result.Warnings) > 0 {
		return fmt.Errorf("%d issue(s) found", len(result.Warnings))
	}
	return nil
}

func warningRows(warnings []mcml.Warning) [][]string {
	rows := make([][]string, 0, len(warnings))
	for _, w := range warnings {
		rows = append(rows, []string{strconv.Itoa(w.Pos), w.Issue.String(), w.Detail})
	}
	return rows
}
