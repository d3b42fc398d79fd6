// Package syntax provides the syntax command, a markup cheat sheet.
package syntax

import (
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/mcml-cli/internal/cmd/cmdutil"
)

//go:embed syntax.md
var reference string

const defaultWrap = 80

type syntaxOptions struct {
	cmdutil.GlobalOptions
	raw   bool
	width int
	out   io.Writer
}

// NewCmdSyntax creates the syntax command.
func NewCmdSyntax() *cobra.Command {
	opts := &syntaxOptions{}

	cmd := &cobra.Command{
		Use:   "syntax",
		Short: "Show the markup reference",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.GlobalOptions = cmdutil.Globals(cmd)
			return runSyntax(opts)
		},
	}

	cmd.Flags().BoolVar(&opts.raw, "raw", false, "Print the reference as markdown")
	cmd.Flags().IntVar(&opts.width, "width", defaultWrap, "Wrap width")

	return cmd
}

func runSyntax(opts *syntaxOptions) error {
	out := opts.out
	if out == nil {
		out = os.Stdout
	}

	if opts.raw {
		_, err := fmt.Fprint(out, reference)
		return err
	}

	width := opts.width
	if width <= 0 {
		width = defaultWrap
	}

	ropts := []glamour.TermRendererOption{
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(width),
	}
	if opts.NoColor {
		ropts = []glamour.TermRendererOption{
			glamour.WithStylePath("notty"),
			glamour.WithColorProfile(termenv.Ascii),
			glamour.WithWordWrap(width),
		}
	}
	r, err := glamour.NewTermRenderer(ropts...)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}

	rendered, err := r.Render(reference)
	if err != nil {
		return fmt.Errorf("failed to render reference: %w", err)
	}
	_, err = fmt.Fprint(out, rendered)
	return err
}
