// Package convertcmd provides the convert command.
package convertcmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/mcml-cli/internal/cmd/cmdutil"
	"github.com/open-cli-collective/mcml-cli/internal/config"
	"github.com/open-cli-collective/mcml-cli/internal/view"
	"github.com/open-cli-collective/mcml-cli/pkg/convert"
)

type convertOptions struct {
	cmdutil.GlobalOptions
	from   string
	render bool
	stdin  io.Reader
	out    io.Writer
}

// NewCmdConvert creates the convert command.
func NewCmdConvert() *cobra.Command {
	opts := &convertOptions{}

	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Convert Markdown or HTML to markup",
		Long: `Convert a Markdown or HTML document to chat markup.

Emphasis becomes italic, strong becomes bold, strikethrough and code keep
their meaning, headings are bold gold and links become open_url event
groups. The input format is taken from --from or the file extension.`,
		Example: `  # Convert a markdown file
  mcml convert notes.md

  # Convert HTML from stdin and show the rendered result
  curl -s https://example.com/motd.html | mcml convert --from html --render`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.GlobalOptions = cmdutil.Globals(cmd)
			cfg, err := opts.LoadConfig()
			if err != nil {
				return err
			}
			file := "-"
			if len(args) == 1 {
				file = args[0]
			}
			return runConvert(opts, cfg, file)
		},
	}

	cmd.Flags().StringVar(&opts.from, "from", "", "Input format: markdown or html (default: by extension, else markdown)")
	cmd.Flags().BoolVar(&opts.render, "render", false, "Render the converted markup instead of printing it")

	return cmd
}

func inputFormat(from, file string) (string, error) {
	switch strings.ToLower(from) {
	case "md", "markdown":
		return "markdown", nil
	case "html", "htm":
		return "html", nil
	case "":
		switch strings.ToLower(filepath.Ext(file)) {
		case ".html", ".htm":
			return "html", nil
		}
		return "markdown", nil
	}
	return "", fmt.Errorf("invalid --from %q (valid: markdown, html)", from)
}

func runConvert(opts *convertOptions, cfg *config.Config, file string) error {
	format, err := inputFormat(opts.from, file)
	if err != nil {
		return err
	}

	stdin := opts.stdin
	if stdin == nil {
		stdin = os.Stdin
	}
	input, err := cmdutil.ReadInput(file, stdin, nil)
	if err != nil {
		return err
	}

	convOpts := convert.Options{ColorChar: cfg.ColorRune()}
	var markup string
	if format == "html" {
		markup, err = convert.FromHTMLWithOptions(input, convOpts)
		if err != nil {
			return fmt.Errorf("failed to convert HTML: %w", err)
		}
	} else {
		markup = convert.FromMarkdownWithOptions([]byte(input), convOpts)
	}

	out := opts.out
	if out == nil {
		out = os.Stdout
	}

	if !opts.render {
		fmt.Fprintln(out, markup)
		return nil
	}

	outFormat, err := opts.Format(cfg, view.FormatANSI)
	if err != nil {
		return err
	}
	renderer := view.NewRenderer(outFormat, opts.NoColor)
	renderer.SetWriter(out)
	return renderer.RenderRuns(cmdutil.NewParser(cfg, nil).Parse(markup, nil), cfg.ColorRune())
}
