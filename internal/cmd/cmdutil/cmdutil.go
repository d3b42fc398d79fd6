// Package cmdutil holds helpers shared by the mcml commands.
package cmdutil

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/mcml-cli/internal/config"
	"github.com/open-cli-collective/mcml-cli/internal/view"
	"github.com/open-cli-collective/mcml-cli/pkg/mcml"
)

// GlobalOptions are the persistent root flags.
type GlobalOptions struct {
	ConfigPath string
	Output     string
	NoColor    bool
	Verbose    bool
}

// Globals reads the persistent flags visible to cmd.
func Globals(cmd *cobra.Command) GlobalOptions {
	var g GlobalOptions
	g.ConfigPath, _ = cmd.Flags().GetString("config")
	g.Output, _ = cmd.Flags().GetString("output")
	g.NoColor, _ = cmd.Flags().GetBool("no-color")
	g.Verbose, _ = cmd.Flags().GetBool("verbose")
	return g
}

// Path returns the config file in use.
func (g GlobalOptions) Path() string {
	if g.ConfigPath != "" {
		return g.ConfigPath
	}
	return config.DefaultConfigPath()
}

// LoadConfig loads the config file with environment overrides and validates it.
func (g GlobalOptions) LoadConfig() (*config.Config, error) {
	cfg, err := config.LoadWithEnv(g.Path())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w (run 'mcml init' to configure)", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w (run 'mcml init' to configure)", err)
	}
	cfg.NormalizeEndpoint()
	return cfg, nil
}

// Format picks the output format: the --output flag, then the config file,
// then fallback.
func (g GlobalOptions) Format(cfg *config.Config, fallback view.Format) (view.Format, error) {
	out := g.Output
	if out == "" && cfg != nil {
		out = cfg.OutputFormat
	}
	if err := view.ValidateFormat(out); err != nil {
		return "", err
	}
	if out == "" {
		return fallback, nil
	}
	return view.Format(out), nil
}

// NewLogger builds the console logger written to w. Only warnings show
// unless verbose is set.
func NewLogger(w io.Writer, verbose, noColor bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: noColor, PartsExclude: []string{zerolog.TimestampFieldName}}).
		Level(level).
		With().Timestamp().Logger()
}

// SetupLogging installs the global logger for a command run.
func SetupLogging(g GlobalOptions) {
	log.Logger = NewLogger(os.Stderr, g.Verbose, g.NoColor)
}

// NewParser builds a parser from the config. A non-nil offset overrides
// the configured placeholder offset.
func NewParser(cfg *config.Config, offset *int) *mcml.Parser {
	off := cfg.Offset()
	if offset != nil {
		off = *offset
	}
	return mcml.New(
		mcml.WithColorChar(cfg.ColorRune()),
		mcml.WithPlaceholderOffset(off),
		mcml.WithLogger(log.Logger),
	)
}

// ReadInput returns the markup source: the named file, stdin for "-", or
// the joined args.
func ReadInput(file string, stdin io.Reader, args []string) (string, error) {
	switch file {
	case "":
		if len(args) == 0 {
			return "", fmt.Errorf("markup is required: pass it as an argument or use --file")
		}
		return strings.Join(args, " "), nil
	case "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return strings.TrimRight(string(data), "\r\n"), nil
	default:
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
		return strings.TrimRight(string(data), "\r\n"), nil
	}
}

// ParseSet splits --set key=value pairs into named replacements. A bare
// key is wrapped in braces so "player=Steve" fills "{player}".
func ParseSet(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]any, len(pairs))
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --set value %q: expected key=value", p)
		}
		if !strings.HasPrefix(key, "{") {
			key = "{" + key + "}"
		}
		out[key] = value
	}
	return out, nil
}

// Replacements merges ordered values and named pairs into one map. Named
// pairs win on conflict.
func Replacements(offset int, values []string, named map[string]any) map[string]any {
	anyValues := make([]any, len(values))
	for i, v := range values {
		anyValues[i] = v
	}
	out := mcml.OrderedReplacements(offset, anyValues)
	for k, v := range named {
		out[k] = v
	}
	return out
}

// MaskToken hides all but the first and last four characters of a token.
func MaskToken(token string) string {
	if len(token) <= 8 {
		return strings.Repeat("*", len(token))
	}
	return token[:4] + strings.Repeat("*", len(token)-8) + token[len(token)-4:]
}

// Source selects where a command's markup comes from.
type Source struct {
	File     string
	Template string
	Set      []string
	Stdin    io.Reader
}

// AddFlags registers the --file, --template and --set flags.
func (s *Source) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&s.File, "file", "f", "", "Read markup from a file (- for stdin)")
	cmd.Flags().StringVarP(&s.Template, "template", "t", "", "Use a named template from the config file")
	cmd.Flags().StringArrayVar(&s.Set, "set", nil, "Named replacement key=value (fills {key}); repeatable")
	_ = cmd.RegisterFlagCompletionFunc("template", CompleteTemplates)
}

// CompleteTemplates completes --template with the names in the config file.
func CompleteTemplates(cmd *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	cfg, err := Globals(cmd).LoadConfig()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var names []string
	for name := range cfg.Templates {
		if strings.HasPrefix(name, toComplete) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, cobra.ShellCompDirectiveNoFileComp
}

// Resolve returns the markup and its replacement map. With --file or
// --template every arg is an ordered value; otherwise the first arg is the
// markup.
func (s *Source) Resolve(cfg *config.Config, offset int, args []string) (string, map[string]any, error) {
	var (
		markup string
		values []string
		err    error
	)

	switch {
	case s.Template != "" && s.File != "":
		return "", nil, fmt.Errorf("--file and --template cannot be used together")
	case s.Template != "":
		tmpl, ok := cfg.Templates[s.Template]
		if !ok {
			return "", nil, fmt.Errorf("unknown template %q", s.Template)
		}
		markup, values = tmpl, args
	case s.File != "":
		stdin := s.Stdin
		if stdin == nil {
			stdin = os.Stdin
		}
		if markup, err = ReadInput(s.File, stdin, nil); err != nil {
			return "", nil, err
		}
		values = args
	default:
		if markup, err = ReadInput("", nil, args[:min(len(args), 1)]); err != nil {
			return "", nil, err
		}
		values = args[min(len(args), 1):]
	}

	named, err := ParseSet(s.Set)
	if err != nil {
		return "", nil, err
	}
	return markup, Replacements(offset, values, named), nil
}
