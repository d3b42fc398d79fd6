package configcmd

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/mcml-cli/internal/cmd/cmdutil"
	"github.com/open-cli-collective/mcml-cli/internal/config"
)

// NewCmdShow creates the config show command.
func NewCmdShow() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long:  `Display the current mcml configuration with value source indicators.`,
		Example: `  # Show current config
  mcml config show`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g := cmdutil.Globals(cmd)
			return runShow(g.NoColor, g.Path(), os.Stdout)
		},
	}

	return cmd
}

func offsetString(off *int) string {
	if off == nil {
		return ""
	}
	return strconv.Itoa(*off)
}

func runShow(noColor bool, configPath string, out io.Writer) error {
	if noColor {
		color.NoColor = true
	}

	// Load file config (may not exist)
	fileCfg, fileErr := config.Load(configPath)
	if fileErr != nil {
		fileCfg = &config.Config{}
	}

	// Load full config with env overrides
	cfg, _ := config.LoadWithEnv(configPath)

	bold := color.New(color.Bold)
	dim := color.New(color.Faint)

	printField := func(label, value, fileValue, envVar string, secret bool) {
		_, _ = bold.Fprintf(out, "%-13s", label+":")
		if value == "" {
			_, _ = dim.Fprintln(out, "-")
			return
		}

		display := value
		if secret {
			display = cmdutil.MaskToken(value)
		}
		fmt.Fprint(out, display)

		// Determine source
		source := "config"
		if fileErr != nil {
			source = "-"
		}
		if v := os.Getenv(envVar); v != "" && v == value {
			source = envVar
		}
		if fileValue != value && source == "config" {
			source = "-"
		}

		_, _ = dim.Fprintf(out, "  (source: %s)\n", source)
	}

	printField("Color char", cfg.ColorChar, fileCfg.ColorChar, "MCML_COLOR_CHAR", false)
	printField("Offset", offsetString(cfg.PlaceholderOffset), offsetString(fileCfg.PlaceholderOffset), "MCML_PLACEHOLDER_OFFSET", false)
	printField("Output", cfg.OutputFormat, fileCfg.OutputFormat, "MCML_OUTPUT", false)
	printField("Endpoint", cfg.Endpoint, fileCfg.Endpoint, "MCML_ENDPOINT", false)
	printField("Token", cfg.Token, fileCfg.Token, "MCML_TOKEN", true)

	_, _ = bold.Fprintf(out, "%-13s", "Templates:")
	if len(cfg.Templates) == 0 {
		_, _ = dim.Fprintln(out, "-")
	} else {
		names := make([]string, 0, len(cfg.Templates))
		for name := range cfg.Templates {
			names = append(names, name)
		}
		sort.Strings(names)
		fmt.Fprintln(out, strings.Join(names, ", "))
	}

	fmt.Fprintln(out)
	_, _ = dim.Fprintf(out, "Config file: %s\n", configPath)
	if fileErr != nil {
		_, _ = dim.Fprintln(out, "(file not found)")
	}

	return nil
}
