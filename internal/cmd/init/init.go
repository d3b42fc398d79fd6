// Package init provides the init command for mcml.
package init

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/mcml-cli/api"
	"github.com/open-cli-collective/mcml-cli/internal/cmd/cmdutil"
	"github.com/open-cli-collective/mcml-cli/internal/config"
	"github.com/open-cli-collective/mcml-cli/internal/version"
	"github.com/open-cli-collective/mcml-cli/pkg/mcml"
)

const verifyTimeout = 10 * time.Second

type initOptions struct {
	cmdutil.GlobalOptions
	endpoint string
	noVerify bool
	out      io.Writer
}

// NewCmdInit creates the init command.
func NewCmdInit() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize mcml configuration",
		Long: `Initialize mcml with your markup defaults and broadcast endpoint.

This command will guide you through choosing the color character, the
first placeholder index, the default output format and, optionally, the
endpoint and token used by 'mcml send'. The configuration will be saved
to ~/.config/mcml/config.yml.`,
		Example: `  # Interactive setup
  mcml init

  # Pre-populate the endpoint
  mcml init --endpoint https://mc.example.com/api`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.GlobalOptions = cmdutil.Globals(cmd)
			return runInit(opts)
		},
	}

	cmd.Flags().StringVar(&opts.endpoint, "endpoint", "", "Broadcast endpoint URL (e.g., https://mc.example.com/api)")
	cmd.Flags().BoolVar(&opts.noVerify, "no-verify", false, "Skip connection verification")

	return cmd
}

// answers holds raw form input before it is turned into a Config.
type answers struct {
	colorChar string
	offset    string
	output    string
	endpoint  string
	token     string
}

func (a answers) config() (*config.Config, error) {
	cfg := &config.Config{
		Endpoint: a.endpoint,
		Token:    a.token,
	}
	if a.colorChar != "" && a.colorChar != string(mcml.DefaultColorChar) {
		cfg.ColorChar = a.colorChar
	}
	if a.output != "" && a.output != "ansi" {
		cfg.OutputFormat = a.output
	}
	if a.offset != "" {
		n, err := strconv.Atoi(a.offset)
		if err != nil {
			return nil, fmt.Errorf("placeholder offset must be a number")
		}
		if n != mcml.DefaultPlaceholderOffset {
			cfg.PlaceholderOffset = &n
		}
	}
	cfg.NormalizeEndpoint()
	return cfg, cfg.Validate()
}

func runInit(opts *initOptions) error {
	out := opts.out
	if out == nil {
		out = os.Stdout
	}
	configPath := opts.Path()

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		var overwrite bool
		err := huh.NewConfirm().
			Title("Configuration already exists").
			Description(fmt.Sprintf("Overwrite %s?", configPath)).
			Value(&overwrite).
			Run()
		if err != nil {
			return err
		}
		if !overwrite {
			fmt.Fprintln(out, "Initialization cancelled.")
			return nil
		}
	}

	a := answers{
		colorChar: string(mcml.DefaultColorChar),
		offset:    strconv.Itoa(mcml.DefaultPlaceholderOffset),
		output:    "ansi",
		endpoint:  opts.endpoint,
	}

	formats := make([]huh.Option[string], 0, len(config.OutputFormats()))
	for _, f := range config.OutputFormats() {
		formats = append(formats, huh.NewOption(f, f))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Color character").
				Description("Starts color and format codes").
				Value(&a.colorChar).
				Validate(func(s string) error {
					return (&config.Config{ColorChar: s}).Validate()
				}),

			huh.NewInput().
				Title("First placeholder").
				Description("Index of {n} that takes the first value").
				Value(&a.offset).
				Validate(func(s string) error {
					if n, err := strconv.Atoi(s); err != nil || n < 0 {
						return fmt.Errorf("must be a non-negative number")
					}
					return nil
				}),

			huh.NewSelect[string]().
				Title("Default output").
				Options(formats...).
				Value(&a.output),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Broadcast endpoint (optional)").
				Description("Used by 'mcml send'").
				Placeholder("https://mc.example.com/api").
				Value(&a.endpoint).
				Validate(func(s string) error {
					return (&config.Config{Endpoint: s}).Validate()
				}),

			huh.NewInput().
				Title("Token (optional)").
				Description("Sent as a bearer token").
				EchoMode(huh.EchoModePassword).
				Value(&a.token),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	cfg, err := a.config()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	return finish(cfg, configPath, opts.noVerify, out)
}

// finish verifies the endpoint, when one is set, and saves the config.
func finish(cfg *config.Config, configPath string, noVerify bool, out io.Writer) error {
	if cfg.Endpoint != "" && !noVerify {
		fmt.Fprint(out, "Verifying connection... ")
		if err := verifyConnection(cfg); err != nil {
			fmt.Fprintln(out, "failed!")
			return fmt.Errorf("connection verification failed: %w", err)
		}
		fmt.Fprintln(out, "success!")
	}

	if err := cfg.Save(configPath); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nConfiguration saved to %s\n", configPath)
	fmt.Fprintln(out, "\nYou're all set! Try running:")
	c := string(cfg.ColorRune())
	fmt.Fprintf(out, "  mcml render '%saHello %sl{1}' world\n", c, c)
	if cfg.Endpoint != "" {
		fmt.Fprintln(out, "  mcml send --dry-run 'Hello'")
	}

	return nil
}

func verifyConnection(cfg *config.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), verifyTimeout)
	defer cancel()

	client := api.NewClient(cfg.Endpoint, cfg.Token, api.WithUserAgent(version.UserAgent()))
	health, err := client.Health(ctx)
	if err != nil {
		var errResp *api.ErrorResponse
		if errors.As(err, &errResp) {
			switch errResp.StatusCode {
			case 401:
				return fmt.Errorf("authentication failed - check your token")
			case 403:
				return fmt.Errorf("access denied - check the token's permissions")
			}
			return fmt.Errorf("unexpected status code: %d", errResp.StatusCode)
		}
		return err
	}
	if !health.OK() {
		return fmt.Errorf("server reported status %q", health.Status)
	}
	return nil
}
