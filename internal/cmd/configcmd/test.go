package configcmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/mcml-cli/api"
	"github.com/open-cli-collective/mcml-cli/internal/cmd/cmdutil"
	"github.com/open-cli-collective/mcml-cli/internal/config"
	"github.com/open-cli-collective/mcml-cli/internal/version"
)

// NewCmdTest creates the config test command.
func NewCmdTest() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test connectivity with the configured endpoint",
		Long:  `Test that mcml can reach the broadcast endpoint with the current token.`,
		Example: `  # Test connection
  mcml config test`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g := cmdutil.Globals(cmd)
			cfg, err := g.LoadConfig()
			if err != nil {
				return err
			}
			return runTest(g.NoColor, nil, cfg, os.Stdout)
		},
	}

	return cmd
}

func runTest(noColor bool, httpClient *http.Client, cfg *config.Config, out io.Writer) error {
	if noColor {
		color.NoColor = true
	}

	if cfg.Endpoint == "" {
		return errors.New("no endpoint configured (run 'mcml init' or set MCML_ENDPOINT)")
	}

	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	fmt.Fprintf(out, "Testing connection to %s...\n", cfg.Endpoint)

	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	client := api.NewClient(cfg.Endpoint, cfg.Token,
		api.WithHTTPClient(httpClient),
		api.WithUserAgent(version.UserAgent()),
	)

	ctx, cancel := context.WithTimeout(context.Background(), httpClient.Timeout)
	defer cancel()

	health, err := client.Health(ctx)
	if err != nil {
		var errResp *api.ErrorResponse
		if !errors.As(err, &errResp) {
			_, _ = red.Fprintln(out, "✗ Connection failed:", err)
			fmt.Fprintln(out, "\nCheck your endpoint with: mcml config show")
			fmt.Fprintln(out, "Reconfigure with: mcml init")
			return fmt.Errorf("connection failed: %w", err)
		}

		switch errResp.StatusCode {
		case 401:
			_, _ = red.Fprintln(out, "✗ Authentication failed: 401 Unauthorized")
			fmt.Fprintln(out, "\nCheck your token with: mcml config show")
			fmt.Fprintln(out, "Reconfigure with: mcml init")
			return fmt.Errorf("authentication failed")
		case 403:
			_, _ = red.Fprintln(out, "✗ Access denied: 403 Forbidden")
			fmt.Fprintln(out, "\nCheck the token's permissions.")
			return fmt.Errorf("access denied")
		}
		_, _ = red.Fprintf(out, "✗ Unexpected response: %d\n", errResp.StatusCode)
		return fmt.Errorf("unexpected status code: %d", errResp.StatusCode)
	}

	if !health.OK() {
		_, _ = red.Fprintf(out, "✗ Server not ready: %s\n", health.Status)
		return fmt.Errorf("server reported status %q", health.Status)
	}

	_, _ = green.Fprintln(out, "✓ Endpoint reachable")
	if cfg.Token != "" {
		_, _ = green.Fprintln(out, "✓ Token accepted")
	}
	if health.Server != "" {
		fmt.Fprintf(out, "\nServer: %s %s (%d online)\n", health.Server, health.Version, health.Online)
	}

	return nil
}
