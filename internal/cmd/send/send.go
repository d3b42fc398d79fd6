// Package send provides the send command.
package send

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/mcml-cli/api"
	"github.com/open-cli-collective/mcml-cli/internal/cmd/cmdutil"
	"github.com/open-cli-collective/mcml-cli/internal/config"
	"github.com/open-cli-collective/mcml-cli/internal/schema"
	"github.com/open-cli-collective/mcml-cli/internal/version"
	"github.com/open-cli-collective/mcml-cli/internal/view"
	"github.com/open-cli-collective/mcml-cli/pkg/mcml"
)

type sendOptions struct {
	cmdutil.GlobalOptions
	source cmdutil.Source
	target string
	dryRun bool
	out    io.Writer
}

// NewCmdSend creates the send command.
func NewCmdSend() *cobra.Command {
	opts := &sendOptions{}

	cmd := &cobra.Command{
		Use:   "send <markup> [values...]",
		Short: "Broadcast markup to a server",
		Long: `Parse markup, encode it as a chat component and POST it to the
configured broadcast endpoint.

The endpoint and token come from the config file or MCML_ENDPOINT and
MCML_TOKEN.`,
		Example: `  # Announce to everyone
  mcml send '&6&lRestart &ein {1} minutes' 5

  # Whisper to one player
  mcml send --target Steve '[&aAccept](!"/tpaccept") the request'

  # Show the request body without sending
  mcml send --dry-run '&cHello'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.GlobalOptions = cmdutil.Globals(cmd)
			cfg, err := opts.LoadConfig()
			if err != nil {
				return err
			}
			return runSend(cmd.Context(), opts, cfg, args, nil)
		},
	}

	opts.source.AddFlags(cmd)
	cmd.Flags().StringVar(&opts.target, "target", api.DefaultTarget, "Recipient selector or player name")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Print the request body instead of sending it")

	return cmd
}

func runSend(ctx context.Context, opts *sendOptions, cfg *config.Config, args []string, client *api.Client) error {
	if ctx == nil {
		ctx = context.Background()
	}

	format, err := opts.Format(cfg, view.FormatTable)
	if err != nil {
		return err
	}

	markup, replacements, err := opts.source.Resolve(cfg, cfg.Offset(), args)
	if err != nil {
		return err
	}

	runs := cmdutil.NewParser(cfg, nil).Parse(markup, replacements)
	if len(runs) == 0 {
		return errors.New("message is empty")
	}
	if err := schema.ValidateValue(mcml.Root(runs)); err != nil {
		return fmt.Errorf("component failed validation: %w", err)
	}

	out := opts.out
	if out == nil {
		out = os.Stdout
	}
	renderer := view.NewRenderer(format, opts.NoColor)
	renderer.SetWriter(out)

	if opts.dryRun {
		return renderer.RenderJSON(api.BroadcastRequest{Target: opts.target, Message: mcml.Root(runs)})
	}

	if client == nil {
		if cfg.Endpoint == "" {
			return errors.New("no endpoint configured (run 'mcml init' or set MCML_ENDPOINT)")
		}
		client = api.NewClient(cfg.Endpoint, cfg.Token, api.WithUserAgent(version.UserAgent()))
	}

	log.Debug().Str("endpoint", client.BaseURL()).Str("target", opts.target).Int("runs", len(runs)).Msg("sending broadcast")

	resp, err := client.Broadcast(ctx, opts.target, runs)
	if err != nil {
		return fmt.Errorf("failed to send: %w", err)
	}

	if format == view.FormatJSON {
		return renderer.RenderJSON(resp)
	}

	renderer.Success(fmt.Sprintf("Sent to %s", opts.target))
	renderer.RenderKeyValue("Delivered", fmt.Sprintf("%d", resp.Delivered))
	if resp.ID != "" {
		renderer.RenderKeyValue("ID", resp.ID)
	}
	return nil
}
