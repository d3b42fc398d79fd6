package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/open-cli-collective/mcml-cli/pkg/mcml"
)

// Broadcast sends parsed runs to target as one chat component.
func (c *Client) Broadcast(ctx context.Context, target string, runs []mcml.StyleRun) (*BroadcastResponse, error) {
	if len(runs) == 0 {
		return nil, errors.New("message is empty")
	}
	if target == "" {
		target = DefaultTarget
	}

	req := BroadcastRequest{
		Target:  target,
		Message: mcml.Root(runs),
	}

	body, err := c.Post(ctx, "/broadcast", req)
	if err != nil {
		return nil, err
	}

	var resp BroadcastResponse
	if len(body) == 0 {
		return &resp, nil
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &resp, nil
}

// Health checks that the endpoint is reachable and the token is accepted.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	body, err := c.Get(ctx, "/health")
	if err != nil {
		return nil, err
	}

	var resp HealthResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &resp, nil
}
