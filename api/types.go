// Package api provides the HTTP client for chat broadcast endpoints.
package api

import (
	"errors"
	"net/http"

	"github.com/open-cli-collective/mcml-cli/pkg/mcml"
)

// DefaultTarget addresses every online player.
const DefaultTarget = "@a"

// BroadcastRequest is the body of POST /broadcast.
type BroadcastRequest struct {
	Target  string         `json:"target"`
	Message mcml.Component `json:"message"`
}

// BroadcastResponse reports how many recipients got the message.
type BroadcastResponse struct {
	Delivered int    `json:"delivered"`
	ID        string `json:"id,omitempty"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Server  string `json:"server,omitempty"`
	Version string `json:"version,omitempty"`
	Online  int    `json:"online"`
}

// OK reports whether the endpoint considers itself healthy.
func (h *HealthResponse) OK() bool {
	return h.Status == "ok" || h.Status == "healthy"
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Errors     []string `json:"errors,omitempty"`
}

func (e *ErrorResponse) Error() string {
	if len(e.Errors) > 0 {
		return e.Errors[0]
	}
	return e.Message
}

// IsUnauthorized reports whether err is an authentication failure.
func IsUnauthorized(err error) bool {
	var errResp *ErrorResponse
	if !errors.As(err, &errResp) {
		return false
	}
	return errResp.StatusCode == http.StatusUnauthorized || errResp.StatusCode == http.StatusForbidden
}
