package configcmd

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/mcml-cli/internal/config"
)

func testConfig(serverURL string) *config.Config {
	return &config.Config{
		Endpoint: serverURL,
		Token:    "test-token",
	}
}

func TestRunTest_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok", "server": "Paper", "version": "1.20.4", "online": 3}`))
	}))
	defer server.Close()

	var out bytes.Buffer
	err := runTest(true, nil, testConfig(server.URL), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "✓ Token accepted")
	assert.Contains(t, out.String(), "Server: Paper 1.20.4 (3 online)")
}

func TestRunTest_NoEndpoint(t *testing.T) {
	err := runTest(true, nil, &config.Config{}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no endpoint configured")
}

func TestRunTest_Failures(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		errContain string
	}{
		{"unauthorized", http.StatusUnauthorized, `{"message": "Unauthorized"}`, "authentication failed"},
		{"forbidden", http.StatusForbidden, ``, "access denied"},
		{"server error", http.StatusInternalServerError, ``, "unexpected status code: 500"},
		{"not ready", http.StatusOK, `{"status": "starting"}`, `server reported status "starting"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			err := runTest(true, nil, testConfig(server.URL), &bytes.Buffer{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContain)
		})
	}
}

func TestRunTest_ConnectionFailed(t *testing.T) {
	var out bytes.Buffer
	err := runTest(true, nil, testConfig("http://localhost:99999"), &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection failed")
	assert.Contains(t, out.String(), "mcml config show")
}
