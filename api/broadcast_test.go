package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/mcml-cli/pkg/mcml"
)

func loadTestData(t *testing.T, filename string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", filename))
	require.NoError(t, err)
	return data
}

func TestClient_Broadcast(t *testing.T) {
	runs := mcml.New().Parse(`&aHello [&lthere](!"/spawn" "Go home")`, nil)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/broadcast", r.URL.Path)
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		body, _ := io.ReadAll(r.Body)
		var req BroadcastRequest
		assert.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, "@p", req.Target)
		assert.Equal(t, "", req.Message.Text)
		if assert.Len(t, req.Message.Extra, 2) {
			assert.Equal(t, "Hello ", req.Message.Extra[0].Text)
			if assert.NotNil(t, req.Message.Extra[1].ClickEvent) {
				assert.Equal(t, "run_command", req.Message.Extra[1].ClickEvent.Action)
			}
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"delivered": 3, "id": "msg-1"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret")
	resp, err := client.Broadcast(context.Background(), "@p", runs)

	require.NoError(t, err)
	assert.Equal(t, 3, resp.Delivered)
	assert.Equal(t, "msg-1", resp.ID)
}

func TestClient_Broadcast_DefaultTarget(t *testing.T) {
	var req BroadcastRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &req)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	resp, err := client.Broadcast(context.Background(), "", mcml.New().Parse("hi", nil))

	require.NoError(t, err)
	assert.Equal(t, DefaultTarget, req.Target)
	assert.Equal(t, 0, resp.Delivered)
}

func TestClient_Broadcast_EmptyMessage(t *testing.T) {
	client := NewClient("http://127.0.0.1:0", "")
	_, err := client.Broadcast(context.Background(), "", nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "message is empty")
}

func TestClient_Broadcast_BadResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	_, err := client.Broadcast(context.Background(), "", mcml.New().Parse("hi", nil))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse response")
}

func TestClient_Health(t *testing.T) {
	testData := loadTestData(t, "health.json")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		assert.Equal(t, "GET", r.Method)

		w.WriteHeader(http.StatusOK)
		w.Write(testData)
	}))
	defer server.Close()

	client := NewClient(server.URL, "token")
	health, err := client.Health(context.Background())

	require.NoError(t, err)
	assert.True(t, health.OK())
	assert.Equal(t, "Paper", health.Server)
	assert.Equal(t, "1.20.4", health.Version)
	assert.Equal(t, 12, health.Online)
}

func TestHealthResponse_OK(t *testing.T) {
	tests := []struct {
		status string
		ok     bool
	}{
		{"ok", true},
		{"healthy", true},
		{"degraded", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			h := HealthResponse{Status: tt.status}
			assert.Equal(t, tt.ok, h.OK())
		})
	}
}
