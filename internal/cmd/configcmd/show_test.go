package configcmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/mcml-cli/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, v := range config.EnvVars() {
		t.Setenv(v, "")
	}
}

func TestRunShow_WithConfigFile(t *testing.T) {
	clearEnv(t)
	configPath := filepath.Join(t.TempDir(), "config.yml")

	offset := 0
	cfg := &config.Config{
		ColorChar:         "$",
		PlaceholderOffset: &offset,
		Endpoint:          "https://mc.example.com/api",
		Token:             "test-token-value",
		Templates:         map[string]string{"welcome": "hi", "bye": "bye"},
	}
	require.NoError(t, cfg.Save(configPath))

	var out bytes.Buffer
	require.NoError(t, runShow(true, configPath, &out))

	s := out.String()
	assert.Contains(t, s, "$  (source: config)")
	assert.Contains(t, s, "Offset:      0")
	assert.Contains(t, s, "https://mc.example.com/api  (source: config)")
	assert.Contains(t, s, "test********alue")
	assert.NotContains(t, s, "test-token-value")
	assert.Contains(t, s, "bye, welcome")
	assert.NotContains(t, s, "(file not found)")
}

func TestRunShow_EnvOverride(t *testing.T) {
	clearEnv(t)
	configPath := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, (&config.Config{Endpoint: "https://file.example.com"}).Save(configPath))
	t.Setenv("MCML_ENDPOINT", "https://env.example.com")

	var out bytes.Buffer
	require.NoError(t, runShow(true, configPath, &out))
	assert.Contains(t, out.String(), "https://env.example.com  (source: MCML_ENDPOINT)")
}

func TestRunShow_NoConfigFile(t *testing.T) {
	clearEnv(t)

	var out bytes.Buffer
	err := runShow(true, filepath.Join(t.TempDir(), "missing.yml"), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "(file not found)")
	assert.Contains(t, out.String(), "Endpoint:    -")
}
