package root

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCmdRoot_Subcommands(t *testing.T) {
	cmd := NewCmdRoot()

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	for _, want := range []string{"render", "lint", "convert", "send", "preview", "syntax", "init", "config", "completion"} {
		assert.Contains(t, names, want)
	}
}

func TestNewCmdRoot_Flags(t *testing.T) {
	cmd := NewCmdRoot()

	tests := []struct {
		name      string
		shorthand string
		def       string
	}{
		{"config", "c", ""},
		{"output", "o", ""},
		{"no-color", "", "false"},
		{"verbose", "v", "false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := cmd.PersistentFlags().Lookup(tt.name)
			require.NotNil(t, f)
			assert.Equal(t, tt.shorthand, f.Shorthand)
			assert.Equal(t, tt.def, f.DefValue)
		})
	}
}

func TestNewCmdRoot_Version(t *testing.T) {
	cmd := NewCmdRoot()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--version"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "mcml version dev")
}

func TestNewCmdRoot_VerboseSetsLogLevel(t *testing.T) {
	orig := log.Logger
	defer func() { log.Logger = orig }()

	cmd := NewCmdRoot()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"completion", "bash", "--verbose", "--config", t.TempDir() + "/none.yml"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, zerolog.DebugLevel, log.Logger.GetLevel())
}

func TestNewCmdRoot_UnknownCommand(t *testing.T) {
	cmd := NewCmdRoot()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"nope"})

	assert.Error(t, cmd.Execute())
}
