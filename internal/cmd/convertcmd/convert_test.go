package convertcmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/mcml-cli/internal/cmd/cmdutil"
	"github.com/open-cli-collective/mcml-cli/internal/config"
)

func TestInputFormat(t *testing.T) {
	tests := []struct {
		from    string
		file    string
		want    string
		wantErr bool
	}{
		{"", "notes.md", "markdown", false},
		{"", "page.HTML", "html", false},
		{"", "-", "markdown", false},
		{"html", "notes.md", "html", false},
		{"Markdown", "page.html", "markdown", false},
		{"rst", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.from+tt.file, func(t *testing.T) {
			got, err := inputFormat(tt.from, tt.file)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRunConvert_Markdown(t *testing.T) {
	var buf bytes.Buffer
	opts := &convertOptions{
		stdin: strings.NewReader("Hello **world**\n"),
		out:   &buf,
	}

	require.NoError(t, runConvert(opts, &config.Config{}, "-"))
	assert.Equal(t, "Hello &lworld\n", buf.String())
}

func TestRunConvert_HTMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "motd.html")
	require.NoError(t, os.WriteFile(path, []byte("<p>Be <em>nice</em></p>"), 0600))

	var buf bytes.Buffer
	opts := &convertOptions{out: &buf}

	require.NoError(t, runConvert(opts, &config.Config{ColorChar: "$"}, path))
	assert.Equal(t, "Be $onice\n", buf.String())
}

func TestRunConvert_Render(t *testing.T) {
	var buf bytes.Buffer
	opts := &convertOptions{
		GlobalOptions: cmdutil.GlobalOptions{Output: "plain", NoColor: true},
		render:        true,
		stdin:         strings.NewReader("Visit [the site](https://example.com)"),
		out:           &buf,
	}

	require.NoError(t, runConvert(opts, &config.Config{}, "-"))
	assert.Equal(t, "Visit the site\n", buf.String())
}

func TestRunConvert_MissingFile(t *testing.T) {
	opts := &convertOptions{out: &bytes.Buffer{}}

	err := runConvert(opts, &config.Config{}, filepath.Join(t.TempDir(), "none.md"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}
