package view

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/mcml-cli/pkg/mcml"
)

func parse(t *testing.T, markup string) []mcml.StyleRun {
	t.Helper()
	return mcml.New().Parse(markup, nil)
}

func TestRenderRuns(t *testing.T) {
	runs := parse(t, `&aHello [&lworld](!"/spawn" "Go home")`)

	tests := []struct {
		name   string
		format Format
		check  func(t *testing.T, out string)
	}{
		{
			name:   "plain",
			format: FormatPlain,
			check: func(t *testing.T, out string) {
				assert.Equal(t, "Hello world\n", out)
			},
		},
		{
			name:   "legacy",
			format: FormatLegacy,
			check: func(t *testing.T, out string) {
				assert.Equal(t, "&aHello &a&lworld\n", out)
			},
		},
		{
			name:   "json",
			format: FormatJSON,
			check: func(t *testing.T, out string) {
				var root mcml.Component
				require.NoError(t, json.Unmarshal([]byte(out), &root))
				require.Len(t, root.Extra, 2)
				assert.Equal(t, "green", root.Extra[0].Color)
				require.NotNil(t, root.Extra[1].ClickEvent)
				assert.Equal(t, "/spawn", root.Extra[1].ClickEvent.Value)
			},
		},
		{
			name:   "table",
			format: FormatTable,
			check: func(t *testing.T, out string) {
				assert.Contains(t, out, "TEXT")
				assert.Contains(t, out, `"world"`)
				assert.Contains(t, out, `run_command "/spawn"`)
				assert.Contains(t, out, `show_text "Go home"`)
			},
		},
		{
			name:   "ansi without color",
			format: FormatANSI,
			check: func(t *testing.T, out string) {
				assert.Equal(t, "Hello world\n", out)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			r := NewRenderer(tt.format, true)
			r.SetWriter(&buf)

			require.NoError(t, r.RenderRuns(runs, '&'))
			tt.check(t, buf.String())
		})
	}
}

func TestRenderRuns_ANSIColors(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(FormatANSI, false)
	r.SetWriter(&buf)
	r.SetColorProfile(termenv.TrueColor)

	require.NoError(t, r.RenderRuns(parse(t, "&aHi"), '&'))

	out := buf.String()
	assert.Contains(t, out, "Hi")
	assert.Contains(t, out, "38;2;85;255;85")
}

func TestRunRows(t *testing.T) {
	rows := RunRows(parse(t, `plain [x](!"/a" "tip")`))
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"1", `"plain "`, "-", "-", "-", "-"}, rows[0])
	assert.Equal(t, []string{"2", `"x"`, "-", "-", `run_command "/a"`, `show_text "tip"`}, rows[1])

	rows = RunRows(parse(t, "&c&l&oHot"))
	require.Len(t, rows, 1)
	assert.Equal(t, "red", rows[0][2])
	assert.Equal(t, "bold,italic", rows[0][3])
}

func TestIRC(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "hello", "hello"},
		{"color", "&aHi", "\x039Hi"},
		{"color before digit", "&a5", "\x03095"},
		{"color and bold", "&c&lX", "\x034\x02X"},
		{"reset between runs", "&aA&rB", "\x039A\x0fB"},
		{"dollar is literal", "&aUS$", "\x039US$"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IRC(parse(t, tt.input)))
		})
	}
}

func TestDescribe(t *testing.T) {
	assert.Empty(t, DescribeClick(nil))
	assert.Empty(t, DescribeHover(nil))

	long := strings.Repeat("a", 60)
	hover := &mcml.HoverAction{Kind: mcml.ShowText, Runs: []mcml.StyleRun{{Text: long}}}
	assert.Equal(t, `show_text "`+strings.Repeat("a", 37)+`..."`, DescribeHover(hover))
}
