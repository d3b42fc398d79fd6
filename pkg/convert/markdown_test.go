package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/mcml-cli/pkg/mcml"
)

func TestFromMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "italic",
			input:    "Hello *world*",
			expected: "Hello &oworld",
		},
		{
			name:     "bold and strikethrough",
			input:    "**bold** and ~~gone~~",
			expected: "&lbold&r and &mgone",
		},
		{
			name:     "heading then paragraph",
			input:    "# Title\n\nBody",
			expected: "&6&lTitle&r\nBody",
		},
		{
			name:     "code span",
			input:    "Use `go test` now",
			expected: "Use &7go test&r now",
		},
		{
			name:     "link",
			input:    "[site](https://example.com)",
			expected: `[&b&nsite](>"https://example.com" T"https://example.com")`,
		},
		{
			name:     "link with title",
			input:    `[site](https://example.com "Docs")`,
			expected: `[&b&nsite](>"https://example.com" T"Docs")`,
		},
		{
			name:     "bullet list",
			input:    "- one\n- two",
			expected: "&8- &rone\n&8- &rtwo",
		},
		{
			name:     "ordered list",
			input:    "1. a\n2. b",
			expected: "&81. &ra\n&82. &rb",
		},
		{
			name:     "markup characters are escaped",
			input:    "a & [b]",
			expected: `a \& \[b\]`,
		},
		{
			name:     "soft line break",
			input:    "line one\nline two",
			expected: "line one line two",
		},
		{
			name:     "fenced code block",
			input:    "```\nx := 1\n```",
			expected: "&7x := 1",
		},
		{
			name:     "blockquote",
			input:    "> quoted",
			expected: "&8| &rquoted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FromMarkdown([]byte(tt.input)))
		})
	}
}

func TestFromMarkdown_ParsesBack(t *testing.T) {
	p := mcml.New()
	out := FromMarkdown([]byte("Read **the** [docs](https://example.com/docs) & enjoy"))
	runs := p.Parse(out, nil)

	assert.Equal(t, "Read the docs & enjoy", mcml.PlainText(runs))

	var link *mcml.StyleRun
	for i := range runs {
		if runs[i].Click != nil {
			link = &runs[i]
		}
	}
	require.NotNil(t, link)
	assert.Equal(t, "docs", link.Text)
	assert.Equal(t, mcml.OpenURL, link.Click.Kind)
	assert.Equal(t, "https://example.com/docs", link.Click.Value)
}

func TestFromMarkdownWithOptions(t *testing.T) {
	opts := Options{ColorChar: '$', CodeColor: mcml.Green}
	assert.Equal(t, "$aUS\\$", FromMarkdownWithOptions([]byte("`US$`"), opts))
}

func TestMarkdownRuns_Autolink(t *testing.T) {
	runs := MarkdownRuns([]byte("see https://example.com"), Options{})
	require.Len(t, runs, 2)
	assert.Equal(t, "see ", runs[0].Text)
	assert.Equal(t, "https://example.com", runs[1].Text)
	require.NotNil(t, runs[1].Click)
	assert.Equal(t, "https://example.com", runs[1].Click.Value)
	assert.Nil(t, runs[1].Hover)
}
