package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromHTML(t *testing.T) {
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
			name:     "basic paragraph",
			input:    "<p>Hello world</p>",
			expected: "Hello world",
		},
		{
			name:     "bold text",
			input:    "<p>This is <strong>bold</strong></p>",
			expected: "This is &lbold",
		},
		{
			name:     "italic text",
			input:    "<p>This is <em>italic</em></p>",
			expected: "This is &oitalic",
		},
		{
			name:     "multiple paragraphs",
			input:    "<p>First.</p><p>Second.</p>",
			expected: "First.\nSecond.",
		},
		{
			name:     "link",
			input:    `<a href="https://example.com">site</a>`,
			expected: `[&b&nsite](>"https://example.com" T"https://example.com")`,
		},
		{
			name:     "unordered list",
			input:    "<ul><li>Item 1</li><li>Item 2</li></ul>",
			expected: "&8- &rItem 1\n&8- &rItem 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := FromHTML(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestToMarkdown(t *testing.T) {
	md, err := ToMarkdown("<h2>Rules</h2>")
	require.NoError(t, err)
	assert.Equal(t, "## Rules", md)

	md, err = ToMarkdown("   ")
	require.NoError(t, err)
	assert.Empty(t, md)
}
