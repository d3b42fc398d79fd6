package mcml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name          string
		raw           string
		replacements  map[string]any
		wantText      string
		wantProtected []Span
	}{
		{
			name:     "no replacements",
			raw:      "Hello {1}",
			wantText: "Hello {1}",
		},
		{
			name:          "single value",
			raw:           "Hello {1}!",
			replacements:  map[string]any{"{1}": "Steve"},
			wantText:      "Hello Steve!",
			wantProtected: []Span{{Start: 6, End: 11}},
		},
		{
			name:          "value is not expanded again",
			raw:           "Hello {word1}",
			replacements:  map[string]any{"{word1}": "WORLD {word2}", "{word2}": "no"},
			wantText:      "Hello WORLD {word2}",
			wantProtected: []Span{{Start: 6, End: 19}},
		},
		{
			name:          "repeated key shifts later offsets",
			raw:           "{a}-{bb}-{a}",
			replacements:  map[string]any{"{a}": "xyz", "{bb}": ""},
			wantText:      "xyz--xyz",
			wantProtected: []Span{{Start: 0, End: 3}, {Start: 5, End: 8}},
		},
		{
			name:          "nil value",
			raw:           "v={1}",
			replacements:  map[string]any{"{1}": nil},
			wantText:      "v=null",
			wantProtected: []Span{{Start: 2, End: 6}},
		},
		{
			name:          "missing key stays literal",
			raw:           "{1} {2}",
			replacements:  map[string]any{"{1}": 7},
			wantText:      "7 {2}",
			wantProtected: []Span{{Start: 0, End: 1}},
		},
		{
			name:          "overlapping keys keep the first occurrence",
			raw:           "abc",
			replacements:  map[string]any{"ab": "X", "bc": "Y"},
			wantText:      "Xc",
			wantProtected: []Span{{Start: 0, End: 1}},
		},
		{
			name:          "longer key wins a tie",
			raw:           "ab",
			replacements:  map[string]any{"a": "1", "ab": "2"},
			wantText:      "2",
			wantProtected: []Span{{Start: 0, End: 1}},
		},
		{
			name:         "empty key is ignored",
			raw:          "abc",
			replacements: map[string]any{"": "X"},
			wantText:     "abc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.raw, tt.replacements, NewRegistry())
			assert.Equal(t, tt.wantText, got.Text)
			assert.Equal(t, tt.wantProtected, got.Protected)
		})
	}
}

func TestOrderedKeys(t *testing.T) {
	assert.Equal(t, []string{"{1}", "{2}", "{3}"}, OrderedKeys(1, 3))
	assert.Equal(t, []string{"{0}"}, OrderedKeys(0, 1))
	assert.Empty(t, OrderedKeys(1, 0))
}

func TestParse_InjectionSafety(t *testing.T) {
	p := New()

	t.Run("group syntax in value", func(t *testing.T) {
		runs := p.Parse("Hi {X}", map[string]any{"{X}": `[Click](!"/say hi")`})
		require.Len(t, runs, 1)
		assert.Equal(t, `Hi [Click](!"/say hi")`, runs[0].Text)
		assert.Nil(t, runs[0].Click)
	})

	t.Run("color codes in value", func(t *testing.T) {
		runs := p.ParseValues("&aName: {1}", "&c&lEvil")
		assert.Equal(t, []StyleRun{{Text: "Name: &c&lEvil", Style: Style{Color: Green}}}, runs)
	})

	t.Run("escape before value", func(t *testing.T) {
		runs := p.ParseValues(`\{1}`, "&ax")
		assert.Equal(t, []StyleRun{{Text: "&ax"}}, runs)
	})

	t.Run("color trigger before value", func(t *testing.T) {
		runs := p.ParseValues("&{1}x", "a")
		assert.Equal(t, []StyleRun{{Text: "&ax"}}, runs)
	})

	t.Run("brackets in display value", func(t *testing.T) {
		runs := p.ParseValues(`[{1}]("tip")`, "](x")
		assert.Equal(t, []StyleRun{{Text: "](x", Hover: textHover(StyleRun{Text: "tip"})}}, runs)
	})

	t.Run("quotes in click value", func(t *testing.T) {
		runs := p.ParseValues(`[msg](?"/msg {1} ")`, `"Bob" [x]`)
		require.Len(t, runs, 1)
		require.NotNil(t, runs[0].Click)
		assert.Equal(t, `/msg "Bob" [x] `, runs[0].Click.Value)
	})

	t.Run("codes in hover value", func(t *testing.T) {
		runs := p.ParseValues(`[x]("&a{1}")`, "&cred?")
		require.Len(t, runs, 1)
		require.NotNil(t, runs[0].Hover)
		assert.Equal(t, []StyleRun{{Text: "&cred?", Style: Style{Color: Green}}}, runs[0].Hover.Runs)
	})
}

func TestParseValues_Offset(t *testing.T) {
	assert.Equal(t, "a and 2", PlainText(New().ParseValues("{1} and {2}", "a", 2)))
	assert.Equal(t, "a and {2}", PlainText(New(WithPlaceholderOffset(0)).ParseValues("{0} and {2}", "a", 2)))
}
