package mcml

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkup(t *testing.T) {
	tests := []struct {
		name string
		runs []StyleRun
		want string
	}{
		{
			name: "plain",
			runs: []StyleRun{{Text: "Hello"}},
			want: "Hello",
		},
		{
			name: "styles",
			runs: []StyleRun{
				{Text: "Hi ", Style: Style{Color: Green}},
				{Text: "there", Style: Style{Color: Green, Bold: True}},
			},
			want: "&aHi &a&lthere",
		},
		{
			name: "literal markup is escaped",
			runs: []StyleRun{{Text: `[x] & \`}},
			want: `\[x\] \& \\`,
		},
		{
			name: "group with click and hover",
			runs: []StyleRun{
				{Text: "Go ", Style: Style{Color: Red}},
				{
					Text:  "home",
					Style: Style{Color: Red},
					Click: &ClickAction{Kind: RunCommand, Value: "/spawn"},
					Hover: &HoverAction{Kind: ShowText, Runs: []StyleRun{{Text: "Teleport", Style: Style{Color: Gold}}}},
				},
			},
			want: `&cGo [home](!"/spawn" T"&6Teleport")`,
		},
		{
			name: "quotes in payload",
			runs: []StyleRun{{Text: "x", Click: &ClickAction{Kind: SuggestCommand, Value: `say "hi"`}}},
			want: `[x](?"say \"hi\"")`,
		},
		{
			name: "same style runs stay split",
			runs: []StyleRun{{Text: "A"}, {Text: "B"}},
			want: "A&rB",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Markup(tt.runs, '&'))
		})
	}
}

func TestMarkup_RoundTrip(t *testing.T) {
	inputs := []string{
		"Hello &aWorld &lthis &b&a&lis &rsupposed to be &4complicate&9d",
		`&aHello [&lworld](!"/spawn" T"&cGo &lhome")`,
		`&l[x](>"https://example.com")&ay`,
		`[one](!"/a")[two](!"/a") after`,
		`[a&bb](/"notes.txt" I"{\"id\":\"stone\"}")`,
		`[say](?"/msg \"Steve\" hi" "&7quoted \"hover\"")`,
		`A&rB &lC&lD`,
		`100\& \[ok\] \\ §`,
		`&k&l&m&n&oX&rY`,
	}

	p := New()
	for _, in := range inputs {
		runs := p.Parse(in, nil)
		assert.Equal(t, runs, p.Parse(Markup(runs, '&'), nil), in)
	}
}

func TestMarkup_CustomChar(t *testing.T) {
	p := New(WithColorChar('$'))
	runs := p.Parse("$aUS$$5 & more", nil)

	out := Markup(runs, '$')
	assert.Equal(t, runs, p.Parse(out, nil))
	assert.Contains(t, out, "&")
}
