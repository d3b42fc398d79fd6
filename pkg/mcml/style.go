// style.go defines the styled run model produced by the parser.
package mcml

// Tristate is a formatting flag that may be left unset so the run inherits
// the flag from its surrounding context.
type Tristate int8

const (
	Unset Tristate = iota
	True
	False
)

// Bool reports whether the flag is explicitly set to true.
func (t Tristate) Bool() bool {
	return t == True
}

// IsSet reports whether the flag was set either way.
func (t Tristate) IsSet() bool {
	return t != Unset
}

func (t Tristate) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "unset"
	}
}

// Style is the color and format state of a run.
type Style struct {
	Color         Color
	Bold          Tristate
	Italic        Tristate
	Underlined    Tristate
	Strikethrough Tristate
	Obfuscated    Tristate
}

// IsZero reports whether no color or format is set.
func (s Style) IsZero() bool {
	return s == Style{}
}

// Formats returns the names of the format flags that are set to true,
// in alphabet order (k, l, m, n, o).
func (s Style) Formats() []string {
	var out []string
	if s.Obfuscated.Bool() {
		out = append(out, "obfuscated")
	}
	if s.Bold.Bool() {
		out = append(out, "bold")
	}
	if s.Strikethrough.Bool() {
		out = append(out, "strikethrough")
	}
	if s.Underlined.Bool() {
		out = append(out, "underlined")
	}
	if s.Italic.Bool() {
		out = append(out, "italic")
	}
	return out
}

// StyleRun is a contiguous span of text sharing one style and one set of actions.
type StyleRun struct {
	Text string
	Style
	Click *ClickAction
	Hover *HoverAction
}

// IsPlain reports whether the run carries no style and no actions.
func (r StyleRun) IsPlain() bool {
	return r.Style.IsZero() && r.Click == nil && r.Hover == nil
}
