// legacy.go renders runs back to plain or legacy-coded strings.
package mcml

import "strings"

// PlainText concatenates the text of all runs.
func PlainText(runs []StyleRun) string {
	var sb strings.Builder
	for _, r := range runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// Legacy renders runs as a legacy code string using char as the trigger.
// Actions are dropped and text is written unescaped, as clients expect it.
func Legacy(runs []StyleRun, char rune) string {
	var sb strings.Builder
	prev := Style{}
	for _, r := range runs {
		style := normalize(r.Style)
		if style != prev {
			writeStyle(&sb, char, style, prev)
			prev = style
		}
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// normalize folds explicit false flags into unset.
func normalize(s Style) Style {
	out := Style{Color: s.Color}
	for _, f := range []struct {
		src Tristate
		dst *Tristate
	}{
		{s.Bold, &out.Bold},
		{s.Italic, &out.Italic},
		{s.Underlined, &out.Underlined},
		{s.Strikethrough, &out.Strikethrough},
		{s.Obfuscated, &out.Obfuscated},
	} {
		if f.src.Bool() {
			*f.dst = True
		}
	}
	return out
}

func writeStyle(sb *strings.Builder, char rune, style, prev Style) {
	switch {
	case style.Color != ColorUnset:
		// a color code clears formats, which are written again below
		sb.WriteRune(char)
		sb.WriteByte(style.Color.Code())
	case !prev.IsZero():
		sb.WriteRune(char)
		sb.WriteByte(ResetCode)
	}
	for _, f := range []struct {
		on     Tristate
		format Format
	}{
		{style.Obfuscated, FormatObfuscated},
		{style.Bold, FormatBold},
		{style.Strikethrough, FormatStrikethrough},
		{style.Underlined, FormatUnderlined},
		{style.Italic, FormatItalic},
	} {
		if f.on.Bool() {
			sb.WriteRune(char)
			sb.WriteByte(formatCode(f.format))
		}
	}
}

// Escape makes s parse as literal text.
func Escape(s string, char rune) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\\', '[', ']', char, SectionSign:
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
