// markup.go encodes runs back into markup source.
package mcml

import "strings"

// Markup encodes runs as markup that parses back into the same runs.
// Consecutive runs sharing the same actions are written as one event group.
// Action payloads cannot hold a backslash directly before a quote or at
// the end of the value; the markup has no way to write one.
func Markup(runs []StyleRun, char rune) string {
	var sb strings.Builder
	w := markupWriter{sb: &sb, char: char}
	for i := 0; i < len(runs); {
		run := runs[i]
		if run.Click == nil && run.Hover == nil {
			w.text(run)
			i++
			continue
		}

		// A group opens with the surrounding style and closes unstyled.
		sb.WriteByte('[')
		w.started = false
		j := i
		for ; j < len(runs) && sameActions(run, runs[j]); j++ {
			w.text(runs[j])
		}
		sb.WriteString("](")
		writeClauses(&sb, char, run.Click, run.Hover)
		sb.WriteByte(')')
		w.prev = Style{}
		w.started = false
		i = j
	}
	return sb.String()
}

// markupWriter tracks the style in effect so codes are only written when
// the next run needs them.
type markupWriter struct {
	sb      *strings.Builder
	char    rune
	prev    Style
	started bool
}

func (w *markupWriter) text(run StyleRun) {
	style := normalize(run.Style)
	switch {
	case style != w.prev:
		writeStyle(w.sb, w.char, style, w.prev)
	case w.started && style.IsZero():
		// same style as the previous run; force a split
		w.sb.WriteRune(w.char)
		w.sb.WriteByte(ResetCode)
	case w.started:
		writeStyle(w.sb, w.char, style, Style{})
	}
	w.sb.WriteString(Escape(run.Text, w.char))
	w.prev = style
	w.started = true
}

func writeClauses(sb *strings.Builder, char rune, click *ClickAction, hover *HoverAction) {
	if click != nil {
		sb.WriteRune(click.Kind.Trigger())
		writeQuoted(sb, click.Value)
	}
	if hover == nil {
		return
	}
	if click != nil {
		sb.WriteByte(' ')
	}
	sb.WriteRune(hover.Kind.Trigger())
	if hover.Kind != ShowText {
		writeQuoted(sb, hover.Text())
		return
	}

	// Show-text payloads are parsed for codes and escapes.
	var payload strings.Builder
	w := markupWriter{sb: &payload, char: char}
	for _, r := range hover.Runs {
		w.text(r)
	}
	writeQuoted(sb, payload.String())
}

func writeQuoted(sb *strings.Builder, s string) {
	sb.WriteByte('"')
	sb.WriteString(strings.ReplaceAll(s, `"`, `\"`))
	sb.WriteByte('"')
}

func sameActions(a, b StyleRun) bool {
	return sameClick(a.Click, b.Click) && sameHover(a.Hover, b.Hover)
}

func sameClick(a, b *ClickAction) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func sameHover(a, b *HoverAction) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a == b {
		return true
	}
	if a.Kind != b.Kind || len(a.Runs) != len(b.Runs) {
		return false
	}
	for i := range a.Runs {
		if a.Runs[i].Text != b.Runs[i].Text || normalize(a.Runs[i].Style) != normalize(b.Runs[i].Style) {
			return false
		}
	}
	return true
}
