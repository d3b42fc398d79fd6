// runs.go renders parsed style runs in every output format.
package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ergochat/irc-go/ircfmt"

	"github.com/open-cli-collective/mcml-cli/pkg/mcml"
)

// RunHeaders are the columns of the run table.
var RunHeaders = []string{"#", "TEXT", "COLOR", "FORMAT", "CLICK", "HOVER"}

// RenderRuns writes runs in the renderer's format.
func (r *Renderer) RenderRuns(runs []mcml.StyleRun, colorChar rune) error {
	switch r.format {
	case FormatJSON:
		return r.RenderJSON(mcml.Root(runs))
	case FormatPlain:
		r.RenderText(mcml.PlainText(runs))
	case FormatLegacy:
		r.RenderText(mcml.Legacy(runs, colorChar))
	case FormatIRC:
		r.RenderText(IRC(runs))
	case FormatTable:
		r.RenderTable(RunHeaders, RunRows(runs))
	default:
		r.RenderText(StyleRuns(r.styles, runs))
	}
	return nil
}

// RunRows describes each run as a table row.
func RunRows(runs []mcml.StyleRun) [][]string {
	rows := make([][]string, 0, len(runs))
	for i, run := range runs {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			strconv.Quote(run.Text),
			orDash(run.Color.String()),
			orDash(strings.Join(run.Formats(), ",")),
			orDash(DescribeClick(run.Click)),
			orDash(DescribeHover(run.Hover)),
		})
	}
	return rows
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// DescribeClick summarizes a click action as "kind value".
func DescribeClick(c *mcml.ClickAction) string {
	if c == nil {
		return ""
	}
	return fmt.Sprintf("%s %s", c.Kind, strconv.Quote(c.Value))
}

// DescribeHover summarizes a hover action as "kind text".
func DescribeHover(h *mcml.HoverAction) string {
	if h == nil {
		return ""
	}
	return fmt.Sprintf("%s %s", h.Kind, strconv.Quote(Truncate(h.Text(), 40)))
}

// RunStyle builds the terminal style for a run. Obfuscated text has no
// terminal equivalent and is shown blinking.
func RunStyle(lr *lipgloss.Renderer, run mcml.StyleRun) lipgloss.Style {
	st := lr.NewStyle()
	if hex := run.Color.Hex(); hex != "" {
		st = st.Foreground(lipgloss.Color(hex))
	}
	if run.Bold.Bool() {
		st = st.Bold(true)
	}
	if run.Italic.Bool() {
		st = st.Italic(true)
	}
	if run.Underlined.Bool() || run.Click != nil {
		st = st.Underline(true)
	}
	if run.Strikethrough.Bool() {
		st = st.Strikethrough(true)
	}
	if run.Obfuscated.Bool() {
		st = st.Blink(true)
	}
	return st
}

// StyleRuns renders runs with terminal colors. Clickable runs are underlined.
func StyleRuns(lr *lipgloss.Renderer, runs []mcml.StyleRun) string {
	var sb strings.Builder
	for _, run := range runs {
		sb.WriteString(RunStyle(lr, run).Render(run.Text))
	}
	return sb.String()
}

// ircColors maps chat colors to the nearest IRC color name.
var ircColors = map[mcml.Color]string{
	mcml.Black:       "black",
	mcml.DarkBlue:    "blue",
	mcml.DarkGreen:   "green",
	mcml.DarkAqua:    "cyan",
	mcml.DarkRed:     "brown",
	mcml.DarkPurple:  "magenta",
	mcml.Gold:        "orange",
	mcml.Gray:        "light grey",
	mcml.DarkGray:    "grey",
	mcml.Blue:        "light blue",
	mcml.Green:       "light green",
	mcml.Aqua:        "light cyan",
	mcml.Red:         "red",
	mcml.LightPurple: "pink",
	mcml.Yellow:      "yellow",
	mcml.White:       "white",
}

// IRC renders runs with IRC formatting control codes. Actions are dropped.
func IRC(runs []mcml.StyleRun) string {
	var sb strings.Builder
	prev := mcml.Style{}
	for _, run := range runs {
		style := run.Style
		if style != prev {
			if !prev.IsZero() {
				sb.WriteString("$r")
			}
			if name, ok := ircColors[style.Color]; ok {
				sb.WriteString("$c[" + name + "]")
			}
			if style.Bold.Bool() {
				sb.WriteString("$b")
			}
			if style.Italic.Bool() {
				sb.WriteString("$i")
			}
			if style.Underlined.Bool() {
				sb.WriteString("$u")
			}
			if style.Strikethrough.Bool() {
				sb.WriteString("$s")
			}
			prev = style
		}
		sb.WriteString(ircfmt.Escape(run.Text))
	}
	return ircfmt.Unescape(sb.String())
}
