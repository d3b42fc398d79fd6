// scanner.go implements the single-pass state machine that turns resolved
// markup into style runs.
package mcml

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// mode is where the scanner is relative to event group syntax.
type mode int8

const (
	modeText       mode = iota // outside any group
	modeGroupText              // display text between '[' and ']'
	modeGroupClose             // after the group's ']', before '('
	modeGroupBody              // between '(' and ')', outside quotes
	modeQuote                  // inside a quoted payload
)

// prefix is a one-character modifier armed by the previous character.
// At most one prefix is armed at a time.
type prefix int8

const (
	prefixNone   prefix = iota
	prefixEscape        // previous char was an unescaped backslash
	prefixColor         // previous char was a color trigger
)

// scanner holds all state for one parse call.
type scanner struct {
	input     string
	protected []Span
	cursor    int // first protected span that may still apply
	colorChar rune
	groups    bool // event groups are recognized

	mode       mode
	prefix     prefix
	prefixRune rune
	prefixPos  int

	out     []StyleRun
	staged  []StyleRun // display runs of the open group
	cur     StyleRun
	pending strings.Builder

	payload          strings.Builder
	payloadProtected []Span
	quotePos         int
	trigger          rune
	click            *ClickAction
	hover            *HoverAction

	look     lookahead
	warnings []Warning
}

func newScanner(in Resolved, colorChar rune, groups bool) *scanner {
	return &scanner{
		input:     in.Text,
		protected: in.Protected,
		colorChar: colorChar,
		groups:    groups,
	}
}

// scan consumes the whole input and returns the finished runs.
func (s *scanner) scan() []StyleRun {
	for i := 0; i < len(s.input); {
		if sp, ok := spanAt(s.protected, &s.cursor, i); ok {
			s.takeProtected(sp)
			i = sp.End
			continue
		}
		r, size := utf8.DecodeRuneInString(s.input[i:])
		s.step(i, r)
		i += size
	}
	s.finish()
	return s.out
}

// spanAt returns the protected span covering byte i. cursor only moves
// forward, so callers must query increasing offsets.
func spanAt(spans []Span, cursor *int, i int) (Span, bool) {
	for *cursor < len(spans) && spans[*cursor].End <= i {
		*cursor++
	}
	if *cursor < len(spans) && spans[*cursor].Start <= i {
		return spans[*cursor], true
	}
	return Span{}, false
}

func (s *scanner) warn(issue Issue, pos int, format string, args ...interface{}) {
	s.warnings = append(s.warnings, Warning{
		Issue:  issue,
		Pos:    pos,
		Detail: fmt.Sprintf(format, args...),
	})
}

func (s *scanner) isColorChar(r rune) bool {
	return r == s.colorChar || r == SectionSign
}

func (s *scanner) arm(p prefix, pos int, r rune) {
	s.prefix = p
	s.prefixPos = pos
	s.prefixRune = r
}

// step consumes one unprotected character.
func (s *scanner) step(pos int, r rune) {
	switch s.prefix {
	case prefixEscape:
		s.prefix = prefixNone
		s.escaped(r)
		return
	case prefixColor:
		s.prefix = prefixNone
		s.colorCode(pos, r)
		return
	}

	switch s.mode {
	case modeText:
		s.stepText(pos, r)
	case modeGroupText:
		s.stepGroupText(pos, r)
	case modeGroupClose:
		s.stepGroupClose(pos, r)
	case modeGroupBody:
		s.stepGroupBody(pos, r)
	case modeQuote:
		s.stepQuote(pos, r)
	}
}

// takeProtected appends substituted text verbatim wherever text is being
// collected. A pending prefix never applies to it.
func (s *scanner) takeProtected(sp Span) {
	text := s.input[sp.Start:sp.End]

	switch s.prefix {
	case prefixColor:
		s.warn(IssueDanglingColorChar, s.prefixPos, "color trigger %q before substituted text", s.prefixRune)
		s.literal(s.prefixRune)
	case prefixEscape:
		// the escape already makes the next character literal
	}
	s.prefix = prefixNone

	switch s.mode {
	case modeText, modeGroupText:
		s.pending.WriteString(text)
	case modeGroupClose:
		s.ungroupClose()
		s.pending.WriteString(text)
	case modeGroupBody:
		s.warn(IssueStrayBodyChar, sp.Start, "substituted text outside a quoted payload")
	case modeQuote:
		start := s.payload.Len()
		s.payload.WriteString(text)
		s.payloadProtected = append(s.payloadProtected, Span{Start: start, End: s.payload.Len()})
	}
}

// literal appends r to the buffer of the current mode.
func (s *scanner) literal(r rune) {
	switch s.mode {
	case modeQuote:
		s.payload.WriteRune(r)
	case modeGroupBody:
	default:
		s.pending.WriteRune(r)
	}
}

// escaped handles the character after a backslash.
func (s *scanner) escaped(r rune) {
	switch s.mode {
	case modeQuote:
		// Only escaped quotes are unescaped; anything else is kept for the
		// payload's consumer.
		if r != '"' {
			s.payload.WriteByte('\\')
		}
		s.payload.WriteRune(r)
	case modeGroupBody:
		s.warn(IssueStrayBodyChar, s.prefixPos, "escaped %q outside a quoted payload", r)
	default:
		s.pending.WriteRune(r)
	}
}

// colorCode handles the character after a color trigger.
func (s *scanner) colorCode(pos int, r rune) {
	c := lookupCode(r)
	switch c.kind {
	case codeColor:
		s.split(false)
		s.cur.Color = c.color
	case codeReset:
		s.split(false)
	case codeFormat:
		if s.pending.Len() > 0 {
			s.split(true)
		}
		c.format.set(&s.cur.Style)
	default:
		s.warn(IssueUnknownCode, s.prefixPos, "unknown code %q", r)
		s.pending.WriteRune(s.prefixRune)
		s.pending.WriteRune(r)
	}
}

func (s *scanner) stepText(pos int, r rune) {
	switch {
	case r == '\\':
		s.arm(prefixEscape, pos, r)
	case s.isColorChar(r):
		s.arm(prefixColor, pos, r)
	case r == '[' && s.groups:
		if s.groupAhead(pos) {
			s.openGroup()
			return
		}
		s.warn(IssueUnmatchedBracket, pos, "'[' does not start an event group")
		s.pending.WriteRune(r)
	default:
		s.pending.WriteRune(r)
	}
}

func (s *scanner) stepGroupText(pos int, r rune) {
	switch {
	case r == '\\':
		s.arm(prefixEscape, pos, r)
	case s.isColorChar(r):
		s.arm(prefixColor, pos, r)
	case r == ']':
		s.mode = modeGroupClose
	default:
		s.pending.WriteRune(r)
	}
}

func (s *scanner) stepGroupClose(pos int, r rune) {
	if r != '(' {
		s.ungroupClose()
		s.stepGroupText(pos, r)
		return
	}
	// The display text is final; the body only carries actions.
	s.cur.Text += s.pending.String()
	s.pending.Reset()
	s.trigger = 0
	s.mode = modeGroupBody
}

// ungroupClose recovers from a ']' not followed by '(' by keeping the
// bracket as display text. The lookahead rules this out for well-formed
// input.
func (s *scanner) ungroupClose() {
	s.pending.WriteByte(']')
	s.mode = modeGroupText
}

func (s *scanner) stepGroupBody(pos int, r rune) {
	switch {
	case r == ')':
		s.closeGroup()
	case r == '"':
		if s.trigger == 0 {
			s.trigger = ShowText.Trigger()
		}
		s.payload.Reset()
		s.payloadProtected = nil
		s.quotePos = pos
		s.mode = modeQuote
	case r == '\\':
		s.arm(prefixEscape, pos, r)
	case isTrigger(r):
		if s.trigger != 0 {
			s.warn(IssueDuplicateTrigger, pos, "trigger %q ignored, %q already selected", r, s.trigger)
			return
		}
		s.trigger = r
	case unicode.IsSpace(r):
	default:
		s.warn(IssueStrayBodyChar, pos, "unexpected %q in event group body", r)
	}
}

func (s *scanner) stepQuote(pos int, r rune) {
	switch r {
	case '\\':
		s.arm(prefixEscape, pos, r)
	case '"':
		s.closeQuote()
		s.mode = modeGroupBody
	default:
		s.payload.WriteRune(r)
	}
}

// closeQuote turns the finished payload into an action for the open group.
func (s *scanner) closeQuote() {
	payload := s.payload.String()
	protected := s.payloadProtected
	trigger := s.trigger
	s.payload.Reset()
	s.payloadProtected = nil
	s.trigger = 0

	if kind, ok := ClickKindForTrigger(trigger); ok {
		s.click = &ClickAction{Kind: kind, Value: payload}
		return
	}

	kind, _ := HoverKindForTrigger(trigger)
	if kind != ShowText {
		if payload == "" {
			s.warn(IssueEmptyHover, s.quotePos, "empty %s payload", kind)
			return
		}
		s.hover = &HoverAction{Kind: kind, Runs: []StyleRun{{Text: payload}}}
		return
	}

	// Show-text payloads get their own color-only parse.
	sub := newScanner(Resolved{Text: payload, Protected: protected}, s.colorChar, false)
	runs := sub.scan()
	for _, w := range sub.warnings {
		w.Pos = s.quotePos
		s.warnings = append(s.warnings, w)
	}
	if len(runs) == 0 {
		s.warn(IssueEmptyHover, s.quotePos, "hover text is empty")
		return
	}
	s.hover = &HoverAction{Kind: ShowText, Runs: runs}
}

// openGroup starts collecting display runs for an event group.
func (s *scanner) openGroup() {
	s.split(true)
	s.mode = modeGroupText
	s.staged = nil
	s.click = nil
	s.hover = nil
}

// closeGroup attaches the group's actions to every display run and commits
// them to the output.
func (s *scanner) closeGroup() {
	s.flush()
	for i := range s.staged {
		s.staged[i].Click = s.click
		s.staged[i].Hover = s.hover
	}
	s.out = append(s.out, s.staged...)

	s.mode = modeText
	s.staged = nil
	s.click = nil
	s.hover = nil
	s.cur = StyleRun{}
}

// split ends the current run. With carry the next run keeps the current
// color and formats; otherwise it starts unstyled.
func (s *scanner) split(carry bool) {
	s.flush()
	style := s.cur.Style
	s.cur = StyleRun{}
	if carry {
		s.cur.Style = style
	}
}

// flush folds pending text into the current run and emits it if it has text.
func (s *scanner) flush() {
	if s.pending.Len() > 0 {
		s.cur.Text += s.pending.String()
		s.pending.Reset()
	}
	if s.cur.Text == "" {
		return
	}
	if s.mode == modeText {
		s.out = append(s.out, s.cur)
	} else {
		s.staged = append(s.staged, s.cur)
	}
	s.cur.Text = ""
}

// finish handles end of input.
func (s *scanner) finish() {
	switch s.prefix {
	case prefixEscape:
		s.warn(IssueDanglingEscape, s.prefixPos, "backslash at end of input")
		s.pending.WriteByte('\\')
	case prefixColor:
		s.warn(IssueDanglingColorChar, s.prefixPos, "color trigger %q at end of input", s.prefixRune)
		s.pending.WriteRune(s.prefixRune)
	}
	s.prefix = prefixNone

	if s.mode != modeText {
		// Unreachable for input accepted by the lookahead: emit what was
		// collected as plain text.
		s.flush()
		s.out = append(s.out, s.staged...)
		s.staged = nil
		s.mode = modeText
		return
	}
	s.flush()
}
