// lookahead.go decides whether a '[' starts a complete event group.
package mcml

import "unicode/utf8"

// lookahead caches the result of the last group match. Every '[' scanned as
// text before the same closing ']' reaches that bracket with the same escape
// state, so the scan past it is shared and the parse stays linear.
type lookahead struct {
	valid   bool
	closeAt int  // offset of the first unescaped ']' (len(input) if none)
	bodyOK  bool // ']' is followed by a complete "(...)" body
}

// groupAhead reports whether the '[' at open begins a group with non-empty
// display text, a closing ']' directly followed by '(', and a body that
// reaches an unquoted ')'.
func (s *scanner) groupAhead(open int) bool {
	if !s.look.valid || open >= s.look.closeAt {
		closeAt := s.findClose(open)
		s.look = lookahead{
			valid:   true,
			closeAt: closeAt,
			bodyOK:  closeAt < len(s.input) && s.bodyCloses(closeAt),
		}
	}
	if s.look.closeAt >= len(s.input) {
		return false
	}
	return s.look.closeAt-open > 1 && s.look.bodyOK
}

// findClose returns the offset of the first ']' after open that the scanner
// would read as the end of display text.
func (s *scanner) findClose(open int) int {
	cursor := s.cursor
	pre := prefixNone
	for i := open + 1; i < len(s.input); {
		if sp, ok := spanAt(s.protected, &cursor, i); ok {
			pre = prefixNone
			i = sp.End
			continue
		}
		r, size := utf8.DecodeRuneInString(s.input[i:])
		switch {
		case pre != prefixNone:
			pre = prefixNone
		case r == '\\':
			pre = prefixEscape
		case s.isColorChar(r):
			pre = prefixColor
		case r == ']':
			return i
		}
		i += size
	}
	return len(s.input)
}

// bodyCloses reports whether the ']' at closeAt is followed by '(' and a
// body that ends in an unquoted ')'.
func (s *scanner) bodyCloses(closeAt int) bool {
	cursor := s.cursor
	i := closeAt + 1
	if i >= len(s.input) || s.input[i] != '(' {
		return false
	}
	if _, ok := spanAt(s.protected, &cursor, i); ok {
		return false
	}

	quoted := false
	escaped := false
	for i++; i < len(s.input); {
		if sp, ok := spanAt(s.protected, &cursor, i); ok {
			escaped = false
			i = sp.End
			continue
		}
		r, size := utf8.DecodeRuneInString(s.input[i:])
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case r == '"':
			quoted = !quoted
		case r == ')' && !quoted:
			return true
		}
		i += size
	}
	return false
}
