// warning.go defines the recovered ambiguities reported by the parser.
package mcml

import "fmt"

// Issue identifies a kind of markup the parser had to recover from. Parsing
// never fails; every issue below is resolved by one fixed rule.
type Issue int

const (
	// IssueUnknownCode: a color trigger followed by a character outside the
	// alphabet. Both characters are kept as literal text.
	IssueUnknownCode Issue = iota + 1
	// IssueDanglingEscape: a backslash at end of input. Kept as literal text.
	IssueDanglingEscape
	// IssueDanglingColorChar: a color trigger at end of input, or directly
	// before substituted text. Kept as literal text.
	IssueDanglingColorChar
	// IssueUnmatchedBracket: a '[' that does not start a complete event
	// group. The bracket and everything after it are read as ordinary text.
	IssueUnmatchedBracket
	// IssueStrayBodyChar: a character between a group's parentheses that is
	// neither a trigger nor part of a quoted payload. Discarded.
	IssueStrayBodyChar
	// IssueDuplicateTrigger: a second trigger before a payload's opening
	// quote. The first one is used.
	IssueDuplicateTrigger
	// IssueEmptyHover: a hover payload with no text. No hover is attached.
	IssueEmptyHover
)

func (i Issue) String() string {
	switch i {
	case IssueUnknownCode:
		return "unknown-code"
	case IssueDanglingEscape:
		return "dangling-escape"
	case IssueDanglingColorChar:
		return "dangling-color-char"
	case IssueUnmatchedBracket:
		return "unmatched-bracket"
	case IssueStrayBodyChar:
		return "stray-body-char"
	case IssueDuplicateTrigger:
		return "duplicate-trigger"
	case IssueEmptyHover:
		return "empty-hover"
	}
	return fmt.Sprintf("issue(%d)", int(i))
}

// Warning records one recovered ambiguity.
type Warning struct {
	Issue  Issue
	Pos    int // byte offset in the resolved input
	Detail string
}

func (w Warning) String() string {
	return fmt.Sprintf("%d: %s: %s", w.Pos, w.Issue, w.Detail)
}
