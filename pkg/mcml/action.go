// action.go defines the click and hover actions an event group attaches to its runs.
package mcml

import "strings"

// ClickKind is the action performed when a run is clicked.
type ClickKind int8

const (
	RunCommand ClickKind = iota + 1
	SuggestCommand
	OpenURL
	OpenFile
	ChangePage
)

// HoverKind is the preview shown when a run is hovered.
type HoverKind int8

const (
	ShowText HoverKind = iota + 1
	ShowAchievement
	ShowItem
	ShowEntity
)

var clickTriggers = map[rune]ClickKind{
	'!': RunCommand,
	'?': SuggestCommand,
	'>': OpenURL,
	'/': OpenFile,
	'#': ChangePage,
}

var hoverTriggers = map[rune]HoverKind{
	'T': ShowText,
	'A': ShowAchievement,
	'I': ShowItem,
	'E': ShowEntity,
}

// ClickKindForTrigger returns the click kind selected by a group body trigger.
func ClickKindForTrigger(r rune) (ClickKind, bool) {
	k, ok := clickTriggers[r]
	return k, ok
}

// HoverKindForTrigger returns the hover kind selected by a group body trigger.
func HoverKindForTrigger(r rune) (HoverKind, bool) {
	k, ok := hoverTriggers[r]
	return k, ok
}

// isTrigger reports whether r selects any click or hover kind.
func isTrigger(r rune) bool {
	if _, ok := clickTriggers[r]; ok {
		return true
	}
	_, ok := hoverTriggers[r]
	return ok
}

// Trigger returns the group body character that selects k.
func (k ClickKind) Trigger() rune {
	for r, kind := range clickTriggers {
		if kind == k {
			return r
		}
	}
	return 0
}

// String returns the chat JSON action name.
func (k ClickKind) String() string {
	switch k {
	case RunCommand:
		return "run_command"
	case SuggestCommand:
		return "suggest_command"
	case OpenURL:
		return "open_url"
	case OpenFile:
		return "open_file"
	case ChangePage:
		return "change_page"
	}
	return ""
}

// Trigger returns the group body character that selects k.
func (k HoverKind) Trigger() rune {
	for r, kind := range hoverTriggers {
		if kind == k {
			return r
		}
	}
	return 0
}

// String returns the chat JSON action name.
func (k HoverKind) String() string {
	switch k {
	case ShowText:
		return "show_text"
	case ShowAchievement:
		return "show_achievement"
	case ShowItem:
		return "show_item"
	case ShowEntity:
		return "show_entity"
	}
	return ""
}

// ClickAction is the click half of an event group.
type ClickAction struct {
	Kind  ClickKind
	Value string
}

// HoverAction is the hover half of an event group. Show-text hovers hold the
// parsed preview runs; the other kinds hold their literal payload as a single
// unstyled run.
type HoverAction struct {
	Kind HoverKind
	Runs []StyleRun
}

// Text returns the hover payload with all styling dropped.
func (h *HoverAction) Text() string {
	if h == nil {
		return ""
	}
	var sb strings.Builder
	for _, r := range h.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}
