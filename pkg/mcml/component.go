// component.go encodes style runs as chat component JSON.
package mcml

import "encoding/json"

// Component is one chat text component as understood by the client's
// /tellraw command and the chat packet.
type Component struct {
	Text          string      `json:"text"`
	Color         string      `json:"color,omitempty"`
	Bold          *bool       `json:"bold,omitempty"`
	Italic        *bool       `json:"italic,omitempty"`
	Underlined    *bool       `json:"underlined,omitempty"`
	Strikethrough *bool       `json:"strikethrough,omitempty"`
	Obfuscated    *bool       `json:"obfuscated,omitempty"`
	ClickEvent    *ClickEvent `json:"clickEvent,omitempty"`
	HoverEvent    *HoverEvent `json:"hoverEvent,omitempty"`
	Extra         []Component `json:"extra,omitempty"`
}

// ClickEvent is the JSON form of a ClickAction.
type ClickEvent struct {
	Action string `json:"action"`
	Value  string `json:"value"`
}

// HoverEvent is the JSON form of a HoverAction.
type HoverEvent struct {
	Action string      `json:"action"`
	Value  []Component `json:"value"`
}

func flag(t Tristate) *bool {
	if !t.IsSet() {
		return nil
	}
	b := t.Bool()
	return &b
}

// ComponentOf converts a single run.
func ComponentOf(r StyleRun) Component {
	c := Component{
		Text:          r.Text,
		Color:         r.Color.String(),
		Bold:          flag(r.Bold),
		Italic:        flag(r.Italic),
		Underlined:    flag(r.Underlined),
		Strikethrough: flag(r.Strikethrough),
		Obfuscated:    flag(r.Obfuscated),
	}
	if r.Click != nil {
		c.ClickEvent = &ClickEvent{Action: r.Click.Kind.String(), Value: r.Click.Value}
	}
	if r.Hover != nil {
		c.HoverEvent = &HoverEvent{Action: r.Hover.Kind.String(), Value: Components(r.Hover.Runs)}
	}
	return c
}

// Components converts runs one to one.
func Components(runs []StyleRun) []Component {
	out := make([]Component, 0, len(runs))
	for _, r := range runs {
		out = append(out, ComponentOf(r))
	}
	return out
}

// Root wraps runs under an empty parent so siblings do not inherit each
// other's style.
func Root(runs []StyleRun) Component {
	return Component{Text: "", Extra: Components(runs)}
}

// MarshalJSON encodes runs as a single root component.
func MarshalJSON(runs []StyleRun) ([]byte, error) {
	return json.Marshal(Root(runs))
}
