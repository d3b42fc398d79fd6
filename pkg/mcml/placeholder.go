// placeholder.go substitutes placeholder keys and records which bytes came
// from substituted values.
package mcml

import (
	"sort"
	"strconv"
	"strings"
)

// Span is a half-open byte range [Start, End).
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Contains reports whether byte offset i lies inside the span.
func (s Span) Contains(i int) bool {
	return i >= s.Start && i < s.End
}

// Resolved is the input after placeholder substitution. Protected lists the
// ranges produced by substitution, sorted and disjoint; the scanner never
// interprets markup inside them.
type Resolved struct {
	Text      string
	Protected []Span
}

type occurrence struct {
	start int
	key   string
}

// Resolve replaces every occurrence of every key in raw with the text of its
// value. Occurrences are located in raw itself and applied left to right, so
// placeholder-like text inside a value is never expanded again. When two
// occurrences overlap, the one starting first (or the longer key, on a tie) wins
// and the other stays literal.
func Resolve(raw string, replacements map[string]any, reg *Registry) Resolved {
	if len(replacements) == 0 || raw == "" {
		return Resolved{Text: raw}
	}

	keys := make([]string, 0, len(replacements))
	for k := range replacements {
		if k != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	// Collect occurrences of every key in the original string
	var found []occurrence
	for _, k := range keys {
		for i := 0; i <= len(raw)-len(k); {
			j := strings.Index(raw[i:], k)
			if j < 0 {
				break
			}
			found = append(found, occurrence{start: i + j, key: k})
			i += j + len(k)
		}
	}
	if len(found) == 0 {
		return Resolved{Text: raw}
	}

	sort.SliceStable(found, func(a, b int) bool {
		if found[a].start != found[b].start {
			return found[a].start < found[b].start
		}
		return len(found[a].key) > len(found[b].key)
	})

	texts := make(map[string]string, len(keys))
	var sb strings.Builder
	var spans []Span
	last := 0
	for _, o := range found {
		if o.start < last {
			continue
		}
		text, ok := texts[o.key]
		if !ok {
			text = reg.Text(replacements[o.key])
			texts[o.key] = text
		}

		sb.WriteString(raw[last:o.start])
		start := sb.Len()
		sb.WriteString(text)
		if len(text) > 0 {
			spans = append(spans, Span{Start: start, End: sb.Len()})
		}
		last = o.start + len(o.key)
	}
	sb.WriteString(raw[last:])

	return Resolved{Text: sb.String(), Protected: spans}
}

// OrderedKeys returns the placeholder keys {offset} through {offset+n-1}.
func OrderedKeys(offset, n int) []string {
	keys := make([]string, n)
	for i := range keys {
		keys[i] = "{" + strconv.Itoa(offset+i) + "}"
	}
	return keys
}

// OrderedReplacements maps ordered values onto the keys from OrderedKeys.
func OrderedReplacements(offset int, values []any) map[string]any {
	keys := OrderedKeys(offset, len(values))
	m := make(map[string]any, len(values))
	for i, v := range values {
		m[keys[i]] = v
	}
	return m
}
