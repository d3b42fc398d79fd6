// alphabet.go maps legacy color/format code characters to styles.
package mcml

import "strings"

// Color is one of the sixteen legacy chat colors. The zero value means
// the color is unset and inherited.
type Color int8

const (
	ColorUnset Color = iota
	Black
	DarkBlue
	DarkGreen
	DarkAqua
	DarkRed
	DarkPurple
	Gold
	Gray
	DarkGray
	Blue
	Green
	Aqua
	Red
	LightPurple
	Yellow
	White
)

type colorInfo struct {
	code byte
	name string
	hex  string
}

var colorTable = [...]colorInfo{
	ColorUnset:  {0, "", ""},
	Black:       {'0', "black", "#000000"},
	DarkBlue:    {'1', "dark_blue", "#0000AA"},
	DarkGreen:   {'2', "dark_green", "#00AA00"},
	DarkAqua:    {'3', "dark_aqua", "#00AAAA"},
	DarkRed:     {'4', "dark_red", "#AA0000"},
	DarkPurple:  {'5', "dark_purple", "#AA00AA"},
	Gold:        {'6', "gold", "#FFAA00"},
	Gray:        {'7', "gray", "#AAAAAA"},
	DarkGray:    {'8', "dark_gray", "#555555"},
	Blue:        {'9', "blue", "#5555FF"},
	Green:       {'a', "green", "#55FF55"},
	Aqua:        {'b', "aqua", "#55FFFF"},
	Red:         {'c', "red", "#FF5555"},
	LightPurple: {'d', "light_purple", "#FF55FF"},
	Yellow:      {'e', "yellow", "#FFFF55"},
	White:       {'f', "white", "#FFFFFF"},
}

// String returns the chat JSON name of the color, or "" when unset.
func (c Color) String() string {
	if c < 0 || int(c) >= len(colorTable) {
		return ""
	}
	return colorTable[c].name
}

// Code returns the legacy code character, or 0 when unset.
func (c Color) Code() byte {
	if c < 0 || int(c) >= len(colorTable) {
		return 0
	}
	return colorTable[c].code
}

// Hex returns the RGB value the vanilla client renders the color with.
func (c Color) Hex() string {
	if c < 0 || int(c) >= len(colorTable) {
		return ""
	}
	return colorTable[c].hex
}

// ColorByName looks up a color by its chat JSON name.
func ColorByName(name string) (Color, bool) {
	name = strings.ToLower(name)
	for i := Black; int(i) < len(colorTable); i++ {
		if colorTable[i].name == name {
			return i, true
		}
	}
	return ColorUnset, false
}

// Format identifies one of the boolean format toggles.
type Format int8

const (
	FormatObfuscated Format = iota + 1
	FormatBold
	FormatStrikethrough
	FormatUnderlined
	FormatItalic
)

// codeKind classifies an alphabet character.
type codeKind int8

const (
	codeUnknown codeKind = iota
	codeColor
	codeFormat
	codeReset
)

// code is the decoded meaning of one alphabet character.
type code struct {
	kind   codeKind
	color  Color
	format Format
}

// ResetCode is the alphabet character that clears color and formats.
const ResetCode = 'r'

// DefaultColorChar is the color trigger used when none is configured.
const DefaultColorChar = '&'

// SectionSign is the native legacy trigger; it is always accepted.
const SectionSign = '§'

// lookupCode decodes the character following a color trigger.
// Lookup is case-insensitive.
func lookupCode(r rune) code {
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	switch {
	case r >= '0' && r <= '9':
		return code{kind: codeColor, color: Black + Color(r-'0')}
	case r >= 'a' && r <= 'f':
		return code{kind: codeColor, color: Green + Color(r-'a')}
	}
	switch r {
	case 'k':
		return code{kind: codeFormat, format: FormatObfuscated}
	case 'l':
		return code{kind: codeFormat, format: FormatBold}
	case 'm':
		return code{kind: codeFormat, format: FormatStrikethrough}
	case 'n':
		return code{kind: codeFormat, format: FormatUnderlined}
	case 'o':
		return code{kind: codeFormat, format: FormatItalic}
	case ResetCode:
		return code{kind: codeReset}
	}
	return code{}
}

// formatCode returns the alphabet character for a format toggle.
func formatCode(f Format) byte {
	switch f {
	case FormatObfuscated:
		return 'k'
	case FormatBold:
		return 'l'
	case FormatStrikethrough:
		return 'm'
	case FormatUnderlined:
		return 'n'
	case FormatItalic:
		return 'o'
	}
	return 0
}

// set turns the format flag on in s.
func (f Format) set(s *Style) {
	switch f {
	case FormatObfuscated:
		s.Obfuscated = True
	case FormatBold:
		s.Bold = True
	case FormatStrikethrough:
		s.Strikethrough = True
	case FormatUnderlined:
		s.Underlined = True
	case FormatItalic:
		s.Italic = True
	}
}
