package render

import "strings"

// SanitizeTerminal removes runes a terminal would interpret: ESC and the
// other C0/C1 control characters. Newlines survive and tabs become spaces.
// What is left of a stripped escape sequence is inert text.
func SanitizeTerminal(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\n':
			b.WriteRune(r)
		case r == '\t':
			b.WriteString("    ")
		case r < 0x20, r == 0x7f, r >= 0x80 && r <= 0x9f:
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SanitizeLine is SanitizeTerminal with newlines folded to spaces, for
// single-line slots such as titles and dropdown rows.
func SanitizeLine(s string) string {
	return strings.ReplaceAll(SanitizeTerminal(strings.ReplaceAll(s, "\r\n", " ")), "\n", " ")
}
