package text

import "strings"

// DefaultNameLength caps company names in the table.
const DefaultNameLength = 12

// Truncate cuts s to n runes and appends an ellipsis when it is longer.
// Unlike [Wrap] it ignores word boundaries.
func Truncate(s string, n int) string {
	r := []rune(s)
	if n < 0 || len(r) <= n {
		return s
	}
	return string(r[:n]) + Ellipsis
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeXML escapes the five reserved markup characters.
func EscapeXML(s string) string {
	return xmlEscaper.Replace(s)
}
