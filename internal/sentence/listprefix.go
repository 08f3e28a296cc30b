package sentence

import (
	"unicode/utf8"

	"github.com/dlclark/regexp2"
)

// listPrefix matches markdown list and quote markers at the start of a line:
// optional indentation, a bullet (-, +, *), a blockquote marker or an
// ordered number, one space, then an optional task checkbox.
var listPrefix = regexp2.MustCompile(`^\s*(?:[-+*>]|\d+\.) (?:\[.\] )?`, regexp2.ECMAScript)

// ListPrefixLen returns the length in runes of the list prefix that starts
// line, or 0 if there is none.
func ListPrefixLen(line string) int {
	m, err := listPrefix.FindStringMatch(line)
	if err != nil || m == nil {
		return 0
	}
	return m.Length
}

// IsListPrefix reports whether text consists of nothing but a list prefix.
func IsListPrefix(text string) bool {
	n := ListPrefixLen(text)
	return n > 0 && n == utf8.RuneCountInString(text)
}
