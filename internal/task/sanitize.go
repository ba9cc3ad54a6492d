package task

import (
	"html"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

var stripPolicy = bluemonday.StrictPolicy()

// NormalizeText prepares raw user input for storage: markup tags are
// stripped, entities decoded, control characters and line breaks turned
// into spaces, and the result trimmed. Inner spacing is kept.
func NormalizeText(raw string) string {
	s := html.UnescapeString(stripPolicy.Sanitize(raw))
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}

// SameText reports whether two normalized texts collide under the
// case-insensitive duplicate rule.
func SameText(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
