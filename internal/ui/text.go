package ui

import "unicode/utf8"

// Truncate shortens s to at most max runes, ending in "..." when cut.
func Truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	if max <= 0 {
		return ""
	}
	if max <= 3 {
		return "..."[:max]
	}
	return string([]rune(s)[:max-3]) + "..."
}
