package util

import "strings"

// Truncate shortens s to at most max runes, appending "..." when content was
// cut. Used for log and console previews of long model output.
func Truncate(s string, max int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
