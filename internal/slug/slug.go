// Package slug turns display names into canonical URL-safe keys.
// Tags and accessibility features are deduplicated by slug: two names
// that normalize to the same slug are the same label.
package slug

import (
	"regexp"
	"strings"
)

var (
	invalidChars  = regexp.MustCompile(`[^\w\s-]`)
	separatorRuns = regexp.MustCompile(`[\s_-]+`)
)

// Make normalizes a display name into a slug: lowercase, trimmed,
// non-word characters removed, runs of whitespace/underscores/hyphens
// collapsed to single hyphens, leading and trailing hyphens stripped.
// It is total and idempotent.
func Make(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = invalidChars.ReplaceAllString(s, "")
	s = separatorRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
