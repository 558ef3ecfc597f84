package utils

import (
	"fmt"
	"strings"
	"unicode"
)

// Slugify derives a URL-safe slug from a name: lowercase, runs of
// non-alphanumeric characters collapsed to single hyphens, trimmed.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen

	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteRune('-')
				lastHyphen = true
			}
		}
	}

	return strings.TrimRight(b.String(), "-")
}

// SlugWithSuffix appends a numeric collision suffix to a base slug.
func SlugWithSuffix(base string, suffix int) string {
	return fmt.Sprintf("%s-%d", base, suffix)
}
