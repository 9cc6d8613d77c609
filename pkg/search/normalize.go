package search

import (
	"strings"
	"unicode"
)

// Normalize converts a free-text query into its cache key: lowercased,
// stripped of everything but ASCII letters, digits and whitespace, with
// whitespace runs collapsed to single spaces and the ends trimmed.
// Queries differing only in punctuation, case or casual spacing share one
// key. Normalize is idempotent.
func Normalize(query string) string {
	lowered := strings.ToLower(strings.TrimSpace(query))

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
