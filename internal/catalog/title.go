package catalog

import (
	"strings"
	"unicode"
)

// NormalizeTitle lowercases title and keeps only ASCII letters, digits and
// Han ideographs. It is the join key between ID files and detail files.
func NormalizeTitle(title string) string {
	if title == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(title))
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.Is(unicode.Han, r):
			b.WriteRune(r)
		}
	}
	return b.String()
}
