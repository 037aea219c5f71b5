package browser

import (
	"regexp"
	"strings"
)

// \s is ASCII-only in RE2; \p{Zs} adds the ideographic space U+3000.
var titleSplitPattern = regexp.MustCompile(`^([\p{Han}\s\p{Zs}，。、]+)([^\p{Han}].*)?$`)

// SplitTitle splits a card title into its leading Chinese text and the
// remainder. Titles without a leading Chinese run, or without a remainder,
// are returned whole as the Chinese title.
func SplitTitle(fullTitle string) (chinese, english string) {
	fullTitle = strings.TrimSpace(fullTitle)
	m := titleSplitPattern.FindStringSubmatch(fullTitle)
	if m != nil && m[2] != "" {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}
	return fullTitle, ""
}
