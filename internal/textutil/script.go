package textutil

import (
	"strings"
	"unicode"
)

// IsHan reports whether r is a Han ideograph.
func IsHan(r rune) bool {
	return unicode.Is(unicode.Han, r)
}

// ContainsHan reports whether s holds at least one Han ideograph.
func ContainsHan(s string) bool {
	return strings.IndexFunc(s, IsHan) >= 0
}

// HanRuns returns the maximal runs of Han ideographs in s, in order.
func HanRuns(s string) []string {
	return runs(s, IsHan)
}

// WordRuns returns the maximal runs of non-Han letters and digits in s.
func WordRuns(s string) []string {
	return runs(s, func(r rune) bool {
		return (unicode.IsLetter(r) || unicode.IsDigit(r)) && !IsHan(r)
	})
}

// StripHan removes every Han ideograph from s.
func StripHan(s string) string {
	return strings.Map(func(r rune) rune {
		if IsHan(r) {
			return -1
		}
		return r
	}, s)
}

// CollapseSpaces trims s and folds inner whitespace runs into one space.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func runs(s string, keep func(rune) bool) []string {
	var out []string
	start := -1
	for i, r := range s {
		if keep(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			out = append(out, s[start:i])
			start = -1
		}
	}
	if start >= 0 {
		out = append(out, s[start:])
	}
	return out
}
