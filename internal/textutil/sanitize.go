package textutil

import "strings"

// fileNameReplacer replaces filesystem-unsafe characters with safe alternatives.
var fileNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

const maxFileNameRunes = 80

// SanitizeFileName makes name safe as a single path segment. Slashes,
// backslashes, colons, and asterisks become dashes, other unsafe characters
// are removed, whitespace is collapsed and the result is capped in length.
// Han characters are kept.
func SanitizeFileName(name string) string {
	name = CollapseSpaces(fileNameReplacer.Replace(name))
	if name == "" {
		return ""
	}
	runes := []rune(name)
	if len(runes) > maxFileNameRunes {
		name = strings.TrimSpace(string(runes[:maxFileNameRunes]))
	}
	return strings.Trim(name, ". ")
}
