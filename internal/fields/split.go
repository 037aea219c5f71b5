package fields

import (
	"regexp"
	"strings"

	"github.com/deusvagus/musicplayer/internal/textutil"
)

var keySignaturePattern = regexp.MustCompile(`^[A-G](?:b|#)?调\p{Han}*`)

// SplitName splits a raw field name on "/" and returns the trimmed,
// non-empty sub-names.
func SplitName(raw string) []string {
	parts := strings.Split(raw, "/")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// SplitScripts separates a sub-name into its Han text and its other letter
// and digit text. Each side joins its runs with a single space, so neither
// script is dropped when the two are adjacent.
func SplitScripts(sub string) (chinese, english string) {
	chinese = strings.Join(textutil.HanRuns(sub), " ")
	english = strings.Join(textutil.WordRuns(sub), " ")
	return chinese, english
}

// TermFor renders the field-query term of one observed sub-name: its Han
// text followed by the rest, quoted when the rest holds whitespace. Key
// signature names such as "C调大提琴" keep the key letter with the Han text.
func TermFor(sub string) string {
	var chinese, english string
	if loc := keySignaturePattern.FindStringIndex(sub); loc != nil {
		chinese = sub[:loc[1]]
		english = textutil.CollapseSpaces(sub[loc[1]:])
	} else {
		chinese = strings.Join(textutil.HanRuns(sub), " ")
		english = textutil.CollapseSpaces(textutil.StripHan(sub))
	}
	parts := make([]string, 0, 2)
	if chinese != "" {
		parts = append(parts, chinese)
	}
	if english != "" {
		if strings.ContainsAny(english, " \t") {
			english = `"` + english + `"`
		}
		parts = append(parts, english)
	}
	return strings.Join(parts, " ")
}
