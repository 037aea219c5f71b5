package query

import (
	"regexp"
	"strings"
)

var exactPhrasePattern = regexp.MustCompile(`"[^"]+"`)

// ParseTerms lowercases query and splits it into terms: every double-quoted
// phrase verbatim without its quotes, then the remaining whitespace-separated
// words. Unpaired quote characters stay part of the words they touch.
func ParseTerms(query string) []string {
	lowered := strings.ToLower(query)
	var terms []string
	for _, m := range exactPhrasePattern.FindAllString(lowered, -1) {
		terms = append(terms, m[1:len(m)-1])
	}
	rest := exactPhrasePattern.ReplaceAllString(lowered, "")
	terms = append(terms, strings.Fields(rest)...)
	return terms
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

func containsAll(text string, terms []string) bool {
	for _, term := range terms {
		if !strings.Contains(text, term) {
			return false
		}
	}
	return true
}
