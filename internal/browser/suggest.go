package browser

import (
	"fmt"
	"strings"
)

// SuggestKind selects the autocomplete source.
type SuggestKind string

const (
	SuggestFields    SuggestKind = "fields"
	SuggestPersonnel SuggestKind = "personnel"
)

// Suggestion is one autocomplete entry. Value replaces the input when chosen.
type Suggestion struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Suggest returns up to the configured number of entries whose label holds
// input, ignoring case, or whose toneless pinyin spelling or initials hold it.
func (b *Browser) Suggest(kind SuggestKind, input string) ([]Suggestion, error) {
	var index []suggestEntry
	switch kind {
	case SuggestFields:
		index = b.fieldIndex
	case SuggestPersonnel:
		index = b.personnelIndex
	default:
		return nil, fmt.Errorf("unknown suggestion source %q", kind)
	}
	q := strings.ToLower(input)
	if q == "" {
		return nil, nil
	}
	compact := strings.ReplaceAll(q, " ", "")
	out := make([]Suggestion, 0, b.suggestLimit)
	for _, entry := range index {
		if len(out) == b.suggestLimit {
			break
		}
		if entry.matches(q, compact) {
			out = append(out, entry.Suggestion)
		}
	}
	return out, nil
}

func (e suggestEntry) matches(q, compact string) bool {
	if strings.Contains(e.lower, q) {
		return true
	}
	if compact == "" || e.pinyin == "" {
		return false
	}
	return strings.Contains(e.pinyin, compact) || strings.HasPrefix(e.initials, compact)
}
