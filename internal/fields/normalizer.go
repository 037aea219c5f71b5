package fields

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/deusvagus/musicplayer/internal/catalog"
)

// DefaultLocale orders generic shortcut labels.
const DefaultLocale = "zh-Hans-CN"

// Option is one shortcut offered for the field query.
type Option struct {
	Label      string   `json:"label"`
	SearchTerm string   `json:"search_term"`
	Pinned     bool     `json:"pinned"`
	PinKey     string   `json:"pin_key,omitempty"`
	Keywords   []string `json:"keywords,omitempty"`
	Originals  []string `json:"originals"`
}

// Options is the ordered shortcut list: pinned options first.
type Options []Option

// Match returns the pinned option whose search term equals fieldQuery.
// Front ends show its pin key instead of the raw term.
func (o Options) Match(fieldQuery string) (Option, bool) {
	if fieldQuery == "" {
		return Option{}, false
	}
	for _, opt := range o {
		if opt.Pinned && opt.SearchTerm == fieldQuery {
			return opt, true
		}
	}
	return Option{}, false
}

// Expand returns the pinned option listing term as one of its keywords.
// term is trimmed and lowercased first.
func (o Options) Expand(term string) (Option, bool) {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return Option{}, false
	}
	for _, opt := range o {
		if !opt.Pinned {
			continue
		}
		for _, kw := range opt.Keywords {
			if kw == term {
				return opt, true
			}
		}
	}
	return Option{}, false
}

// Labels returns the option labels in order.
func (o Options) Labels() []string {
	out := make([]string, len(o))
	for i, opt := range o {
		out[i] = opt.Label
	}
	return out
}

// Normalizer builds shortcut options from raw field names.
type Normalizer struct {
	categories []Category
	locale     language.Tag
}

// NewNormalizer returns a normalizer with the default categories. locale
// selects the collation of generic labels; an empty locale uses DefaultLocale.
func NewNormalizer(locale string) (*Normalizer, error) {
	if strings.TrimSpace(locale) == "" {
		locale = DefaultLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parse sort locale %q: %w", locale, err)
	}
	return &Normalizer{categories: DefaultCategories(), locale: tag}, nil
}

// WithCategories replaces the pinned categories.
func (n *Normalizer) WithCategories(categories []Category) *Normalizer {
	clone := *n
	clone.categories = categories
	return &clone
}

type group struct {
	originals []string
	seen      map[string]struct{}
	english   map[string]struct{}
	chinese   map[string]struct{}
}

func (g *group) add(sub, chinese, english string) {
	if _, ok := g.seen[sub]; !ok {
		g.seen[sub] = struct{}{}
		g.originals = append(g.originals, sub)
	}
	if english != "" {
		g.english[english] = struct{}{}
	}
	if chinese != "" {
		g.chinese[chinese] = struct{}{}
	}
}

// Build computes the shortcut options. The result depends only on the set of
// names, not on their order.
func (n *Normalizer) Build(fieldNames []string) Options {
	names := distinctSorted(fieldNames)
	lower := cases.Lower(language.Und)

	pinned := make([][]string, len(n.categories))
	pinnedSeen := make([]map[string]struct{}, len(n.categories))
	for i := range pinnedSeen {
		pinnedSeen[i] = map[string]struct{}{}
	}
	groups := map[string]*group{}
	var groupOrder []string

	for _, raw := range names {
		if isStructural(raw) {
			continue
		}
		for _, sub := range SplitName(raw) {
			lowered := lower.String(sub)
			if idx := n.category(lowered); idx >= 0 {
				if _, ok := pinnedSeen[idx][sub]; !ok {
					pinnedSeen[idx][sub] = struct{}{}
					pinned[idx] = append(pinned[idx], sub)
				}
				continue
			}
			chinese, english := SplitScripts(sub)
			key := chinese
			if key == "" {
				key = lower.String(english)
			}
			if key == "" {
				continue
			}
			g, ok := groups[key]
			if !ok {
				g = &group{
					seen:    map[string]struct{}{},
					english: map[string]struct{}{},
					chinese: map[string]struct{}{},
				}
				groups[key] = g
				groupOrder = append(groupOrder, key)
			}
			g.add(sub, chinese, english)
		}
	}

	var out Options
	for i, cat := range n.categories {
		if len(pinned[i]) == 0 {
			continue
		}
		out = append(out, Option{
			Label:      cat.Label,
			SearchTerm: strings.Join(cat.Keywords, " "),
			Pinned:     true,
			PinKey:     cat.Key,
			Keywords:   append([]string(nil), cat.Keywords...),
			Originals:  pinned[i],
		})
	}

	var generic Options
	for _, key := range groupOrder {
		g := groups[key]
		label := joinLabel(sortedKeys(g.english), sortedKeys(g.chinese))
		if label == "" || mentionsStructural(label) {
			continue
		}
		terms := make([]string, 0, len(g.originals))
		for _, sub := range g.originals {
			if term := TermFor(sub); term != "" {
				terms = append(terms, term)
			}
		}
		generic = append(generic, Option{
			Label:      label,
			SearchTerm: strings.Join(terms, " "),
			Originals:  g.originals,
		})
	}
	col := collate.New(n.locale)
	sort.SliceStable(generic, func(i, j int) bool {
		if c := col.CompareString(generic[i].Label, generic[j].Label); c != 0 {
			return c < 0
		}
		return generic[i].Label < generic[j].Label
	})
	return append(out, generic...)
}

func (n *Normalizer) category(lowered string) int {
	for i, cat := range n.categories {
		for _, kw := range cat.Keywords {
			if strings.Contains(lowered, kw) {
				return i
			}
		}
	}
	return -1
}

// Build computes shortcut options with the default categories and locale.
func Build(fieldNames []string) Options {
	n := &Normalizer{categories: DefaultCategories(), locale: language.MustParse(DefaultLocale)}
	return n.Build(fieldNames)
}

func isStructural(name string) bool {
	name = strings.TrimSpace(name)
	for _, structural := range []string{catalog.FieldTrack, catalog.FieldAlbum, catalog.FieldDate} {
		if strings.EqualFold(name, structural) {
			return true
		}
	}
	return false
}

// mentionsStructural reports whether a generic label contains a structural
// field name anywhere, so "Album Artist" and "Release Date" are dropped.
func mentionsStructural(label string) bool {
	lowered := strings.ToLower(label)
	for _, structural := range []string{catalog.FieldTrack, catalog.FieldAlbum, catalog.FieldDate} {
		if strings.Contains(lowered, structural) {
			return true
		}
	}
	return false
}

func joinLabel(english, chinese []string) string {
	en := strings.Join(english, " / ")
	zh := strings.Join(chinese, " / ")
	switch {
	case en != "" && zh != "":
		return en + " / " + zh
	case en != "":
		return en
	default:
		return zh
	}
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func distinctSorted(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
