package api

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/deusvagus/musicplayer/internal/browser"
)

// Query parameter names accepted by search and export.
const (
	ParamGeneral    = "q"
	ParamField      = "field"
	ParamValue      = "value"
	ParamFieldRegex = "field_regex"
	ParamValueRegex = "value_regex"
	ParamReversed   = "reversed"
	ParamTheme      = "theme"
	ParamMode       = "mode"
)

// SearchParams is the transport form of the three inputs and toggles.
type SearchParams struct {
	General    string
	Field      string
	Value      string
	FieldRegex bool
	ValueRegex bool
	Reversed   bool
	Theme      string
}

// ParseSearchParams reads search parameters from a query string. Boolean
// parameters accept the forms strconv.ParseBool does; an empty value is false.
func ParseSearchParams(values url.Values) (SearchParams, error) {
	p := SearchParams{
		General: values.Get(ParamGeneral),
		Field:   values.Get(ParamField),
		Value:   values.Get(ParamValue),
		Theme:   strings.TrimSpace(values.Get(ParamTheme)),
	}
	flags := []struct {
		name string
		dst  *bool
	}{
		{ParamFieldRegex, &p.FieldRegex},
		{ParamValueRegex, &p.ValueRegex},
		{ParamReversed, &p.Reversed},
	}
	for _, f := range flags {
		raw := strings.TrimSpace(values.Get(f.name))
		if raw == "" {
			continue
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return SearchParams{}, fmt.Errorf("invalid %s %q: %w", f.name, raw, err)
		}
		*f.dst = v
	}
	return p, nil
}

// Values encodes p as a query string, omitting defaults.
func (p SearchParams) Values() url.Values {
	values := url.Values{}
	set := func(key, value string) {
		if value != "" {
			values.Set(key, value)
		}
	}
	set(ParamGeneral, p.General)
	set(ParamField, p.Field)
	set(ParamValue, p.Value)
	set(ParamTheme, p.Theme)
	for key, on := range map[string]bool{ParamFieldRegex: p.FieldRegex, ParamValueRegex: p.ValueRegex, ParamReversed: p.Reversed} {
		if on {
			values.Set(key, "true")
		}
	}
	return values
}

// State replays the parameters through the browser commands, starting from
// the given default theme when p carries none.
func (p SearchParams) State(defaultTheme string) browser.State {
	theme := p.Theme
	if theme == "" {
		theme = defaultTheme
	}
	s := browser.NewState(theme).
		SetGeneralQuery(p.General).
		SetFieldQuery(p.Field).
		SetValueQuery(p.Value).
		SetFieldRegex(p.FieldRegex).
		SetValueRegex(p.ValueRegex)
	if p.Reversed {
		s = s.ToggleSort()
	}
	return s
}
