package browser

import (
	"strings"

	"github.com/deusvagus/musicplayer/internal/fields"
	"github.com/deusvagus/musicplayer/internal/player"
	"github.com/deusvagus/musicplayer/internal/query"
)

// Themes.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Input names one of the three search inputs.
type Input int

const (
	InputGeneral Input = iota
	InputField
	InputValue
)

// TrackRef addresses a track by album and track index in catalog order.
type TrackRef struct {
	Album int `json:"album"`
	Track int `json:"track"`
}

// State is the complete interactive state of the browser.
type State struct {
	General    string        `json:"general"`
	Field      string        `json:"field"`
	Value      string        `json:"value"`
	FieldRegex bool          `json:"field_regex"`
	ValueRegex bool          `json:"value_regex"`
	Reversed   bool          `json:"reversed"`
	Theme      string        `json:"theme"`
	Selected   *TrackRef     `json:"selected,omitempty"`
	Player     player.Widget `json:"player"`
}

// NewState returns the initial state for theme. Anything other than light
// selects the dark theme.
func NewState(theme string) State {
	return State{Theme: normalizeTheme(theme)}
}

func normalizeTheme(theme string) string {
	if strings.EqualFold(strings.TrimSpace(theme), ThemeLight) {
		return ThemeLight
	}
	return ThemeDark
}

// Query returns the field/value query of the state.
func (s State) Query() query.Query {
	return query.Query{Field: s.Field, Value: s.Value, FieldRegex: s.FieldRegex, ValueRegex: s.ValueRegex}
}

// SetGeneralQuery replaces the album title filter.
func (s State) SetGeneralQuery(q string) State {
	s.General = q
	return s
}

// SetFieldQuery replaces the field query.
func (s State) SetFieldQuery(q string) State {
	s.Field = q
	return s
}

// SetValueQuery replaces the value query.
func (s State) SetValueQuery(q string) State {
	s.Value = q
	return s
}

// SetFieldRegex toggles regex mode for the field query.
func (s State) SetFieldRegex(on bool) State {
	s.FieldRegex = on
	return s
}

// SetValueRegex toggles regex mode for the value query.
func (s State) SetValueRegex(on bool) State {
	s.ValueRegex = on
	return s
}

// SelectShortcut fills the field query from a shortcut and leaves regex mode.
func (s State) SelectShortcut(opt fields.Option) State {
	if opt.SearchTerm == "" {
		return s
	}
	s.Field = opt.SearchTerm
	s.FieldRegex = false
	return s
}

// SelectPersonnel appends name to the value query, quoted when it contains a
// space, and leaves regex mode.
func (s State) SelectPersonnel(name string) State {
	if name == "" {
		return s
	}
	term := name
	if strings.Contains(name, " ") {
		term = `"` + name + `"`
	}
	if current := strings.TrimSpace(s.Value); current != "" {
		s.Value = current + " " + term
	} else {
		s.Value = term
	}
	s.ValueRegex = false
	return s
}

// Example is a canned field/value query from the search help.
type Example struct {
	Title      string `json:"title"`
	Field      string `json:"field"`
	Value      string `json:"value"`
	FieldRegex bool   `json:"field_regex"`
	ValueRegex bool   `json:"value_regex"`
}

// Examples lists the search help examples.
func Examples() []Example {
	return []Example{
		{Title: "作曲者 (keywords)", Field: "作曲 composer", Value: ""},
		{Title: "完整人名 (exact phrase)", Field: "", Value: `"John Smith"`},
		{Title: "多個條件 (all keywords)", Field: "演唱 vocal", Value: "alice smith"},
		{Title: "欄位正則 (field regex)", Field: "^(作曲|作詞)$", FieldRegex: true},
		{Title: "日期正則 (value regex)", Field: "date", Value: `^20(1\d|2\d)`, ValueRegex: true},
	}
}

// ApplyExample replaces both queries and both regex toggles.
func (s State) ApplyExample(ex Example) State {
	s.Field = ex.Field
	s.Value = ex.Value
	s.FieldRegex = ex.FieldRegex
	s.ValueRegex = ex.ValueRegex
	return s
}

// Clear empties one input.
func (s State) Clear(in Input) State {
	switch in {
	case InputGeneral:
		s.General = ""
	case InputField:
		s.Field = ""
	case InputValue:
		s.Value = ""
	}
	return s
}

// QuickSearch replaces the general query with a preset.
func (s State) QuickSearch(q string) State {
	return s.SetGeneralQuery(q)
}

// ToggleSort reverses the album display order.
func (s State) ToggleSort() State {
	s.Reversed = !s.Reversed
	return s
}

// BlurField expands a bare pinned keyword typed into the field query to the
// category's full search term. Regex mode is left alone.
func (s State) BlurField(opts fields.Options) State {
	if s.FieldRegex {
		return s
	}
	if opt, ok := opts.Expand(s.Field); ok {
		s.Field = opt.SearchTerm
	}
	return s
}

// ToggleTheme switches between the dark and light themes.
func (s State) ToggleTheme() State {
	if normalizeTheme(s.Theme) == ThemeLight {
		s.Theme = ThemeDark
	} else {
		s.Theme = ThemeLight
	}
	return s
}

// SelectTrack opens the detail panel for a track.
func (s State) SelectTrack(ref TrackRef) State {
	s.Selected = &ref
	return s
}

// CloseDetail closes the detail panel.
func (s State) CloseDetail() State {
	s.Selected = nil
	return s
}

// LoadPlayer opens the player widget for id.
func (s State) LoadPlayer(embed player.Embed, id string) (State, error) {
	w, err := s.Player.Load(embed, id)
	if err != nil {
		return s, err
	}
	s.Player = w
	return s, nil
}

// PlayerLoaded marks the embed as ready.
func (s State) PlayerLoaded() State {
	s.Player = s.Player.Loaded()
	return s
}

// PlayerFailed replaces the embed with the failure message.
func (s State) PlayerFailed() State {
	s.Player = s.Player.Failed()
	return s
}

// ClosePlayer hides the player widget.
func (s State) ClosePlayer() State {
	s.Player = s.Player.Close()
	return s
}
