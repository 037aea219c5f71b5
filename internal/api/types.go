package api

import (
	"github.com/deusvagus/musicplayer/internal/browser"
	"github.com/deusvagus/musicplayer/internal/catalog"
	"github.com/deusvagus/musicplayer/internal/fields"
	"github.com/deusvagus/musicplayer/internal/prefs"
)

// ErrorResponse is returned with every non-2xx status.
type ErrorResponse struct {
	Error string `json:"error"`
}

// LoadSummary describes the catalog currently being served.
type LoadSummary struct {
	Albums             int                    `json:"albums"`
	Tracks             int                    `json:"tracks"`
	Fields             int                    `json:"fields"`
	IDFiles            catalog.FileStats      `json:"id_files"`
	DetailFiles        catalog.FileStats      `json:"detail_files"`
	SkippedIDLines     int                    `json:"skipped_id_lines"`
	Collisions         int                    `json:"collisions"`
	PersonnelAvailable bool                   `json:"personnel_available"`
	Failures           []catalog.FetchFailure `json:"failures,omitempty"`
	DurationMillis     int64                  `json:"duration_ms"`
}

// HealthResponse reports server liveness and the loaded catalog.
type HealthResponse struct {
	Status string      `json:"status"`
	Load   LoadSummary `json:"load"`
}

// ReloadResponse is returned after a successful reload.
type ReloadResponse struct {
	Load LoadSummary `json:"load"`
}

// FieldsResponse lists the shortcut options.
type FieldsResponse struct {
	Options fields.Options `json:"options"`
}

// PersonnelResponse lists the personnel quick-pick names.
type PersonnelResponse struct {
	Available bool     `json:"available"`
	Names     []string `json:"names"`
}

// SearchResponse wraps a rendered view with the state that produced it.
type SearchResponse struct {
	State browser.State `json:"state"`
	View  browser.View  `json:"view"`
}

// TrackResponse wraps a detail panel.
type TrackResponse struct {
	Detail browser.DetailView `json:"detail"`
}

// SuggestResponse lists autocomplete suggestions.
type SuggestResponse struct {
	Kind        browser.SuggestKind  `json:"kind"`
	Query       string               `json:"query"`
	Suggestions []browser.Suggestion `json:"suggestions"`
}

// PrefResponse is one preference value.
type PrefResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// PrefUpdate is the body of a preference write.
type PrefUpdate struct {
	Value string `json:"value"`
}

// PrefsListResponse lists every stored preference.
type PrefsListResponse struct {
	Items []prefs.Entry `json:"items"`
}
