package browser_test

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/deusvagus/musicplayer/internal/browser"
	"github.com/deusvagus/musicplayer/internal/catalog"
	"github.com/deusvagus/musicplayer/internal/testsupport"
)

func newSampleBrowser(t *testing.T) *browser.Browser {
	t.Helper()
	cfg := testsupport.NewConfig(t, testsupport.WithTree(testsupport.SampleTree()))
	loader, err := catalog.NewLoaderFromConfig(cfg, nil)
	if err != nil {
		t.Fatalf("NewLoaderFromConfig: %v", err)
	}
	result, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	b, err := browser.New(result, browser.SettingsFromConfig(cfg))
	if err != nil {
		t.Fatalf("browser.New: %v", err)
	}
	return b
}

func visibleTitles(v browser.View) []string {
	var titles []string
	for _, card := range v.VisibleCards() {
		titles = append(titles, card.FullTitle)
	}
	return titles
}

func TestRenderInitialState(t *testing.T) {
	b := newSampleBrowser(t)
	v := b.Render(browser.NewState(""))

	if v.Theme != browser.ThemeDark || v.SortTooltip != browser.SortTooltipForward {
		t.Fatalf("unexpected chrome: theme=%q tooltip=%q", v.Theme, v.SortTooltip)
	}
	if v.VisibleAlbums != 2 || v.VisibleTracks != 4 {
		t.Fatalf("expected everything visible, got %d albums %d tracks", v.VisibleAlbums, v.VisibleTracks)
	}
	if v.Pill != "" || v.FieldInvalid || v.ValueInvalid || !v.Personnel {
		t.Fatalf("unexpected indicators %#v", v)
	}
	for _, album := range v.Albums {
		for _, card := range album.Cards {
			if card.MatchedInfo != nil {
				t.Fatalf("matched info shown without a query on %q", card.FullTitle)
			}
		}
	}

	first := v.Albums[0].Cards[0]
	if first.ChineseTitle != "春之歌" || first.EnglishTitle != "Spring Song" || first.Icon != browser.IconPlay || first.NoID {
		t.Fatalf("unexpected first card %#v", first)
	}
	last := v.Albums[1].Cards[1]
	if last.Icon != browser.IconFile || !last.NoID || last.ID != "" {
		t.Fatalf("unexpected last card %#v", last)
	}
	if v.TOC[0].Anchor != "album-0" || v.TOC[1].Title != "Second Wind 次風" {
		t.Fatalf("unexpected toc %#v", v.TOC)
	}
}

func TestRenderFieldShortcut(t *testing.T) {
	b := newSampleBrowser(t)
	composer := b.Options()[0]
	s := browser.NewState("").SetFieldRegex(true).SelectShortcut(composer)
	if s.FieldRegex {
		t.Fatal("selecting a shortcut must leave regex mode")
	}
	v := b.Render(s)

	if v.Pill != "作曲" {
		t.Fatalf("pill = %q", v.Pill)
	}
	if got := visibleTitles(v); !reflect.DeepEqual(got, []string{"春之歌 Spring Song", "夏夜 Summer Night"}) {
		t.Fatalf("visible = %v", got)
	}
	if !v.Albums[1].Hidden || v.TOC[1].Hidden {
		t.Fatal("album without matches is hidden while its toc entry stays")
	}
	info := v.Albums[0].Cards[0].MatchedInfo
	if len(info) != 1 || info[0].Key != "作曲/Composer" || info[0].Value != "John Smith" {
		t.Fatalf("unexpected matched info %#v", info)
	}
}

func TestRenderValueQuery(t *testing.T) {
	b := newSampleBrowser(t)
	tests := []struct {
		name  string
		state browser.State
		want  []string
	}{
		{
			name:  "single keyword",
			state: browser.NewState("").SetValueQuery("john"),
			want:  []string{"春之歌 Spring Song", "夏夜 Summer Night"},
		},
		{
			name:  "all keywords required",
			state: browser.NewState("").SetValueQuery("john smith"),
			want:  []string{"春之歌 Spring Song"},
		},
		{
			name:  "field and value",
			state: browser.NewState("").SetFieldQuery("vocal").SetValueQuery("smith"),
			want:  []string{"Winter Tale"},
		},
		{
			name:  "general query hides albums",
			state: browser.NewState("").SetGeneralQuery("SECOND"),
			want:  []string{"Winter Tale", "無名曲"},
		},
		{
			name:  "general and value combine",
			state: browser.NewState("").QuickSearch("first").SetValueQuery("alice"),
			want:  []string{"春之歌 Spring Song"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := visibleTitles(b.Render(tt.state)); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("visible = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRenderGeneralQueryHidesToc(t *testing.T) {
	b := newSampleBrowser(t)
	v := b.Render(browser.NewState("").SetGeneralQuery("second"))
	if !v.TOC[0].Hidden || v.TOC[1].Hidden {
		t.Fatalf("unexpected toc visibility %#v", v.TOC)
	}
	for _, card := range v.Albums[0].Cards {
		if !card.Hidden {
			t.Fatalf("card %q in hidden album is visible", card.FullTitle)
		}
	}
}

func TestRenderInvalidRegex(t *testing.T) {
	b := newSampleBrowser(t)
	s := browser.NewState("").SetFieldQuery("(").SetFieldRegex(true).SetValueQuery("alice")
	v := b.Render(s)
	if !v.FieldInvalid || v.ValueInvalid {
		t.Fatalf("invalid flags = %v/%v", v.FieldInvalid, v.ValueInvalid)
	}
	if v.VisibleTracks != 0 || v.VisibleAlbums != 0 {
		t.Fatalf("invalid regex must hide every card, got %d", v.VisibleTracks)
	}

	v = b.Render(s.SetFieldRegex(false))
	if v.FieldInvalid {
		t.Fatal("indicator must clear when regex mode is off")
	}

	v = b.Render(browser.NewState("").SetValueQuery("[").SetValueRegex(true))
	if v.FieldInvalid || !v.ValueInvalid || v.VisibleTracks != 0 {
		t.Fatalf("unexpected value regex view: field=%v value=%v visible=%d", v.FieldInvalid, v.ValueInvalid, v.VisibleTracks)
	}
}

func TestRenderReversed(t *testing.T) {
	b := newSampleBrowser(t)
	s := browser.NewState("").ToggleSort()
	v := b.Render(s)
	if v.SortTooltip != browser.SortTooltipReversed {
		t.Fatalf("tooltip = %q", v.SortTooltip)
	}
	if v.Albums[0].Anchor != "album-1" || v.Albums[0].Index != 1 || v.TOC[0].Title != "Second Wind 次風" {
		t.Fatalf("unexpected reversed order %#v", v.TOC)
	}
	if v.Albums[0].Cards[0].Ref != (browser.TrackRef{Album: 1, Track: 0}) {
		t.Fatalf("card refs must keep catalog indexes, got %#v", v.Albums[0].Cards[0].Ref)
	}
	if b.Render(s.ToggleSort()).SortTooltip != browser.SortTooltipForward {
		t.Fatal("second toggle restores order")
	}
	if b.Catalog().Albums[0].Title != "First Light 初光" {
		t.Fatal("render must not reorder the catalog")
	}
}

func TestDetailView(t *testing.T) {
	b := newSampleBrowser(t)

	v := b.Render(browser.NewState("").SelectTrack(browser.TrackRef{Album: 0, Track: 0}))
	if v.Detail == nil {
		t.Fatal("expected detail view")
	}
	d := *v.Detail
	if d.IDLabel != "ID: 111" || !d.PlayerAvailable || !strings.Contains(d.PlayerURL, "id=111") || d.Message != "" {
		t.Fatalf("unexpected detail %#v", d)
	}
	if got := d.Fields.Keys(); !reflect.DeepEqual(got, []string{"作曲/Composer", "編曲", "Vocal / 演唱"}) {
		t.Fatalf("detail fields = %v", got)
	}

	d, ok := b.Detail(browser.TrackRef{Album: 1, Track: 1})
	if !ok || d.IDLabel != "ID: N/A" || d.PlayerAvailable || d.Message != browser.NoSourceMessage {
		t.Fatalf("unexpected detail without id %#v", d)
	}

	if _, ok := b.Detail(browser.TrackRef{Album: 5, Track: 0}); ok {
		t.Fatal("out of range ref must not resolve")
	}
	if v := b.Render(browser.NewState("").SelectTrack(browser.TrackRef{Album: 0, Track: 9}).CloseDetail()); v.Detail != nil {
		t.Fatal("closed detail must not render")
	}
}

func TestExportRoundTrip(t *testing.T) {
	b := newSampleBrowser(t)
	for _, reversed := range []bool{false, true} {
		s := browser.NewState("").SetValueQuery("alice")
		if reversed {
			s = s.ToggleSort()
		}
		v := b.Render(s)
		data, err := v.ExportJSON(browser.ExportAll)
		if err != nil {
			t.Fatalf("ExportJSON: %v", err)
		}
		var records []map[string]any
		if err := json.Unmarshal(data, &records); err != nil {
			t.Fatalf("unmarshal export: %v", err)
		}
		cards := v.VisibleCards()
		if len(records) != len(cards) || len(cards) != 2 {
			t.Fatalf("expected 2 records, got %d (cards %d)", len(records), len(cards))
		}
		for i, record := range records {
			if record["track"] != cards[i].FullTitle {
				t.Fatalf("record %d track = %v, want %q", i, record["track"], cards[i].FullTitle)
			}
		}
		if reversed && records[0]["track"] != "Winter Tale" {
			t.Fatalf("reversed export order wrong: %v", records[0]["track"])
		}
		if !reversed && records[0]["編曲"] != "Jane Doe" {
			t.Fatalf("all mode must carry full details, got %v", records[0])
		}
	}
}

func TestExportMatched(t *testing.T) {
	b := newSampleBrowser(t)
	v := b.Render(browser.NewState("").SetValueQuery("alice"))
	data, err := v.ExportJSON(browser.ExportMatched)
	if err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	var records []catalog.Details
	if err := json.Unmarshal(data, &records); err != nil {
		t.Fatalf("unmarshal export: %v", err)
	}
	want := [][]string{
		{"track", "Vocal / 演唱"},
		{"track", "Vocal"},
	}
	for i, record := range records {
		if got := record.Keys(); !reflect.DeepEqual(got, want[i]) {
			t.Fatalf("record %d keys = %v, want %v", i, got, want[i])
		}
	}
	if records[1].String("Vocal") != "Alice Smith" {
		t.Fatalf("unexpected matched value %v", records[1])
	}
}

func TestExportEmptyView(t *testing.T) {
	b := newSampleBrowser(t)
	data, err := b.Render(browser.NewState("").SetValueQuery("nobody")).ExportJSON(browser.ExportAll)
	if err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	if strings.TrimSpace(string(data)) != "[]" {
		t.Fatalf("expected empty array, got %s", data)
	}
}

func TestParseExportMode(t *testing.T) {
	if m, err := browser.ParseExportMode(""); err != nil || m != browser.ExportAll {
		t.Fatalf("ParseExportMode(\"\") = %q, %v", m, err)
	}
	if m, err := browser.ParseExportMode(" Matched "); err != nil || m != browser.ExportMatched {
		t.Fatalf("ParseExportMode(matched) = %q, %v", m, err)
	}
	if _, err := browser.ParseExportMode("csv"); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestExportFileName(t *testing.T) {
	s := browser.NewState("").SetGeneralQuery("初光").SetValueQuery(`"John Smith"`)
	if got := browser.ExportFileName(s, browser.ExportMatched); got != "musicplayer_matched_初光_John Smith.json" {
		t.Fatalf("ExportFileName = %q", got)
	}
	if got := browser.ExportFileName(browser.NewState(""), browser.ExportAll); got != "musicplayer_all.json" {
		t.Fatalf("ExportFileName = %q", got)
	}
}

func TestSuggest(t *testing.T) {
	b := newSampleBrowser(t)
	tests := []struct {
		name  string
		kind  browser.SuggestKind
		input string
		want  []string
	}{
		{name: "label substring", kind: browser.SuggestFields, input: "VO", want: []string{"Vocal"}},
		{name: "pinyin", kind: browser.SuggestFields, input: "zuo", want: []string{"Composer / 作曲", "Lyricist / 作詞"}},
		{name: "pinyin initials", kind: browser.SuggestFields, input: "yc", want: []string{"演唱"}},
		{name: "han text", kind: browser.SuggestFields, input: "編", want: []string{"Arranger / 編曲"}},
		{name: "personnel", kind: browser.SuggestPersonnel, input: "li", want: []string{"Alice", "Li Hua"}},
		{name: "empty input", kind: browser.SuggestPersonnel, input: "", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := b.Suggest(tt.kind, tt.input)
			if err != nil {
				t.Fatalf("Suggest: %v", err)
			}
			var labels []string
			for _, s := range got {
				labels = append(labels, s.Label)
			}
			if !reflect.DeepEqual(labels, tt.want) {
				t.Fatalf("labels = %v, want %v", labels, tt.want)
			}
		})
	}

	got, _ := b.Suggest(browser.SuggestFields, "作曲")
	if len(got) != 1 || got[0].Value != "作曲 composer" {
		t.Fatalf("field suggestion value = %#v", got)
	}
	if _, err := b.Suggest("albums", "x"); err == nil {
		t.Fatal("expected error for unknown source")
	}
}

func TestSuggestLimit(t *testing.T) {
	result := &catalog.Result{
		Catalog:            &catalog.Catalog{},
		Personnel:          []string{"Ann", "Anna", "Annie", "Hannah"},
		PersonnelAvailable: true,
	}
	b, err := browser.New(result, browser.Settings{SuggestionLimit: 2})
	if err != nil {
		t.Fatalf("browser.New: %v", err)
	}
	got, _ := b.Suggest(browser.SuggestPersonnel, "an")
	if len(got) != 2 || got[0].Label != "Ann" || got[1].Label != "Anna" {
		t.Fatalf("unexpected limited suggestions %#v", got)
	}
}

func TestPersonnelUnavailable(t *testing.T) {
	result := &catalog.Result{
		Catalog:   &catalog.Catalog{},
		Personnel: []string{"Ann"},
	}
	b, err := browser.New(result, browser.Settings{})
	if err != nil {
		t.Fatalf("browser.New: %v", err)
	}
	if b.Render(browser.NewState("")).Personnel {
		t.Fatal("personnel control must be disabled")
	}
	if got, _ := b.Suggest(browser.SuggestPersonnel, "an"); len(got) != 0 {
		t.Fatalf("unexpected suggestions %#v", got)
	}
}

func TestNewRequiresCatalog(t *testing.T) {
	if _, err := browser.New(nil, browser.Settings{}); err == nil {
		t.Fatal("expected error for nil result")
	}
	if _, err := browser.New(&catalog.Result{Catalog: &catalog.Catalog{}}, browser.Settings{SortLocale: "??"}); err == nil {
		t.Fatal("expected error for malformed locale")
	}
}

func TestFatalMessage(t *testing.T) {
	err := &catalog.LoadError{Kind: catalog.ErrManifest, URI: "IDs/manifest.json", Err: errors.New("404")}
	if got := browser.FatalMessage(err); !strings.HasPrefix(got, "初始化失敗: ") || !strings.Contains(got, "manifest") {
		t.Fatalf("FatalMessage = %q", got)
	}
	if browser.FatalMessage(nil) != "" {
		t.Fatal("nil error renders empty")
	}
}
