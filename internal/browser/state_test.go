package browser_test

import (
	"testing"

	"github.com/deusvagus/musicplayer/internal/browser"
	"github.com/deusvagus/musicplayer/internal/fields"
	"github.com/deusvagus/musicplayer/internal/player"
)

func TestSelectPersonnel(t *testing.T) {
	tests := []struct {
		name    string
		current string
		pick    string
		want    string
	}{
		{name: "first name", current: "", pick: "Bob", want: "Bob"},
		{name: "quoted when spaced", current: "", pick: "John Smith", want: `"John Smith"`},
		{name: "appended", current: " alice ", pick: "John Smith", want: `alice "John Smith"`},
		{name: "empty pick ignored", current: "alice", pick: "", want: "alice"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := browser.NewState("").SetValueQuery(tt.current).SetValueRegex(true).SelectPersonnel(tt.pick)
			if s.Value != tt.want {
				t.Fatalf("value = %q, want %q", s.Value, tt.want)
			}
			if tt.pick != "" && s.ValueRegex {
				t.Fatal("selecting personnel must leave regex mode")
			}
		})
	}
}

func TestBlurFieldExpandsKeywords(t *testing.T) {
	opts := fields.Build([]string{"作曲", "Vocal"})

	s := browser.NewState("").SetFieldQuery(" Composer ").BlurField(opts)
	if s.Field != "作曲 composer" {
		t.Fatalf("field = %q", s.Field)
	}

	s = browser.NewState("").SetFieldQuery("composer").SetFieldRegex(true).BlurField(opts)
	if s.Field != "composer" {
		t.Fatalf("regex mode must not expand, got %q", s.Field)
	}

	s = browser.NewState("").SetFieldQuery("vocal").BlurField(opts)
	if s.Field != "vocal" {
		t.Fatalf("generic term must not expand, got %q", s.Field)
	}
}

func TestCommandsReturnNewState(t *testing.T) {
	base := browser.NewState("light")
	if base.Theme != browser.ThemeLight {
		t.Fatalf("theme = %q", base.Theme)
	}
	next := base.SetGeneralQuery("x").SetFieldQuery("y").SetValueQuery("z").ToggleSort().ToggleTheme()
	if base.General != "" || base.Reversed || base.Theme != browser.ThemeLight {
		t.Fatalf("commands mutated the receiver: %#v", base)
	}
	if next.General != "x" || next.Field != "y" || next.Value != "z" || !next.Reversed || next.Theme != browser.ThemeDark {
		t.Fatalf("unexpected state %#v", next)
	}
	if next.ToggleTheme().Theme != browser.ThemeLight {
		t.Fatal("theme toggles back")
	}
	if browser.NewState("sepia").Theme != browser.ThemeDark {
		t.Fatal("unknown theme falls back to dark")
	}
}

func TestClear(t *testing.T) {
	s := browser.NewState("").SetGeneralQuery("a").SetFieldQuery("b").SetValueQuery("c")
	if got := s.Clear(browser.InputGeneral); got.General != "" || got.Field != "b" {
		t.Fatalf("clear general = %#v", got)
	}
	if got := s.Clear(browser.InputField); got.Field != "" || got.Value != "c" {
		t.Fatalf("clear field = %#v", got)
	}
	if got := s.Clear(browser.InputValue); got.Value != "" || got.General != "a" {
		t.Fatalf("clear value = %#v", got)
	}
}

func TestApplyExample(t *testing.T) {
	for _, ex := range browser.Examples() {
		s := browser.NewState("").SetFieldRegex(!ex.FieldRegex).ApplyExample(ex)
		if s.Field != ex.Field || s.Value != ex.Value || s.FieldRegex != ex.FieldRegex || s.ValueRegex != ex.ValueRegex {
			t.Fatalf("example %q not applied: %#v", ex.Title, s)
		}
	}
}

func TestPlayerCommands(t *testing.T) {
	embed := player.Embed{Template: "https://example.com/p?id=%s", Height: 86}
	s, err := browser.NewState("").LoadPlayer(embed, "42")
	if err != nil {
		t.Fatalf("LoadPlayer: %v", err)
	}
	if !s.Player.Visible || !s.Player.Loading || s.Player.Src != "https://example.com/p?id=42" {
		t.Fatalf("unexpected player %#v", s.Player)
	}
	if s.PlayerLoaded().Player.Loading {
		t.Fatal("loaded player still loading")
	}
	if s.PlayerFailed().Player.Message != player.FailureMessage {
		t.Fatal("failed player shows failure message")
	}
	if s.ClosePlayer().Player.Visible {
		t.Fatal("closed player visible")
	}
	if _, err := browser.NewState("").LoadPlayer(embed, ""); err == nil {
		t.Fatal("expected error without id")
	}
}

func TestSplitTitle(t *testing.T) {
	tests := []struct {
		input   string
		chinese string
		english string
	}{
		{input: "春之歌 Spring Song", chinese: "春之歌", english: "Spring Song"},
		{input: "夏夜，晚風 Night", chinese: "夏夜，晚風", english: "Night"},
		{input: "Winter Tale", chinese: "Winter Tale", english: ""},
		{input: "無名曲", chinese: "無名曲", english: ""},
		{input: "  春 ", chinese: "春", english: ""},
		{input: "春 Spring 夏", chinese: "春", english: "Spring 夏"},
		{input: "夜曲\u3000月光 Moonlight", chinese: "夜曲\u3000月光", english: "Moonlight"},
		{input: "月光\u3000Moonlight", chinese: "月光", english: "Moonlight"},
	}
	for _, tt := range tests {
		chinese, english := browser.SplitTitle(tt.input)
		if chinese != tt.chinese || english != tt.english {
			t.Fatalf("SplitTitle(%q) = %q, %q; want %q, %q", tt.input, chinese, english, tt.chinese, tt.english)
		}
	}
}
