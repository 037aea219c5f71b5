package catalog_test

import (
	"testing"

	"github.com/deusvagus/musicplayer/internal/catalog"
)

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "latin", input: "Spring Song!", want: "springsong"},
		{name: "mixed", input: "春之歌 (Spring Song) 2020", want: "春之歌springsong2020"},
		{name: "traditional", input: "無名曲", want: "無名曲"},
		{name: "punctuation only", input: "--!!--", want: ""},
		{name: "fullwidth punctuation", input: "夏夜，晚風", want: "夏夜晚風"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := catalog.NormalizeTitle(tt.input); got != tt.want {
				t.Fatalf("NormalizeTitle(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestIDMapAddFileSkipsMalformedLines(t *testing.T) {
	ids := catalog.NewIDMap(catalog.LastWins)
	text := "  \n111\tSong A\textra\n\tNo Id\n222\t!!!\nnot a pair\r\n333\tSong C\r\n"
	added, skipped := ids.AddFile(text, "a.txt")
	if added != 2 || skipped != 3 {
		t.Fatalf("added=%d skipped=%d, want 2 and 3", added, skipped)
	}
	if id, ok := ids.Lookup("song a"); !ok || id != "111" {
		t.Fatalf("Lookup(song a) = %q, %v", id, ok)
	}
	if id, ok := ids.Lookup("Song-C"); !ok || id != "333" {
		t.Fatalf("Lookup(Song-C) = %q, %v", id, ok)
	}
	if _, ok := ids.Lookup(""); ok {
		t.Fatal("empty title must not resolve")
	}
}

func TestIDMapAddFileEmpty(t *testing.T) {
	ids := catalog.NewIDMap("")
	added, skipped := ids.AddFile(" \n\n ", "empty.txt")
	if added != 0 || skipped != 0 || ids.Len() != 0 {
		t.Fatalf("unexpected counts added=%d skipped=%d len=%d", added, skipped, ids.Len())
	}
	if ids.Policy() != catalog.LastWins {
		t.Fatalf("default policy = %q", ids.Policy())
	}
}

func TestIDMapCollisionPolicies(t *testing.T) {
	tests := []struct {
		name   string
		policy catalog.CollisionPolicy
		want   string
	}{
		{name: "last wins", policy: catalog.LastWins, want: "2"},
		{name: "first wins", policy: catalog.FirstWins, want: "1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := catalog.NewIDMap(tt.policy)
			ids.Add("Song A", "1", "x.txt")
			ids.Add("song-a", "2", "y.txt")
			ids.Add("SONG A", tt.want, "z.txt")

			if id, _ := ids.Lookup("Song A"); id != tt.want {
				t.Fatalf("Lookup = %q, want %q", id, tt.want)
			}
			collisions := ids.Collisions()
			if len(collisions) != 1 {
				t.Fatalf("expected one collision, got %#v", collisions)
			}
			c := collisions[0]
			if c.Key != "songa" || c.Kept != tt.want || c.Source != "y.txt" || c.Previous != "x.txt" {
				t.Fatalf("unexpected collision %#v", c)
			}
		})
	}
}

func TestParseCollisionPolicy(t *testing.T) {
	if p, err := catalog.ParseCollisionPolicy(" First_Wins "); err != nil || p != catalog.FirstWins {
		t.Fatalf("ParseCollisionPolicy = %q, %v", p, err)
	}
	if p, err := catalog.ParseCollisionPolicy(""); err != nil || p != catalog.LastWins {
		t.Fatalf("ParseCollisionPolicy(\"\") = %q, %v", p, err)
	}
	if _, err := catalog.ParseCollisionPolicy("random"); err == nil {
		t.Fatal("expected error for unknown policy")
	}
}
