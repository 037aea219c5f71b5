package catalog_test

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/deusvagus/musicplayer/internal/catalog"
)

func TestDetailsPreserveOrder(t *testing.T) {
	var details catalog.Details
	input := `{"track":"Song","作曲":"A","BPM":120,"Rate":1.50,"Live":true,"Note":null,"Tags":["x",2]}`
	if err := json.Unmarshal([]byte(input), &details); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := []string{"track", "作曲", "BPM", "Rate", "Live", "Note", "Tags"}
	if got := details.Keys(); !reflect.DeepEqual(got, want) {
		t.Fatalf("keys = %v, want %v", got, want)
	}

	cases := map[string]string{
		"BPM":  "120",
		"Rate": "1.5",
		"Live": "true",
		"Note": "null",
		"Tags": "x,2",
	}
	for key, expected := range cases {
		if got := details.String(key); got != expected {
			t.Fatalf("String(%q) = %q, want %q", key, got, expected)
		}
	}

	encoded, err := json.Marshal(details)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(encoded) != input {
		t.Fatalf("round trip = %s, want %s", encoded, input)
	}
}

func TestDetailsDuplicateKeyKeepsFirstPosition(t *testing.T) {
	var details catalog.Details
	if err := json.Unmarshal([]byte(`{"a":"1","b":"2","a":"3"}`), &details); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(details) != 2 || details[0].Key != "a" || details.String("a") != "3" {
		t.Fatalf("unexpected details: %#v", details)
	}
}

func TestDetailsRejectsNonObject(t *testing.T) {
	var details catalog.Details
	if err := json.Unmarshal([]byte(`["a"]`), &details); err == nil {
		t.Fatal("expected error for array input")
	}
}

func TestDetailsWithout(t *testing.T) {
	details := catalog.Details{
		{Key: "track", Value: "Song"},
		{Key: "作曲", Value: "A"},
		{Key: "album", Value: "X"},
		{Key: "date", Value: "2020"},
	}
	got := details.Without(catalog.FieldTrack, catalog.FieldAlbum, catalog.FieldDate)
	if len(got) != 1 || got[0].Key != "作曲" {
		t.Fatalf("Without = %#v", got)
	}
	if len(details) != 4 {
		t.Fatal("Without mutated the receiver")
	}
}

func TestStringifyNumbersUseShortestForm(t *testing.T) {
	var details catalog.Details
	input := `{"a":1.50,"b":1e3,"c":-0,"d":1e21,"e":0.0000001,"f":120,"g":2.5E-3}`
	if err := json.Unmarshal([]byte(input), &details); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	tests := map[string]string{
		"a": "1.5",
		"b": "1000",
		"c": "0",
		"d": "1e+21",
		"e": "1e-7",
		"f": "120",
		"g": "0.0025",
	}
	for key, want := range tests {
		if got := details.String(key); got != want {
			t.Fatalf("String(%q) = %q, want %q", key, got, want)
		}
	}
	if got := catalog.Stringify([]any{json.Number("2.50"), 3.0}); got != "2.5,3" {
		t.Fatalf("Stringify(array) = %q", got)
	}
}

func TestStringifyObject(t *testing.T) {
	got := catalog.Stringify(map[string]any{"b": 1, "a": "x"})
	if got != `{"a":"x","b":1}` {
		t.Fatalf("Stringify(map) = %q", got)
	}
}

func TestPlayerIDJSON(t *testing.T) {
	track := catalog.Track{FullTitle: "Song"}
	encoded, err := json.Marshal(track)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(encoded) != `{"id":null,"fullTitle":"Song","details":{}}` {
		t.Fatalf("unexpected encoding: %s", encoded)
	}

	var decoded catalog.Track
	if err := json.Unmarshal([]byte(`{"id":"42","fullTitle":"Song"}`), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !decoded.HasID() || decoded.ID != "42" {
		t.Fatalf("unexpected id: %q", decoded.ID)
	}
}
