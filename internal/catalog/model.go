package catalog

import (
	"encoding/json"
	"sort"
)

// PlayerID is the external preview player identifier of a track. The zero
// value means no match was found and encodes as JSON null.
type PlayerID string

// MarshalJSON encodes an empty id as null.
func (id PlayerID) MarshalJSON() ([]byte, error) {
	if id == "" {
		return []byte("null"), nil
	}
	return json.Marshal(string(id))
}

// UnmarshalJSON accepts a string or null.
func (id *PlayerID) UnmarshalJSON(data []byte) error {
	var value *string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	if value == nil {
		*id = ""
		return nil
	}
	*id = PlayerID(*value)
	return nil
}

// Track is a single catalog entry.
type Track struct {
	ID        PlayerID `json:"id"`
	FullTitle string   `json:"fullTitle"`
	Details   Details  `json:"details"`
}

// HasID reports whether a preview player id was resolved.
func (t Track) HasID() bool { return t.ID != "" }

// Album owns an ordered sequence of tracks.
type Album struct {
	Title  string  `json:"title"`
	Tracks []Track `json:"tracks"`
}

// Catalog is the ordered album list built at load time.
type Catalog struct {
	Albums []Album `json:"albums"`
}

// TrackCount returns the number of tracks across all albums.
func (c *Catalog) TrackCount() int {
	if c == nil {
		return 0
	}
	total := 0
	for _, album := range c.Albums {
		total += len(album.Tracks)
	}
	return total
}

// Track returns the track at the given album and track index.
func (c *Catalog) Track(albumIndex, trackIndex int) (Track, bool) {
	if c == nil || albumIndex < 0 || albumIndex >= len(c.Albums) {
		return Track{}, false
	}
	tracks := c.Albums[albumIndex].Tracks
	if trackIndex < 0 || trackIndex >= len(tracks) {
		return Track{}, false
	}
	return tracks[trackIndex], true
}

// FieldNames returns the sorted union of raw field names across all tracks.
func (c *Catalog) FieldNames() []string {
	if c == nil {
		return nil
	}
	seen := map[string]struct{}{}
	for _, album := range c.Albums {
		for _, track := range album.Tracks {
			for _, f := range track.Details {
				seen[f.Key] = struct{}{}
			}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
