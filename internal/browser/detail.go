package browser

import (
	"github.com/deusvagus/musicplayer/internal/catalog"
)

// NoSourceMessage is shown in the detail panel of tracks without a player id.
const NoSourceMessage = "此曲目沒有可用的播放源"

// DetailView is the detail panel of one track.
type DetailView struct {
	Ref             TrackRef         `json:"ref"`
	Anchor          string           `json:"anchor"`
	AlbumTitle      string           `json:"album_title"`
	FullTitle       string           `json:"full_title"`
	ID              catalog.PlayerID `json:"id"`
	IDLabel         string           `json:"id_label"`
	Fields          catalog.Details  `json:"fields"`
	PlayerAvailable bool             `json:"player_available"`
	PlayerURL       string           `json:"player_url,omitempty"`
	Message         string           `json:"message,omitempty"`
}

// Detail builds the detail panel for ref.
func (b *Browser) Detail(ref TrackRef) (DetailView, bool) {
	track, ok := b.catalog.Track(ref.Album, ref.Track)
	if !ok {
		return DetailView{}, false
	}
	d := DetailView{
		Ref:        ref,
		Anchor:     AlbumAnchor(ref.Album),
		AlbumTitle: b.catalog.Albums[ref.Album].Title,
		FullTitle:  track.FullTitle,
		ID:         track.ID,
		IDLabel:    "ID: N/A",
		Fields:     track.Details.Without(catalog.FieldTrack, catalog.FieldAlbum, catalog.FieldDate),
	}
	if !track.HasID() {
		d.Message = NoSourceMessage
		return d, true
	}
	d.IDLabel = "ID: " + string(track.ID)
	if url, err := b.embed.URL(string(track.ID)); err == nil {
		d.PlayerAvailable = true
		d.PlayerURL = url
	} else {
		d.Message = NoSourceMessage
	}
	return d, true
}
