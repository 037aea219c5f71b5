package browser

import (
	"fmt"

	"github.com/deusvagus/musicplayer/internal/catalog"
	"github.com/deusvagus/musicplayer/internal/player"
	"github.com/deusvagus/musicplayer/internal/query"
)

// Sort toggle tooltips.
const (
	SortTooltipReversed = "專輯排序 (新→舊)"
	SortTooltipForward  = "專輯排序 (舊→新)"
)

// Card icons.
const (
	IconPlay = "play"
	IconFile = "file"
)

// CardView is one track card.
type CardView struct {
	Ref          TrackRef         `json:"ref"`
	ID           catalog.PlayerID `json:"id"`
	FullTitle    string           `json:"full_title"`
	ChineseTitle string           `json:"chinese_title"`
	EnglishTitle string           `json:"english_title"`
	Icon         string           `json:"icon"`
	NoID         bool             `json:"no_id"`
	Hidden       bool             `json:"hidden"`
	MatchedInfo  catalog.Details  `json:"matched_info,omitempty"`

	details catalog.Details
	subset  catalog.Details
}

// AlbumView is one album section.
type AlbumView struct {
	Index  int        `json:"index"`
	Anchor string     `json:"anchor"`
	Title  string     `json:"title"`
	Hidden bool       `json:"hidden"`
	Cards  []CardView `json:"cards"`
}

// TOCEntry is one table-of-contents link.
type TOCEntry struct {
	Anchor string `json:"anchor"`
	Title  string `json:"title"`
	Hidden bool   `json:"hidden"`
}

// View is everything a front end needs to draw the page.
type View struct {
	Theme         string        `json:"theme"`
	SortTooltip   string        `json:"sort_tooltip"`
	Pill          string        `json:"pill,omitempty"`
	FieldInvalid  bool          `json:"field_invalid"`
	ValueInvalid  bool          `json:"value_invalid"`
	TOC           []TOCEntry    `json:"toc"`
	Albums        []AlbumView   `json:"albums"`
	VisibleAlbums int           `json:"visible_albums"`
	VisibleTracks int           `json:"visible_tracks"`
	Personnel     bool          `json:"personnel_enabled"`
	Detail        *DetailView   `json:"detail,omitempty"`
	Player        player.Widget `json:"player"`
}

// AlbumAnchor returns the stable anchor of the album at catalog index i.
func AlbumAnchor(i int) string {
	return fmt.Sprintf("album-%d", i)
}

// Render computes the view of s. It is a pure function of the catalog and s.
func (b *Browser) Render(s State) View {
	compiled := query.Compile(s.Query())
	v := View{
		Theme:        normalizeTheme(s.Theme),
		SortTooltip:  SortTooltipForward,
		FieldInvalid: s.FieldRegex && compiled.FieldInvalid(),
		ValueInvalid: s.ValueRegex && compiled.ValueInvalid(),
		Personnel:    b.personnelAvailable,
		Player:       s.Player,
	}
	if s.Reversed {
		v.SortTooltip = SortTooltipReversed
	}
	if opt, ok := b.options.Match(s.Field); ok {
		v.Pill = opt.PinKey
	}

	albums := b.catalog.Albums
	v.TOC = make([]TOCEntry, 0, len(albums))
	v.Albums = make([]AlbumView, 0, len(albums))
	for n := range albums {
		i := n
		if s.Reversed {
			i = len(albums) - 1 - n
		}
		album := albums[i]
		general := query.MatchesGeneral(album.Title, s.General)
		v.TOC = append(v.TOC, TOCEntry{Anchor: AlbumAnchor(i), Title: album.Title, Hidden: !general})

		av := AlbumView{
			Index:  i,
			Anchor: AlbumAnchor(i),
			Title:  album.Title,
			Cards:  make([]CardView, 0, len(album.Tracks)),
		}
		visible := 0
		for j, track := range album.Tracks {
			card := newCard(TrackRef{Album: i, Track: j}, track)
			if !general {
				card.Hidden = true
				av.Cards = append(av.Cards, card)
				continue
			}
			result := compiled.Evaluate(track.Details)
			card.Hidden = !result.Matched
			if result.Matched {
				visible++
				card.subset = result.Subset
				if compiled.Active() && len(result.Subset) > 0 {
					card.MatchedInfo = result.Subset
				}
			}
			av.Cards = append(av.Cards, card)
		}
		av.Hidden = !general || visible == 0
		if !av.Hidden {
			v.VisibleAlbums++
			v.VisibleTracks += visible
		}
		v.Albums = append(v.Albums, av)
	}

	if s.Selected != nil {
		if detail, ok := b.Detail(*s.Selected); ok {
			v.Detail = &detail
		}
	}
	return v
}

func newCard(ref TrackRef, track catalog.Track) CardView {
	chinese, english := SplitTitle(track.FullTitle)
	card := CardView{
		Ref:          ref,
		ID:           track.ID,
		FullTitle:    track.FullTitle,
		ChineseTitle: chinese,
		EnglishTitle: english,
		Icon:         IconFile,
		NoID:         !track.HasID(),
		details:      track.Details,
	}
	if track.HasID() {
		card.Icon = IconPlay
	}
	return card
}

// VisibleCards returns the visible cards in display order.
func (v View) VisibleCards() []CardView {
	var out []CardView
	for _, album := range v.Albums {
		if album.Hidden {
			continue
		}
		for _, card := range album.Cards {
			if !card.Hidden {
				out = append(out, card)
			}
		}
	}
	return out
}
