package browser

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/deusvagus/musicplayer/internal/catalog"
	"github.com/deusvagus/musicplayer/internal/textutil"
)

// ExportMode selects what each exported record carries.
type ExportMode string

const (
	// ExportAll exports the full metadata record.
	ExportAll ExportMode = "all"
	// ExportMatched exports the track title plus the matched subset.
	ExportMatched ExportMode = "matched"
)

// ParseExportMode maps a request value to a mode. Empty means all.
func ParseExportMode(value string) (ExportMode, error) {
	switch ExportMode(strings.ToLower(strings.TrimSpace(value))) {
	case "", ExportAll:
		return ExportAll, nil
	case ExportMatched:
		return ExportMatched, nil
	default:
		return "", fmt.Errorf("unknown export mode %q (want all or matched)", value)
	}
}

// Export returns one record per visible card in display order. Every record
// carries the track field.
func (v View) Export(mode ExportMode) []catalog.Details {
	cards := v.VisibleCards()
	records := make([]catalog.Details, 0, len(cards))
	for _, card := range cards {
		records = append(records, exportRecord(card, mode))
	}
	return records
}

func exportRecord(card CardView, mode ExportMode) catalog.Details {
	if mode == ExportMatched {
		record := catalog.Details{{Key: catalog.FieldTrack, Value: card.FullTitle}}
		return append(record, card.subset.Without(catalog.FieldTrack)...)
	}
	record := card.details.Clone()
	if _, ok := record.Get(catalog.FieldTrack); !ok {
		record = append(catalog.Details{{Key: catalog.FieldTrack, Value: card.FullTitle}}, record...)
	}
	return record
}

// ExportJSON encodes Export as an indented JSON array.
func (v View) ExportJSON(mode ExportMode) ([]byte, error) {
	data, err := json.MarshalIndent(v.Export(mode), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}
	return append(data, '\n'), nil
}

// ExportFileName suggests a download name for an export of s.
func ExportFileName(s State, mode ExportMode) string {
	parts := []string{"musicplayer", string(mode)}
	for _, q := range []string{s.General, s.Field, s.Value} {
		if name := textutil.SanitizeFileName(q); name != "" {
			parts = append(parts, name)
		}
	}
	return textutil.SanitizeFileName(strings.Join(parts, "_")) + ".json"
}
