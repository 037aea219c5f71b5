package api

import (
	"github.com/deusvagus/musicplayer/internal/browser"
)

// FromBrowser summarizes the catalog b serves.
func FromBrowser(b *browser.Browser) LoadSummary {
	if b == nil {
		return LoadSummary{}
	}
	report := b.Report()
	_, personnel := b.Personnel()
	cat := b.Catalog()
	return LoadSummary{
		Albums:             len(cat.Albums),
		Tracks:             cat.TrackCount(),
		Fields:             len(cat.FieldNames()),
		IDFiles:            report.IDFiles,
		DetailFiles:        report.DetailFiles,
		SkippedIDLines:     report.SkippedIDs,
		Collisions:         len(report.Collisions),
		PersonnelAvailable: personnel,
		Failures:           report.Failures,
		DurationMillis:     report.Duration.Milliseconds(),
	}
}
