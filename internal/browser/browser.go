package browser

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mozillazg/go-pinyin"

	"github.com/deusvagus/musicplayer/internal/catalog"
	"github.com/deusvagus/musicplayer/internal/config"
	"github.com/deusvagus/musicplayer/internal/fields"
	"github.com/deusvagus/musicplayer/internal/player"
)

// FatalPrefix precedes the single message shown when initialization fails.
const FatalPrefix = "初始化失敗: "

// FatalMessage renders a fatal load error for display.
func FatalMessage(err error) string {
	if err == nil {
		return ""
	}
	return FatalPrefix + err.Error()
}

// Settings configures a Browser.
type Settings struct {
	SortLocale      string
	SuggestionLimit int
	Embed           player.Embed
}

// SettingsFromConfig extracts browser settings from configuration.
func SettingsFromConfig(cfg *config.Config) Settings {
	if cfg == nil {
		d := config.Default()
		cfg = &d
	}
	return Settings{
		SortLocale:      cfg.Search.SortLocale,
		SuggestionLimit: cfg.Search.SuggestionLimit,
		Embed:           player.FromConfig(cfg),
	}
}

// Browser serves views of one immutable catalog.
type Browser struct {
	catalog            *catalog.Catalog
	options            fields.Options
	personnel          []string
	personnelAvailable bool
	report             catalog.Report
	embed              player.Embed
	suggestLimit       int

	fieldIndex     []suggestEntry
	personnelIndex []suggestEntry
}

type suggestEntry struct {
	Suggestion
	lower    string
	pinyin   string
	initials string
}

// New builds shortcut options and suggestion indexes for a load result.
func New(result *catalog.Result, settings Settings) (*Browser, error) {
	if result == nil || result.Catalog == nil {
		return nil, fmt.Errorf("browser: catalog required")
	}
	normalizer, err := fields.NewNormalizer(settings.SortLocale)
	if err != nil {
		return nil, err
	}
	limit := settings.SuggestionLimit
	if limit <= 0 {
		limit = 5
	}
	b := &Browser{
		catalog:            result.Catalog,
		options:            normalizer.Build(result.FieldNames),
		personnel:          append([]string(nil), result.Personnel...),
		personnelAvailable: result.PersonnelAvailable,
		report:             result.Report,
		embed:              settings.Embed,
		suggestLimit:       limit,
	}
	for _, opt := range b.options {
		b.fieldIndex = append(b.fieldIndex, newSuggestEntry(opt.Label, opt.SearchTerm))
	}
	if b.personnelAvailable {
		for _, name := range b.personnel {
			b.personnelIndex = append(b.personnelIndex, newSuggestEntry(name, name))
		}
	}
	return b, nil
}

// Load fetches the catalog described by cfg and builds a browser over it.
func Load(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Browser, error) {
	loader, err := catalog.NewLoaderFromConfig(cfg, logger)
	if err != nil {
		return nil, err
	}
	result, err := loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	return New(result, SettingsFromConfig(cfg))
}

func newSuggestEntry(label, value string) suggestEntry {
	syllables := pinyin.LazyConvert(label, nil)
	var initials strings.Builder
	for _, s := range syllables {
		if s != "" {
			initials.WriteByte(s[0])
		}
	}
	return suggestEntry{
		Suggestion: Suggestion{Label: label, Value: value},
		lower:      strings.ToLower(label),
		pinyin:     strings.Join(syllables, ""),
		initials:   initials.String(),
	}
}

// Catalog returns the catalog being browsed.
func (b *Browser) Catalog() *catalog.Catalog { return b.catalog }

// Options returns the field shortcut options.
func (b *Browser) Options() fields.Options { return b.options }

// Personnel returns the personnel shortcut list and whether it loaded.
func (b *Browser) Personnel() ([]string, bool) {
	return append([]string(nil), b.personnel...), b.personnelAvailable
}

// Report returns the load report.
func (b *Browser) Report() catalog.Report { return b.report }

// Embed returns the preview player settings.
func (b *Browser) Embed() player.Embed { return b.embed }
