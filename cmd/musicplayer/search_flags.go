package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/deusvagus/musicplayer/internal/api"
	"github.com/deusvagus/musicplayer/internal/browser"
	"github.com/deusvagus/musicplayer/internal/prefs"
)

// searchFlags mirrors the three search inputs and their toggles.
type searchFlags struct {
	field      string
	value      string
	fieldRegex bool
	valueRegex bool
	reversed   bool
	last       bool
	personnel  []string
	shortcut   string
}

func (f *searchFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.field, "field", "f", "", "Field name query (space separated terms are OR)")
	flags.StringVarP(&f.value, "value", "v", "", "Field value query (space separated terms are AND)")
	flags.BoolVar(&f.fieldRegex, "field-regex", false, "Treat the field query as a regular expression")
	flags.BoolVar(&f.valueRegex, "value-regex", false, "Treat the value query as a regular expression")
	flags.BoolVar(&f.reversed, "reversed", false, "List albums newest first")
	flags.BoolVar(&f.last, "last", false, "Reuse the last stored album title query")
	flags.StringArrayVarP(&f.personnel, "person", "p", nil, "Append a personnel name to the value query (repeatable)")
	flags.StringVarP(&f.shortcut, "shortcut", "s", "", "Use a field shortcut by pin key or label (e.g. 作曲)")
}

// state builds the browser state the flags describe. A non-empty general
// query is remembered as the last query.
func (f *searchFlags) state(ctx context.Context, cc *commandContext, b *browser.Browser, args []string) (browser.State, error) {
	general := strings.Join(args, " ")
	if general == "" && f.last {
		_ = cc.withPrefs(func(store *prefs.Store) error {
			value, err := store.Get(ctx, prefs.KeyLastQuery)
			if err == nil {
				general = value
			}
			return nil
		})
	}

	params := api.SearchParams{
		General:    general,
		Field:      f.field,
		Value:      f.value,
		FieldRegex: f.fieldRegex,
		ValueRegex: f.valueRegex,
		Reversed:   f.reversed,
	}
	s := params.State(cc.theme(ctx))
	if f.shortcut != "" {
		opt, ok := findShortcut(b, f.shortcut)
		if !ok {
			return browser.State{}, errUnknownShortcut(f.shortcut)
		}
		s = s.SelectShortcut(opt)
	}
	for _, name := range f.personnel {
		s = s.SelectPersonnel(strings.TrimSpace(name))
	}
	s = s.BlurField(b.Options())

	if strings.TrimSpace(general) != "" {
		_ = cc.withPrefs(func(store *prefs.Store) error {
			return store.Set(ctx, prefs.KeyLastQuery, general)
		})
	}
	return s, nil
}
