package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/deusvagus/musicplayer/internal/api"
	"github.com/deusvagus/musicplayer/internal/browser"
	"github.com/deusvagus/musicplayer/internal/catalog"
	"github.com/deusvagus/musicplayer/internal/fields"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var flags searchFlags
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "search [album title query]",
		Short: "Search tracks by album title, field names and field values",
		Example: `  musicplayer search 初光
  musicplayer search --shortcut 作曲 --value "John Smith"
  musicplayer search --field 'vocal|演唱' --field-regex --value alice`,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := ctx.loadBrowser(cmd.Context())
			if err != nil {
				return err
			}
			state, err := flags.state(cmd.Context(), ctx, b, args)
			if err != nil {
				return err
			}
			view := b.Render(state)
			if jsonOutput {
				return writeJSON(cmd, api.SearchResponse{State: state, View: view})
			}
			printSearchView(cmd.OutOrStdout(), view, state, shouldColorize(cmd.OutOrStdout()))
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func printSearchView(out io.Writer, view browser.View, state browser.State, colorize bool) {
	if view.FieldInvalid {
		fmt.Fprintln(out, renderStatusLine("Field regex", statusError, "invalid pattern "+quoteTerm(state.Field), colorize))
	}
	if view.ValueInvalid {
		fmt.Fprintln(out, renderStatusLine("Value regex", statusError, "invalid pattern "+quoteTerm(state.Value), colorize))
	}
	if view.Pill != "" {
		fmt.Fprintln(out, renderStatusLine("Field shortcut", statusInfo, view.Pill, colorize))
	}

	rows := searchRows(view)
	if len(rows) == 0 {
		fmt.Fprintln(out, "No matching tracks")
		return
	}
	fmt.Fprintln(out, renderTable(
		[]column{rightCol("Ref"), {Header: "Album", MaxWidth: 30}, col("Title"), rightCol("ID"), col("Matched")},
		rows,
	))
	fmt.Fprintf(out, "%d tracks in %d albums (%s)\n", view.VisibleTracks, view.VisibleAlbums, view.SortTooltip)
}

func searchRows(view browser.View) [][]string {
	var rows [][]string
	for _, album := range view.Albums {
		if album.Hidden {
			continue
		}
		for _, card := range album.Cards {
			if card.Hidden {
				continue
			}
			id := string(card.ID)
			if card.NoID {
				id = "-"
			}
			rows = append(rows, []string{
				formatRef(card.Ref),
				album.Title,
				card.FullTitle,
				id,
				formatDetails(card.MatchedInfo, "; "),
			})
		}
	}
	return rows
}

func formatDetails(details catalog.Details, sep string) string {
	parts := make([]string, 0, len(details))
	for _, field := range details {
		parts = append(parts, field.Key+": "+catalog.Stringify(field.Value))
	}
	return strings.Join(parts, sep)
}

// formatRef renders a track reference as 1-based album:track.
func formatRef(ref browser.TrackRef) string {
	return fmt.Sprintf("%d:%d", ref.Album+1, ref.Track+1)
}

func quoteTerm(term string) string {
	return fmt.Sprintf("%q", term)
}

func findShortcut(b *browser.Browser, name string) (fields.Option, bool) {
	name = strings.TrimSpace(name)
	for _, opt := range b.Options() {
		if opt.PinKey == name || strings.EqualFold(opt.Label, name) || opt.SearchTerm == name {
			return opt, true
		}
	}
	return fields.Option{}, false
}

func errUnknownShortcut(name string) error {
	return fmt.Errorf("unknown field shortcut %q (run `musicplayer fields` to list them)", name)
}
