package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/deusvagus/musicplayer/internal/api"
	"github.com/deusvagus/musicplayer/internal/browser"
	"github.com/deusvagus/musicplayer/internal/catalog"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <album:track>",
		Short: "Show the detail panel of one track",
		Long:  "Show prints a track's metadata and preview player link. The reference is the 1-based Ref column printed by search.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := parseRef(args[0])
			if err != nil {
				return err
			}
			b, err := ctx.loadBrowser(cmd.Context())
			if err != nil {
				return err
			}
			detail, ok := b.Detail(ref)
			if !ok {
				return fmt.Errorf("track %s not found", args[0])
			}
			if jsonOutput {
				return writeJSON(cmd, api.TrackResponse{Detail: detail})
			}
			printDetail(cmd.OutOrStdout(), detail, shouldColorize(cmd.OutOrStdout()))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

// parseRef accepts the 1-based "album:track" form.
func parseRef(value string) (browser.TrackRef, error) {
	albumPart, trackPart, ok := strings.Cut(strings.TrimSpace(value), ":")
	if !ok {
		return browser.TrackRef{}, fmt.Errorf("invalid track reference %q (want album:track)", value)
	}
	album, errAlbum := strconv.Atoi(albumPart)
	track, errTrack := strconv.Atoi(trackPart)
	if errAlbum != nil || errTrack != nil || album < 1 || track < 1 {
		return browser.TrackRef{}, fmt.Errorf("invalid track reference %q (want album:track)", value)
	}
	return browser.TrackRef{Album: album - 1, Track: track - 1}, nil
}

func printDetail(out io.Writer, detail browser.DetailView, colorize bool) {
	title := detail.FullTitle
	if title == "" {
		title = "(untitled)"
	}
	for _, line := range renderSectionHeader(title, colorize) {
		fmt.Fprintln(out, line)
	}
	fmt.Fprintf(out, "Album: %s\n", detail.AlbumTitle)
	fmt.Fprintln(out, detail.IDLabel)

	if len(detail.Fields) > 0 {
		rows := make([][]string, 0, len(detail.Fields))
		for _, field := range detail.Fields {
			rows = append(rows, []string{field.Key, catalog.Stringify(field.Value)})
		}
		fmt.Fprintln(out, renderTable([]column{{Header: "Field", MaxWidth: 30}, col("Value")}, rows))
	}

	if detail.PlayerAvailable {
		fmt.Fprintln(out, renderStatusLine("Player", statusOK, detail.PlayerURL, colorize))
	} else {
		fmt.Fprintln(out, renderStatusLine("Player", statusWarn, detail.Message, colorize))
	}
}
