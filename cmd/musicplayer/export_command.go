package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/deusvagus/musicplayer/internal/browser"
	"github.com/deusvagus/musicplayer/internal/config"
	"github.com/deusvagus/musicplayer/internal/fileutil"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var flags searchFlags
	var modeFlag string
	var outputPath string

	cmd := &cobra.Command{
		Use:   "export [album title query]",
		Short: "Export the tracks matching a search as JSON",
		Long: `Export writes one JSON object per matching track, in display order.

Mode "all" writes each track's full metadata. Mode "matched" writes the track
title plus only the fields that satisfied the field and value queries.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := browser.ParseExportMode(modeFlag)
			if err != nil {
				return err
			}
			b, err := ctx.loadBrowser(cmd.Context())
			if err != nil {
				return err
			}
			state, err := flags.state(cmd.Context(), ctx, b, args)
			if err != nil {
				return err
			}
			view := b.Render(state)
			data, err := view.ExportJSON(mode)
			if err != nil {
				return err
			}

			target := strings.TrimSpace(outputPath)
			if target == "-" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if target == "" {
				target = browser.ExportFileName(state, mode)
			} else if target, err = config.ExpandPath(target); err != nil {
				return fmt.Errorf("resolve output path: %w", err)
			}
			if err := fileutil.WriteFileVerified(target, data, 0o644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			abs, err := filepath.Abs(target)
			if err != nil {
				abs = target
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d tracks to %s\n", view.VisibleTracks, abs)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&modeFlag, "mode", "m", string(browser.ExportAll), "Export mode: all or matched")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file (default: derived from the query, - for stdout)")
	return cmd
}
