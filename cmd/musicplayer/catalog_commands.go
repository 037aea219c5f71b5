package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/deusvagus/musicplayer/internal/api"
	"github.com/deusvagus/musicplayer/internal/browser"
)

func newFieldsCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "fields",
		Short: "List field shortcuts",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := ctx.loadBrowser(cmd.Context())
			if err != nil {
				return err
			}
			opts := b.Options()
			if jsonOutput {
				return writeJSON(cmd, api.FieldsResponse{Options: opts})
			}
			if len(opts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No field shortcuts")
				return nil
			}
			rows := make([][]string, 0, len(opts))
			for _, opt := range opts {
				label := opt.Label
				if opt.Pinned {
					label = "* " + label
				}
				rows = append(rows, []string{label, opt.SearchTerm, strconv.Itoa(len(opt.Originals))})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]column{col("Shortcut"), col("Search term"), rightCol("Fields")},
				rows,
			))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newPersonnelCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "personnel",
		Short: "List personnel quick picks",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := ctx.loadBrowser(cmd.Context())
			if err != nil {
				return err
			}
			names, ok := b.Personnel()
			if jsonOutput {
				if names == nil {
					names = []string{}
				}
				return writeJSON(cmd, api.PersonnelResponse{Available: ok, Names: names})
			}
			out := cmd.OutOrStdout()
			if !ok {
				fmt.Fprintln(out, renderStatusLine("Personnel", statusWarn, "list unavailable", shouldColorize(out)))
				return nil
			}
			for _, name := range names {
				fmt.Fprintln(out, name)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newSuggestCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "suggest <fields|personnel> <input>",
		Short: "Autocomplete a field shortcut or personnel name",
		Long:  "Suggest matches the input against labels, their toneless pinyin and pinyin initials.",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := ctx.loadBrowser(cmd.Context())
			if err != nil {
				return err
			}
			kind := browser.SuggestKind(args[0])
			input := strings.Join(args[1:], " ")
			suggestions, err := b.Suggest(kind, input)
			if err != nil {
				return err
			}
			if jsonOutput {
				if suggestions == nil {
					suggestions = []browser.Suggestion{}
				}
				return writeJSON(cmd, api.SuggestResponse{Kind: kind, Query: input, Suggestions: suggestions})
			}
			out := cmd.OutOrStdout()
			if len(suggestions) == 0 {
				fmt.Fprintln(out, "No suggestions")
				return nil
			}
			for _, s := range suggestions {
				printSuggestion(out, s)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func printSuggestion(out io.Writer, s browser.Suggestion) {
	if s.Value == s.Label {
		fmt.Fprintln(out, s.Label)
		return
	}
	fmt.Fprintf(out, "%s\t%s\n", s.Label, s.Value)
}

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Load the catalog and report what was loaded",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := ctx.loadBrowser(cmd.Context())
			if err != nil {
				return err
			}
			summary := api.FromBrowser(b)
			if jsonOutput {
				return writeJSON(cmd, summary)
			}
			out := cmd.OutOrStdout()
			for _, line := range loadReportLines(summary, shouldColorize(out)) {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
