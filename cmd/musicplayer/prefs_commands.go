package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/deusvagus/musicplayer/internal/api"
	"github.com/deusvagus/musicplayer/internal/browser"
	"github.com/deusvagus/musicplayer/internal/prefs"
)

func newPrefsCommand(ctx *commandContext) *cobra.Command {
	prefsCmd := &cobra.Command{
		Use:   "prefs",
		Short: "Manage stored preferences",
	}
	prefsCmd.AddCommand(newPrefsListCommand(ctx))
	prefsCmd.AddCommand(newPrefsGetCommand(ctx))
	prefsCmd.AddCommand(newPrefsSetCommand(ctx))
	prefsCmd.AddCommand(newPrefsDeleteCommand(ctx))
	prefsCmd.AddCommand(newPrefsThemeCommand(ctx))
	return prefsCmd
}

func newPrefsListCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withPrefs(func(store *prefs.Store) error {
				items, err := store.List(cmd.Context())
				if err != nil {
					return err
				}
				if jsonOutput {
					if items == nil {
						items = []prefs.Entry{}
					}
					return writeJSON(cmd, api.PrefsListResponse{Items: items})
				}
				if len(items) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No preferences stored")
					return nil
				}
				rows := make([][]string, 0, len(items))
				for _, item := range items {
					rows = append(rows, []string{item.Key, item.Value, item.UpdatedAt.Local().Format("2006-01-02 15:04")})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]column{col("Key"), col("Value"), col("Updated")}, rows))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newPrefsGetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print one preference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withPrefs(func(store *prefs.Store) error {
				var (
					value string
					err   error
				)
				if args[0] == prefs.KeyTheme {
					value, err = store.Theme(cmd.Context())
				} else {
					value, err = store.Get(cmd.Context(), args[0])
				}
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), value)
				return nil
			})
		},
	}
}

func newPrefsSetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Store one preference",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value := strings.Join(args[1:], " ")
			return ctx.withPrefs(func(store *prefs.Store) error {
				if args[0] == prefs.KeyTheme {
					return store.SetTheme(cmd.Context(), value)
				}
				return store.Set(cmd.Context(), args[0], value)
			})
		},
	}
}

func newPrefsDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <key>",
		Short: "Remove one preference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withPrefs(func(store *prefs.Store) error {
				err := store.Delete(cmd.Context(), args[0])
				if errors.Is(err, prefs.ErrNotFound) {
					fmt.Fprintf(cmd.OutOrStdout(), "Preference %s was not set\n", args[0])
					return nil
				}
				return err
			})
		},
	}
}

func newPrefsThemeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "theme [dark|light|toggle]",
		Short: "Show, set or toggle the theme",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withPrefs(func(store *prefs.Store) error {
				current, err := store.Theme(cmd.Context())
				if err != nil {
					return err
				}
				if len(args) == 1 {
					next := args[0]
					if strings.EqualFold(next, "toggle") {
						next = browser.NewState(current).ToggleTheme().Theme
					}
					if err := store.SetTheme(cmd.Context(), next); err != nil {
						return err
					}
					if current, err = store.Theme(cmd.Context()); err != nil {
						return err
					}
				}
				fmt.Fprintln(cmd.OutOrStdout(), current)
				return nil
			})
		},
	}
}
