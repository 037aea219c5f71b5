package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/deusvagus/musicplayer/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}
	configCmd.AddCommand(newConfigInitCommand(), newConfigValidateCommand(ctx))
	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := initTarget(targetPath)
			if err != nil {
				return err
			}
			if !overwrite {
				_, err := os.Stat(target)
				switch {
				case err == nil:
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				case !errors.Is(err, fs.ErrNotExist):
					return fmt.Errorf("check config path: %w", err)
				}
			}
			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Set source.base_url to a catalog URL or directory, or pass --source / export MUSICPLAYER_SOURCE.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func initTarget(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		target, err := config.DefaultConfigPath()
		if err != nil {
			return "", fmt.Errorf("determine default config path: %w", err)
		}
		return target, nil
	}
	target, err := config.ExpandPath(path)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return target, nil
}

// newConfigValidateCommand loads the configuration itself so the root
// pre-run does not fail before a report can be printed.
func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "validate",
		Short:       "Validate configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, resolved, exists, err := config.LoadWithSource(
				strings.TrimSpace(*ctx.configFlag),
				strings.TrimSpace(*ctx.sourceFlag),
			)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("ensure directories: %w", err)
			}
			out := cmd.OutOrStdout()
			printConfigReport(out, cfg, resolved, exists, shouldColorize(out))
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}

func printConfigReport(out io.Writer, cfg *config.Config, path string, exists bool, colorize bool) {
	if exists {
		fmt.Fprintln(out, renderStatusLine("Config file", statusOK, path, colorize))
	} else {
		fmt.Fprintln(out, renderStatusLine("Config file", statusInfo, path+" (missing, defaults used)", colorize))
	}
	sourceKind := "directory"
	if cfg.SourceIsRemote() {
		sourceKind = "remote"
	}
	fmt.Fprintln(out, renderStatusLine("Source", statusOK, fmt.Sprintf("%s (%s)", cfg.Source.BaseURL, sourceKind), colorize))
	fmt.Fprintln(out, renderStatusLine("ID collisions", statusInfo, cfg.Source.IDCollisionPolicy, colorize))
	fmt.Fprintln(out, renderStatusLine("Preferences", statusInfo, cfg.PrefsPath(), colorize))
	fmt.Fprintln(out, renderStatusLine("Logs", statusInfo, cfg.Paths.LogDir, colorize))
}
