package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/deusvagus/musicplayer/internal/browser"
	"github.com/deusvagus/musicplayer/internal/config"
	"github.com/deusvagus/musicplayer/internal/logging"
	"github.com/deusvagus/musicplayer/internal/prefs"
)

type commandContext struct {
	configFlag *string
	sourceFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag, sourceFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		sourceFlag: sourceFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path, source string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		if c.sourceFlag != nil {
			source = strings.TrimSpace(*c.sourceFlag)
		}
		cfg, _, _, err := config.LoadWithSource(path, source)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

// loadBrowser loads the catalog. Fatal load errors carry the single
// initialization failure message.
func (c *commandContext) loadBrowser(ctx context.Context) (*browser.Browser, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	b, err := browser.Load(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("%s%w", browser.FatalPrefix, err)
	}
	return b, nil
}

func (c *commandContext) withPrefs(fn func(*prefs.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := prefs.Open(cfg)
	if err != nil {
		return fmt.Errorf("open preferences: %w", err)
	}
	defer store.Close()
	return fn(store)
}

// theme returns the stored theme, falling back to the default when the
// preference database is unavailable.
func (c *commandContext) theme(ctx context.Context) string {
	theme := prefs.DefaultTheme
	_ = c.withPrefs(func(store *prefs.Store) error {
		value, err := store.Theme(ctx)
		if err == nil {
			theme = value
		}
		return err
	})
	return theme
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
