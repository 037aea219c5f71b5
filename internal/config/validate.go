package config

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSource(); err != nil {
		return err
	}
	if err := c.validatePlayer(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return c.validateSearch()
}

func (c *Config) validateSource() error {
	if c.Source.BaseURL == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/musicplayer/config.toml"
		}
		return fmt.Errorf("source.base_url is required. Set MUSICPLAYER_SOURCE or edit %s (create with 'musicplayer config init')", defaultPath)
	}
	if c.Source.RequestTimeout < 0 {
		return errors.New("source.request_timeout must be positive")
	}
	if c.Source.MaxConcurrentFetches < 0 {
		return errors.New("source.max_concurrent_fetches must be positive")
	}
	switch c.Source.IDCollisionPolicy {
	case CollisionLastWins, CollisionFirstWins:
	default:
		return fmt.Errorf("source.id_collision_policy: unsupported value %q (use %q or %q)",
			c.Source.IDCollisionPolicy, CollisionLastWins, CollisionFirstWins)
	}
	return nil
}

func (c *Config) validatePlayer() error {
	if strings.Count(c.Player.URLTemplate, "%s") != 1 {
		return errors.New("player.url_template must contain exactly one %s placeholder for the track id")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

func (c *Config) validateSearch() error {
	if _, err := language.Parse(c.Search.SortLocale); err != nil {
		return fmt.Errorf("search.sort_locale: %w", err)
	}
	if c.Search.SuggestionLimit < 0 {
		return errors.New("search.suggestion_limit must be positive")
	}
	return nil
}
