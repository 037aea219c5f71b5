package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeSource(); err != nil {
		return err
	}
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizePlayer()
	c.normalizeServer()
	c.normalizeLogging()
	c.normalizeSearch()
	return nil
}

func (c *Config) normalizeSource() error {
	if strings.TrimSpace(c.Source.BaseURL) == "" {
		if value, ok := os.LookupEnv("MUSICPLAYER_SOURCE"); ok {
			c.Source.BaseURL = value
		}
	}
	c.Source.BaseURL = strings.TrimSpace(c.Source.BaseURL)
	if c.Source.BaseURL != "" && !isRemoteURL(c.Source.BaseURL) {
		expanded, err := expandPath(c.Source.BaseURL)
		if err != nil {
			return fmt.Errorf("source.base_url: %w", err)
		}
		c.Source.BaseURL = expanded
	}
	c.Source.ManifestPath = trimRelative(c.Source.ManifestPath, defaultManifestPath)
	c.Source.IDDir = trimRelative(c.Source.IDDir, defaultIDDir)
	c.Source.DataIndexPath = trimRelative(c.Source.DataIndexPath, defaultDataIndexPath)
	c.Source.DataDir = trimRelative(c.Source.DataDir, defaultDataDir)
	c.Source.PersonnelPath = trimRelative(c.Source.PersonnelPath, defaultPersonnelPath)
	c.Source.IDCollisionPolicy = strings.ToLower(strings.TrimSpace(c.Source.IDCollisionPolicy))
	if c.Source.IDCollisionPolicy == "" {
		c.Source.IDCollisionPolicy = defaultIDCollisionPolicy
	}
	if c.Source.RequestTimeout == 0 {
		c.Source.RequestTimeout = defaultRequestTimeout
	}
	if c.Source.MaxConcurrentFetches == 0 {
		c.Source.MaxConcurrentFetches = defaultMaxConcurrentFetches
	}
	return nil
}

func trimRelative(value, fallback string) string {
	value = strings.Trim(strings.TrimSpace(value), "/")
	if value == "" {
		return fallback
	}
	return value
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizePlayer() {
	c.Player.URLTemplate = strings.TrimSpace(c.Player.URLTemplate)
	if c.Player.URLTemplate == "" {
		c.Player.URLTemplate = defaultPlayerURLTemplate
	}
	if c.Player.Height <= 0 {
		c.Player.Height = defaultPlayerHeight
	}
}

func (c *Config) normalizeServer() {
	c.Server.Bind = strings.TrimSpace(c.Server.Bind)
	if c.Server.Bind == "" {
		c.Server.Bind = defaultServerBind
	}
	if dir := strings.TrimSpace(c.Server.StaticDir); dir != "" {
		if expanded, err := expandPath(dir); err == nil {
			c.Server.StaticDir = expanded
		}
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func (c *Config) normalizeSearch() {
	c.Search.SortLocale = strings.TrimSpace(c.Search.SortLocale)
	if c.Search.SortLocale == "" {
		c.Search.SortLocale = defaultSortLocale
	}
	if c.Search.SuggestionLimit == 0 {
		c.Search.SuggestionLimit = defaultSuggestionLimit
	}
}
