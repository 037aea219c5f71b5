package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/deusvagus/musicplayer/internal/fileutil"
)

//go:embed sample_config.toml
var sampleConfig string

// Source describes where catalog metadata is fetched from. BaseURL is either
// an http(s) URL or a local directory holding the same static tree.
type Source struct {
	BaseURL              string `toml:"base_url"`
	ManifestPath         string `toml:"manifest_path"`
	IDDir                string `toml:"id_dir"`
	DataIndexPath        string `toml:"data_index_path"`
	DataDir              string `toml:"data_dir"`
	PersonnelPath        string `toml:"personnel_path"`
	RequestTimeout       int    `toml:"request_timeout"`
	MaxConcurrentFetches int    `toml:"max_concurrent_fetches"`
	IDCollisionPolicy    string `toml:"id_collision_policy"`
}

// Player contains the preview player embed settings.
type Player struct {
	URLTemplate string `toml:"url_template"`
	Height      int    `toml:"height"`
}

// Server contains the HTTP browser API settings.
type Server struct {
	Bind      string `toml:"bind"`
	StaticDir string `toml:"static_dir"`
}

// Paths contains local state and log directories.
type Paths struct {
	StateDir string `toml:"state_dir"`
	LogDir   string `toml:"log_dir"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Search contains shortcut ordering and autocomplete settings.
type Search struct {
	SortLocale      string `toml:"sort_locale"`
	SuggestionLimit int    `toml:"suggestion_limit"`
}

// Config encapsulates all configuration values.
//
// Configuration sections by subsystem:
//   - Source: metadata manifest, data index, and fetch behaviour
//   - Player: preview player embed URL
//   - Server: browser API bind address and optional static assets
//   - Paths: preference database and log directories
//   - Logging: log format and level
//   - Search: shortcut label collation and autocomplete size
type Config struct {
	Source  Source  `toml:"source"`
	Player  Player  `toml:"player"`
	Server  Server  `toml:"server"`
	Paths   Paths   `toml:"paths"`
	Logging Logging `toml:"logging"`
	Search  Search  `toml:"search"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/musicplayer/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	return LoadWithSource(path, "")
}

// LoadWithSource behaves like Load but replaces source.base_url with source
// when it is non-empty, before normalization and validation.
func LoadWithSource(path, source string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if source = strings.TrimSpace(source); source != "" {
		cfg.Source.BaseURL = source
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("musicplayer.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the state and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.StateDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// PrefsPath returns the preference database location.
func (c *Config) PrefsPath() string {
	return filepath.Join(c.Paths.StateDir, "prefs.db")
}

// LockPath returns the lock file guarding a running browser server.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.StateDir, "serve.lock")
}

// RequestTimeout returns the per-fetch timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Source.RequestTimeout) * time.Second
}

// SourceIsRemote reports whether the metadata source is an http(s) URL.
func (c *Config) SourceIsRemote() bool {
	return isRemoteURL(c.Source.BaseURL)
}

func isRemoteURL(value string) bool {
	lower := strings.ToLower(strings.TrimSpace(value))
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := fileutil.WriteFileAtomic(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
