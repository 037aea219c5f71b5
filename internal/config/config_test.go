package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"github.com/deusvagus/musicplayer/internal/config"
)

func TestLoadDefaultConfigUsesEnvSourceAndExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("MUSICPLAYER_SOURCE", "https://example.com/catalog")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantState := filepath.Join(tempHome, ".local", "share", "musicplayer")
	if cfg.Paths.StateDir != wantState {
		t.Fatalf("unexpected state dir: got %q want %q", cfg.Paths.StateDir, wantState)
	}
	if cfg.Source.BaseURL != "https://example.com/catalog" {
		t.Fatalf("expected source from env, got %q", cfg.Source.BaseURL)
	}
	if !cfg.SourceIsRemote() {
		t.Fatal("expected remote source")
	}
	if cfg.Source.ManifestPath != "IDs/manifest.json" {
		t.Fatalf("unexpected manifest path: %q", cfg.Source.ManifestPath)
	}
	if cfg.Source.IDCollisionPolicy != config.CollisionLastWins {
		t.Fatalf("unexpected collision policy: %q", cfg.Source.IDCollisionPolicy)
	}
	if cfg.Server.Bind != "127.0.0.1:7488" {
		t.Fatalf("unexpected bind: %q", cfg.Server.Bind)
	}
	if cfg.PrefsPath() != filepath.Join(wantState, "prefs.db") {
		t.Fatalf("unexpected prefs path: %q", cfg.PrefsPath())
	}
	if cfg.Search.SuggestionLimit != 5 {
		t.Fatalf("unexpected suggestion limit: %d", cfg.Search.SuggestionLimit)
	}
}

func TestLoadCustomPath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("MUSICPLAYER_SOURCE", "")
	dir := t.TempDir()
	catalogDir := filepath.Join(dir, "site")
	configPath := filepath.Join(dir, "custom.toml")
	content := `
[source]
base_url = "` + catalogDir + `"
manifest_path = "/ids/manifest.json/"
max_concurrent_fetches = 2
id_collision_policy = "FIRST_WINS"

[logging]
format = "JSON"
level = "Debug"

[search]
suggestion_limit = 8
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected custom path to be used, got %q exists=%v", resolved, exists)
	}
	if cfg.Source.BaseURL != catalogDir {
		t.Fatalf("unexpected base url: %q", cfg.Source.BaseURL)
	}
	if cfg.SourceIsRemote() {
		t.Fatal("expected local source")
	}
	if cfg.Source.ManifestPath != "ids/manifest.json" {
		t.Fatalf("expected trimmed manifest path, got %q", cfg.Source.ManifestPath)
	}
	if cfg.Source.MaxConcurrentFetches != 2 {
		t.Fatalf("unexpected concurrency: %d", cfg.Source.MaxConcurrentFetches)
	}
	if cfg.Source.IDCollisionPolicy != config.CollisionFirstWins {
		t.Fatalf("unexpected policy: %q", cfg.Source.IDCollisionPolicy)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging config: %+v", cfg.Logging)
	}
	if cfg.Search.SuggestionLimit != 8 {
		t.Fatalf("unexpected suggestion limit: %d", cfg.Search.SuggestionLimit)
	}
}

func TestLoadRequiresSource(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("MUSICPLAYER_SOURCE", "")

	_, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil {
		t.Fatal("expected error when no source configured")
	}
	if !strings.Contains(err.Error(), "source.base_url") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[source\nbase_url = 1"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}

	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if cfg.Source.ManifestPath != "IDs/manifest.json" {
		t.Fatalf("unexpected sample manifest path: %q", cfg.Source.ManifestPath)
	}
	if !strings.Contains(cfg.Player.URLTemplate, "%s") {
		t.Fatalf("sample player template missing placeholder: %q", cfg.Player.URLTemplate)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	valid := func() config.Config {
		cfg := config.Default()
		cfg.Source.BaseURL = "https://example.com"
		return cfg
	}

	base := valid()
	if err := base.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"missing source", func(c *config.Config) { c.Source.BaseURL = "" }},
		{"unknown policy", func(c *config.Config) { c.Source.IDCollisionPolicy = "random" }},
		{"negative timeout", func(c *config.Config) { c.Source.RequestTimeout = -1 }},
		{"negative concurrency", func(c *config.Config) { c.Source.MaxConcurrentFetches = -2 }},
		{"template without placeholder", func(c *config.Config) { c.Player.URLTemplate = "https://player.example" }},
		{"unknown log format", func(c *config.Config) { c.Logging.Format = "xml" }},
		{"unknown log level", func(c *config.Config) { c.Logging.Level = "verbose" }},
		{"bad locale", func(c *config.Config) { c.Search.SortLocale = "not a locale!" }},
		{"negative suggestions", func(c *config.Config) { c.Search.SuggestionLimit = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestEnsureDirectoriesCreatesStateAndLogs(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.StateDir = filepath.Join(base, "state")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.StateDir, cfg.Paths.LogDir} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Fatalf("expected directory %s: %v", dir, err)
		}
	}
}

func TestLoadWithSourceOverridesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("MUSICPLAYER_SOURCE", "")
	missing := filepath.Join(t.TempDir(), "absent.toml")

	if _, _, _, err := config.Load(missing); err == nil {
		t.Fatal("expected missing source to fail validation")
	}
	cfg, _, exists, err := config.LoadWithSource(missing, "  https://example.com/site  ")
	if err != nil {
		t.Fatalf("LoadWithSource returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be reported missing")
	}
	if cfg.Source.BaseURL != "https://example.com/site" || !cfg.SourceIsRemote() {
		t.Fatalf("unexpected source %q", cfg.Source.BaseURL)
	}
}
