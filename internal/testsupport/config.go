package testsupport

import (
	"path/filepath"
	"testing"

	"github.com/deusvagus/musicplayer/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The source points at an empty directory unless overridden.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Source.BaseURL = filepath.Join(base, "source")
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Server.Bind = "127.0.0.1:0"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithSource points the config at a metadata tree URL or directory.
func WithSource(location string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Source.BaseURL = location
	}
}

// WithTree writes files below the default source directory.
func WithTree(files Tree) ConfigOption {
	return func(b *configBuilder) {
		WriteTree(b.t, b.cfg.Source.BaseURL, files)
	}
}

// WithCollisionPolicy sets the id collision policy.
func WithCollisionPolicy(policy string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Source.IDCollisionPolicy = policy
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}
