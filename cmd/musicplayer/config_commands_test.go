package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/deusvagus/musicplayer/internal/testsupport"
)

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.SampleTree())

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, env.sourceDir+" (directory)")
	requireContains(t, out, "[OK] "+env.configPath)

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected error when config already exists")
	}

	// The sample has no source; validation passes only with --source.
	if _, _, err := runCLI(t, []string{"config", "validate"}, target); err == nil {
		t.Fatal("expected validation error without a source")
	}
	out, _, err = runCLI(t, []string{"--source", env.sourceDir, "config", "validate"}, target)
	if err != nil {
		t.Fatalf("config validate with --source: %v", err)
	}
	requireContains(t, out, "Configuration valid")

	missing := filepath.Join(t.TempDir(), "absent.toml")
	out, _, err = runCLI(t, []string{"--source", env.sourceDir, "config", "validate"}, missing)
	if err != nil {
		t.Fatalf("config validate with missing file: %v", err)
	}
	requireContains(t, out, "missing, defaults used")
}
