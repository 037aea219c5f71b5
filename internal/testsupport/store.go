package testsupport

import (
	"testing"

	"github.com/deusvagus/musicplayer/internal/config"
	"github.com/deusvagus/musicplayer/internal/prefs"
)

// MustOpenPrefs opens a prefs.Store for tests and registers cleanup.
func MustOpenPrefs(t testing.TB, cfg *config.Config) *prefs.Store {
	t.Helper()

	store, err := prefs.Open(cfg)
	if err != nil {
		t.Fatalf("prefs.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
