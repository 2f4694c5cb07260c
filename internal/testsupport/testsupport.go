// Package testsupport holds helpers shared by command and integration
// tests.
package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"scribe/internal/config"
)

// WriteConfig materializes cfg as a TOML file under a temp directory and
// returns its path.
func WriteConfig(t *testing.T, cfg config.Config) string {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("encode config: %v", err)
	}
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// TempConfig returns a validated default configuration whose writable paths
// all live under test-owned temp directories, plus the TOML file holding it.
func TempConfig(t *testing.T) (config.Config, string) {
	t.Helper()
	cfg := config.Default()
	cfg.Paths.WorkDir = t.TempDir()
	cfg.Paths.LogDir = t.TempDir()
	cfg.Paths.ModelCacheDir = t.TempDir()
	return cfg, WriteConfig(t, cfg)
}
