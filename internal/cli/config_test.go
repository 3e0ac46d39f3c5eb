package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shikhar5647/sfiles/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
formats = ["svg", "png"]
rankdir = "TB"

[server]
addr = ":9090"
redis_url = "localhost:6379"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if len(cfg.Formats) != 2 || cfg.Formats[0] != "svg" {
		t.Errorf("Formats = %v", cfg.Formats)
	}
	if cfg.Rankdir != "TB" {
		t.Errorf("Rankdir = %q, want TB", cfg.Rankdir)
	}
	if cfg.Server.Addr != ":9090" || cfg.Server.RedisURL != "localhost:6379" {
		t.Errorf("Server = %+v", cfg.Server)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("missing config should not error: %v", err)
	}
	if cfg.Rankdir != DefaultConfig().Rankdir || cfg.Server.Addr != ":8080" {
		t.Errorf("missing config should yield defaults, got %+v", cfg)
	}
}

func TestLoadConfigUnknownKey(t *testing.T) {
	path := writeConfig(t, `colour = "red"`)

	_, err := LoadConfig(path)
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Fatalf("unknown key should fail with INVALID_CONFIG, got %v", err)
	}
}

func TestLoadConfigInvalidFormat(t *testing.T) {
	path := writeConfig(t, `formats = ["pdf"]`)

	_, err := LoadConfig(path)
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Fatalf("invalid format should fail with INVALID_CONFIG, got %v", err)
	}
}

func TestLoadConfigMalformedTOML(t *testing.T) {
	path := writeConfig(t, `formats = [`)

	_, err := LoadConfig(path)
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Fatalf("malformed TOML should fail with INVALID_CONFIG, got %v", err)
	}
}
