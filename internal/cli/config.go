package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/shikhar5647/sfiles/pkg/errors"
	"github.com/shikhar5647/sfiles/pkg/pipeline"
)

// Config holds the user configuration loaded from
// ~/.config/sfiles/config.toml. Command-line flags override it.
type Config struct {
	// Formats are the default render formats for --format.
	Formats []string `toml:"formats"`

	// Rankdir is the default Graphviz layout direction.
	Rankdir string `toml:"rankdir"`

	// Server settings for the serve command.
	Server ServerConfig `toml:"server"`
}

// ServerConfig configures the serve command's backends.
type ServerConfig struct {
	Addr     string `toml:"addr"`      // listen address, e.g. ":8080"
	RedisURL string `toml:"redis_url"` // optional redis cache, e.g. "localhost:6379"
	MongoURI string `toml:"mongo_uri"` // optional archive, e.g. "mongodb://localhost:27017"
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Rankdir: pipeline.DefaultRankdir,
		Server:  ServerConfig{Addr: ":8080"},
	}
}

// LoadConfig reads the TOML config at path, or the default location when
// path is empty. A missing file is not an error and yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		var err error
		if path, err = configPath(); err != nil {
			return cfg, nil
		}
	}

	meta, err := toml.DecodeFile(path, &cfg)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return DefaultConfig(), errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return DefaultConfig(), errors.New(errors.ErrCodeInvalidConfig, "unknown key %q in %s", undecoded[0], path)
	}
	if err := pipeline.ValidateFormats(cfg.Formats); err != nil {
		return DefaultConfig(), errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid formats in %s", path)
	}
	return cfg, nil
}

// configPath returns the config file location using the XDG standard
// (~/.config/sfiles/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
