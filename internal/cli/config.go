package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds user defaults loaded from the config file. Command-line
// flags override config values; config values override built-in
// defaults.
type Config struct {
	// Program is the default Graphviz layout program.
	Program string `toml:"program"`

	// Dir pins the Graphviz installation directory.
	Dir string `toml:"dir"`

	// Format is the default output format.
	Format string `toml:"format"`

	// DPI, Size, and Ratio are default geometry settings.
	DPI   float64 `toml:"dpi"`
	Size  string  `toml:"size"`
	Ratio string  `toml:"ratio"`

	// TimeoutSeconds bounds each Graphviz invocation.
	TimeoutSeconds int `toml:"timeout_seconds"`

	// Embedded selects the bundled WASM engine instead of an external
	// Graphviz program.
	Embedded bool `toml:"embedded"`

	Cache CacheConfig `toml:"cache"`
}

// CacheConfig configures the render cache backend.
type CacheConfig struct {
	// Disabled turns caching off entirely.
	Disabled bool `toml:"disabled"`

	// Dir overrides the XDG cache directory.
	Dir string `toml:"dir"`

	// Redis is a redis address (host:port); when set the cache is
	// stored in redis instead of on disk.
	Redis string `toml:"redis"`

	// TTLMinutes is how long cached renders stay valid. Zero means 24h.
	TTLMinutes int `toml:"ttl_minutes"`
}

// ttl returns the cache entry lifetime.
func (c CacheConfig) ttl() time.Duration {
	if c.TTLMinutes > 0 {
		return time.Duration(c.TTLMinutes) * time.Minute
	}
	return 24 * time.Hour
}

// configPath returns the config file location. DOTFORGE_CONFIG wins,
// then $XDG_CONFIG_HOME/dotforge/config.toml, then
// ~/.config/dotforge/config.toml.
func configPath() (string, error) {
	if p := os.Getenv("DOTFORGE_CONFIG"); p != "" {
		return p, nil
	}
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// loadConfig reads the config file. A missing file yields the zero
// config with no error.
func loadConfig() (Config, error) {
	path, err := configPath()
	if err != nil {
		return Config{}, nil
	}
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
