package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the persisted defaults, overridable per invocation by flags.
type Config struct {
	Addr     string
	Theme    string
	Curved   bool
	Debounce time.Duration
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Addr:     ":8650",
		Theme:    "light",
		Debounce: 500 * time.Millisecond,
	}
}

// configPath is the well-known config file location.
func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".classview.yaml"), nil
}

// LoadConfig reads the config file at path, or the well-known location when
// path is empty. A missing file yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		var err error
		if path, err = configPath(); err != nil {
			return cfg, nil
		}
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := parseConfig(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// parseConfig overlays the file's values onto cfg; absent keys keep their
// defaults. Durations are written as Go duration strings ("250ms").
func parseConfig(data []byte, cfg *Config) error {
	var raw struct {
		Addr     string `yaml:"addr"`
		Theme    string `yaml:"theme"`
		Curved   *bool  `yaml:"curved"`
		Debounce string `yaml:"debounce"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Addr != "" {
		cfg.Addr = raw.Addr
	}
	if raw.Theme != "" {
		if raw.Theme != "light" && raw.Theme != "dark" {
			return fmt.Errorf("unknown theme %q", raw.Theme)
		}
		cfg.Theme = raw.Theme
	}
	if raw.Curved != nil {
		cfg.Curved = *raw.Curved
	}
	if raw.Debounce != "" {
		d, err := time.ParseDuration(raw.Debounce)
		if err != nil {
			return fmt.Errorf("debounce: %w", err)
		}
		if d < 0 {
			return errors.New("debounce must not be negative")
		}
		cfg.Debounce = d
	}
	return nil
}
