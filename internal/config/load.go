package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// EnvConfig names a config file when --config is not given.
const EnvConfig = "MIDGARD_NAV_CONFIG"

const configFile = "config.yaml"

// Load builds the navsim configuration. Defaults are overlaid by the config
// file, then by command-line flags, and the result is validated.
func Load() (*Config, error) {
	cfg := Default()

	path, explicit := configSource()
	if path != "" {
		err := loadFromFile(cfg, path)
		switch {
		case err == nil:
		case !explicit && errors.Is(err, os.ErrNotExist):
			// Discovered files may vanish between Stat and read.
		default:
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// configSource picks the config file: --config, then $MIDGARD_NAV_CONFIG,
// then the first existing discovered file. explicit is false only for a
// discovered file.
func configSource() (path string, explicit bool) {
	if p := ConfigPath(); p != "" {
		return p, true
	}
	if p := os.Getenv(EnvConfig); p != "" {
		return p, true
	}
	return findConfigFile(), false
}

// findConfigFile returns ./config.yaml or the one in ConfigDir, whichever
// exists first.
func findConfigFile() string {
	for _, p := range []string{
		filepath.Join(".", configFile),
		filepath.Join(ConfigDir(), configFile),
	} {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// ConfigDir returns the per-user directory navsim reads and saves its
// config in.
func ConfigDir() string {
	home, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "MidgardNav")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "MidgardNav")
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "midgard-nav")
	}
	return filepath.Join(home, ".config", "midgard-nav")
}

// loadFromFile overlays the YAML at path onto cfg. Keys the file leaves
// out keep their current values; unknown keys are an error.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parsing yaml: %w", err)
	}
	return nil
}
