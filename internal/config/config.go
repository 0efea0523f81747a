// Package config manages the CLI's durable client-side state: the context
// configuration (platform base URLs) and the persisted session credentials.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultBaseURL is the platform API for local development.
const DefaultBaseURL = "http://localhost:5000"

// configDirName is the directory under $HOME holding all durable CLI state.
const configDirName = ".airvend"

func defaultContext() Context {
	return Context{
		Name:    "local",
		BaseURL: DefaultBaseURL,
	}
}

func defaultConfig() Config {
	ctx := defaultContext()
	return Config{
		Current:  ctx.Name,
		Contexts: map[string]Context{ctx.Name: ctx},
	}
}

// DefaultConfig returns the default configuration for local development.
func DefaultConfig() Config {
	return defaultConfig()
}

// Dir returns the CLI state directory, creating it if needed. The AIRVEND_HOME
// environment variable overrides the default for tests and sandboxing.
func Dir() (string, error) {
	if dir := os.Getenv("AIRVEND_HOME"); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return "", err
		}
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, configDirName)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return dir, nil
}

// ConfigPath returns the path of the context configuration file.
func ConfigPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the configuration, falling back to defaults when the file does
// not exist yet.
func Load() (Config, string, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, "", err
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return defaultConfig(), path, nil
	}
	if err != nil {
		return Config{}, path, err
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, path, err
	}
	if cfg.Contexts == nil || cfg.Current == "" { // minimal fixup
		d := defaultConfig()
		if cfg.Contexts == nil {
			cfg.Contexts = d.Contexts
		}
		if cfg.Current == "" {
			cfg.Current = d.Current
		}
	}
	return cfg, path, nil
}

// Save writes the configuration to disk.
func Save(cfg Config, path string) error {
	if path == "" {
		var err error
		path, err = ConfigPath()
		if err != nil {
			return err
		}
	}
	b, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}

// GetCurrent returns the active context.
func GetCurrent(cfg Config) Context {
	if c, ok := cfg.Contexts[cfg.Current]; ok {
		return c
	}
	return defaultContext()
}

// ResolveBaseURL returns the platform base URL for the active context,
// honoring the AIRVEND_BASE_URL environment override.
func ResolveBaseURL(cfg Config) string {
	if v := os.Getenv("AIRVEND_BASE_URL"); v != "" {
		return v
	}
	if url := GetCurrent(cfg).BaseURL; url != "" {
		return url
	}
	return DefaultBaseURL
}

// RequireContext validates that a named context exists.
func RequireContext(cfg Config, name string) (Context, error) {
	c, ok := cfg.Contexts[name]
	if !ok {
		return Context{}, fmt.Errorf("unknown context: %s", name)
	}
	return c, nil
}
