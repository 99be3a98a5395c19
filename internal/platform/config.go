package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// ConfigFileName is the project configuration file looked up by FindRoot.
	ConfigFileName = "quill.yaml"
	// SystemDir is the default data directory under the user's home.
	SystemDir = ".quill"
	// DefaultFileName is the notes file used by the fs adapter.
	DefaultFileName = "notes.json"
	// DefaultDBName is the database file used by the bolt adapter.
	DefaultDBName = "notes.db"
	// EnvPath overrides the configured notes location.
	EnvPath = "QUILL_PATH"
)

// Config is the content of quill.yaml.
type Config struct {
	Path        string `yaml:"path,omitempty"`
	Adapter     string `yaml:"adapter,omitempty"`
	EventBuffer int    `yaml:"event_buffer,omitempty"`
	ReadOnly    bool   `yaml:"read_only,omitempty"`
}

// LoadConfig finds the nearest quill.yaml above dir and parses it. A missing
// file yields a zero Config. Relative paths are resolved against the
// directory holding the file. The QUILL_PATH environment variable, when
// set, replaces Path.
func LoadConfig(dir string) (Config, error) {
	var cfg Config

	if root, err := FindRoot(dir); err == nil {
		file := filepath.Join(root, ConfigFileName)
		data, err := os.ReadFile(file)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("invalid %s: %w", file, err)
			}
			if cfg.Path != "" && !filepath.IsAbs(cfg.Path) {
				cfg.Path = filepath.Join(root, cfg.Path)
			}
		case !errors.Is(err, os.ErrNotExist):
			return Config{}, err
		}
	}

	if env := os.Getenv(EnvPath); env != "" {
		cfg.Path = env
	}
	return cfg, nil
}

// WriteConfig creates quill.yaml in dir. It refuses to overwrite an
// existing file.
func WriteConfig(dir string, cfg Config) (string, error) {
	file := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(file); err == nil {
		return "", fmt.Errorf("%s already exists", file)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(file, data, 0o644); err != nil {
		return "", err
	}
	return file, nil
}

// Options converts the file settings to functional options. Explicit
// options passed after these take precedence.
func (c Config) Options() []Option {
	var opts []Option
	if c.Adapter != "" {
		opts = append(opts, WithAdapter(c.Adapter))
	}
	if c.EventBuffer > 0 {
		opts = append(opts, WithEventBuffer(c.EventBuffer))
	}
	if c.ReadOnly {
		opts = append(opts, WithReadOnly(true))
	}
	return opts
}

// DefaultPath returns the notes location used when none is configured:
// ~/.quill/notes.json, or notes.db for the bolt adapter.
func DefaultPath(adapter string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	name := DefaultFileName
	if adapter == AdapterBolt {
		name = DefaultDBName
	}
	return filepath.Join(home, SystemDir, name), nil
}
