package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the config file inside a budget directory.
const FileName = "havenly.yaml"

// HomeEnv overrides the default budget directory.
const HomeEnv = "HAVENLY_HOME"

// Config represents the top-level havenly.yaml configuration.
type Config struct {
	Budget   BudgetConfig   `yaml:"budget"`
	Storage  StorageConfig  `yaml:"storage"`
	Activity ActivityConfig `yaml:"activity"`
	Git      GitConfig      `yaml:"git"`
}

// BudgetConfig names the budget.
type BudgetConfig struct {
	Name string `yaml:"name"`
}

// StorageConfig selects where the budget document is kept.
type StorageConfig struct {
	Backend   string        `yaml:"backend"`        // "file" or "sqlite"
	Path      string        `yaml:"path,omitempty"` // relative to the budget directory
	SaveDelay time.Duration `yaml:"save_delay"`
}

// ActivityConfig controls the CSV activity log.
type ActivityConfig struct {
	Enabled bool `yaml:"enabled"`
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a havenly.yaml file from disk. Keys the file omits keep their
// default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default("")
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads dir's havenly.yaml, or returns the defaults if the
// directory has none.
func LoadOrDefault(dir string) (*Config, error) {
	cfg, err := Load(filepath.Join(dir, FileName))
	if errors.Is(err, os.ErrNotExist) {
		return Default(""), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Validate checks values that have a fixed set of choices.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case "file", "sqlite":
	default:
		return fmt.Errorf("config: storage.backend must be file or sqlite, got %q", c.Storage.Backend)
	}
	if c.Storage.SaveDelay < 0 {
		return fmt.Errorf("config: storage.save_delay must not be negative")
	}
	return nil
}

// Default returns a Config with sensible defaults for a new budget.
func Default(name string) *Config {
	return &Config{
		Budget: BudgetConfig{
			Name: name,
		},
		Storage: StorageConfig{
			Backend:   "file",
			SaveDelay: 500 * time.Millisecond,
		},
		Activity: ActivityConfig{
			Enabled: true,
		},
		Git: GitConfig{
			AutoCommit:  false,
			AuthorName:  "Havenly",
			AuthorEmail: "havenly@localhost",
		},
	}
}

// DefaultDir returns the budget directory used when none is given:
// $HAVENLY_HOME, else Havenly under the user config directory.
func DefaultDir() (string, error) {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config dir: %w", err)
	}
	return filepath.Join(base, "Havenly"), nil
}
