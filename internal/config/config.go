// Package config loads and saves the deckforge configuration document: a
// single YAML file read once at startup and written only on explicit save.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"deckforge/internal/profile"
)

// Config is the full persisted configuration. Profile migration runs on
// every load via the profile store, never here.
type Config struct {
	APIKey            string                      `yaml:"api_key"`
	Model             string                      `yaml:"model"`
	NoteType          string                      `yaml:"note_type"`
	CollectionPath    string                      `yaml:"collection_path"`
	ActiveProfile     string                      `yaml:"active_profile"`
	Profiles          map[string]*profile.Profile `yaml:"profiles"`
	AutoOpenMedia     bool                        `yaml:"auto_open_media"`
	BatchSize         int                         `yaml:"batch_size"`
	ValidateOnStartup bool                        `yaml:"validate_on_startup"`
}

// Default returns the factory configuration. Profiles are left empty; the
// profile store seeds the built-ins on first migration.
func Default() *Config {
	return &Config{
		Model:         "gemini-1.5-flash",
		ActiveProfile: profile.KeyMCQ,
		Profiles:      make(map[string]*profile.Profile),
		AutoOpenMedia: true,
		BatchSize:     10,
	}
}

// Dir returns the configuration directory.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "deckforge"), nil
}

// Path returns the configuration file path.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config document, falling back to defaults when it does
// not exist yet, and applies environment overrides (a .env file is honored
// if present).
func Load() (*Config, error) {
	godotenv.Load()

	cfg := Default()

	path, err := Path()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if cfg.Profiles == nil {
		cfg.Profiles = make(map[string]*profile.Profile)
	}
	for key, p := range cfg.Profiles {
		p.Key = key
	}

	cfg.APIKey = getEnvOrDefault("GEMINI_API_KEY", cfg.APIKey)
	cfg.Model = getEnvOrDefault("DECKFORGE_MODEL", cfg.Model)
	cfg.CollectionPath = getEnvOrDefault("DECKFORGE_COLLECTION", cfg.CollectionPath)
	cfg.BatchSize = getEnvAsIntOrDefault("DECKFORGE_BATCH_SIZE", cfg.BatchSize)
	if cfg.BatchSize < 1 {
		cfg.BatchSize = 1
	}

	if cfg.CollectionPath == "" {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		cfg.CollectionPath = filepath.Join(dir, "collection.db")
	}

	return cfg, nil
}

// Store builds the profile store over this config's profile set, running
// the non-destructive migration.
func (c *Config) Store() *profile.Store {
	return profile.NewStore(c.Profiles, c.ActiveProfile)
}

// Save writes the config document. When store is non-nil its profile set
// and active key are synced back into the document first.
func (c *Config) Save(store *profile.Store) error {
	if store != nil {
		c.Profiles = store.Profiles()
		c.ActiveProfile = store.ActiveKey()
	}

	dir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	path, err := Path()
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
