package config

import (
	"os"
	"path/filepath"
	"testing"

	"deckforge/internal/profile"
)

// isolateHome points the config paths at a temp directory and clears the
// environment overrides so tests see only what they set.
func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("DECKFORGE_MODEL", "")
	t.Setenv("DECKFORGE_COLLECTION", "")
	t.Setenv("DECKFORGE_BATCH_SIZE", "")
	return home
}

func TestLoad_DefaultsWhenNoConfigFile(t *testing.T) {
	home := isolateHome(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Model != "gemini-1.5-flash" {
		t.Errorf("Expected default model 'gemini-1.5-flash', got %q", cfg.Model)
	}
	if cfg.ActiveProfile != profile.KeyMCQ {
		t.Errorf("Expected default active profile %q, got %q", profile.KeyMCQ, cfg.ActiveProfile)
	}
	if cfg.BatchSize != 10 {
		t.Errorf("Expected default batch size 10, got %d", cfg.BatchSize)
	}
	if !cfg.AutoOpenMedia {
		t.Error("Expected auto-open media enabled by default")
	}
	wantPath := filepath.Join(home, ".config", "deckforge", "collection.db")
	if cfg.CollectionPath != wantPath {
		t.Errorf("Expected default collection path %q, got %q", wantPath, cfg.CollectionPath)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolateHome(t)
	t.Setenv("GEMINI_API_KEY", "AIzaSyTestKey")
	t.Setenv("DECKFORGE_MODEL", "gemini-2.0-flash")
	t.Setenv("DECKFORGE_COLLECTION", "/data/my.db")
	t.Setenv("DECKFORGE_BATCH_SIZE", "25")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	if cfg.APIKey != "AIzaSyTestKey" {
		t.Errorf("Expected API key from env, got %q", cfg.APIKey)
	}
	if cfg.Model != "gemini-2.0-flash" {
		t.Errorf("Expected model from env, got %q", cfg.Model)
	}
	if cfg.CollectionPath != "/data/my.db" {
		t.Errorf("Expected collection path from env, got %q", cfg.CollectionPath)
	}
	if cfg.BatchSize != 25 {
		t.Errorf("Expected batch size 25, got %d", cfg.BatchSize)
	}
}

func TestLoad_BatchSizeIsFlooredAtOne(t *testing.T) {
	isolateHome(t)
	t.Setenv("DECKFORGE_BATCH_SIZE", "0")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BatchSize != 1 {
		t.Errorf("Expected batch size floored to 1, got %d", cfg.BatchSize)
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	isolateHome(t)

	cfg := Default()
	cfg.APIKey = "AIzaSyRoundtrip"
	cfg.NoteType = "My Notes"

	store := cfg.Store()
	custom, err := store.NewBlank("Histology", profile.FormatFrontBack)
	if err != nil {
		t.Fatal(err)
	}
	custom.Prompt = "generate histology cards"
	if err := store.SetActive(custom.Key); err != nil {
		t.Fatal(err)
	}

	if err := cfg.Save(store); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	path, err := Path()
	if err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Expected config file at %s: %v", path, err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("Expected mode 0600, got %v", info.Mode().Perm())
	}

	loaded, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if loaded.APIKey != "AIzaSyRoundtrip" {
		t.Errorf("Expected API key to roundtrip, got %q", loaded.APIKey)
	}
	if loaded.NoteType != "My Notes" {
		t.Errorf("Expected note type to roundtrip, got %q", loaded.NoteType)
	}
	if loaded.ActiveProfile != custom.Key {
		t.Errorf("Expected active profile %q, got %q", custom.Key, loaded.ActiveProfile)
	}

	p, ok := loaded.Profiles[custom.Key]
	if !ok {
		t.Fatalf("Expected custom profile %q in loaded config", custom.Key)
	}
	if p.Key != custom.Key {
		t.Errorf("Expected key backfilled on load, got %q", p.Key)
	}
	if p.Prompt != "generate histology cards" {
		t.Errorf("Expected prompt to roundtrip, got %q", p.Prompt)
	}
	if p.Format != profile.FormatFrontBack {
		t.Errorf("Expected format to roundtrip, got %q", p.Format)
	}
}

func TestGetEnvOrDefault(t *testing.T) {
	tests := []struct {
		name       string
		envValue   string
		defaultVal string
		expected   string
	}{
		{"env set", "from-env", "fallback", "from-env"},
		{"env empty", "", "fallback", "fallback"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("DECKFORGE_TEST_VAR", tc.envValue)
			if got := getEnvOrDefault("DECKFORGE_TEST_VAR", tc.defaultVal); got != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestGetEnvAsIntOrDefault(t *testing.T) {
	tests := []struct {
		name       string
		envValue   string
		defaultVal int
		expected   int
	}{
		{"valid int", "42", 7, 42},
		{"empty", "", 7, 7},
		{"not a number", "abc", 7, 7},
		{"negative", "-3", 7, -3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("DECKFORGE_TEST_INT", tc.envValue)
			if got := getEnvAsIntOrDefault("DECKFORGE_TEST_INT", tc.defaultVal); got != tc.expected {
				t.Errorf("Expected %d, got %d", tc.expected, got)
			}
		})
	}
}
