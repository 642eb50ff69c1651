package tui

import (
	"testing"
	"unicode/utf8"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{"short string unchanged", "hello", 10, "hello"},
		{"exact length unchanged", "hello", 5, "hello"},
		{"long string ellipsized", "hello world", 8, "hello..."},
		{"tiny budget hard-cut", "hello", 3, "hel"},
		{"status glyphs counted as runes", "✓ created 3 cards", 30, "✓ created 3 cards"},
		{"multi-byte cut keeps whole runes", "✓✓✓✓✓✓", 4, "✓..."},
		{"tiny budget with glyphs", "⚠⚠⚠⚠", 2, "⚠⚠"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := truncate(tc.input, tc.maxLen)
			if got != tc.expected {
				t.Errorf("truncate(%q, %d): expected %q, got %q", tc.input, tc.maxLen, tc.expected, got)
			}
			if !utf8.ValidString(got) {
				t.Errorf("truncate(%q, %d) produced invalid UTF-8: %q", tc.input, tc.maxLen, got)
			}
		})
	}
}
