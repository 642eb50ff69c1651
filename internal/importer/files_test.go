package importer

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func TestNaturalLess(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		expected bool
	}{
		{"numeric runs compared as integers", "img2.png", "img10.png", true},
		{"reverse of numeric comparison", "img10.png", "img2.png", false},
		{"leading zeros ignored", "img002.png", "img10.png", true},
		{"equal numbers fall through", "img2.png", "img2.png", false},
		{"case-insensitive letters", "IMG1.png", "img2.png", true},
		{"digits sort before letters", "1.png", "a.png", true},
		{"plain lexicographic", "alpha.png", "beta.png", true},
		{"exhausted prefix sorts first", "img", "img2", true},
		{"digit run beats punctuation", "img1.png", "img.png", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := naturalLess(tc.a, tc.b); got != tc.expected {
				t.Errorf("naturalLess(%q, %q): expected %v, got %v", tc.a, tc.b, tc.expected, got)
			}
		})
	}
}

func TestNaturalSortOrder(t *testing.T) {
	names := []string{"slide10.png", "slide2.png", "slide1.png", "slide20.png", "slide3.png"}
	sort.Slice(names, func(i, j int) bool { return naturalLess(names[i], names[j]) })

	expected := []string{"slide1.png", "slide2.png", "slide3.png", "slide10.png", "slide20.png"}
	for i := range expected {
		if names[i] != expected[i] {
			t.Fatalf("Expected order %v, got %v", expected, names)
		}
	}
}

func TestValidateImageFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "slide.png")
	if err := os.WriteFile(good, []byte("png-bytes"), 0o644); err != nil {
		t.Fatal(err)
	}
	text := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(text, []byte("notes"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := ValidateImageFile(good); err != nil {
		t.Errorf("Expected valid image to pass, got %v", err)
	}
	if err := ValidateImageFile(text); err == nil {
		t.Error("Expected unsupported extension to fail")
	}
	if err := ValidateImageFile(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("Expected missing file to fail")
	}
	if err := ValidateImageFile(dir); err == nil {
		t.Error("Expected directory to fail")
	}
}

func TestScanFolder(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"page10.jpg", "page2.JPG", "page1.png", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "nested.png"), 0o755); err != nil {
		t.Fatal(err)
	}

	files, invalid, err := ScanFolder(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(invalid) != 0 {
		t.Errorf("Expected no invalid files, got %v", invalid)
	}

	expected := []string{"page1.png", "page2.JPG", "page10.jpg"}
	if len(files) != len(expected) {
		t.Fatalf("Expected %d files, got %d: %v", len(expected), len(files), files)
	}
	for i, name := range expected {
		if filepath.Base(files[i]) != name {
			t.Errorf("Position %d: expected %q, got %q", i, name, filepath.Base(files[i]))
		}
	}
}

func TestScanFolder_MissingDirectory(t *testing.T) {
	if _, _, err := ScanFolder(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("Expected error for missing folder")
	}
}
