package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// MaxFileSizeMB is the per-file size ceiling for input images.
const MaxFileSizeMB = 20

var supportedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
}

// SupportedExtensions lists the accepted image extensions for display.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(supportedExtensions))
	for ext := range supportedExtensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// InvalidFile describes an input file that was excluded from a run.
type InvalidFile struct {
	Name   string
	Reason string
}

// ValidateImageFile checks that path is a readable, supported image within
// the size ceiling.
func ValidateImageFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("file not found: %s", path)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("path is not a file: %s", path)
	}
	if sizeMB := float64(info.Size()) / (1024 * 1024); sizeMB > MaxFileSizeMB {
		return fmt.Errorf("file too large (%.1fMB), max %dMB", sizeMB, MaxFileSizeMB)
	}
	if !supportedExtensions[strings.ToLower(filepath.Ext(path))] {
		return fmt.Errorf("unsupported format %s", filepath.Ext(path))
	}
	return nil
}

// ScanFolder collects the supported image files in dir, naturally sorted.
// Files with unsupported extensions are ignored; supported files that fail
// validation are reported but excluded. The run only fails when the valid
// set is empty, which the caller decides.
func ScanFolder(dir string) ([]string, []InvalidFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot read folder: %w", err)
	}

	var valid []string
	var invalid []InvalidFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !supportedExtensions[strings.ToLower(filepath.Ext(name))] {
			continue
		}
		path := filepath.Join(dir, name)
		if err := ValidateImageFile(path); err != nil {
			invalid = append(invalid, InvalidFile{Name: name, Reason: err.Error()})
			continue
		}
		valid = append(valid, path)
	}

	sort.Slice(valid, func(i, j int) bool {
		return naturalLess(filepath.Base(valid[i]), filepath.Base(valid[j]))
	})
	return valid, invalid, nil
}

// naturalLess orders strings with numeric runs compared as integers, so
// "img2" sorts before "img10". Letters compare case-insensitively.
func naturalLess(a, b string) bool {
	ai, bi := 0, 0
	for ai < len(a) && bi < len(b) {
		aDigit := isDigit(a[ai])
		bDigit := isDigit(b[bi])
		switch {
		case aDigit && bDigit:
			aj := ai
			for aj < len(a) && isDigit(a[aj]) {
				aj++
			}
			bj := bi
			for bj < len(b) && isDigit(b[bj]) {
				bj++
			}
			an := strings.TrimLeft(a[ai:aj], "0")
			bn := strings.TrimLeft(b[bi:bj], "0")
			if len(an) != len(bn) {
				return len(an) < len(bn)
			}
			if an != bn {
				return an < bn
			}
			ai, bi = aj, bj
		case aDigit != bDigit:
			// Numeric runs sort before everything else.
			return aDigit
		default:
			al, bl := lowerByte(a[ai]), lowerByte(b[bi])
			if al != bl {
				return al < bl
			}
			ai++
			bi++
		}
	}
	return len(a)-ai < len(b)-bi
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func lowerByte(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
