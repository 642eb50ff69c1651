package collection

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MediaDir returns the collection's media directory path.
func (s *Store) MediaDir() string { return s.mediaDir }

func (s *Store) ensureMediaDir() error {
	if err := os.MkdirAll(s.mediaDir, 0o755); err != nil {
		return fmt.Errorf("failed to create media directory: %w", err)
	}
	return nil
}

// AddMedia registers a file with the media subsystem: the file is copied
// into the media directory and the stored reference name is returned.
// A name collision with different content gets a fresh suffixed name; an
// identical file is reused as-is.
func (s *Store) AddMedia(srcPath string) (string, error) {
	data, err := os.ReadFile(srcPath)
	if err != nil {
		return "", fmt.Errorf("failed to read media file: %w", err)
	}

	name := filepath.Base(srcPath)
	dest := filepath.Join(s.mediaDir, name)

	if existing, err := os.ReadFile(dest); err == nil {
		if bytes.Equal(existing, data) {
			return name, nil
		}
		ext := filepath.Ext(name)
		stem := strings.TrimSuffix(name, ext)
		name = fmt.Sprintf("%s-%s%s", stem, uuid.NewString()[:8], ext)
		dest = filepath.Join(s.mediaDir, name)
	}

	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to store media file: %w", err)
	}
	return name, nil
}
