// Package storage persists uploaded media files on local disk. The
// stored path is what gets persisted on the post and served back under
// /media/.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// MediaStore writes uploads under a base directory.
type MediaStore struct {
	dir string
}

func NewMediaStore(dir string) *MediaStore { return &MediaStore{dir: dir} }

// Save stores the reader's content under posts/<uuid><ext>, where ext
// is derived from the original file name, and returns that relative
// path.
func (s *MediaStore) Save(r io.Reader, originalName string) (string, error) {
	ext := filepath.Ext(originalName)
	rel := filepath.Join("posts", uuid.New().String()+ext)
	abs := filepath.Join(s.dir, rel)
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}
	f, err := os.Create(abs)
	if err != nil {
		return "", fmt.Errorf("create media file: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("write media file: %w", err)
	}
	return rel, nil
}

// Path resolves a stored relative path to its on-disk location.
func (s *MediaStore) Path(rel string) string { return filepath.Join(s.dir, rel) }

// Dir returns the base media directory (used by the static route).
func (s *MediaStore) Dir() string { return s.dir }
