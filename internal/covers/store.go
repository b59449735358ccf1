// Package covers persists uploaded book cover images on the local filesystem.
//
// Each book owns exactly one file, named after its id, with no extension and
// no content-type metadata. Uploading again for the same id replaces the file.
// In-flight uploads are staged in a hidden sibling directory, so the covers
// directory only ever holds finished covers, even after a crash.
package covers

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// Store writes cover files into a single directory.
type Store struct {
	dir     string
	staging string
}

// NewStore returns a Store rooted at dir. Both dir and its staging
// directory are created lazily by Save.
func NewStore(dir string) *Store {
	dir = filepath.Clean(dir)
	return &Store{
		dir:     dir,
		staging: filepath.Join(filepath.Dir(dir), "."+filepath.Base(dir)+".staging"),
	}
}

// Dir returns the directory covers are written to.
func (s *Store) Dir() string {
	return s.dir
}

// StagingDir returns the directory partial uploads are written to. It shares
// a parent with Dir so the final rename stays on one filesystem.
func (s *Store) StagingDir() string {
	return s.staging
}

// Path returns the deterministic location of the cover for bookID.
func (s *Store) Path(bookID int64) string {
	return filepath.Join(s.dir, strconv.FormatInt(bookID, 10))
}

// Save streams src into the cover file for bookID and returns its path.
// Content is written verbatim. The bytes land in a staging file first and are
// renamed into place, so a reader never sees a partially written cover.
func (s *Store) Save(bookID int64, src io.Reader) (string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("create covers dir: %w", err)
	}
	if err := os.MkdirAll(s.staging, 0755); err != nil {
		return "", fmt.Errorf("create staging dir: %w", err)
	}

	tmpFile, err := os.CreateTemp(s.staging, strconv.FormatInt(bookID, 10)+"-*")
	if err != nil {
		return "", fmt.Errorf("create temp cover: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		tmpFile.Close()
		os.Remove(tmpPath) // no-op once renamed
	}()

	if _, err := io.Copy(tmpFile, src); err != nil {
		return "", fmt.Errorf("write cover: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return "", fmt.Errorf("write cover: %w", err)
	}

	path := s.Path(bookID)
	if err := os.Rename(tmpPath, path); err != nil {
		return "", fmt.Errorf("store cover: %w", err)
	}
	return path, nil
}
