// Package storage owns the on-disk blobs for drop assets. Layout is one
// directory per drop under <root>/drops, holding audio.<ext> and optionally
// cover.<ext>. Object keys are paths relative to the drops root.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"dropgate/internal/constants"
	"dropgate/internal/domain"
)

type ContentStore struct {
	root string
}

func NewContentStore(baseDir string) *ContentStore {
	return &ContentStore{root: filepath.Join(baseDir, constants.DropsDir)}
}

// Save writes data under the drop's directory and returns the object key.
// Overwriting an existing key is legal.
func (s *ContentStore) Save(dropID, name string, data []byte) (string, error) {
	dir := filepath.Join(s.root, dropID)
	if err := EnsureDir(dir); err != nil {
		return "", fmt.Errorf("failed to create drop dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, constants.FilePermissions); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	return dropID + "/" + name, nil
}

// Open returns a reader and the size for a stored object, for streaming
// responses without buffering the whole file.
func (s *ContentStore) Open(objectKey string) (io.ReadCloser, int64, error) {
	path, err := s.resolve(objectKey)
	if err != nil {
		return nil, 0, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, 0, domain.ErrBlobNotFound
	}
	if err != nil {
		return nil, 0, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, err
	}
	return f, info.Size(), nil
}

func (s *ContentStore) Read(objectKey string) ([]byte, error) {
	path, err := s.resolve(objectKey)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, domain.ErrBlobNotFound
	}
	return data, err
}

// DeleteAll removes the drop's whole directory. Absence is not an error.
func (s *ContentStore) DeleteAll(dropID string) error {
	return os.RemoveAll(filepath.Join(s.root, dropID))
}

func (s *ContentStore) Exists(objectKey string) bool {
	path, err := s.resolve(objectKey)
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// resolve rejects keys that would escape the drops root.
func (s *ContentStore) resolve(objectKey string) (string, error) {
	clean := filepath.Clean(objectKey)
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid object key: %s", objectKey)
	}
	return filepath.Join(s.root, clean), nil
}
