package storage

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrInvalidName is returned for file names that would escape the base path
var ErrInvalidName = errors.New("invalid file name")

// localStorage stores media files on the local filesystem
type localStorage struct {
	basePath string
}

// NewLocalStorage creates a new localStorage instance
func NewLocalStorage(basePath string) *localStorage {
	return &localStorage{
		basePath: basePath,
	}
}

// generatePath generates the full file path based on id and mediaType
// It converts underscores in mediaType to path separators
func (s *localStorage) generatePath(id, mediaType string) (string, error) {
	if id == "" || id != filepath.Base(id) || id == "." || id == ".." {
		return "", ErrInvalidName
	}

	typePath := strings.ReplaceAll(mediaType, "_", string(filepath.Separator))
	return filepath.Join(s.basePath, typePath, id), nil
}

// Create creates a new file and returns a WriteCloser
func (s *localStorage) Create(id, mediaType string) (io.WriteCloser, error) {
	path, err := s.generatePath(id, mediaType)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	return os.Create(path)
}

// OpenFile opens a file and returns *os.File
func (s *localStorage) OpenFile(id, mediaType string) (*os.File, error) {
	path, err := s.generatePath(id, mediaType)
	if err != nil {
		return nil, err
	}
	return os.Open(path)
}

// Exists reports whether a file is stored
func (s *localStorage) Exists(id, mediaType string) (bool, error) {
	path, err := s.generatePath(id, mediaType)
	if err != nil {
		return false, err
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}

// Delete removes a file
func (s *localStorage) Delete(id, mediaType string) error {
	path, err := s.generatePath(id, mediaType)
	if err != nil {
		return err
	}
	return os.Remove(path)
}
