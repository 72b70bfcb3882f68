// Package media stores uploaded post images on disk.
package media

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const URLPrefix = "/media/"

type Storage interface {
	// Save writes data under dir and returns the stored path relative to the media root.
	Save(dir, ext string, data []byte) (string, error)
	Delete(name string) error
	URL(name string) string
}

type FileSystem struct {
	Root string
}

func NewFileSystem(root string) (*FileSystem, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("could not create media root: %w", err)
	}
	return &FileSystem{Root: root}, nil
}

func (fs *FileSystem) Save(dir, ext string, data []byte) (string, error) {
	if err := os.MkdirAll(filepath.Join(fs.Root, dir), 0o755); err != nil {
		return "", fmt.Errorf("could not create media dir: %w", err)
	}

	name := path.Join(dir, uuid.NewString()+ext)
	if err := os.WriteFile(fs.path(name), data, 0o644); err != nil {
		return "", fmt.Errorf("could not save media file: %w", err)
	}
	return name, nil
}

func (fs *FileSystem) Delete(name string) error {
	if name == "" {
		return nil
	}
	if err := os.Remove(fs.path(name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("could not delete media file: %w", err)
	}
	return nil
}

func (fs *FileSystem) URL(name string) string {
	if name == "" {
		return ""
	}
	return URLPrefix + strings.TrimPrefix(name, "/")
}

func (fs *FileSystem) path(name string) string {
	return filepath.Join(fs.Root, filepath.FromSlash(path.Clean("/"+name)))
}
