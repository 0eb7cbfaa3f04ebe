package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrNotConfigured is returned by every operation of a store whose root directory
// wasn't set at startup.
var ErrNotConfigured = errors.New("files directory is not configured")

// Store is a simple key to bytes service. Keys are relative slash-separated paths.
type Store interface {
	Read(name string) ([]byte, error)
	Write(name string, data []byte) error
}

// New returns a store rooted at dir, or Unconfigured if dir is empty.
func New(dir string) Store {
	if len(dir) == 0 {
		return Unconfigured{}
	}

	return NewDir(dir)
}

// Unconfigured is a store that always fails with ErrNotConfigured.
type Unconfigured struct{}

func (Unconfigured) Read(string) ([]byte, error) {
	return nil, ErrNotConfigured
}

func (Unconfigured) Write(string, []byte) error {
	return ErrNotConfigured
}

// Dir stores files on disk, relative to the root. Names escaping the root are treated
// as absent files.
type Dir struct {
	root string
}

func NewDir(root string) Dir {
	return Dir{root: root}
}

func (d Dir) Read(name string) ([]byte, error) {
	path, err := d.resolve(name)
	if err != nil {
		return nil, err
	}

	return os.ReadFile(path)
}

// Write stores the data, creating intermediate directories as needed.
func (d Dir) Write(name string, data []byte) error {
	path, err := d.resolve(name)
	if err != nil {
		return err
	}

	if err = os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}

func (d Dir) resolve(name string) (string, error) {
	local := filepath.FromSlash(name)
	if !filepath.IsLocal(local) {
		return "", &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}

	return filepath.Join(d.root, local), nil
}
