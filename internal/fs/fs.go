// Package fs is the narrow slice of file system access carebook needs to
// write its config, so writers can be tested against memory.
package fs

import (
	"fmt"
	"os"
	"path/filepath"
)

// FS is the file system used by config writers.
type FS interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm os.FileMode) error
	MkdirAll(path string, perm os.FileMode) error
	Stat(path string) (os.FileInfo, error)
	Rename(oldpath, newpath string) error
}

// RealFS implements FS on the operating system.
type RealFS struct{}

func (RealFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (RealFS) WriteFile(path string, data []byte, perm os.FileMode) error {
	return os.WriteFile(path, data, perm)
}

func (RealFS) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (RealFS) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

func (RealFS) Rename(oldpath, newpath string) error {
	return os.Rename(oldpath, newpath)
}

// Default is the shared RealFS.
var Default FS = RealFS{}

// Exists reports whether path can be stat'ed.
func Exists(fsys FS, path string) bool {
	_, err := fsys.Stat(path)
	return err == nil
}

// WriteFileAtomic writes data next to path and renames it into place, creating
// the parent directory when needed. Readers never see a partial file.
func WriteFileAtomic(fsys FS, path string, data []byte, perm os.FileMode) error {
	if err := fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	tmp := path + ".tmp"
	if err := fsys.WriteFile(tmp, data, perm); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := fsys.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
