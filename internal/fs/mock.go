package fs

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"
)

type mockFileInfo struct {
	name  string
	size  int64
	mode  os.FileMode
	isDir bool
}

func (m *mockFileInfo) Name() string       { return m.name }
func (m *mockFileInfo) Size() int64        { return m.size }
func (m *mockFileInfo) Mode() os.FileMode  { return m.mode }
func (m *mockFileInfo) ModTime() time.Time { return time.Time{} }
func (m *mockFileInfo) IsDir() bool        { return m.isDir }
func (m *mockFileInfo) Sys() interface{}   { return nil }

var errNotFound = errors.New("file not found")

// MockFS is an in-memory FS for tests.
type MockFS struct {
	mu    sync.RWMutex
	files map[string][]byte
	perms map[string]os.FileMode
	dirs  map[string]bool

	// WriteErr, when set, is returned by every WriteFile call.
	WriteErr error
}

func NewMockFS() *MockFS {
	return &MockFS{
		files: make(map[string][]byte),
		perms: make(map[string]os.FileMode),
		dirs:  make(map[string]bool),
	}
}

func (m *MockFS) ReadFile(path string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.files[filepath.Clean(path)]
	if !ok {
		return nil, &os.PathError{Op: "read", Path: path, Err: errNotFound}
	}
	return append([]byte(nil), data...), nil
}

func (m *MockFS) WriteFile(path string, data []byte, perm os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.WriteErr != nil {
		return &os.PathError{Op: "write", Path: path, Err: m.WriteErr}
	}

	clean := filepath.Clean(path)
	m.addDirs(filepath.Dir(clean))
	m.files[clean] = append([]byte(nil), data...)
	m.perms[clean] = perm
	return nil
}

func (m *MockFS) MkdirAll(path string, _ os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addDirs(filepath.Clean(path))
	return nil
}

func (m *MockFS) Stat(path string) (os.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	clean := filepath.Clean(path)
	if data, ok := m.files[clean]; ok {
		return &mockFileInfo{name: filepath.Base(clean), size: int64(len(data)), mode: m.perms[clean]}, nil
	}
	if m.dirs[clean] || clean == "." {
		return &mockFileInfo{name: filepath.Base(clean), mode: 0o755 | os.ModeDir, isDir: true}, nil
	}
	return nil, &os.PathError{Op: "stat", Path: path, Err: errNotFound}
}

func (m *MockFS) Rename(oldpath, newpath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	from, to := filepath.Clean(oldpath), filepath.Clean(newpath)
	data, ok := m.files[from]
	if !ok {
		return &os.PathError{Op: "rename", Path: oldpath, Err: errNotFound}
	}
	m.files[to] = data
	m.perms[to] = m.perms[from]
	delete(m.files, from)
	delete(m.perms, from)
	return nil
}

// AddFile seeds a file.
func (m *MockFS) AddFile(path string, content []byte, perm os.FileMode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	clean := filepath.Clean(path)
	m.files[clean] = append([]byte(nil), content...)
	m.perms[clean] = perm
}

func (m *MockFS) FileExists(path string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.files[filepath.Clean(path)]
	return ok
}

func (m *MockFS) DirExists(path string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.dirs[filepath.Clean(path)]
}

// Caller must hold mu.
func (m *MockFS) addDirs(dir string) {
	for dir != "." && dir != string(filepath.Separator) && !m.dirs[dir] {
		m.dirs[dir] = true
		dir = filepath.Dir(dir)
	}
}
