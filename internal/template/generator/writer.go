package generator

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/tacogips/scaffold/internal/debug"
)

// Writer performs the filesystem mutations of a run.
type Writer interface {
	// WriteFile creates or truncates path, writes content and applies mode.
	WriteFile(path string, content []byte, mode os.FileMode) error

	// CreateDir creates a directory and any necessary parent directories.
	CreateDir(path string) error

	// RemoveAll removes path and everything below it.
	RemoveAll(path string) error

	// Exists checks if a file or directory exists at the given path.
	Exists(path string) bool

	// IsDir reports whether path exists and is a directory.
	IsDir(path string) bool
}

// FileWriter implements Writer on an afero filesystem.
type FileWriter struct {
	fs afero.Fs
}

// NewFileWriter creates a new FileWriter. A nil fs means the OS filesystem.
func NewFileWriter(fs afero.Fs) *FileWriter {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &FileWriter{fs: fs}
}

// WriteFile writes content to path, replacing any existing file, then
// reapplies the permission bits of mode. Parent directories must exist.
func (w *FileWriter) WriteFile(path string, content []byte, mode os.FileMode) error {
	debug.Debug("[generator] Writing file: %s (size: %d bytes, mode: %o)", path, len(content), mode.Perm())

	perm := mode.Perm()
	if perm == 0 {
		perm = 0644
	}

	f, err := w.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return newIOError(OpWrite, path, err)
	}

	_, err = f.Write(content)
	closeErr := f.Close()
	if err != nil {
		return newIOError(OpWrite, path, err)
	}
	if closeErr != nil {
		return newIOError(OpWrite, path, closeErr)
	}

	// OpenFile only applies perm to new files; an overwritten file keeps its
	// old bits unless they are set explicitly.
	if err := w.fs.Chmod(path, perm); err != nil {
		return newIOError(OpChmod, path, err)
	}

	return nil
}

// CreateDir creates a directory and any necessary parent directories.
// Uses 0755 permissions for created directories.
func (w *FileWriter) CreateDir(path string) error {
	debug.Debug("[generator] Creating directory: %s", path)
	if err := w.fs.MkdirAll(path, 0755); err != nil {
		return newIOError(OpCreate, path, err)
	}
	return nil
}

// RemoveAll removes path recursively. Removing a missing path succeeds.
func (w *FileWriter) RemoveAll(path string) error {
	debug.Debug("[generator] Removing: %s", path)
	if err := w.fs.RemoveAll(path); err != nil {
		return newIOError(OpRemove, path, err)
	}
	return nil
}

// Exists checks if a file or directory exists at the given path.
func (w *FileWriter) Exists(path string) bool {
	_, err := w.fs.Stat(path)
	return err == nil
}

// IsDir reports whether path exists and is a directory.
func (w *FileWriter) IsDir(path string) bool {
	ok, err := afero.IsDir(w.fs, path)
	return err == nil && ok
}

// canonicalize returns an absolute, cleaned form of path. Symbolic links
// are resolved when fs is the OS filesystem.
func canonicalize(fs afero.Fs, path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if _, ok := fs.(*afero.OsFs); ok {
		resolved, err := filepath.EvalSymlinks(abs)
		if err != nil {
			return "", err
		}
		return resolved, nil
	}
	return filepath.Clean(abs), nil
}
