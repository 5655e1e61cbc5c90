package fs

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// TempPrefix marks in-flight writes. Listings skip files carrying it.
const TempPrefix = ".tmp-"

// File is a file opened for writing.
type File interface {
	io.WriteCloser
	Sync() error
	Name() string
}

// FileSystem is the set of calls used to write blobs atomically.
type FileSystem interface {
	CreateTemp(dir, pattern string) (File, error)
	Rename(oldpath, newpath string) error
	Remove(name string) error
	MkdirAll(path string, perm os.FileMode) error
}

// LocalFS is FileSystem on the os package.
type LocalFS struct{}

func (LocalFS) CreateTemp(dir, pattern string) (File, error) { return os.CreateTemp(dir, pattern) }
func (LocalFS) Rename(oldpath, newpath string) error         { return os.Rename(oldpath, newpath) }
func (LocalFS) Remove(name string) error                     { return os.Remove(name) }
func (LocalFS) MkdirAll(path string, perm os.FileMode) error { return os.MkdirAll(path, perm) }

// Default is the file system used when none is injected.
var Default FileSystem = LocalFS{}

// IsTemp reports whether a base name belongs to an unfinished AtomicFile.
func IsTemp(base string) bool {
	return strings.HasPrefix(base, TempPrefix)
}

// AtomicFile writes to a sibling temp file and renames it over the target
// on Commit. Readers never observe a partial target.
type AtomicFile struct {
	fsys   FileSystem
	f      File
	target string
	done   bool
}

// CreateAtomic creates the parent directories of target and opens a temp
// file next to it.
func CreateAtomic(fsys FileSystem, target string) (*AtomicFile, error) {
	dir := filepath.Dir(target)
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	f, err := fsys.CreateTemp(dir, TempPrefix+filepath.Base(target)+"-*")
	if err != nil {
		return nil, err
	}
	return &AtomicFile{fsys: fsys, f: f, target: target}, nil
}

func (a *AtomicFile) Write(p []byte) (int, error) {
	if a.done {
		return 0, os.ErrClosed
	}
	return a.f.Write(p)
}

func (a *AtomicFile) Sync() error {
	if a.done {
		return os.ErrClosed
	}
	return a.f.Sync()
}

// Commit syncs, closes and renames the temp file onto the target. On any
// failure the temp file is removed and the target is left untouched.
func (a *AtomicFile) Commit() error {
	if a.done {
		return os.ErrClosed
	}
	a.done = true
	err := a.f.Sync()
	if cerr := a.f.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = a.fsys.Rename(a.f.Name(), a.target)
	}
	if err != nil {
		return errors.Join(err, a.removeTemp())
	}
	return nil
}

// Abort discards the temp file. It is a no-op after Commit.
func (a *AtomicFile) Abort() error {
	if a.done {
		return nil
	}
	a.done = true
	_ = a.f.Close()
	return a.removeTemp()
}

func (a *AtomicFile) removeTemp() error {
	if err := a.fsys.Remove(a.f.Name()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
