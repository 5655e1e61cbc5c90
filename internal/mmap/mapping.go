package mmap

import (
	"errors"
	"io"
	"os"
	"sync/atomic"
)

// Access is a hint about how a mapping will be read.
type Access int

const (
	AccessNormal Access = iota
	AccessSequential
	AccessRandom
)

var (
	// ErrClosed is returned by reads on a closed mapping.
	ErrClosed = errors.New("mmap: mapping closed")
	// ErrTooLarge is returned when the file does not fit the address space.
	ErrTooLarge = errors.New("mmap: file too large")
	// ErrOutOfRange is returned for negative offsets or lengths.
	ErrOutOfRange = errors.New("mmap: range out of bounds")
)

// Option configures Open.
type Option func(*openOptions)

type openOptions struct {
	access Access
}

// WithAccess sets the access hint applied right after mapping.
func WithAccess(a Access) Option {
	return func(o *openOptions) { o.access = a }
}

// Mapping is a read-only view of a file.
type Mapping struct {
	data   []byte
	unmap  func([]byte) error
	closed atomic.Bool
}

// Open maps the whole file at path. Empty files yield an empty mapping
// that holds no OS resources.
func Open(path string, optFns ...Option) (*Mapping, error) {
	opts := openOptions{access: AccessNormal}
	for _, fn := range optFns {
		fn(&opts)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size := fi.Size()
	switch {
	case size == 0:
		return &Mapping{}, nil
	case int64(int(size)) != size:
		return nil, ErrTooLarge
	}

	data, unmap, err := osMap(f, int(size))
	if err != nil {
		return nil, err
	}
	m := &Mapping{data: data, unmap: unmap}
	if opts.access != AccessNormal {
		if err := osAdvise(data, opts.access); err != nil {
			_ = m.Close()
			return nil, err
		}
	}
	return m, nil
}

// Size is the mapped length in bytes.
func (m *Mapping) Size() int64 {
	return int64(len(m.data))
}

// Bytes returns the full mapping, or nil after Close.
func (m *Mapping) Bytes() []byte {
	if m.closed.Load() {
		return nil
	}
	return m.data
}

// Slice returns up to length bytes starting at off. The result is clamped
// to the end of the mapping; an offset at or past the end returns io.EOF.
func (m *Mapping) Slice(off, length int64) ([]byte, error) {
	if m.closed.Load() {
		return nil, ErrClosed
	}
	if off < 0 || length < 0 {
		return nil, ErrOutOfRange
	}
	if off >= m.Size() {
		return nil, io.EOF
	}
	if length > m.Size()-off {
		length = m.Size() - off
	}
	end := off + length
	return m.data[off:end:end], nil
}

// ReadAt implements io.ReaderAt on top of Slice.
func (m *Mapping) ReadAt(p []byte, off int64) (int, error) {
	chunk, err := m.Slice(off, int64(len(p)))
	if err != nil {
		return 0, err
	}
	n := copy(p, chunk)
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Close releases the mapping. Calling it again is a no-op.
func (m *Mapping) Close() error {
	if m.closed.Swap(true) || m.data == nil {
		return nil
	}
	return m.unmap(m.data)
}
