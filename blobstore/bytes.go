package blobstore

import (
	"bytes"
	"context"
	"io"
	"os"
)

// BytesBlob is a Blob over an immutable byte slice.
type BytesBlob struct {
	data []byte
}

// NewBytesBlob wraps data without copying. Callers must not mutate data afterwards.
func NewBytesBlob(data []byte) *BytesBlob {
	return &BytesBlob{data: data}
}

// ReadAt copies from off into p, returning io.EOF on a short read.
func (b *BytesBlob) ReadAt(_ context.Context, p []byte, off int64) (int, error) {
	chunk, err := sliceRange(b.data, off, int64(len(p)))
	if err != nil {
		return 0, err
	}
	n := copy(p, chunk)
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (b *BytesBlob) ReadRange(_ context.Context, off, length int64) (io.ReadCloser, error) {
	chunk, err := sliceRange(b.data, off, length)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(chunk)), nil
}

func (b *BytesBlob) Size() int64            { return int64(len(b.data)) }
func (b *BytesBlob) Bytes() ([]byte, error) { return b.data, nil }
func (b *BytesBlob) Close() error           { return nil }

// sliceRange clamps [off, off+length) to data. Offsets at or past the end
// return io.EOF.
func sliceRange(data []byte, off, length int64) ([]byte, error) {
	if off < 0 || off >= int64(len(data)) {
		return nil, io.EOF
	}
	end := int64(len(data))
	if length >= 0 && length < end-off {
		end = off + length
	}
	return data[off:end:end], nil
}

// BufferedWriter collects a streamed blob and hands the complete payload to
// commit on Close. It suits backends whose writes are a single request.
type BufferedWriter struct {
	buf    bytes.Buffer
	commit func([]byte) error
	closed bool
}

// NewBufferedWriter returns a WritableBlob that calls commit once on Close.
func NewBufferedWriter(commit func([]byte) error) *BufferedWriter {
	return &BufferedWriter{commit: commit}
}

func (w *BufferedWriter) Write(p []byte) (int, error) {
	if w.closed {
		return 0, os.ErrClosed
	}
	return w.buf.Write(p)
}

// Sync is a no-op; nothing is visible before Close.
func (w *BufferedWriter) Sync() error {
	if w.closed {
		return os.ErrClosed
	}
	return nil
}

func (w *BufferedWriter) Close() error {
	if w.closed {
		return os.ErrClosed
	}
	w.closed = true
	return w.commit(w.buf.Bytes())
}
