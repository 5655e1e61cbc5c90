package objstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hupe1980/objstore/blobstore"
	"github.com/hupe1980/objstore/internal/resource"
	"golang.org/x/sync/errgroup"
)

// Store is an immutable handle to one storage location.
//
// It carries the resolved tuning parameters and forwards I/O to the
// backend's blob store. Names passed to I/O methods are relative to the
// location's path. A Store is safe for concurrent use.
type Store struct {
	scheme                     string
	inner                      blobstore.BlobStore
	blockSize                  int
	maxIOPSize                 int64
	useConstantSizeUploadParts bool
	listIsLexicallyOrdered     bool
	ioParallelism              int
	downloadRetryCount         int
	tracker                    IOTracker
	storePrefix                string
	location                   *url.URL
	prefix                     string
	config                     map[string]string

	rc     *resource.Controller
	logger *Logger

	closed    atomic.Bool
	closeOnce sync.Once
	closeErr  error
}

// storeSpec is what a provider resolved; newStore turns it into a handle.
type storeSpec struct {
	scheme                 string
	inner                  blobstore.BlobStore
	location               *url.URL
	prefix                 string
	storePrefix            string
	config                 map[string]string
	defaultBlockSize       int
	ioParallelism          int
	listIsLexicallyOrdered bool
}

func newStore(spec storeSpec, params *Params) *Store {
	return &Store{
		scheme:                     spec.scheme,
		inner:                      spec.inner,
		blockSize:                  params.blockSize(spec.defaultBlockSize),
		maxIOPSize:                 maxIOPSize(),
		useConstantSizeUploadParts: params.UseConstantSizeUploadParts,
		listIsLexicallyOrdered:     params.listIsLexicallyOrdered(spec.listIsLexicallyOrdered),
		ioParallelism:              spec.ioParallelism,
		downloadRetryCount:         params.StorageOptions.DownloadRetryCount(),
		tracker:                    params.tracker(),
		storePrefix:                spec.storePrefix,
		location:                   normalizeLocation(spec.location),
		prefix:                     spec.prefix,
		config:                     maps.Clone(spec.config),
		rc: resource.NewController(resource.Config{
			IOParallelism:      int64(spec.ioParallelism),
			IOLimitBytesPerSec: params.MaxIOBytesPerSec,
		}),
		logger: params.logger(),
	}
}

// Scheme returns the location scheme.
func (s *Store) Scheme() string { return s.scheme }

// BlockSize returns the I/O unit in bytes.
func (s *Store) BlockSize() int { return s.blockSize }

// MaxIOPSize returns the largest single request size in bytes.
func (s *Store) MaxIOPSize() int64 { return s.maxIOPSize }

// UseConstantSizeUploadParts reports whether multipart uploads use fixed-size parts.
func (s *Store) UseConstantSizeUploadParts() bool { return s.useConstantSizeUploadParts }

// ListIsLexicallyOrdered reports whether List returns names in lexical order.
func (s *Store) ListIsLexicallyOrdered() bool { return s.listIsLexicallyOrdered }

// IOParallelism returns the maximum number of concurrent requests.
func (s *Store) IOParallelism() int { return s.ioParallelism }

// DownloadRetryCount returns the retry budget for downloads.
// The Store records it; callers perform the retries.
func (s *Store) DownloadRetryCount() int { return s.downloadRetryCount }

// IOTracker returns the tracker receiving this store's I/O records.
func (s *Store) IOTracker() IOTracker { return s.tracker }

// StorePrefix returns the backend identity, e.g. "cos$my-bucket".
func (s *Store) StorePrefix() string { return s.storePrefix }

// Location returns a copy of the normalized location. Its path ends in "/".
func (s *Store) Location() *url.URL { return normalizeLocation(s.location) }

// Prefix returns the key prefix joined to every name, ending in "/" or empty.
func (s *Store) Prefix() string { return s.prefix }

// Config returns a copy of the resolved configuration map, or nil when the
// provider does not build one.
func (s *Store) Config() map[string]string { return maps.Clone(s.config) }

// Inner returns the underlying blob store.
func (s *Store) Inner() blobstore.BlobStore { return s.inner }

// Close releases the transport. It is safe to call more than once.
func (s *Store) Close() error {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		if c, ok := s.inner.(io.Closer); ok {
			s.closeErr = c.Close()
		}
		s.logger.Debug("store closed", "store_prefix", s.storePrefix, "error", s.closeErr)
	})
	return s.closeErr
}

// key joins name to the location prefix. Names that would climb out of the
// location are rejected.
func (s *Store) key(name string) (string, error) {
	name = strings.TrimLeft(name, "/")
	if err := blobstore.CheckName(name); err != nil {
		return "", err
	}
	return s.prefix + name, nil
}

func (s *Store) checkOpen() error {
	if s.closed.Load() {
		return ErrClosed
	}
	return nil
}

// Range is a byte range within a blob.
type Range struct {
	Offset int64
	Length int64
}

// Open opens a blob for reading.
func (s *Store) Open(ctx context.Context, name string) (blobstore.Blob, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	key, err := s.key(name)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	b, err := s.inner.Open(ctx, key)
	s.tracker.RecordRead(0, time.Since(start), err)
	return b, err
}

// Exists reports whether a blob exists.
func (s *Store) Exists(ctx context.Context, name string) (bool, error) {
	b, err := s.Open(ctx, name)
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, b.Close()
}

// Get reads a whole blob. Blobs larger than MaxIOPSize are fetched as
// parallel ranged requests.
func (s *Store) Get(ctx context.Context, name string) ([]byte, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	key, err := s.key(name)
	if err != nil {
		return nil, err
	}
	b, err := s.inner.Open(ctx, key)
	if err != nil {
		s.tracker.RecordRead(0, 0, err)
		return nil, err
	}
	defer b.Close()

	size := b.Size()
	if size == 0 {
		s.tracker.RecordRead(0, 0, nil)
		return []byte{}, nil
	}

	var ranges []Range
	for off := int64(0); off < size; off += s.maxIOPSize {
		ranges = append(ranges, Range{Offset: off, Length: min(s.maxIOPSize, size-off)})
	}

	out := make([]byte, size)
	err = s.readRanges(ctx, b, ranges, func(i int, data []byte) {
		copy(out[ranges[i].Offset:], data)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetRange reads length bytes starting at offset. The result is shorter
// than length when the blob ends first.
func (s *Store) GetRange(ctx context.Context, name string, offset, length int64) ([]byte, error) {
	out, err := s.GetRanges(ctx, name, []Range{{Offset: offset, Length: length}})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// GetRanges reads several ranges of one blob concurrently, bounded by
// IOParallelism. Results are in the order of ranges.
func (s *Store) GetRanges(ctx context.Context, name string, ranges []Range) ([][]byte, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	for _, r := range ranges {
		if r.Offset < 0 || r.Length < 0 {
			return nil, fmt.Errorf("invalid range [%d, +%d)", r.Offset, r.Length)
		}
	}

	key, err := s.key(name)
	if err != nil {
		return nil, err
	}
	b, err := s.inner.Open(ctx, key)
	if err != nil {
		s.tracker.RecordRead(0, 0, err)
		return nil, err
	}
	defer b.Close()

	out := make([][]byte, len(ranges))
	err = s.readRanges(ctx, b, ranges, func(i int, data []byte) {
		out[i] = data
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) readRanges(ctx context.Context, b blobstore.Blob, ranges []Range, fn func(int, []byte)) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, s.ioParallelism))

	for i, r := range ranges {
		g.Go(func() error {
			data, err := s.readRange(ctx, b, r)
			if err != nil {
				return err
			}
			fn(i, data)
			return nil
		})
	}
	return g.Wait()
}

func (s *Store) readRange(ctx context.Context, b blobstore.Blob, r Range) (data []byte, err error) {
	if r.Length == 0 {
		return []byte{}, nil
	}
	if err := s.rc.AcquireSlot(ctx); err != nil {
		return nil, err
	}
	defer s.rc.ReleaseSlot()

	start := time.Now()
	defer func() {
		s.tracker.RecordRead(int64(len(data)), time.Since(start), err)
	}()

	rc, err := b.ReadRange(ctx, r.Offset, r.Length)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err = io.ReadAll(resource.NewRateLimitedReader(ctx, rc, s.rc))
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Put writes a blob in one request.
func (s *Store) Put(ctx context.Context, name string, data []byte) (err error) {
	if err := s.checkOpen(); err != nil {
		return err
	}
	key, err := s.key(name)
	if err != nil {
		return err
	}
	if err := s.rc.AcquireSlot(ctx); err != nil {
		return err
	}
	defer s.rc.ReleaseSlot()

	start := time.Now()
	defer func() {
		s.tracker.RecordWrite(int64(len(data)), time.Since(start), err)
	}()

	if err := s.rc.AcquireIO(ctx, len(data)); err != nil {
		return err
	}
	return s.inner.Put(ctx, key, data)
}

// Create opens a blob for streaming writes. The blob becomes visible when
// the writer is closed.
func (s *Store) Create(ctx context.Context, name string) (blobstore.WritableBlob, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	key, err := s.key(name)
	if err != nil {
		return nil, err
	}
	w, err := s.inner.Create(ctx, key)
	if err != nil {
		s.tracker.RecordWrite(0, 0, err)
		return nil, err
	}
	return &trackedWriter{
		ctx:   ctx,
		w:     w,
		store: s,
		start: time.Now(),
	}, nil
}

// Delete removes a blob.
func (s *Store) Delete(ctx context.Context, name string) (err error) {
	if err := s.checkOpen(); err != nil {
		return err
	}
	start := time.Now()
	defer func() {
		s.tracker.RecordDelete(time.Since(start), err)
	}()
	key, err := s.key(name)
	if err != nil {
		return err
	}
	return s.inner.Delete(ctx, key)
}

// List returns the names under prefix, relative to the store location.
// Order is lexical only if ListIsLexicallyOrdered reports true.
func (s *Store) List(ctx context.Context, prefix string) (names []string, err error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	start := time.Now()
	defer func() {
		s.tracker.RecordList(int64(len(names)), time.Since(start), err)
	}()

	key, err := s.key(prefix)
	if err != nil {
		return nil, err
	}
	keys, err := s.inner.List(ctx, key)
	if err != nil {
		return nil, err
	}
	names = make([]string, 0, len(keys))
	for _, k := range keys {
		names = append(names, strings.TrimPrefix(k, s.prefix))
	}
	return names, nil
}

// trackedWriter rate-limits writes and records the upload on Close.
type trackedWriter struct {
	ctx     context.Context
	w       blobstore.WritableBlob
	store   *Store
	start   time.Time
	written int64
}

func (t *trackedWriter) Write(p []byte) (int, error) {
	if err := t.store.rc.AcquireIO(t.ctx, len(p)); err != nil {
		return 0, err
	}
	n, err := t.w.Write(p)
	t.written += int64(n)
	return n, err
}

func (t *trackedWriter) Sync() error {
	return t.w.Sync()
}

func (t *trackedWriter) Close() error {
	err := t.w.Close()
	t.store.tracker.RecordWrite(t.written, time.Since(t.start), err)
	return err
}
