// Package mmap maps local blobs read-only so that LocalStore can serve
// ranged reads without a syscall per request.
//
//	m, err := mmap.Open(path, mmap.WithAccess(mmap.AccessRandom))
//	if err != nil { ... }
//	defer m.Close()
//
//	chunk, err := m.Slice(off, n)
//
// On unix the access hint is forwarded to madvise(2). Windows maps through
// CreateFileMapping/MapViewOfFile and ignores the hint.
//
// Slices returned by Bytes and Slice alias the mapping and are only valid
// until Close.
package mmap
