// Package blobstore provides the transport abstraction used by objstore handles.
//
// BlobStore is the interface for reading, writing, listing and deleting blobs
// inside one bucket or directory. Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - MemoryStore: in-process map, used for memory:// locations and tests
//   - LocalStore: local filesystem with mmap reads, used for file:// locations
//   - s3.Store: Amazon S3 with range reads and multipart uploads
//   - s3.DDBCommitStore: S3 with DynamoDB-coordinated commits
//   - minio.Store: any S3-compatible service through minio-go
//   - cos: Tencent Cloud COS, built on minio.Store
//
// # Custom Implementations
//
//	type BlobStore interface {
//	    Open(ctx, name) (Blob, error)
//	    Create(ctx, name) (WritableBlob, error)
//	    Put(ctx, name, data) error
//	    Delete(ctx, name) error
//	    List(ctx, prefix) ([]string, error)
//	}
//
// Blobs serve ranged reads:
//
//	type Blob interface {
//	    ReadAt(ctx, p, off) (int, error)
//	    ReadRange(ctx, off, len) (io.ReadCloser, error)
//	    Size() int64
//	    Close() error
//	}
package blobstore
