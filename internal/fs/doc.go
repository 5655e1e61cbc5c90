// Package fs abstracts the filesystem calls LocalStore makes when writing
// blobs, so tests can inject failures.
//
//   - [LocalFS]: production implementation on the os package
//   - [FaultyFS]: wrapper that fails writes, syncs, closes or renames on demand
//   - [AtomicFile]: temp file plus rename, the write path shared by both
//
// Tests inject a [FaultyFS]:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule("manifest", fs.Fault{FailOnSync: true})
//	store := blobstore.NewLocalStore(dir, blobstore.WithFileSystem(ffs))
//
// Calls take no context.Context; local syscalls cannot be interrupted.
package fs
