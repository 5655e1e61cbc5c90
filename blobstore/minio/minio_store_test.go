package minio

import (
	"context"
	"fmt"
	"io"
	"os"
	"testing"
	"time"

	"github.com/hupe1980/objstore/blobstore"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newIntegrationClient connects to MINIO_ENDPOINT or skips the test.
func newIntegrationClient(t *testing.T) (*minio.Client, string) {
	t.Helper()

	endpoint := os.Getenv("MINIO_ENDPOINT")
	if endpoint == "" {
		t.Skip("MINIO_ENDPOINT not set")
	}
	accessKey := envOr("MINIO_ACCESS_KEY", "minioadmin")
	secretKey := envOr("MINIO_SECRET_KEY", "minioadmin")
	bucket := envOr("MINIO_BUCKET", "objstore-it")

	client, err := minio.New(endpoint, &minio.Options{
		Creds: credentials.NewStaticV4(accessKey, secretKey, ""),
	})
	require.NoError(t, err)

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		t.Skipf("MinIO not reachable: %v", err)
	}
	if !exists {
		require.NoError(t, client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
	}
	return client, bucket
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestStore_Integration(t *testing.T) {
	client, bucket := newIntegrationClient(t)
	ctx := context.Background()

	run := fmt.Sprintf("it-%d", time.Now().UnixNano())
	store := NewStore(client, bucket, run+"/a")
	sibling := NewStore(client, bucket, run+"/b")
	t.Cleanup(func() {
		for _, s := range []*Store{store, sibling} {
			names, _ := s.List(ctx, "")
			for _, name := range names {
				_ = s.Delete(ctx, name)
			}
		}
	})

	payload := []byte("0123456789abcdef")
	require.NoError(t, store.Put(ctx, "data/part-0.bin", payload))
	require.NoError(t, sibling.Put(ctx, "data/part-0.bin", []byte("other")))

	t.Run("ranged reads", func(t *testing.T) {
		blob, err := store.Open(ctx, "data/part-0.bin")
		require.NoError(t, err)
		defer blob.Close()

		assert.Equal(t, int64(len(payload)), blob.Size())

		rc, err := blob.ReadRange(ctx, 10, 100)
		require.NoError(t, err)
		tail, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		assert.Equal(t, "abcdef", string(tail))

		buf := make([]byte, 4)
		n, err := blob.ReadAt(ctx, buf, 4)
		require.NoError(t, err)
		assert.Equal(t, "4567", string(buf[:n]))
	})

	t.Run("prefixes isolate stores", func(t *testing.T) {
		names, err := store.List(ctx, "data/")
		require.NoError(t, err)
		assert.Equal(t, []string{"data/part-0.bin"}, names)

		blob, err := sibling.Open(ctx, "data/part-0.bin")
		require.NoError(t, err)
		assert.Equal(t, int64(5), blob.Size())
		require.NoError(t, blob.Close())
	})

	t.Run("streaming create", func(t *testing.T) {
		w, err := store.Create(ctx, "data/stream.bin")
		require.NoError(t, err)
		for range 3 {
			_, err = w.Write([]byte("chunk;"))
			require.NoError(t, err)
		}
		require.NoError(t, w.Close())

		blob, err := store.Open(ctx, "data/stream.bin")
		require.NoError(t, err)
		assert.Equal(t, int64(18), blob.Size())
		require.NoError(t, blob.Close())
	})

	t.Run("missing blobs", func(t *testing.T) {
		_, err := store.Open(ctx, "data/absent.bin")
		assert.ErrorIs(t, err, blobstore.ErrNotFound)
		assert.NoError(t, store.Delete(ctx, "data/absent.bin"))
	})
}
