package minio

import (
	"context"
	"testing"

	"github.com/hupe1980/objstore/blobstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_ListPrefix(t *testing.T) {
	tests := []struct {
		root   string
		prefix string
		want   string
	}{
		{root: "", prefix: "", want: ""},
		{root: "", prefix: "part-", want: "part-"},
		{root: "data", prefix: "", want: "data/"},
		{root: "/data/", prefix: "", want: "data/"},
		{root: "data", prefix: "t1/", want: "data/t1/"},
		{root: "data", prefix: "part-", want: "data/part-"},
		{root: "a/b", prefix: "/c", want: "a/b/c"},
	}
	for _, tt := range tests {
		t.Run(tt.root+"|"+tt.prefix, func(t *testing.T) {
			s := NewStore(nil, "bucket", tt.root)
			assert.Equal(t, tt.want, s.listPrefix(tt.prefix))
		})
	}
}

func TestStore_RelName(t *testing.T) {
	s := NewStore(nil, "bucket", "data")

	assert.Equal(t, "x", s.relName("data/x"))
	assert.Equal(t, "t1/part-0", s.relName("data/t1/part-0"))
	assert.Empty(t, s.relName("database/x"))
	assert.Empty(t, s.relName("data/"))

	bare := NewStore(nil, "bucket", "")
	assert.Equal(t, "database/x", bare.relName("database/x"))
}

func TestStore_KeyRejectsEscapes(t *testing.T) {
	s := NewStore(nil, "bucket", "data")

	key, err := s.key("t1/part-0")
	require.NoError(t, err)
	assert.Equal(t, "data/t1/part-0", key)

	_, err = s.key("../other/x")
	assert.ErrorIs(t, err, blobstore.ErrInvalidName)

	ctx := context.Background()
	_, err = s.Open(ctx, "../other/x")
	assert.ErrorIs(t, err, blobstore.ErrInvalidName)
	assert.ErrorIs(t, s.Delete(ctx, "a/../../x"), blobstore.ErrInvalidName)
	_, err = s.List(ctx, "../")
	assert.ErrorIs(t, err, blobstore.ErrInvalidName)
}
