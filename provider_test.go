package objstore

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestExtractPath(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"cos://bucket/path/to/file", "path/to/file"},
		{"cos://bucket/path/to/dir/", "path/to/dir/"},
		{"cos://bucket", ""},
		{"cos://bucket/", ""},
		{"s3://bucket//double", "double"},
	}
	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractPath(mustParse(t, tt.uri)))
		})
	}
}

func TestStorePrefix(t *testing.T) {
	assert.Equal(t, "cos$my-bucket", StorePrefix(mustParse(t, "cos://my-bucket/a/b")))
	assert.Equal(t, "s3$bucket:9000", StorePrefix(mustParse(t, "S3://bucket:9000/a")))
	assert.Equal(t, "cos$my-bucket", StorePrefix(mustParse(t, "cos://ak:sk@my-bucket/a")))
}

func TestNormalizeLocation(t *testing.T) {
	for _, raw := range []string{
		"cos://bucket",
		"cos://bucket/",
		"cos://bucket/path/to/file",
		"cos://bucket/path/to/dir/",
		"s3+ddb://bucket/p?ddbTableName=t",
		"cos://bucket/a%20b",
	} {
		t.Run(raw, func(t *testing.T) {
			in := mustParse(t, raw)
			orig := in.String()

			once := normalizeLocation(in)
			assert.True(t, len(once.Path) > 0 && once.Path[len(once.Path)-1] == '/')
			assert.Equal(t, once.String(), normalizeLocation(once).String())
			assert.Equal(t, orig, in.String(), "input must not be modified")
			assert.Equal(t, in.Host, once.Host)
			assert.Equal(t, in.RawQuery, once.RawQuery)
		})
	}
}

func TestKeyPrefix(t *testing.T) {
	assert.Equal(t, "", keyPrefix(mustParse(t, "cos://b")))
	assert.Equal(t, "a/b/", keyPrefix(mustParse(t, "cos://b/a/b")))
	assert.Equal(t, "a/b/", keyPrefix(mustParse(t, "cos://b/a/b/")))
}
