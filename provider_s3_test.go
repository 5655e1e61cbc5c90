package objstore

import (
	"testing"

	s3store "github.com/hupe1980/objstore/blobstore/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticS3 keeps tests off the shared AWS config and credential chain.
func staticS3(opts StorageOptions) *Params {
	all := StorageOptions{
		"aws_access_key_id":     "AKIDEXAMPLE",
		"aws_secret_access_key": "secret",
	}
	for k, v := range opts {
		all[k] = v
	}
	return &Params{Env: MapEnv(nil), StorageOptions: all}
}

func TestResolveS3Config(t *testing.T) {
	env := []string{
		"AWS_REGION=eu-central-1",
		"AWS_ENDPOINT=https://env.example",
		"AWS_ACCESS_KEY_ID=env-id",
	}

	t.Run("env and defaults", func(t *testing.T) {
		cfg, err := resolveS3Config("s3", mustParse(t, "s3://bucket/p"), nil, env)
		require.NoError(t, err)
		assert.Equal(t, "bucket", cfg["bucket"])
		assert.Equal(t, "/", cfg["root"])
		assert.Equal(t, "eu-central-1", cfg["region"])
		assert.Equal(t, "https://env.example", cfg["endpoint"])
		assert.Equal(t, "env-id", cfg["access_key_id"])
	})

	t.Run("options win", func(t *testing.T) {
		cfg, err := resolveS3Config("s3", mustParse(t, "s3://bucket"), StorageOptions{
			"region":            "ap-south-1",
			"aws_endpoint":      "https://opt.example",
			"access_key_id":     "opt-id",
			"aws_session_token": "token",
		}, env)
		require.NoError(t, err)
		assert.Equal(t, "ap-south-1", cfg["region"])
		assert.Equal(t, "https://opt.example", cfg["endpoint"])
		assert.Equal(t, "opt-id", cfg["access_key_id"])
		assert.Equal(t, "token", cfg["session_token"])
		assert.NotContains(t, cfg, "root")
	})

	t.Run("default region", func(t *testing.T) {
		cfg, err := resolveS3Config("s3", mustParse(t, "s3://bucket"), nil, nil)
		require.NoError(t, err)
		assert.Equal(t, DefaultS3Region, cfg["region"])
	})

	t.Run("missing bucket", func(t *testing.T) {
		_, err := resolveS3Config("s3a", mustParse(t, "s3a:///p"), nil, nil)
		assert.ErrorIs(t, err, ErrMissingBucket)
		assert.Contains(t, err.Error(), "s3a://<bucket>")
	})
}

func TestS3Provider_NewStore(t *testing.T) {
	s, err := DefaultRegistry().NewStore(t.Context(), "s3a://bucket/tables/t1", staticS3(StorageOptions{
		"aws_endpoint": "https://minio.example:9000",
	}))
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, "s3a", s.Scheme())
	assert.Equal(t, "s3a$bucket", s.StorePrefix())
	assert.Equal(t, "tables/t1/", s.Prefix())
	assert.Equal(t, DefaultCloudBlockSize, s.BlockSize())
	assert.Equal(t, DefaultCloudIOParallelism, s.IOParallelism())
	assert.True(t, s.ListIsLexicallyOrdered())

	inner, ok := s.Inner().(*s3store.Store)
	require.True(t, ok)
	assert.Equal(t, "bucket", inner.Bucket())
	assert.Equal(t, s3store.DefaultUploadConfig().PartSize, inner.UploadConfig().PartSize)
}

func TestS3Provider_ConstantSizeUploadParts(t *testing.T) {
	params := staticS3(nil)
	params.UseConstantSizeUploadParts = true

	s, err := DefaultRegistry().NewStore(t.Context(), "s3://bucket", params)
	require.NoError(t, err)

	inner := s.Inner().(*s3store.Store)
	assert.Equal(t, int64(s3store.MinPartSize), inner.UploadConfig().PartSize)
	assert.True(t, s.UseConstantSizeUploadParts())
}

func TestS3Provider_BackendErrors(t *testing.T) {
	t.Run("plain http needs allow_http", func(t *testing.T) {
		_, err := DefaultRegistry().NewStore(t.Context(), "s3://bucket", staticS3(StorageOptions{
			"aws_endpoint": "http://localhost:9000",
		}))
		assert.ErrorIs(t, err, ErrBackendConstruction)
		assert.Contains(t, err.Error(), "allow_http")

		_, err = DefaultRegistry().NewStore(t.Context(), "s3://bucket", staticS3(StorageOptions{
			"aws_endpoint": "http://localhost:9000",
			"allow_http":   "true",
		}))
		assert.NoError(t, err)
	})

	t.Run("invalid virtual hosted flag", func(t *testing.T) {
		_, err := DefaultRegistry().NewStore(t.Context(), "s3://bucket", staticS3(StorageOptions{
			"aws_virtual_hosted_style_request": "perhaps",
		}))
		assert.ErrorIs(t, err, ErrBackendConstruction)
	})
}

func TestDynamoDBProvider(t *testing.T) {
	t.Run("missing table", func(t *testing.T) {
		_, err := DefaultRegistry().NewStore(t.Context(), "s3+ddb://bucket/p", staticS3(nil))
		assert.ErrorIs(t, err, ErrMissingTable)
		assert.Contains(t, err.Error(), DDBTableParam)
	})

	t.Run("commit store", func(t *testing.T) {
		s, err := DefaultRegistry().NewStore(t.Context(), "s3+ddb://bucket/tables/t1?ddbTableName=commits", staticS3(nil))
		require.NoError(t, err)

		assert.Equal(t, "s3+ddb", s.Scheme())
		assert.Equal(t, "commits", s.Config()["ddb_table_name"])
		assert.Equal(t, "", s.Prefix())
		assert.Equal(t, "/tables/t1/", s.Location().Path)

		inner, ok := s.Inner().(*s3store.DDBCommitStore)
		require.True(t, ok)
		assert.Equal(t, "commits", inner.TableName())
	})
}
