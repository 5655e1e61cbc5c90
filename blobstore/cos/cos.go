package cos

import (
	"context"

	"github.com/hupe1980/objstore/blobstore/minio"
	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Open parses cfg, loads environment defaults and returns a store rooted at
// the configured root. environ may be nil when config loading is disabled.
func Open(ctx context.Context, cfg map[string]string, environ func() []string) (*minio.Store, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c, err := ParseConfig(cfg)
	if err != nil {
		return nil, err
	}
	if environ != nil {
		c.LoadEnv(environ())
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	client, err := NewClient(c)
	if err != nil {
		return nil, err
	}
	return minio.NewStore(client, c.Bucket, c.Root), nil
}

// NewClient creates a MinIO client addressing COS buckets by virtual host.
// Empty credentials yield anonymous requests.
func NewClient(c Config) (*miniogo.Client, error) {
	host, secure, err := c.endpoint()
	if err != nil {
		return nil, err
	}
	return miniogo.New(host, &miniogo.Options{
		Creds:        credentials.NewStaticV4(c.SecretID, c.SecretKey, c.SecurityToken),
		Secure:       secure,
		Region:       c.region(host),
		BucketLookup: miniogo.BucketLookupDNS,
	})
}
