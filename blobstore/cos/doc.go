// Package cos opens Tencent Cloud Object Storage (COS) buckets as blob stores.
//
// COS speaks the S3 protocol, so the store is a minio.Store configured for
// virtual-hosted bucket addressing. Configuration arrives as a flat key/value
// map, which is what objstore's cos:// provider resolves:
//
//	store, err := cos.Open(ctx, map[string]string{
//	    "bucket":   "examplebucket-1250000000",
//	    "endpoint": "https://cos.ap-guangzhou.myqcloud.com",
//	}, os.Environ)
//
// Unless disable_config_load is true, missing credentials and region are read
// from TENCENTCLOUD_* environment variables.
package cos
