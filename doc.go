// Package objstore turns a storage location URL into a ready-to-use object
// store handle.
//
// A location such as cos://bucket/prefix names a backend by scheme. The
// Registry resolves the scheme to a Provider, which merges the process
// environment, the location and caller options into one configuration,
// validates it, builds the transport and returns an immutable *Store.
//
// # Quick Start
//
//	ctx := context.Background()
//	store, err := objstore.DefaultRegistry().NewStore(ctx, "cos://my-bucket/data", &objstore.Params{
//	    StorageOptions: objstore.StorageOptions{
//	        "cos_endpoint": "https://cos.ap-guangzhou.myqcloud.com",
//	    },
//	})
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	data, err := store.GetRange(ctx, "part-0.bin", 0, 4096)
//
// # Configuration Precedence
//
// Providers build the configuration map in four layers, later layers
// winning on collisions:
//
//  1. environment variables with a recognized prefix (COS_, TENCENTCLOUD_, AWS_),
//     prefix stripped and lowercased
//  2. bucket from the location host
//  3. root = "/" when the location has a path
//  4. recognized storage options
//
// The literal path is not passed to the transport. The Store joins it to
// every name instead, see Store.Prefix.
//
// # Schemes
//
//   - cos      Tencent Cloud Object Storage
//   - s3, s3a  Amazon S3 and compatible endpoints
//   - s3+ddb   S3 with DynamoDB-backed commits (?ddbTableName=<table>)
//   - memory   in-process store, useful in tests
//   - file     local directory
//
// # Tuning
//
// Every Store carries block size, I/O parallelism, maximum request size,
// listing order guarantee and a download retry budget. The retry budget is
// recorded for callers; Store itself does not retry.
package objstore
