// Package s3 implements blobstore.BlobStore on Amazon S3 via aws-sdk-go-v2.
//
// Stores are normally built by objstore's s3://, s3a:// and s3+ddb://
// providers, which resolve credentials, region and endpoint from the
// location and the AWS_* environment. Constructing one by hand:
//
//	cfg, _ := config.LoadDefaultConfig(ctx)
//	store := s3.NewStore(awss3.NewFromConfig(cfg), "my-bucket", "datasets/")
//
// Reads issue ranged GETs, Create streams through the transfer manager's
// multipart uploader, and List pages through ListObjectsV2.
//
// DDBCommitStore layers a DynamoDB table over a Store so that writes to a
// single pointer blob are conditional puts. Concurrent writers then observe
// ErrConcurrentModification instead of silently overwriting each other.
package s3
