// Package minio implements blobstore.BlobStore with the MinIO client.
//
// It serves any S3-compatible endpoint that the AWS SDK path does not fit,
// most notably Tencent COS (see package blobstore/cos, which resolves cos://
// configuration and builds a Store through this package).
//
//	client, err := minio.New("cos.ap-guangzhou.myqcloud.com", &minio.Options{
//	    Creds:  credentials.NewStaticV4(id, secret, ""),
//	    Secure: true,
//	})
//	store := minioblob.NewStore(client, "examplebucket-1250000000", "")
//
// Blob names are joined to the root prefix with "/". Reads are ranged GETs;
// writes stream through PutObject, which switches to multipart uploads for
// large payloads.
package minio
