package objstore

import (
	"context"
	"net/url"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	s3store "github.com/hupe1980/objstore/blobstore/s3"
)

// DDBTableParam is the query parameter naming the DynamoDB commit table.
const DDBTableParam = "ddbTableName"

// DynamoDBProvider builds stores for s3+ddb://<bucket>/<path>?ddbTableName=<table>.
//
// Blobs live in S3. Writes of the s3.DefaultCommitName blob are committed
// through a conditional DynamoDB put, which makes concurrent writers safe.
// The inner store is rooted at the location path so the commit name is
// matched relative to it.
type DynamoDBProvider struct{}

// NewStore implements Provider.
func (p *DynamoDBProvider) NewStore(ctx context.Context, location *url.URL, params *Params) (*Store, error) {
	const scheme = "s3+ddb"
	params = paramsOrDefault(params)

	table := location.Query().Get(DDBTableParam)
	if table == "" {
		return nil, newConfigError(scheme, DDBTableParam, ErrMissingTable,
			"add ?"+DDBTableParam+"=<table> to the s3+ddb location")
	}

	cfg, err := resolveS3Config(scheme, location, params.StorageOptions, params.environ()())
	if err != nil {
		return nil, err
	}
	cfg["ddb_table_name"] = table

	awsCfg, err := loadAWSConfig(ctx, cfg, params.StorageOptions)
	if err != nil {
		return nil, newBackendError(scheme, err)
	}
	client, err := newS3Client(awsCfg, cfg, params.StorageOptions)
	if err != nil {
		return nil, newBackendError(scheme, err)
	}
	params.logger().WithScheme(scheme).LogConfig(ctx, cfg)

	base := normalizeLocation(location)
	base.RawQuery = ""
	base.Scheme = "s3"

	s3Store := s3store.NewStore(client, cfg[keyBucket], ExtractPath(location), uploadOptions(params)...)
	inner := s3store.NewDDBCommitStore(s3Store, dynamodb.NewFromConfig(awsCfg), table, base.String())

	return newStore(storeSpec{
		scheme:                 scheme,
		inner:                  inner,
		location:               location,
		storePrefix:            StorePrefix(location),
		config:                 cfg,
		defaultBlockSize:       DefaultCloudBlockSize,
		ioParallelism:          DefaultCloudIOParallelism,
		listIsLexicallyOrdered: true,
	}, params), nil
}
