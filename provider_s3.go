package objstore

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3store "github.com/hupe1980/objstore/blobstore/s3"
)

// DefaultS3Region is used when no source supplies a region.
const DefaultS3Region = "us-east-1"

// S3 configuration keys.
const (
	keyRegion                    = "region"
	keyAccessKeyID               = "access_key_id"
	keySecretAccessKey           = "secret_access_key"
	keySessionToken              = "session_token"
	keyVirtualHostedStyleRequest = "virtual_hosted_style_request"
)

var s3EnvPrefixes = []string{"AWS_"}

// Unprefixed keys come first so the aws_ form wins when both are given.
var s3OptionKeys = []optionKey{
	{option: "region", config: keyRegion},
	{option: "aws_region", config: keyRegion},
	{option: "endpoint", config: keyEndpoint},
	{option: "aws_endpoint", config: keyEndpoint},
	{option: "access_key_id", config: keyAccessKeyID},
	{option: "aws_access_key_id", config: keyAccessKeyID},
	{option: "secret_access_key", config: keySecretAccessKey},
	{option: "aws_secret_access_key", config: keySecretAccessKey},
	{option: "session_token", config: keySessionToken},
	{option: "aws_session_token", config: keySessionToken},
	{option: "virtual_hosted_style_request", config: keyVirtualHostedStyleRequest},
	{option: "aws_virtual_hosted_style_request", config: keyVirtualHostedStyleRequest},
}

// S3Provider builds stores for s3://<bucket>/<path> and s3a:// locations.
type S3Provider struct{}

// NewStore implements Provider.
func (p *S3Provider) NewStore(ctx context.Context, location *url.URL, params *Params) (*Store, error) {
	params = paramsOrDefault(params)
	scheme := strings.ToLower(location.Scheme)

	cfg, err := resolveS3Config(scheme, location, params.StorageOptions, params.environ()())
	if err != nil {
		return nil, err
	}

	awsCfg, err := loadAWSConfig(ctx, cfg, params.StorageOptions)
	if err != nil {
		return nil, newBackendError(scheme, err)
	}
	client, err := newS3Client(awsCfg, cfg, params.StorageOptions)
	if err != nil {
		return nil, newBackendError(scheme, err)
	}
	params.logger().WithScheme(scheme).LogConfig(ctx, cfg)

	inner := s3store.NewStore(client, cfg[keyBucket], "", uploadOptions(params)...)

	return newStore(storeSpec{
		scheme:                 scheme,
		inner:                  inner,
		location:               location,
		prefix:                 keyPrefix(location),
		storePrefix:            StorePrefix(location),
		config:                 cfg,
		defaultBlockSize:       DefaultCloudBlockSize,
		ioParallelism:          DefaultCloudIOParallelism,
		listIsLexicallyOrdered: true,
	}, params), nil
}

func resolveS3Config(scheme string, location *url.URL, opts StorageOptions, env []string) (map[string]string, error) {
	if location.Host == "" {
		return nil, newConfigError(scheme, keyBucket, ErrMissingBucket,
			fmt.Sprintf("S3 URL must contain bucket name: %s://<bucket>/<path>", scheme))
	}

	cfg := envConfig(env, s3EnvPrefixes...)
	applyLocation(cfg, location)
	applyOptions(cfg, opts, s3OptionKeys)

	if cfg[keyRegion] == "" {
		cfg[keyRegion] = DefaultS3Region
	}
	return cfg, nil
}

// loadAWSConfig loads the shared AWS configuration, overridden by the
// resolved region, static credentials and retry budget.
func loadAWSConfig(ctx context.Context, cfg map[string]string, opts StorageOptions) (aws.Config, error) {
	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg[keyRegion]),
		config.WithRetryMaxAttempts(opts.ClientMaxRetries()),
	}

	id, secret := cfg[keyAccessKeyID], cfg[keySecretAccessKey]
	if id != "" && secret != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(id, secret, cfg[keySessionToken]),
		))
	}

	return config.LoadDefaultConfig(ctx, loadOpts...)
}

func newS3Client(awsCfg aws.Config, cfg map[string]string, opts StorageOptions) (*s3.Client, error) {
	virtualHosted := false
	if v := cfg[keyVirtualHostedStyleRequest]; v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", keyVirtualHostedStyleRequest, v, err)
		}
		virtualHosted = b
	}

	endpoint := cfg[keyEndpoint]
	if strings.HasPrefix(strings.ToLower(endpoint), "http://") && !opts.AllowHTTP() {
		return nil, fmt.Errorf("endpoint %q uses plain http; set %s=true to allow it", endpoint, OptionAllowHTTP)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = !virtualHosted
		}
	}), nil
}

func uploadOptions(params *Params) []func(*s3store.UploadConfig) {
	if !params.UseConstantSizeUploadParts {
		return nil
	}
	return []func(*s3store.UploadConfig){
		func(c *s3store.UploadConfig) { c.PartSize = s3store.MinPartSize },
	}
}
