package objstore

import (
	"context"
	"net/url"

	"github.com/hupe1980/objstore/blobstore/cos"
)

var cosEnvPrefixes = []string{"COS_", "TENCENTCLOUD_"}

var cosOptionKeys = []optionKey{
	{option: "cos_endpoint", config: cos.KeyEndpoint},
	{option: "cos_secret_id", config: cos.KeySecretID},
	{option: "cos_secret_key", config: cos.KeySecretKey},
	{option: "cos_enable_versioning", config: cos.KeyEnableVersioning},
}

// CosProvider builds stores for cos://<bucket>/<path> locations
// (Tencent Cloud Object Storage).
//
// Configuration is merged from COS_* and TENCENTCLOUD_* environment
// variables, the location, and the storage options cos_endpoint,
// cos_secret_id, cos_secret_key and cos_enable_versioning, in that order.
type CosProvider struct{}

// NewStore implements Provider.
func (p *CosProvider) NewStore(ctx context.Context, location *url.URL, params *Params) (*Store, error) {
	params = paramsOrDefault(params)
	env := params.environ()()

	cfg, err := p.resolveConfig(location, params.StorageOptions, env)
	if err != nil {
		return nil, err
	}

	inner, err := cos.Open(ctx, cfg, func() []string { return env })
	if err != nil {
		return nil, newBackendError("cos", err)
	}
	params.logger().WithScheme("cos").LogConfig(ctx, cfg)

	return newStore(storeSpec{
		scheme:                 "cos",
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

func (p *CosProvider) resolveConfig(location *url.URL, opts StorageOptions, env []string) (map[string]string, error) {
	if location.Host == "" {
		return nil, newConfigError("cos", keyBucket, ErrMissingBucket,
			"COS URL must contain bucket name: cos://<bucket>/<path>")
	}

	cfg := envConfig(env, cosEnvPrefixes...)
	applyLocation(cfg, location)
	applyOptions(cfg, opts, cosOptionKeys)

	// Credentials and region beyond the options above only reach the
	// transport through the environment.
	cfg[keyDisableConfigLoad] = "false"

	if cfg[keyEndpoint] == "" {
		return nil, newConfigError("cos", keyEndpoint, ErrMissingEndpoint,
			"COS endpoint is required; provide 'cos_endpoint' in storage options or set the COS_ENDPOINT environment variable")
	}
	return cfg, nil
}
