package cos

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// Recognized configuration keys.
const (
	KeyRoot              = "root"
	KeyEndpoint          = "endpoint"
	KeyBucket            = "bucket"
	KeySecretID          = "secret_id"
	KeySecretKey         = "secret_key"
	KeySecurityToken     = "security_token"
	KeyRegion            = "region"
	KeyEnableVersioning  = "enable_versioning"
	KeyDisableConfigLoad = "disable_config_load"
)

// Environment variables consulted when config loading is enabled.
const (
	EnvSecretID      = "TENCENTCLOUD_SECRET_ID"
	EnvSecretKey     = "TENCENTCLOUD_SECRET_KEY"
	EnvSecurityToken = "TENCENTCLOUD_SECURITY_TOKEN"
	EnvToken         = "TENCENTCLOUD_TOKEN"
	EnvRegion        = "TENCENTCLOUD_REGION"
)

var (
	// ErrMissingBucket is returned when the configuration has no bucket.
	ErrMissingBucket = errors.New("cos: bucket is required")
	// ErrMissingEndpoint is returned when the configuration has no endpoint.
	ErrMissingEndpoint = errors.New("cos: endpoint is required")
)

var regionPattern = regexp.MustCompile(`^cos\.([a-z0-9-]+)\.myqcloud\.com$`)

// Config holds the parsed COS settings.
type Config struct {
	Root              string
	Endpoint          string
	Bucket            string
	SecretID          string
	SecretKey         string
	SecurityToken     string
	Region            string
	EnableVersioning  bool
	DisableConfigLoad bool
}

// ParseConfig builds a Config from a flat key/value map.
// Unknown keys are ignored; malformed booleans are errors.
func ParseConfig(m map[string]string) (Config, error) {
	cfg := Config{
		Root:          m[KeyRoot],
		Endpoint:      m[KeyEndpoint],
		Bucket:        m[KeyBucket],
		SecretID:      m[KeySecretID],
		SecretKey:     m[KeySecretKey],
		SecurityToken: m[KeySecurityToken],
		Region:        m[KeyRegion],
	}

	var err error
	if cfg.EnableVersioning, err = parseBool(m, KeyEnableVersioning); err != nil {
		return Config{}, err
	}
	if cfg.DisableConfigLoad, err = parseBool(m, KeyDisableConfigLoad); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func parseBool(m map[string]string, key string) (bool, error) {
	v, ok := m[key]
	if !ok || v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("cos: invalid %s %q: %w", key, v, err)
	}
	return b, nil
}

// Validate checks that required settings are present.
func (c *Config) Validate() error {
	if c.Bucket == "" {
		return ErrMissingBucket
	}
	if c.Endpoint == "" {
		return ErrMissingEndpoint
	}
	return nil
}

// LoadEnv fills unset credentials and region from the environment snapshot.
// It does nothing when DisableConfigLoad is set.
func (c *Config) LoadEnv(environ []string) {
	if c.DisableConfigLoad {
		return
	}
	env := make(map[string]string, len(environ))
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}

	fill := func(dst *string, keys ...string) {
		if *dst != "" {
			return
		}
		for _, k := range keys {
			if v := env[k]; v != "" {
				*dst = v
				return
			}
		}
	}
	fill(&c.SecretID, EnvSecretID)
	fill(&c.SecretKey, EnvSecretKey)
	fill(&c.SecurityToken, EnvSecurityToken, EnvToken)
	fill(&c.Region, EnvRegion)
}

// endpoint splits the configured endpoint into host and TLS flag.
// An endpoint without scheme defaults to https.
func (c *Config) endpoint() (host string, secure bool, err error) {
	raw := c.Endpoint
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", false, fmt.Errorf("cos: invalid endpoint %q: %w", c.Endpoint, err)
	}
	switch u.Scheme {
	case "https":
		secure = true
	case "http":
	default:
		return "", false, fmt.Errorf("cos: unsupported endpoint scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", false, fmt.Errorf("cos: endpoint %q has no host", c.Endpoint)
	}
	return u.Host, secure, nil
}

// region returns the configured region or the one embedded in a
// cos.<region>.myqcloud.com endpoint host.
func (c *Config) region(host string) string {
	if c.Region != "" {
		return c.Region
	}
	if m := regionPattern.FindStringSubmatch(strings.ToLower(host)); m != nil {
		return m[1]
	}
	return ""
}
