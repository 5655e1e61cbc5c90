package objstore

import (
	"net/url"
	"sort"
	"strings"
)

// Configuration map keys shared by providers.
const (
	keyBucket            = "bucket"
	keyRoot              = "root"
	keyEndpoint          = "endpoint"
	keyDisableConfigLoad = "disable_config_load"
)

// EnvFunc returns an environment snapshot in os.Environ form ("KEY=value").
type EnvFunc func() []string

// MapEnv returns an EnvFunc serving m, sorted by name.
func MapEnv(m map[string]string) EnvFunc {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)

	env := make([]string, 0, len(names))
	for _, k := range names {
		env = append(env, k+"="+m[k])
	}
	return func() []string {
		out := make([]string, len(env))
		copy(out, env)
		return out
	}
}

// envConfig collects environment entries starting with any of prefixes.
// The first matching prefix is stripped and the rest lowercased; on
// duplicate keys the later entry wins.
func envConfig(environ []string, prefixes ...string) map[string]string {
	cfg := make(map[string]string)
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		for _, prefix := range prefixes {
			if rest, found := strings.CutPrefix(name, prefix); found && rest != "" {
				cfg[strings.ToLower(rest)] = value
				break
			}
		}
	}
	return cfg
}

// applyLocation sets bucket from the host and root when the path is non-empty.
// The literal prefix is not stored here; see ExtractPath.
func applyLocation(cfg map[string]string, location *url.URL) {
	cfg[keyBucket] = location.Host
	if ExtractPath(location) != "" {
		cfg[keyRoot] = "/"
	}
}

// optionKey maps a caller storage option onto a configuration key.
type optionKey struct {
	option string
	config string
}

// applyOptions copies recognized options onto cfg in table order.
func applyOptions(cfg map[string]string, opts StorageOptions, keys []optionKey) {
	for _, k := range keys {
		if v, ok := opts[k.option]; ok {
			cfg[k.config] = v
		}
	}
}
