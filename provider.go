package objstore

import (
	"context"
	"net/url"
	"strings"
)

// Provider builds Store handles for one backend family.
//
// NewStore must not retain location or params; every call returns a fresh,
// independent handle.
type Provider interface {
	NewStore(ctx context.Context, location *url.URL, params *Params) (*Store, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context, location *url.URL, params *Params) (*Store, error)

// NewStore implements Provider.
func (f ProviderFunc) NewStore(ctx context.Context, location *url.URL, params *Params) (*Store, error) {
	return f(ctx, location, params)
}

// ExtractPath returns the object key prefix of a location:
// cos://bucket/path/to/file yields "path/to/file".
func ExtractPath(location *url.URL) string {
	return strings.TrimLeft(location.Path, "/")
}

// StorePrefix identifies the backend instance a location addresses, as
// "scheme$host". Handles with equal prefixes talk to the same bucket.
// Userinfo is left out: the prefix is logged and used as a metrics label,
// and the bucket identity does not depend on who authenticates.
func StorePrefix(location *url.URL) string {
	return strings.ToLower(location.Scheme) + "$" + location.Host
}

// normalizeLocation returns a copy of location whose path ends in "/".
func normalizeLocation(location *url.URL) *url.URL {
	u := *location
	if u.User != nil {
		user := *u.User
		u.User = &user
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
		if u.RawPath != "" {
			u.RawPath += "/"
		}
	}
	return &u
}

// keyPrefix returns the literal key prefix of a location with a trailing
// separator, or "" for bucket-rooted locations.
func keyPrefix(location *url.URL) string {
	p := ExtractPath(location)
	if p == "" || strings.HasSuffix(p, "/") {
		return p
	}
	return p + "/"
}
