package objstore

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"sync"
)

// Registry maps URL schemes to providers.
//
// Lookups are safe for concurrent use. Registration is meant to happen at
// start-up, before the registry is shared.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
	logger    *Logger
}

// NewRegistry creates a registry holding only the providers passed via options.
func NewRegistry(optFns ...Option) *Registry {
	o := options{logger: NoopLogger()}
	for _, fn := range optFns {
		fn(&o)
	}

	r := &Registry{
		providers: make(map[string]Provider, len(o.providers)),
		logger:    o.logger,
	}
	for scheme, p := range o.providers {
		r.providers[scheme] = p
	}
	return r
}

// DefaultRegistry creates a registry with every built-in provider registered.
// Options are applied after the built-ins, so WithProvider can replace them.
func DefaultRegistry(optFns ...Option) *Registry {
	builtins := []Option{
		WithProvider("cos", &CosProvider{}),
		WithProvider("s3", &S3Provider{}),
		WithProvider("s3a", &S3Provider{}),
		WithProvider("s3+ddb", &DynamoDBProvider{}),
		WithProvider("memory", NewMemoryProvider()),
		WithProvider("file", &LocalProvider{}),
	}
	return NewRegistry(append(builtins, optFns...)...)
}

// Register adds or replaces the provider for scheme.
func (r *Registry) Register(scheme string, p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[normalizeScheme(scheme)] = p
}

// Resolve returns the provider for scheme. Matching is case-insensitive.
func (r *Registry) Resolve(scheme string) (Provider, error) {
	r.mu.RLock()
	p, ok := r.providers[normalizeScheme(scheme)]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, scheme)
	}
	return p, nil
}

// Schemes returns the registered schemes in sorted order.
func (r *Registry) Schemes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	schemes := make([]string, 0, len(r.providers))
	for s := range r.providers {
		schemes = append(schemes, s)
	}
	sort.Strings(schemes)
	return schemes
}

// NewStore parses uri, resolves its provider and builds a new Store.
// A nil params selects all defaults.
func (r *Registry) NewStore(ctx context.Context, uri string, params *Params) (*Store, error) {
	location, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidLocation, err)
	}
	if location.Scheme == "" {
		return nil, fmt.Errorf("%w: %q has no scheme", ErrInvalidLocation, uri)
	}

	p, err := r.Resolve(location.Scheme)
	r.logger.LogResolve(ctx, location.Scheme, err)
	if err != nil {
		return nil, err
	}

	params = paramsOrDefault(params)
	if params.Logger == nil {
		withLogger := *params
		withLogger.Logger = r.logger
		params = &withLogger
	}

	log := params.Logger.WithScheme(location.Scheme).WithLocation(location)
	s, err := p.NewStore(ctx, location, params)
	if err != nil {
		log.LogStoreFailed(ctx, err)
		return nil, err
	}
	log.LogStoreCreated(ctx, s)
	return s, nil
}

func normalizeScheme(scheme string) string {
	return strings.ToLower(strings.TrimSpace(scheme))
}
