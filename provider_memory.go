package objstore

import (
	"context"
	"net/url"
	"sync"

	"github.com/hupe1980/objstore/blobstore"
)

// MemoryProvider builds stores for memory://<name>/<path> locations.
//
// Handles with the same name share one in-memory blob store for the
// lifetime of the provider.
type MemoryProvider struct {
	mu     sync.Mutex
	stores map[string]*blobstore.MemoryStore
}

// NewMemoryProvider creates a memory provider with no stores.
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{stores: make(map[string]*blobstore.MemoryStore)}
}

// NewStore implements Provider.
func (p *MemoryProvider) NewStore(ctx context.Context, location *url.URL, params *Params) (*Store, error) {
	params = paramsOrDefault(params)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return newStore(storeSpec{
		scheme:                 "memory",
		inner:                  p.store(location.Host),
		location:               location,
		prefix:                 keyPrefix(location),
		storePrefix:            StorePrefix(location),
		defaultBlockSize:       DefaultLocalBlockSize,
		ioParallelism:          DefaultLocalIOParallelism,
		listIsLexicallyOrdered: true,
	}, params), nil
}

func (p *MemoryProvider) store(name string) *blobstore.MemoryStore {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stores == nil {
		p.stores = make(map[string]*blobstore.MemoryStore)
	}
	s, ok := p.stores[name]
	if !ok {
		s = blobstore.NewMemoryStore()
		p.stores[name] = s
	}
	return s
}
