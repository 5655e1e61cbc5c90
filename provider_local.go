package objstore

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"

	"github.com/hupe1980/objstore/blobstore"
)

// LocalProvider builds stores for file:///<dir> locations.
//
// Directory walks have no defined order, so listings are not lexically
// ordered unless Params.ListIsLexicallyOrdered says otherwise.
type LocalProvider struct{}

// NewStore implements Provider.
func (p *LocalProvider) NewStore(ctx context.Context, location *url.URL, params *Params) (*Store, error) {
	params = paramsOrDefault(params)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if location.Host != "" && location.Host != "localhost" {
		return nil, fmt.Errorf("%w: file location %q must not name a host", ErrInvalidLocation, location.Redacted())
	}
	if location.Path == "" {
		return nil, fmt.Errorf("%w: file location %q has no path", ErrInvalidLocation, location.Redacted())
	}

	return newStore(storeSpec{
		scheme:                 "file",
		inner:                  blobstore.NewLocalStore(filepath.FromSlash(location.Path)),
		location:               location,
		storePrefix:            "file",
		defaultBlockSize:       DefaultLocalBlockSize,
		ioParallelism:          DefaultLocalIOParallelism,
		listIsLexicallyOrdered: false,
	}, params), nil
}
