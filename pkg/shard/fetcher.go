// Package shard federates geocoding queries across the published shard set:
// it resolves the active catalog version, fetches shard binaries through a
// tiered cache, fans queries out per shard and merges the results.
package shard

import (
	"context"
	"fmt"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/brad-richardson/overture-geocode/pkg/cache"
	"github.com/brad-richardson/overture-geocode/pkg/geocoder"
	"github.com/brad-richardson/overture-geocode/pkg/log"
	"github.com/brad-richardson/overture-geocode/pkg/store"
)

// cachePrefix namespaces cache keys so shard resources never collide with
// unrelated entries in a shared cache.
const cachePrefix = "geocoder/__cache/"

// zstdDecoder is shared; DecodeAll is safe for concurrent use.
var zstdDecoder, _ = zstd.NewReader(nil)

// Fetcher is a tiered fetch-with-cache over an object store. Cache writes
// are best effort: a failed write is logged and never fails the read.
type Fetcher struct {
	store  store.ObjectStore
	cache  cache.Cache
	ttls   cache.TTLs
	logger *log.Logger
}

// NewFetcher creates a fetcher. c may be nil to bypass caching entirely.
func NewFetcher(st store.ObjectStore, c cache.Cache, ttls cache.TTLs) *Fetcher {
	return &Fetcher{
		store:  st,
		cache:  c,
		ttls:   ttls,
		logger: log.ForService("fetch"),
	}
}

// Get returns the resource at key, serving from cache when possible and
// populating the cache with the class's TTL on a miss. Resources stored with
// a .zst suffix are decompressed before caching, so cached bytes are always
// ready to open. A missing resource is geocoder.ErrNotFound.
func (f *Fetcher) Get(ctx context.Context, key string, class cache.Class) ([]byte, error) {
	cacheKey := cachePrefix + key

	if f.cache != nil {
		if data, ok := f.cache.Get(ctx, cacheKey); ok {
			f.logger.Debugf("cache hit: %s", key)
			return data, nil
		}
		f.logger.Debugf("cache miss: %s", key)
	}

	data, ok, err := f.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", geocoder.ErrNotFound, key)
	}

	if strings.HasSuffix(key, ".zst") {
		data, err = zstdDecoder.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("decompressing %s: %w", key, err)
		}
	}

	// A cancelled request must not commit a possibly partial fetch.
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if f.cache != nil {
		if err := f.cache.Put(ctx, cacheKey, data, f.ttls.For(class)); err != nil {
			f.logger.Warnf("cache put failed for %s: %v", key, err)
		}
	}
	return data, nil
}
