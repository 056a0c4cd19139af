package shard

import (
	"context"
	"fmt"

	"github.com/brad-richardson/overture-geocode/pkg/cache"
	"github.com/brad-richardson/overture-geocode/pkg/catalog"
	"github.com/brad-richardson/overture-geocode/pkg/geocoder"
	"github.com/brad-richardson/overture-geocode/pkg/index"
	"github.com/brad-richardson/overture-geocode/pkg/log"
	"github.com/brad-richardson/overture-geocode/pkg/store"
)

// HeadShard is the sentinel shard with global coverage. It is mandatory for
// text search: if it cannot be resolved or queried the whole search fails.
// Country shards are best effort.
const HeadShard = "HEAD"

// Index is the per-shard query capability the orchestrator consumes.
// *index.Database is the production implementation.
type Index interface {
	Search(ftsQuery string, limit int) ([]geocoder.DivisionRow, error)
	ReverseLookup(lat, lon float64) ([]geocoder.ReverseResult, error)
	Close() error
}

// Opener opens an Index over a shard's raw bytes.
type Opener func(data []byte) (Index, error)

func defaultOpener(data []byte) (Index, error) {
	return index.OpenBytes(data)
}

// Service answers text and reverse lookups against the sharded catalog.
type Service struct {
	fetcher  *Fetcher
	resolver *catalog.Resolver
	opener   Opener
	logger   *log.Logger
}

// NewService wires a service over the given object store and cache.
func NewService(st store.ObjectStore, c cache.Cache, ttls cache.TTLs) *Service {
	fetcher := NewFetcher(st, c, ttls)
	return &Service{
		fetcher:  fetcher,
		resolver: catalog.NewResolver(fetcher),
		opener:   defaultOpener,
		logger:   log.ForService("shard"),
	}
}

type shardResult struct {
	shardID string
	results []geocoder.Result
	err     error
}

// Search runs a text query against the HEAD shard and, when the collection
// lists it, the hinted country shard. The two shards are queried
// concurrently. A country shard failure downgrades to a log line; a HEAD
// failure fails the search. Merged results are biased with the query's own
// bias before the final truncation.
func (s *Service) Search(ctx context.Context, query geocoder.Query, countryHint string) ([]geocoder.Result, error) {
	fts := geocoder.PrepareFTS(query.Text, query.Autocomplete)
	if fts == "" {
		return nil, nil
	}
	if query.Limit < 1 {
		query.Limit = geocoder.DefaultLimit
	}

	cat, err := s.resolver.LoadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	version, col, err := s.resolver.LatestCollection(ctx, cat)
	if err != nil {
		return nil, err
	}

	shardIDs := []string{HeadShard}
	if countryHint != "" && countryHint != HeadShard {
		if col.HasShard(countryHint) {
			shardIDs = append(shardIDs, countryHint)
		} else {
			s.logger.Debugf("no %s shard in version %s", countryHint, version)
		}
	}

	fetchLimit := geocoder.FetchLimit(query.Limit)
	ch := make(chan shardResult, len(shardIDs))
	for _, shardID := range shardIDs {
		go func(id string) {
			results, err := s.queryShard(ctx, version, id, col, fts, fetchLimit)
			ch <- shardResult{shardID: id, results: results, err: err}
		}(shardID)
	}

	sets := make([][]geocoder.Result, 0, len(shardIDs))
	for range shardIDs {
		res := <-ch
		if res.err != nil {
			if res.shardID == HeadShard {
				return nil, fmt.Errorf("querying HEAD shard: %w", res.err)
			}
			s.logger.Warnf("country shard %s unavailable: %v", res.shardID, res.err)
			continue
		}
		sets = append(sets, res.results)
	}

	merged := geocoder.MergeAll(sets...)
	geocoder.ApplyLocationBias(merged, query.Bias)
	return geocoder.Truncate(merged, query.Limit), nil
}

// ReverseGeocode resolves the smallest containing division for a point. The
// country shard is tried first for its more precise local data; on any
// failure or empty result the HEAD shard answers. No cross-shard merge: a
// country result wins outright.
func (s *Service) ReverseGeocode(ctx context.Context, lat, lon float64, countryHint string) (*geocoder.ReverseResult, error) {
	cat, err := s.resolver.LoadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	version, _, err := s.resolver.LatestCollection(ctx, cat)
	if err != nil {
		return nil, err
	}

	if countryHint != "" && countryHint != HeadShard {
		result, err := s.queryReverseShard(ctx, version, countryHint, lat, lon)
		if err != nil {
			s.logger.Warnf("country reverse shard %s unavailable: %v", countryHint, err)
		} else if result != nil {
			return result, nil
		} else {
			s.logger.Debugf("no result in %s reverse shard", countryHint)
		}
	}

	return s.queryReverseShard(ctx, version, HeadShard, lat, lon)
}

// Collection returns the active version and its shard collection, for
// diagnostics.
func (s *Service) Collection(ctx context.Context) (string, *catalog.Collection, error) {
	cat, err := s.resolver.LoadCatalog(ctx)
	if err != nil {
		return "", nil, err
	}
	return s.resolver.LatestCollection(ctx, cat)
}

func (s *Service) queryShard(ctx context.Context, version, shardID string, col *catalog.Collection, fts string, fetchLimit int) ([]geocoder.Result, error) {
	item, err := s.resolver.ResolveItem(ctx, col.ItemSourceFor(version, shardID))
	if err != nil {
		return nil, err
	}

	db, err := s.openShard(ctx, version, shardID, item)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = db.Close()
	}()

	rows, err := db.Search(fts, fetchLimit)
	if err != nil {
		return nil, err
	}

	results := make([]geocoder.Result, 0, len(rows))
	for _, row := range rows {
		results = append(results, row.Result())
	}
	return results, nil
}

func (s *Service) queryReverseShard(ctx context.Context, version, shardID string, lat, lon float64) (*geocoder.ReverseResult, error) {
	item, err := s.resolver.ResolveItem(ctx, catalog.ReverseItemSource(version, shardID))
	if err != nil {
		return nil, err
	}

	db, err := s.openShard(ctx, version, shardID, item)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = db.Close()
	}()

	rows, err := db.ReverseLookup(lat, lon)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	// Rows arrive ordered by ascending area; smallest containment wins.
	top := rows[0]
	return &top, nil
}

func (s *Service) openShard(ctx context.Context, version, shardID string, item catalog.ShardItem) (Index, error) {
	key := catalog.ShardKey(version, item.Href)
	data, err := s.fetcher.Get(ctx, key, cache.ClassShard)
	if err != nil {
		return nil, err
	}

	s.logger.Debugf("loading shard %s (%d bytes, %d records)", shardID, len(data), item.RecordCount)
	return s.opener(data)
}
