// Package catalog resolves the three-level versioned index describing
// published shard sets: the catalog lists versions, a collection lists the
// shards of one version, and an item carries per-shard metadata.
//
// Two catalog generations are in the wild. Newer collections embed item
// metadata directly in an "items" map; older ones link to separate item
// documents. Both must resolve to the same logical item.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/brad-richardson/overture-geocode/pkg/cache"
	"github.com/brad-richardson/overture-geocode/pkg/geocoder"
)

// CatalogKey is the fixed root document key.
const CatalogKey = "catalog.json"

// Fetcher fetches a catalog resource, using the TTL of the given class for
// caching. A missing resource must surface as geocoder.ErrNotFound.
type Fetcher interface {
	Get(ctx context.Context, key string, class cache.Class) ([]byte, error)
}

// Link is a relation entry in a catalog or collection document.
type Link struct {
	Rel    string `json:"rel"`
	Href   string `json:"href"`
	Latest bool   `json:"latest,omitempty"`
}

// Catalog is the root document listing collection versions.
type Catalog struct {
	Links []Link `json:"links"`
}

// EmbeddedItem is per-shard metadata embedded in a collection (new format).
type EmbeddedItem struct {
	RecordCount int64  `json:"record_count"`
	SizeBytes   int64  `json:"size_bytes"`
	SHA256      string `json:"sha256"`
	Href        string `json:"href"`
}

// Collection lists the shards of one version, either via the Items map or
// via rel="item" links to legacy item documents.
type Collection struct {
	ID    string                  `json:"id"`
	Items map[string]EmbeddedItem `json:"items"`
	Links []Link                  `json:"links"`
}

// Item is a legacy standalone item document.
type Item struct {
	ID         string `json:"id"`
	Properties struct {
		RecordCount int64  `json:"record_count"`
		SizeBytes   int64  `json:"size_bytes"`
		SHA256      string `json:"sha256"`
	} `json:"properties"`
	Assets struct {
		Data struct {
			Href string `json:"href"`
		} `json:"data"`
	} `json:"assets"`
}

// ShardItem is the normalized per-shard record both generations resolve to.
type ShardItem struct {
	RecordCount int64
	SizeBytes   int64
	SHA256      string
	Href        string
}

// ItemSource says where a shard's item record lives: embedded in the
// collection, or behind a legacy item document at LegacyKey. Exactly one
// side is set.
type ItemSource struct {
	Embedded  *EmbeddedItem
	LegacyKey string
}

// HasShard reports whether the collection knows the shard in either format.
func (c *Collection) HasShard(shardID string) bool {
	if _, ok := c.Items[shardID]; ok {
		return true
	}
	for _, l := range c.Links {
		if l.Rel == "item" && strings.Contains(l.Href, "/"+shardID+".json") {
			return true
		}
	}
	return false
}

// ItemSourceFor locates a shard's item record, preferring the embedded map
// and falling back to the legacy per-shard document path.
func (c *Collection) ItemSourceFor(version, shardID string) ItemSource {
	if item, ok := c.Items[shardID]; ok {
		return ItemSource{Embedded: &item}
	}
	return ItemSource{LegacyKey: version + "/items/" + shardID + ".json"}
}

// ReverseItemSource locates a reverse shard's item record. Reverse shards
// were only ever published as legacy item documents.
func ReverseItemSource(version, shardID string) ItemSource {
	return ItemSource{LegacyKey: version + "/reverse-items/" + shardID + ".json"}
}

// ShardKey resolves a shard binary's storage key from the version token and
// the item's relative href.
func ShardKey(version, href string) string {
	return version + "/" + strings.TrimPrefix(href, "./")
}

// Resolver walks the catalog protocol over a Fetcher. It is stateless;
// freshness comes from the fetcher's cache TTLs.
type Resolver struct {
	fetcher Fetcher
}

// NewResolver creates a resolver over the given fetcher.
func NewResolver(fetcher Fetcher) *Resolver {
	return &Resolver{fetcher: fetcher}
}

// LoadCatalog fetches and parses the root catalog document.
func (r *Resolver) LoadCatalog(ctx context.Context) (*Catalog, error) {
	data, err := r.fetcher.Get(ctx, CatalogKey, cache.ClassCatalog)
	if err != nil {
		return nil, err
	}

	var cat Catalog
	if err := json.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %w", geocoder.ErrParse, CatalogKey, err)
	}
	return &cat, nil
}

// LatestCollection finds the single child link marked latest, derives the
// version token from its href (the first path segment, e.g.
// "./2026-01-02.0/collection.json" yields "2026-01-02.0") and loads that
// version's collection.
func (r *Resolver) LatestCollection(ctx context.Context, cat *Catalog) (string, *Collection, error) {
	var latest *Link
	for i := range cat.Links {
		if cat.Links[i].Rel == "child" && cat.Links[i].Latest {
			latest = &cat.Links[i]
			break
		}
	}
	if latest == nil {
		return "", nil, fmt.Errorf("%w: catalog has no latest collection", geocoder.ErrNotFound)
	}

	version, _, _ := strings.Cut(strings.TrimPrefix(latest.Href, "./"), "/")
	if version == "" {
		return "", nil, fmt.Errorf("%w: invalid collection href %q", geocoder.ErrParse, latest.Href)
	}

	key := version + "/collection.json"
	data, err := r.fetcher.Get(ctx, key, cache.ClassCollection)
	if err != nil {
		return "", nil, err
	}

	var col Collection
	if err := json.Unmarshal(data, &col); err != nil {
		return "", nil, fmt.Errorf("%w: parsing %s: %w", geocoder.ErrParse, key, err)
	}
	return version, &col, nil
}

// ResolveItem normalizes an ItemSource into a ShardItem, fetching the legacy
// item document when the record is not embedded.
func (r *Resolver) ResolveItem(ctx context.Context, src ItemSource) (ShardItem, error) {
	if src.Embedded != nil {
		return ShardItem{
			RecordCount: src.Embedded.RecordCount,
			SizeBytes:   src.Embedded.SizeBytes,
			SHA256:      src.Embedded.SHA256,
			Href:        src.Embedded.Href,
		}, nil
	}

	data, err := r.fetcher.Get(ctx, src.LegacyKey, cache.ClassShard)
	if err != nil {
		return ShardItem{}, err
	}

	var item Item
	if err := json.Unmarshal(data, &item); err != nil {
		return ShardItem{}, fmt.Errorf("%w: parsing %s: %w", geocoder.ErrParse, src.LegacyKey, err)
	}
	return ShardItem{
		RecordCount: item.Properties.RecordCount,
		SizeBytes:   item.Properties.SizeBytes,
		SHA256:      item.Properties.SHA256,
		Href:        item.Assets.Data.Href,
	}, nil
}
