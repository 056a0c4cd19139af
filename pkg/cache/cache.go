// Package cache provides the tiered-fetch cache used for catalog,
// collection and shard-binary resources. Backends are interchangeable: an
// in-process TTL map for single-node deployments and Redis for shared edge
// caches.
package cache

import (
	"context"
	"time"
)

// Class identifies the kind of cached resource. Each class carries its own
// TTL: the catalog points at the live version so it expires fastest, while
// shard binaries live under versioned paths and are effectively immutable.
type Class int

const (
	ClassCatalog Class = iota
	ClassCollection
	ClassShard
)

// TTLs maps resource classes to cache lifetimes.
type TTLs struct {
	Catalog    time.Duration
	Collection time.Duration
	Shard      time.Duration
}

// DefaultTTLs matches the catalog publishing cadence: version pointers stay
// fresh within 5 minutes, shard content is invalidated by version changes
// rather than expiry.
func DefaultTTLs() TTLs {
	return TTLs{
		Catalog:    5 * time.Minute,
		Collection: 5 * time.Minute,
		Shard:      time.Hour,
	}
}

// For returns the TTL for a resource class.
func (t TTLs) For(class Class) time.Duration {
	switch class {
	case ClassCatalog:
		return t.Catalog
	case ClassCollection:
		return t.Collection
	default:
		return t.Shard
	}
}

// Cache is a byte cache with per-entry TTLs. Implementations must tolerate
// concurrent readers and writers; last-writer-wins per key is acceptable.
// Put failures never fail the read they originated from: callers log and
// continue.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
