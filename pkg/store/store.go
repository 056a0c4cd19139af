// Package store abstracts the object storage that holds published catalogs
// and shard binaries. Keys are slash-separated paths relative to the catalog
// root, e.g. "catalog.json" or "2026-01-02.0/shards/US.db".
package store

import "context"

// ObjectStore fetches immutable objects by key. A missing object is reported
// via ok=false, not an error; errors are reserved for transport failures.
type ObjectStore interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
}
