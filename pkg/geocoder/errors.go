package geocoder

import "errors"

var (
	// ErrNotFound indicates that a catalog, collection, item or shard
	// resource is absent at the expected key.
	ErrNotFound = errors.New("resource not found")

	// ErrParse indicates a malformed catalog, collection or item document.
	ErrParse = errors.New("malformed document")

	// ErrIndex indicates a failure opening or querying a shard's bytes.
	ErrIndex = errors.New("index query failed")
)
