// Package cache holds the local fallback mirror of the last successfully
// fetched collection payloads. It is consulted only when the object store is
// unreachable; a successful remote read always overwrites it, including an
// empty-but-valid result. The last-fetch timestamp is informational only and
// plays no part in invalidation.
package cache

import "time"

// CollectionCache mirrors raw collection payloads keyed by collection name.
type CollectionCache interface {
	Get(collection string) ([]byte, bool)
	Set(collection string, payload []byte) error
	Clear(collection string) error
	LastFetch(collection string) (time.Time, bool)
	Close() error
}
