// Package blobstore provides list/read/write/delete primitives against a
// key-prefixed object store. The key prefix acts as a collection namespace:
// the product collection is written as timestamped whole-collection snapshots
// under products/, while messages are one object per entity under messages/.
package blobstore

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
)

var (
	// ErrStoreUnavailable reports a network or auth failure reaching the store.
	ErrStoreUnavailable = errors.New("blobstore: store unavailable")
	// ErrNotFound reports that an object no longer exists.
	ErrNotFound = errors.New("blobstore: object not found")
	// ErrMalformedPayload reports an object whose payload failed to parse.
	ErrMalformedPayload = errors.New("blobstore: malformed payload")
)

const (
	// ProductPrefix namespaces the product collection snapshots.
	ProductPrefix = "products/"
	// MessagePrefix namespaces per-entity message documents.
	MessagePrefix = "messages/"

	snapshotMarker = "data-"
)

// ObjectInfo is an opaque handle to one stored object.
type ObjectInfo struct {
	Key        string    `json:"pathname"`
	URL        string    `json:"url"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// Store is the object-store client. Writes overwrite silently (last write
// wins); Delete of a missing key is not an error.
type Store interface {
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)
	Read(ctx context.Context, obj ObjectInfo) ([]byte, error)
	Write(ctx context.Context, key string, payload []byte) (ObjectInfo, error)
	Delete(ctx context.Context, key string) error
}

var snapshotReplacer = strings.NewReplacer(":", "-", ".", "-")

// SnapshotKey builds a product snapshot key for the given write time, e.g.
// products/data-2024-06-01T10-30-00-000Z.json.
func SnapshotKey(t time.Time) string {
	ts := snapshotReplacer.Replace(t.UTC().Format("2006-01-02T15:04:05.000Z"))
	return ProductPrefix + snapshotMarker + ts + ".json"
}

// IsSnapshotKey reports whether key names a product collection snapshot.
func IsSnapshotKey(key string) bool {
	return strings.HasPrefix(key, ProductPrefix) &&
		strings.Contains(key, snapshotMarker)
}

// MessageKey builds the document key for a message id.
func MessageKey(id string) string {
	return MessagePrefix + id + ".json"
}
