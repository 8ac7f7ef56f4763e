package repository

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/securevista/securevista/internal/blobstore"
	"github.com/securevista/securevista/internal/cache"
	"github.com/securevista/securevista/internal/domain"
	"github.com/securevista/securevista/internal/sanitize"
)

// failingStore simulates an unreachable object store.
type failingStore struct{}

func (failingStore) List(context.Context, string) ([]blobstore.ObjectInfo, error) {
	return nil, errors.Wrap(blobstore.ErrStoreUnavailable, "connection refused")
}

func (failingStore) Read(context.Context, blobstore.ObjectInfo) ([]byte, error) {
	return nil, errors.Wrap(blobstore.ErrStoreUnavailable, "connection refused")
}

func (failingStore) Write(context.Context, string, []byte) (blobstore.ObjectInfo, error) {
	return blobstore.ObjectInfo{}, errors.Wrap(blobstore.ErrStoreUnavailable, "connection refused")
}

func (failingStore) Delete(context.Context, string) error {
	return errors.Wrap(blobstore.ErrStoreUnavailable, "connection refused")
}

func newProductRepo(store blobstore.Store) (*ProductRepository, cache.CollectionCache) {
	cc := cache.NewMemoryCache()
	return NewProductRepository(store, cc, domain.DefaultProducts, nil), cc
}

func writeSnapshot(t *testing.T, store *blobstore.MemoryStore, at time.Time, payload string) {
	t.Helper()
	key := blobstore.SnapshotKey(at)
	_, err := store.Write(context.Background(), key, []byte(payload))
	require.NoError(t, err)
	store.SetUploadedAt(key, at)
}

func TestProductsListAllUsesLatestSnapshot(t *testing.T) {
	store := blobstore.NewMemoryStore()
	repo, _ := newProductRepo(store)

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	writeSnapshot(t, store, base, `[{"id":"product-old","name":"Old"}]`)
	writeSnapshot(t, store, base.Add(time.Hour), `[{"id":"product-new","name":"New"}]`)

	products := repo.ListAll(context.Background())
	require.Len(t, products, 1)
	assert.Equal(t, "product-new", products[0].ID)
}

func TestProductsListAllNoSnapshotServesDefaults(t *testing.T) {
	repo, cc := newProductRepo(blobstore.NewMemoryStore())

	products := repo.ListAll(context.Background())
	assert.Len(t, products, len(domain.DefaultProducts))

	// bundled defaults must not be mirrored into the cache
	_, hit := cc.Get("products")
	assert.False(t, hit)
}

func TestProductsEmptySnapshotTrustedOverCache(t *testing.T) {
	store := blobstore.NewMemoryStore()
	repo, cc := newProductRepo(store)

	require.NoError(t, cc.Set("products", []byte(`[{"id":"product-stale"}]`)))
	writeSnapshot(t, store, time.Now(), `[]`)

	products := repo.ListAll(context.Background())
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestProductsStoreUnavailableFallsBackToCache(t *testing.T) {
	repo, cc := newProductRepo(failingStore{})
	require.NoError(t, cc.Set("products", []byte(`[{"id":"product-cached","name":"Cached"}]`)))

	products := repo.ListAll(context.Background())
	require.Len(t, products, 1)
	assert.Equal(t, "product-cached", products[0].ID)
	assert.Equal(t, "Cached", products[0].Name)
}

func TestProductsStoreUnavailableWithoutCacheServesDefaults(t *testing.T) {
	repo, _ := newProductRepo(failingStore{})
	products := repo.ListAll(context.Background())
	assert.Len(t, products, len(domain.DefaultProducts))
}

func TestProductsMalformedSnapshotServesDefaults(t *testing.T) {
	store := blobstore.NewMemoryStore()
	repo, _ := newProductRepo(store)
	writeSnapshot(t, store, time.Now(), `{"not":"an array"`)

	products := repo.ListAll(context.Background())
	assert.Len(t, products, len(domain.DefaultProducts))
}

func TestProductsCorruptedCacheMirrorCleared(t *testing.T) {
	repo, cc := newProductRepo(failingStore{})
	require.NoError(t, cc.Set("products", []byte(`garbage`)))

	products := repo.ListAll(context.Background())
	assert.Len(t, products, len(domain.DefaultProducts))

	_, hit := cc.Get("products")
	assert.False(t, hit)
}

func TestProductsGetByID(t *testing.T) {
	store := blobstore.NewMemoryStore()
	repo, _ := newProductRepo(store)
	writeSnapshot(t, store, time.Now(), `[{"id":"product-1","name":"Dome Camera"}]`)

	ctx := context.Background()

	p, err := repo.GetByID(ctx, "product-1")
	require.NoError(t, err)
	assert.Equal(t, "Dome Camera", p.Name)

	// bundled defaults remain addressable even when absent from the snapshot
	p, err = repo.GetByID(ctx, domain.DefaultProducts[0].ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultProducts[0].Name, p.Name)

	_, err = repo.GetByID(ctx, "product-unknown")
	assert.True(t, errors.Is(err, blobstore.ErrNotFound))
}

func TestProductsReplaceAllWritesSnapshotAndMirrors(t *testing.T) {
	store := blobstore.NewMemoryStore()
	repo, cc := newProductRepo(store)
	ctx := context.Background()

	info, err := repo.ReplaceAll(ctx, []domain.Product{{ID: "product-1", Name: "NVR", Price: 900}})
	require.NoError(t, err)
	assert.True(t, blobstore.IsSnapshotKey(info.Key))

	objects, err := store.List(ctx, blobstore.ProductPrefix)
	require.NoError(t, err)
	require.Len(t, objects, 1)

	_, hit := cc.Get("products")
	assert.True(t, hit)
}

func TestProductsRoundTripPreservesSanitizedForm(t *testing.T) {
	store := blobstore.NewMemoryStore()
	repo, _ := newProductRepo(store)
	ctx := context.Background()

	original := sanitize.Product(map[string]interface{}{
		"id":       "product-rt",
		"name":     "PTZ Camera",
		"price":    3200,
		"discount": 15,
		"category": "Cameras",
		"features": []interface{}{"30x zoom", "Auto tracking"},
		"specifications": []interface{}{
			map[string]interface{}{"name": "Resolution", "value": "4MP"},
		},
		"featured": true,
	})

	_, err := repo.ReplaceAll(ctx, []domain.Product{original})
	require.NoError(t, err)

	listed := repo.ListAll(ctx)
	require.Len(t, listed, 1)
	assert.Equal(t, original, listed[0])
}

func TestProductsUpsertOne(t *testing.T) {
	store := blobstore.NewMemoryStore()
	repo, _ := newProductRepo(store)
	ctx := context.Background()

	writeSnapshot(t, store, time.Now().Add(-time.Hour), `[{"id":"product-1","name":"Dome"}]`)

	// unknown id appends
	_, appended, err := repo.UpsertOne(ctx, domain.Product{ID: "product-2", Name: "Bullet"})
	require.NoError(t, err)
	assert.True(t, appended)
	assert.Len(t, repo.ListAll(ctx), 2)

	// known id replaces in place
	updated, appended, err := repo.UpsertOne(ctx, domain.Product{ID: "product-1", Name: "Dome v2"})
	require.NoError(t, err)
	assert.False(t, appended)
	assert.Equal(t, "Dome v2", updated.Name)
	assert.Len(t, repo.ListAll(ctx), 2)
}

func TestProductsResetToDefaults(t *testing.T) {
	store := blobstore.NewMemoryStore()
	repo, _ := newProductRepo(store)
	ctx := context.Background()

	writeSnapshot(t, store, time.Now().Add(-time.Hour), `[{"id":"product-x"}]`)

	_, err := repo.ResetToDefaults(ctx)
	require.NoError(t, err)

	products := repo.ListAll(ctx)
	require.Len(t, products, len(domain.DefaultProducts))
	assert.Equal(t, domain.DefaultProducts[0].ID, products[0].ID)
}

func TestProductsPruneSnapshots(t *testing.T) {
	store := blobstore.NewMemoryStore()
	repo, _ := newProductRepo(store)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		writeSnapshot(t, store, base.Add(time.Duration(i)*time.Hour), `[]`)
	}

	removed, err := repo.PruneSnapshots(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, removed)

	objects, err := store.List(ctx, blobstore.ProductPrefix)
	require.NoError(t, err)
	require.Len(t, objects, 2)
	for _, obj := range objects {
		assert.True(t, obj.UploadedAt.After(base.Add(2*time.Hour)))
	}

	// nothing more to remove under the same policy
	removed, err = repo.PruneSnapshots(ctx, 2)
	require.NoError(t, err)
	assert.Zero(t, removed)
}
