package repository

import (
	"context"
	"sort"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/securevista/securevista/internal/blobstore"
	"github.com/securevista/securevista/internal/cache"
	"github.com/securevista/securevista/internal/domain"
	"github.com/securevista/securevista/internal/sanitize"
)

const productsCollection = "products"

// errNoSnapshot means the store answered but holds no product snapshot yet.
var errNoSnapshot = errors.New("repository: no product snapshot")

// ProductRepository persists the product catalog with the collection-snapshot
// model: every write stores the entire collection under a fresh timestamped
// key, and reads pick the latest snapshot. There is no per-product object.
type ProductRepository struct {
	store    blobstore.Store
	cache    cache.CollectionCache
	defaults []domain.Product
	bus      EventBus.Bus
}

func NewProductRepository(store blobstore.Store, cc cache.CollectionCache,
	defaults []domain.Product, bus EventBus.Bus) *ProductRepository {
	return &ProductRepository{store: store, cache: cc, defaults: defaults, bus: bus}
}

// ListAll returns the current catalog. It never fails: a store outage falls
// back to the cache mirror, then to the bundled defaults. An empty-but-valid
// remote snapshot is trusted and returned as-is.
func (r *ProductRepository) ListAll(ctx context.Context) []domain.Product {
	products, err := r.fetchRemote(ctx)
	switch {
	case err == nil:
		r.mirror(products)
		return products
	case errors.Is(err, errNoSnapshot):
		zap.L().Info("no product snapshot in store, serving bundled defaults")
		return r.defaultSet()
	case errors.Is(err, blobstore.ErrStoreUnavailable):
		zap.L().Warn("product store unreachable, trying cache mirror", zap.Error(err))
		if cached, ok := r.fromCache(); ok {
			return cached
		}
		return r.defaultSet()
	default:
		// read error or malformed snapshot payload
		zap.L().Warn("product snapshot unreadable, serving bundled defaults", zap.Error(err))
		return r.defaultSet()
	}
}

// GetByID looks up one product in the current catalog, consulting the bundled
// defaults before reporting blobstore.ErrNotFound.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (domain.Product, error) {
	for _, p := range r.ListAll(ctx) {
		if p.ID == id {
			return p, nil
		}
	}
	for _, p := range r.defaults {
		if p.ID == id {
			return sanitize.NormalizeProduct(p), nil
		}
	}
	return domain.Product{}, errors.Wrapf(blobstore.ErrNotFound, "product %s", id)
}

// ListFeatured returns the featured subset of the catalog.
func (r *ProductRepository) ListFeatured(ctx context.Context) []domain.Product {
	var out []domain.Product
	for _, p := range r.ListAll(ctx) {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out
}

// ReplaceAll sanitizes every element and writes a new collection snapshot.
// Old snapshots are kept; the retention job prunes them separately.
func (r *ProductRepository) ReplaceAll(ctx context.Context, products []domain.Product) (blobstore.ObjectInfo, error) {
	clean := make([]domain.Product, 0, len(products))
	for _, p := range products {
		clean = append(clean, sanitize.NormalizeProduct(p))
	}

	payload, err := json.Marshal(clean)
	if err != nil {
		return blobstore.ObjectInfo{}, errors.Wrap(err, "encode product snapshot")
	}

	info, err := r.store.Write(ctx, blobstore.SnapshotKey(time.Now()), payload)
	if err != nil {
		return blobstore.ObjectInfo{}, errors.Wrap(err, "write product snapshot")
	}

	r.mirror(clean)
	if r.bus != nil {
		r.bus.Publish(EventProductsReplaced, info.Key, len(clean))
	}
	return info, nil
}

// UpsertOne replaces the product with a matching id, or appends it when the
// id is unknown. Reports whether the product was appended. This is a full
// collection read-modify-write; concurrent writers race, last snapshot wins.
func (r *ProductRepository) UpsertOne(ctx context.Context, p domain.Product) (domain.Product, bool, error) {
	clean := sanitize.NormalizeProduct(p)
	products := r.ListAll(ctx)

	appended := true
	for i := range products {
		if products[i].ID == clean.ID {
			products[i] = clean
			appended = false
			break
		}
	}
	if appended {
		products = append(products, clean)
	}

	if _, err := r.ReplaceAll(ctx, products); err != nil {
		return domain.Product{}, false, err
	}
	return clean, appended, nil
}

// ResetToDefaults replaces the stored catalog with the bundled dataset.
func (r *ProductRepository) ResetToDefaults(ctx context.Context) (blobstore.ObjectInfo, error) {
	return r.ReplaceAll(ctx, r.defaults)
}

// PruneSnapshots deletes all but the newest keep snapshots and returns how
// many were removed. Individual delete failures are logged and skipped.
func (r *ProductRepository) PruneSnapshots(ctx context.Context, keep int) (int, error) {
	if keep < 1 {
		keep = 1
	}
	snapshots, err := r.listSnapshots(ctx)
	if err != nil {
		return 0, err
	}
	if len(snapshots) <= keep {
		return 0, nil
	}

	removed := 0
	for _, obj := range snapshots[keep:] {
		if err := r.store.Delete(ctx, obj.Key); err != nil {
			zap.L().Warn("failed to prune product snapshot",
				zap.String("key", obj.Key), zap.Error(err))
			continue
		}
		removed++
	}
	zap.L().Info("pruned product snapshots",
		zap.Int("removed", removed), zap.Int("kept", keep))
	return removed, nil
}

// LastFetch reports when the cache mirror was last refreshed, for display only.
func (r *ProductRepository) LastFetch() (time.Time, bool) {
	return r.cache.LastFetch(productsCollection)
}

func (r *ProductRepository) fetchRemote(ctx context.Context) ([]domain.Product, error) {
	snapshots, err := r.listSnapshots(ctx)
	if err != nil {
		return nil, err
	}
	if len(snapshots) == 0 {
		return nil, errNoSnapshot
	}

	payload, err := r.store.Read(ctx, snapshots[0])
	if err != nil {
		return nil, err
	}

	var raws []map[string]interface{}
	if err := json.Unmarshal(payload, &raws); err != nil {
		return nil, errors.Wrapf(blobstore.ErrMalformedPayload,
			"snapshot %s: %s", snapshots[0].Key, err.Error())
	}

	products := make([]domain.Product, 0, len(raws))
	for _, raw := range raws {
		products = append(products, sanitize.Product(raw))
	}
	return products, nil
}

// listSnapshots returns the product snapshots newest-first.
func (r *ProductRepository) listSnapshots(ctx context.Context) ([]blobstore.ObjectInfo, error) {
	objects, err := r.store.List(ctx, blobstore.ProductPrefix)
	if err != nil {
		return nil, err
	}

	var snapshots []blobstore.ObjectInfo
	for _, obj := range objects {
		if blobstore.IsSnapshotKey(obj.Key) {
			snapshots = append(snapshots, obj)
		}
	}
	sort.Slice(snapshots, func(i, j int) bool {
		if !snapshots[i].UploadedAt.Equal(snapshots[j].UploadedAt) {
			return snapshots[i].UploadedAt.After(snapshots[j].UploadedAt)
		}
		// snapshot keys embed the write time, so key order breaks ties
		return snapshots[i].Key > snapshots[j].Key
	})
	return snapshots, nil
}

func (r *ProductRepository) mirror(products []domain.Product) {
	payload, err := json.Marshal(products)
	if err != nil {
		return
	}
	if err := r.cache.Set(productsCollection, payload); err != nil {
		zap.L().Warn("failed to update product cache mirror", zap.Error(err))
	}
}

func (r *ProductRepository) fromCache() ([]domain.Product, bool) {
	payload, ok := r.cache.Get(productsCollection)
	if !ok {
		return nil, false
	}
	var products []domain.Product
	if err := json.Unmarshal(payload, &products); err != nil {
		zap.L().Warn("product cache mirror corrupted, clearing", zap.Error(err))
		_ = r.cache.Clear(productsCollection)
		return nil, false
	}
	for i := range products {
		products[i] = sanitize.NormalizeProduct(products[i])
	}
	return products, true
}

func (r *ProductRepository) defaultSet() []domain.Product {
	out := make([]domain.Product, 0, len(r.defaults))
	for _, p := range r.defaults {
		out = append(out, sanitize.NormalizeProduct(p))
	}
	return out
}
