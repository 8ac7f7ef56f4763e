package cache

import (
	"time"

	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

var (
	bucketPayloads = []byte("payloads")
	bucketMeta     = []byte("meta")
)

// BoltCache persists the fallback mirror in a bbolt file under the workdir so
// it survives restarts, the way the original kept a browser-local copy.
type BoltCache struct {
	db *bolt.DB
}

func NewBoltCache(path string) (*BoltCache, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrap(err, "open cache file")
	}
	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketPayloads); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(bucketMeta)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "init cache buckets")
	}
	return &BoltCache{db: db}, nil
}

func (c *BoltCache) Get(collection string) ([]byte, bool) {
	var payload []byte
	_ = c.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketPayloads).Get([]byte(collection))
		if v != nil {
			payload = append([]byte(nil), v...)
		}
		return nil
	})
	return payload, payload != nil
}

func (c *BoltCache) Set(collection string, payload []byte) error {
	return c.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(bucketPayloads).Put([]byte(collection), payload); err != nil {
			return err
		}
		stamp := time.Now().UTC().Format(time.RFC3339Nano)
		return tx.Bucket(bucketMeta).Put([]byte(collection), []byte(stamp))
	})
}

func (c *BoltCache) Clear(collection string) error {
	return c.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(bucketPayloads).Delete([]byte(collection)); err != nil {
			return err
		}
		return tx.Bucket(bucketMeta).Delete([]byte(collection))
	})
}

func (c *BoltCache) LastFetch(collection string) (time.Time, bool) {
	var stamp []byte
	_ = c.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketMeta).Get([]byte(collection))
		if v != nil {
			stamp = append([]byte(nil), v...)
		}
		return nil
	})
	if stamp == nil {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, string(stamp))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func (c *BoltCache) Close() error {
	return c.db.Close()
}
