package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var bucketArtifacts = []byte("artifacts")

// BoltCache keeps all entries in one bbolt database file. Unlike FileCache
// it is safe to share between processes: bbolt holds an exclusive file lock
// while the database is open.
type BoltCache struct {
	db *bolt.DB
}

// NewBoltCache opens (or creates) the database at path.
func NewBoltCache(path string) (*BoltCache, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketArtifacts)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("bbolt init: %w", err)
	}
	return &BoltCache{db: db}, nil
}

// Path returns the database file path.
func (c *BoltCache) Path() string { return c.db.Path() }

// Get retrieves a value from the cache. Expired entries are removed.
func (c *BoltCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var raw []byte
	err := c.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketArtifacts).Get([]byte(key)); v != nil {
			// Values are only valid inside the transaction.
			raw = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, false, translateBolt(err)
	}
	if raw == nil {
		return nil, false, nil
	}

	var entry cacheEntry
	if err := json.Unmarshal(raw, &entry); err != nil || entry.expired() {
		return nil, false, c.Delete(ctx, key)
	}
	return entry.Data, true, nil
}

// Set stores a value in the cache.
func (c *BoltCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	raw, err := json.Marshal(newEntry(data, ttl))
	if err != nil {
		return err
	}
	return translateBolt(c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketArtifacts).Put([]byte(key), raw)
	}))
}

// Delete removes a value from the cache.
func (c *BoltCache) Delete(ctx context.Context, key string) error {
	return translateBolt(c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketArtifacts).Delete([]byte(key))
	}))
}

// Clear drops and recreates the artifact bucket.
func (c *BoltCache) Clear(ctx context.Context) error {
	return translateBolt(c.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucketArtifacts); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
			return err
		}
		_, err := tx.CreateBucket(bucketArtifacts)
		return err
	}))
}

// Close closes the underlying database.
func (c *BoltCache) Close() error {
	return c.db.Close()
}

func translateBolt(err error) error {
	if errors.Is(err, bolt.ErrDatabaseNotOpen) {
		return ErrClosed
	}
	return err
}

var (
	_ Cache   = (*BoltCache)(nil)
	_ Clearer = (*BoltCache)(nil)
)
