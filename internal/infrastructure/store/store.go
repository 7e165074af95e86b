// Package store provides the bbolt-backed persistent store shared by the
// operation tracker and the location registry.
//
// One database file, three buckets. Records are opaque byte values; the
// domain managers own encoding. All access goes through bolt transactions,
// so concurrent readers never observe torn writes.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Bucket names
const (
	BucketOperations = "operations"
	BucketLocations  = "locations"
	BucketConfig     = "config"
)

// ErrKeyNotFound is returned when a key has no value in its bucket.
var ErrKeyNotFound = fmt.Errorf("key not found")

// Store wraps a bolt.DB file with bucket-level helpers.
type Store struct {
	path string
	db   *bolt.DB
}

// Open opens (creating if needed) the database file and bootstraps buckets.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open db %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{BucketOperations, BucketLocations, BucketConfig} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return fmt.Errorf("create bucket %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{path: path, db: db}, nil
}

// String returns a human friendly identifier for this store.
func (s *Store) String() string {
	return "<Explorer DB> " + s.path
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put writes a value under key in the named bucket.
func (s *Store) Put(bucket string, key, value []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucket)).Put(key, value)
	})
}

// Get reads the value under key, returning ErrKeyNotFound when absent.
func (s *Store) Get(bucket string, key []byte) ([]byte, error) {
	var value []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucket)).Get(key)
		if v == nil {
			return ErrKeyNotFound
		}
		value = append([]byte(nil), v...)
		return nil
	})
	return value, err
}

// Delete removes the key from the named bucket. Deleting a missing key is a no-op.
func (s *Store) Delete(bucket string, key []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucket)).Delete(key)
	})
}

// Exists reports whether the key holds a value.
func (s *Store) Exists(bucket string, key []byte) (bool, error) {
	_, err := s.Get(bucket, key)
	if err == ErrKeyNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ForEach iterates every key/value pair in the bucket inside one read
// transaction. The callback must not retain the slices.
func (s *Store) ForEach(bucket string, fn func(key, value []byte) error) error {
	return s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucket)).ForEach(fn)
	})
}

// NextSequence allocates the next monotonic id for the bucket.
func (s *Store) NextSequence(bucket string) (uint64, error) {
	var seq uint64
	err := s.db.Update(func(tx *bolt.Tx) error {
		var err error
		seq, err = tx.Bucket([]byte(bucket)).NextSequence()
		return err
	})
	return seq, err
}

// Update runs fn inside a read-write transaction against the named bucket,
// for callers that need check-then-act atomicity.
func (s *Store) Update(bucket string, fn func(b *bolt.Bucket) error) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return fn(tx.Bucket([]byte(bucket)))
	})
}
