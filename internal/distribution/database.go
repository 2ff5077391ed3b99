package distribution

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"go.etcd.io/bbolt"
)

const bucketName = "distributions"

// DB defines the interface for database operations
type DB interface {
	// SaveDistribution saves a distribution to the database
	SaveDistribution(dist *Distribution) error

	// GetDistribution retrieves a distribution by ID
	GetDistribution(id string) (*Distribution, error)

	// ListDistributions returns all distributions, newest first
	ListDistributions() ([]*Distribution, error)

	// Close closes the database connection
	Close() error
}

// BoltDB implements the DB interface using BoltDB
type BoltDB struct {
	db *bbolt.DB
}

// NewBoltDB creates a new BoltDB instance
func NewBoltDB(path string) (*BoltDB, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening boltdb: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating bucket: %w", err)
	}

	return &BoltDB{db: db}, nil
}

// SaveDistribution saves a distribution to the database
func (b *BoltDB) SaveDistribution(dist *Distribution) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketName))
		data, err := json.Marshal(dist)
		if err != nil {
			return fmt.Errorf("marshaling distribution: %w", err)
		}
		return bucket.Put([]byte(dist.ID), data)
	})
}

// GetDistribution retrieves a distribution by ID
func (b *BoltDB) GetDistribution(id string) (*Distribution, error) {
	var dist *Distribution
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketName))
		data := bucket.Get([]byte(id))
		if data == nil {
			return fmt.Errorf("distribution not found: %s", id)
		}
		return json.Unmarshal(data, &dist)
	})
	if err != nil {
		return nil, err
	}
	return dist, nil
}

// ListDistributions returns all distributions ordered newest first
func (b *BoltDB) ListDistributions() ([]*Distribution, error) {
	distributions := make([]*Distribution, 0)
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketName))
		return bucket.ForEach(func(k, v []byte) error {
			var dist Distribution
			if err := json.Unmarshal(v, &dist); err != nil {
				return fmt.Errorf("unmarshaling distribution: %w", err)
			}
			distributions = append(distributions, &dist)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(distributions, func(i, j int) bool {
		return distributions[i].CreatedAt.After(distributions[j].CreatedAt)
	})

	return distributions, nil
}

// Close closes the database connection
func (b *BoltDB) Close() error {
	return b.db.Close()
}
