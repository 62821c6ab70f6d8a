package storage

import (
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"masterblog/app/models"
)

const (
	postsKey = "collection:posts"
	usersKey = "collection:users"
)

// BadgerStore persists each collection as a single JSON value in a Badger
// database. It satisfies the same whole-collection contract as FileStore and
// is selected with BLOG_STORE=badger.
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore opens (or creates) a Badger database at the given path.
func NewBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path).
		WithLogger(nil).
		WithNumVersionsToKeep(1)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: open badger at %s: %v", ErrIO, path, err)
	}
	return &BadgerStore{db: db}, nil
}

// NewInMemoryBadgerStore opens a Badger database without a backing directory.
// Used by tests.
func NewInMemoryBadgerStore() (*BadgerStore, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: open in-memory badger: %v", ErrIO, err)
	}
	return &BadgerStore{db: db}, nil
}

// Close releases the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// LoadPosts reads the full post collection, seeding it on first access.
func (s *BadgerStore) LoadPosts() ([]models.Post, error) {
	var posts []models.Post
	found, err := s.get(postsKey, &posts)
	if err != nil {
		return nil, err
	}
	if !found {
		seed := SeedPosts()
		if err := s.SavePosts(seed); err != nil {
			return nil, err
		}
		return seed, nil
	}
	return posts, nil
}

// SavePosts overwrites the stored post collection.
func (s *BadgerStore) SavePosts(posts []models.Post) error {
	return s.set(postsKey, posts)
}

// LoadUsers reads the credential map, seeding an empty one if absent.
func (s *BadgerStore) LoadUsers() (map[string]models.User, error) {
	var users map[string]models.User
	found, err := s.get(usersKey, &users)
	if err != nil {
		return nil, err
	}
	if !found {
		users = map[string]models.User{}
		if err := s.SaveUsers(users); err != nil {
			return nil, err
		}
	}
	return users, nil
}

// SaveUsers overwrites the stored credential map.
func (s *BadgerStore) SaveUsers(users map[string]models.User) error {
	return s.set(usersKey, users)
}

func (s *BadgerStore) get(key string, v interface{}) (bool, error) {
	var raw []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: get %s: %v", ErrIO, key, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("%w: decode %s: %v", ErrCorrupt, key, err)
	}
	return true, nil
}

func (s *BadgerStore) set(key string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrIO, key, err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
	if err != nil {
		return fmt.Errorf("%w: set %s: %v", ErrIO, key, err)
	}
	return nil
}
