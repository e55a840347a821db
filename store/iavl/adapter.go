/*
Package iavl provides a persistent, versioned CommitKVStore backed by an
iavl merkle tree stored in a goleveldb database.
*/
package iavl

import (
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
	"github.com/tendermint/iavl"
	dbm "github.com/tendermint/tendermint/libs/db"
)

// cacheSize is the number of tree nodes kept in memory.
const cacheSize = 10000

// CommitStore manages a iavl committed state
type CommitStore struct {
	db   dbm.DB
	tree *iavl.MutableTree
}

var _ store.CommitKVStore = CommitStore{}

// NewCommitStore creates a new store with disk backing
func NewCommitStore(path, name string) (CommitStore, error) {
	db, err := dbm.NewGoLevelDB(name, path)
	if err != nil {
		return CommitStore{}, errors.Wrapf(errors.ErrDatabase, "cannot open goleveldb: %s", err)
	}
	return NewCommitStoreWithDB(db)
}

// NewMemCommitStore creates a store kept in memory only. It is using the
// same tree implementation as the persistent one.
func NewMemCommitStore() (CommitStore, error) {
	return NewCommitStoreWithDB(dbm.NewMemDB())
}

// NewCommitStoreWithDB loads the latest version of the tree saved in db.
func NewCommitStoreWithDB(db dbm.DB) (CommitStore, error) {
	tree := iavl.NewMutableTree(db, cacheSize)
	if _, err := tree.Load(); err != nil {
		return CommitStore{}, errors.Wrapf(errors.ErrDatabase, "cannot load tree: %s", err)
	}
	return CommitStore{db: db, tree: tree}, nil
}

// Close releases the underlying database. The store must not be used
// afterwards.
func (s CommitStore) Close() {
	s.db.Close()
}

// Get returns the value at last committed state
// returns nil iff key doesn't exist.
func (s CommitStore) Get(key []byte) ([]byte, error) {
	_, val := s.tree.Get(key)
	return val, nil
}

// Commit the next version to disk, and returns info
func (s CommitStore) Commit() (store.CommitID, error) {
	hash, version, err := s.tree.SaveVersion()
	if err != nil {
		return store.CommitID{}, errors.Wrapf(errors.ErrDatabase, "cannot save version: %s", err)
	}
	return store.CommitID{Version: version, Hash: hash}, nil
}

// LoadLatestVersion loads the latest persisted version.
// If there was a crash during the last commit, it is guaranteed
// to return a stable state, even if older.
func (s CommitStore) LoadLatestVersion() error {
	if _, err := s.tree.Load(); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "cannot load tree: %s", err)
	}
	return nil
}

// LatestVersion returns info on the latest version saved to disk
func (s CommitStore) LatestVersion() (store.CommitID, error) {
	return store.CommitID{
		Version: s.tree.Version(),
		Hash:    s.tree.Hash(),
	}, nil
}

// CacheWrap gives us a savepoint to perform actions.
// Written data lands in the working tree and is persisted on Commit.
func (s CommitStore) CacheWrap() store.KVCacheWrap {
	return s.Adapter().CacheWrap()
}

// Adapter returns a store reading and writing the working tree directly.
func (s CommitStore) Adapter() store.CacheableKVStore {
	return adapter{tree: s.tree}
}

// adapter gives access to the working tree through the KVStore interface.
type adapter struct {
	tree *iavl.MutableTree
}

var _ store.CacheableKVStore = adapter{}

// Get returns nil iff key doesn't exist.
func (a adapter) Get(key []byte) ([]byte, error) {
	_, val := a.tree.Get(key)
	return val, nil
}

// Has checks if a key exists.
func (a adapter) Has(key []byte) (bool, error) {
	return a.tree.Has(key), nil
}

// Set adds a new value
func (a adapter) Set(key, value []byte) error {
	if key == nil {
		return errors.Wrap(errors.ErrInput, "nil key")
	}
	// iavl cannot store nil values
	if value == nil {
		value = []byte{}
	}
	a.tree.Set(key, value)
	return nil
}

// Delete removes from the tree
func (a adapter) Delete(key []byte) error {
	a.tree.Remove(key)
	return nil
}

// CacheWrap wraps us with a btree
func (a adapter) CacheWrap() store.KVCacheWrap {
	return store.NewBTreeCacheWrap(a, store.NewNonAtomicBatch(a), nil)
}

// Iterator over a domain of keys in ascending order. End is exclusive.
func (a adapter) Iterator(start, end []byte) (store.Iterator, error) {
	return a.iterate(start, end, true), nil
}

// ReverseIterator over a domain of keys in descending order. End is exclusive.
func (a adapter) ReverseIterator(start, end []byte) (store.Iterator, error) {
	return a.iterate(start, end, false), nil
}

func (a adapter) iterate(start, end []byte, ascending bool) store.Iterator {
	var res []store.Model
	a.tree.IterateRange(start, end, ascending, func(key, value []byte) bool {
		res = append(res, store.Pair(key, value))
		return false
	})
	return store.NewSliceIterator(res)
}
