package store

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/iov-one/custody/errors"
)

// MemCommitStore is an in memory CommitKVStore. Every Commit produces a new
// version with a hash computed from the whole content.
type MemCommitStore struct {
	data    BTreeCacheWrap
	version int64
	hash    []byte
}

var _ CommitKVStore = (*MemCommitStore)(nil)

// NewMemCommitStore returns an empty store at version zero.
func NewMemCommitStore() *MemCommitStore {
	e := EmptyKVStore{}
	return &MemCommitStore{data: NewBTreeCacheWrap(e, e.NewBatch(), nil)}
}

// Get returns the value at last committed state
func (s *MemCommitStore) Get(key []byte) ([]byte, error) {
	return s.data.Get(key)
}

// CacheWrap returns a scratch pad on top of the committed state.
func (s *MemCommitStore) CacheWrap() KVCacheWrap {
	return s.data.CacheWrap()
}

// Commit the next version and returns info
func (s *MemCommitStore) Commit() (CommitID, error) {
	it, err := s.data.Iterator(nil, nil)
	if err != nil {
		return CommitID{}, err
	}
	defer it.Release()

	h := sha256.New()
	for {
		key, value, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			break
		}
		if err != nil {
			return CommitID{}, err
		}
		var size [8]byte
		binary.BigEndian.PutUint64(size[:], uint64(len(key)))
		h.Write(size[:])
		h.Write(key)
		h.Write(value)
	}
	s.version++
	s.hash = h.Sum(nil)
	return s.LatestVersion()
}

// LoadLatestVersion is a noop, there is nothing to load.
func (s *MemCommitStore) LoadLatestVersion() error {
	return nil
}

// LatestVersion returns info on the latest committed version
func (s *MemCommitStore) LatestVersion() (CommitID, error) {
	return CommitID{Version: s.version, Hash: s.hash}, nil
}
