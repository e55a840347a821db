package store

import "github.com/iov-one/custody"

// Move references for all storage types into this package
// for shorter names everywhere

type (
	ReadOnlyKVStore  = custody.ReadOnlyKVStore
	SetDeleter       = custody.SetDeleter
	KVStore          = custody.KVStore
	Iterator         = custody.Iterator
	CacheableKVStore = custody.CacheableKVStore
	KVCacheWrap      = custody.KVCacheWrap
	CommitKVStore    = custody.CommitKVStore
	CommitID         = custody.CommitID
)

// Batch can write multiple ops atomically to an underlying KVStore.
type Batch interface {
	SetDeleter
	Write() error
}

// Model groups together key and value to return
type Model struct {
	Key   []byte
	Value []byte
}

// Pair constructs a model from a key-value pair
func Pair(key, value []byte) Model {
	return Model{Key: key, Value: value}
}
