package utils

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// Savepoint will isolate all data inside of the call,
// and commit/rollback to savepoint based on if error
type Savepoint struct{}

var _ custody.Decorator = Savepoint{}

// NewSavepoint creates a Savepoint decorator
func NewSavepoint() Savepoint {
	return Savepoint{}
}

// Deliver runs next inside of a savepoint. Nothing is written if next fails.
func (s Savepoint) Deliver(ctx custody.Context, store custody.KVStore, msg custody.Msg, next custody.Handler) (*custody.DeliverResult, error) {
	var res *custody.DeliverResult
	err := WithSavepoint(store, func(db custody.KVStore) error {
		var err error
		res, err = next.Deliver(ctx, db, msg)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// WithSavepoint calls fn with a cache wrap of the store. The changes are
// written if fn succeeds and discarded otherwise. Stores that cannot be
// cache wrapped are passed through unchanged.
func WithSavepoint(store custody.KVStore, fn func(custody.KVStore) error) error {
	cstore, ok := store.(custody.CacheableKVStore)
	if !ok {
		return fn(store)
	}

	cache := cstore.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "writing savepoint")
	}
	return nil
}
