package orm

import (
	"regexp"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
)

// Model is implemented by any entity that can be stored using ModelBucket.
// Implementations must be pointers to structures serializable with amino.
type Model interface {
	Validate() error
}

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// ModelBucket stores models of a single type under a common key prefix.
type ModelBucket struct {
	name   string
	prefix []byte
}

// NewModelBucket returns a bucket storing entities under the "<name>:" key
// prefix. Name must be 3 to 10 lowercase letters.
func NewModelBucket(name string) ModelBucket {
	if !isBucketName(name) {
		panic("invalid bucket name: " + name)
	}
	return ModelBucket{
		name:   name,
		prefix: []byte(name + ":"),
	}
}

// Name returns the bucket name.
func (b ModelBucket) Name() string {
	return b.name
}

// DBKey returns the full key under which a model is stored.
func (b ModelBucket) DBKey(key []byte) []byte {
	return append(append([]byte(nil), b.prefix...), key...)
}

// One query the database for a single model instance. Result is loaded into
// given destination model.
// This method returns ErrNotFound if the entity does not exist in the
// database.
func (b ModelBucket) One(db custody.ReadOnlyKVStore, key []byte, dest Model) error {
	raw, err := db.Get(b.DBKey(key))
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", b.name, key)
	}
	return Unmarshal(raw, dest)
}

// Has returns true if an entity with given key exists.
func (b ModelBucket) Has(db custody.ReadOnlyKVStore, key []byte) (bool, error) {
	return db.Has(b.DBKey(key))
}

// Put validates and saves given model in the database.
func (b ModelBucket) Put(db custody.KVStore, key []byte, m Model) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := Marshal(m)
	if err != nil {
		return err
	}
	if err := db.Set(b.DBKey(key), raw); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// Delete removes an entity with given primary key from the database.
// It returns ErrNotFound if an entity with given key does not exist.
func (b ModelBucket) Delete(db custody.KVStore, key []byte) error {
	ok, err := b.Has(db, key)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", b.name, key)
	}
	return db.Delete(b.DBKey(key))
}

// Iterate returns an iterator over models with keys in [start, end) in
// ascending key order. Nil bounds are open.
func (b ModelBucket) Iterate(db custody.ReadOnlyKVStore, start, end []byte) (*ModelIterator, error) {
	s := b.DBKey(start)
	e := store.PrefixEnd(b.prefix)
	if end != nil {
		e = b.DBKey(end)
	}
	it, err := db.Iterator(s, e)
	if err != nil {
		return nil, err
	}
	return &ModelIterator{it: it, prefix: len(b.prefix)}, nil
}

// ModelIterator loads models from a bucket one at a time.
type ModelIterator struct {
	it     custody.Iterator
	prefix int
}

// LoadNext loads the next model into dest and returns its key. It returns
// ErrIteratorDone once all models were consumed.
func (i *ModelIterator) LoadNext(dest Model) ([]byte, error) {
	key, value, err := i.it.Next()
	if err != nil {
		return nil, err
	}
	if err := Unmarshal(value, dest); err != nil {
		return nil, err
	}
	return key[i.prefix:], nil
}

// Release releases the underlying iterator.
func (i *ModelIterator) Release() {
	i.it.Release()
}
