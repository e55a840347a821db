package gconf

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

// ReadStore is a subset of custody.ReadOnlyKVStore.
type ReadStore interface {
	Get([]byte) ([]byte, error)
}

// Store is a subset of custody.KVStore.
type Store interface {
	ReadStore
	Set([]byte, []byte) error
}

// Configuration is implemented by configuration objects. They must be
// pointers to structures serializable with amino.
type Configuration interface {
	Validate() error
}

func key(pkg string) []byte {
	return []byte("_c:" + pkg)
}

// Save will Validate the object, before writing it to a special "configuration"
// singleton for that package name.
func Save(db Store, pkg string, src Configuration) error {
	k := key(pkg)
	if err := src.Validate(); err != nil {
		return errors.Wrapf(err, "validation: key %q", k)
	}
	raw, err := orm.Marshal(src)
	if err != nil {
		return errors.Wrapf(err, "marshal: key %q", k)
	}
	return db.Set(k, raw)
}

// Load reads the configuration of given package into dst. It returns
// ErrNotFound if no configuration was saved.
func Load(db ReadStore, pkg string, dst Configuration) error {
	k := key(pkg)
	raw, err := db.Get(k)
	if err != nil {
		return err
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "key %q", k)
	}
	if err := orm.Unmarshal(raw, dst); err != nil {
		return errors.Wrapf(err, "unmarshal: key %q", k)
	}
	return nil
}

// InitConfig will take opts["conf"][pkg], parse it into the given Configuration object
// validate it, and store under the proper key in the database
// Returns an error if anything goes wrong
func InitConfig(db Store, opts custody.Options, pkg string, conf Configuration) error {
	var confOptions custody.Options
	if err := opts.ReadOptions("conf", &confOptions); err != nil {
		return errors.Wrap(err, "read conf")
	}
	if confOptions[pkg] == nil {
		return errors.Wrapf(errors.ErrNotFound, "no configuration in genesis for %q package", pkg)
	}
	if err := confOptions.ReadOptions(pkg, conf); err != nil {
		return errors.Wrapf(err, "read configuration for %s", pkg)
	}
	if err := Save(db, pkg, conf); err != nil {
		return errors.Wrapf(err, "save configuration for %s", pkg)
	}
	return nil
}
