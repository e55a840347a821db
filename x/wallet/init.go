package wallet

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/gconf"
	"github.com/iov-one/custody/orm"
)

const optKey = "wallet"

// GenesisWallet is the initial registry read from the genesis file.
type GenesisWallet struct {
	Name        string            `json:"name"`
	Signatories []custody.Address `json:"signatories"`
	Threshold   uint32            `json:"threshold"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ custody.Initializer = Initializer{}

// FromGenesis stores the configuration and the registry. Missing
// configuration falls back to the defaults.
func (Initializer) FromGenesis(opts custody.Options, kv custody.KVStore) error {
	var conf Configuration
	if err := gconf.InitConfig(kv, opts, confPkg, &conf); err != nil && !errors.ErrNotFound.Is(err) {
		return errors.Wrap(err, "wallet configuration")
	}

	var gw GenesisWallet
	if err := opts.ReadOptions(optKey, &gw); err != nil {
		return err
	}
	if gw.Name == "" {
		return nil
	}

	c, err := LoadConfiguration(kv)
	if err != nil {
		return err
	}
	if uint32(len(gw.Signatories)) > c.MaxSignatories {
		return errors.Wrapf(ErrInvariant, "%d signatories exceed the limit of %d", len(gw.Signatories), c.MaxSignatories)
	}
	bucket := orm.NewModelBucket(registryBucketName)
	if ok, err := bucket.Has(kv, registryKey); err != nil {
		return err
	} else if ok {
		return errors.Wrap(errors.ErrDuplicate, "wallet already initialized")
	}
	reg := NewRegistry(gw.Name, gw.Signatories, gw.Threshold)
	if err := bucket.Put(kv, registryKey, reg); err != nil {
		return errors.Wrap(err, "registry")
	}
	return nil
}
