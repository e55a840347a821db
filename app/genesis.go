package app

import (
	"encoding/json"
	"io/ioutil"
	"regexp"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// Genesis file format.
type Genesis struct {
	ChainID    string          `json:"chain_id"`
	AppOptions custody.Options `json:"app_options"`
}

// LoadGenesis reads a genesis file.
func LoadGenesis(filePath string) (Genesis, error) {
	var gen Genesis
	raw, err := ioutil.ReadFile(filePath)
	if err != nil {
		return gen, errors.Wrapf(errors.ErrNotFound, "genesis file: %s", err)
	}
	if err := json.Unmarshal(raw, &gen); err != nil {
		return gen, errors.Wrapf(errors.ErrInput, "genesis file: %s", err)
	}
	if !IsValidChainID(gen.ChainID) {
		return gen, errors.Wrapf(errors.ErrInput, "chain id %q", gen.ChainID)
	}
	return gen, nil
}

var isChainID = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,25}$`).MatchString

// IsValidChainID returns true if chainID has an acceptable form.
func IsValidChainID(chainID string) bool {
	return isChainID(chainID)
}

// ChainInitializers lets you initialize many extensions with one function
func ChainInitializers(inits ...custody.Initializer) custody.Initializer {
	return chainInitializer{inits}
}

type chainInitializer struct {
	inits []custody.Initializer
}

// FromGenesis will pass opts to all Initializers in the list,
// aborting at the first error.
func (c chainInitializer) FromGenesis(opts custody.Options, kv custody.KVStore) error {
	for _, i := range c.inits {
		if err := i.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}

const chainIDKey = "_i.chain_id"

// loadChainID returns the chain id stored if any
func loadChainID(kv interface{ Get([]byte) ([]byte, error) }) (string, error) {
	v, err := kv.Get([]byte(chainIDKey))
	if err != nil {
		return "", errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return string(v), nil
}

// saveChainID stores a chain id in the kv store.
// Returns error if already set, or invalid name
func saveChainID(kv custody.KVStore, chainID string) error {
	if !IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id %q", chainID)
	}
	k := []byte(chainIDKey)
	if ok, err := kv.Has(k); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	} else if ok {
		return errors.Wrap(errors.ErrDuplicate, "chain id already set")
	}
	return kv.Set(k, []byte(chainID))
}
