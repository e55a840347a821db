package wallet

import (
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/gconf"
)

const confPkg = "wallet"

// Configuration limits the size of the wallet state.
type Configuration struct {
	// MaxActions is the maximum number of actions in a single transaction.
	MaxActions uint32 `json:"max_actions"`
	// MaxSignatories is the maximum size of the registry.
	MaxSignatories uint32 `json:"max_signatories"`
}

// DefaultConfiguration is used when no configuration was saved.
func DefaultConfiguration() Configuration {
	return Configuration{
		MaxActions:     64,
		MaxSignatories: 100,
	}
}

// Validate requires both limits to be set.
func (c *Configuration) Validate() error {
	var errs error
	if c.MaxActions == 0 {
		errs = errors.AppendField(errs, "MaxActions", errors.ErrEmpty)
	}
	if c.MaxSignatories == 0 {
		errs = errors.AppendField(errs, "MaxSignatories", errors.ErrEmpty)
	}
	return errs
}

// LoadConfiguration returns the saved configuration or the default one.
func LoadConfiguration(db gconf.ReadStore) (Configuration, error) {
	var conf Configuration
	switch err := gconf.Load(db, confPkg, &conf); {
	case err == nil:
		return conf, nil
	case errors.ErrNotFound.Is(err):
		return DefaultConfiguration(), nil
	default:
		return conf, errors.Wrap(err, "load configuration")
	}
}
