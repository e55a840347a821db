package crypto

import (
	"io/ioutil"
	"os"

	"github.com/iov-one/custody/errors"
)

// SaveKeyFile writes the seed of the key into a new file. It fails if the
// file already exists, so that no key is overwritten by accident.
func SaveKeyFile(path string, key *PrivateKey) error {
	fd, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		if os.IsExist(err) {
			return errors.Wrapf(errors.ErrDuplicate, "private key file %q already exists", path)
		}
		return errors.Wrapf(errors.ErrInput, "cannot create private key file: %s", err)
	}
	defer fd.Close()

	if _, err := fd.Write(key.Seed()); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot write private key: %s", err)
	}
	if err := fd.Close(); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot close private key file: %s", err)
	}
	return nil
}

// LoadKeyFile reads a key written by SaveKeyFile.
func LoadKeyFile(path string) (*PrivateKey, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(errors.ErrNotFound, "private key file %q", path)
		}
		return nil, errors.Wrapf(errors.ErrInput, "cannot read private key file: %s", err)
	}
	key, err := PrivKeyEd25519FromSeed(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "private key file %q", path)
	}
	return key, nil
}
