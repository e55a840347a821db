package sigs

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/crypto"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

// BucketName is where we store the accounts
const BucketName = "sigs"

// maxSequenceValue is the greatest nonce a javascript client can represent.
const maxSequenceValue = 1<<53 - 1

// UserData is the signing state of a public key.
type UserData struct {
	Pubkey   crypto.PublicKey `json:"pubkey"`
	Sequence int64            `json:"sequence"`
}

var _ orm.Model = (*UserData)(nil)

// Validate ensures the sequence is sane.
func (u *UserData) Validate() error {
	if u.Sequence < 0 {
		return errors.Field("Sequence", ErrInvalidSequence, "negative")
	}
	if u.Sequence > 0 && len(u.Pubkey) == 0 {
		return errors.Field("Sequence", ErrInvalidSequence, "needs Pubkey")
	}
	return nil
}

// CheckAndIncrementSequence implements check and increment operation.
// If current sequence value is the same as given expected value then it is
// incremented. Otherwise an error is returned.
func (u *UserData) CheckAndIncrementSequence(expected int64) error {
	if u.Sequence != expected {
		return errors.Wrapf(ErrInvalidSequence, "mismatch expected %d, got %d", expected, u.Sequence)
	}
	if u.Sequence >= maxSequenceValue {
		return errors.Wrap(ErrInvalidSequence, "overflow")
	}
	u.Sequence++
	return nil
}

// NewBucket returns the bucket of signing states keyed by address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName)
}

// GetSequence returns the sequence the next signature of addr must use.
func GetSequence(db custody.ReadOnlyKVStore, addr custody.Address) (int64, error) {
	var u UserData
	switch err := NewBucket().One(db, addr, &u); {
	case err == nil:
		return u.Sequence, nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, err
	}
}
