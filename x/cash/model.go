package cash

import (
	"github.com/iov-one/custody/orm"
)

const bucketName = "cash"

// Balance is the amount held by an address.
type Balance struct {
	Amount uint64
}

var _ orm.Model = (*Balance)(nil)

// Validate always passes, every amount is a valid balance.
func (b *Balance) Validate() error {
	return nil
}

// NewBucket returns the bucket holding balances keyed by address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(bucketName)
}
