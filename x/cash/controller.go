package cash

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

// Controller is the functionality needed by the wallet and the handlers.
// Other extensions depend on this interface only.
type Controller interface {
	// Balance returns the amount held by given address. An unknown
	// address holds nothing.
	Balance(db custody.ReadOnlyKVStore, addr custody.Address) (uint64, error)

	// MoveCoins moves the given amount from src to dest.
	// If src doesn't exist, or doesn't have sufficient
	// coins, it fails.
	MoveCoins(db custody.KVStore, src, dest custody.Address, amount uint64) error

	// IssueCoins adds the given amount to the destination address.
	IssueCoins(db custody.KVStore, dest custody.Address, amount uint64) error
}

// BaseController is a simple implementation of controller
// bucket must contain Balance models
type BaseController struct {
	bucket orm.ModelBucket
}

var _ Controller = BaseController{}

// NewController returns a controller using given bucket.
func NewController(bucket orm.ModelBucket) BaseController {
	return BaseController{bucket: bucket}
}

// Balance returns the amount held by given address.
func (c BaseController) Balance(db custody.ReadOnlyKVStore, addr custody.Address) (uint64, error) {
	b, err := c.load(db, addr)
	if err != nil {
		return 0, err
	}
	return b.Amount, nil
}

func (c BaseController) load(db custody.ReadOnlyKVStore, addr custody.Address) (*Balance, error) {
	if err := addr.Validate(); err != nil {
		return nil, errors.Wrap(err, "address")
	}
	var b Balance
	switch err := c.bucket.One(db, addr, &b); {
	case err == nil:
		return &b, nil
	case errors.ErrNotFound.Is(err):
		return &Balance{}, nil
	default:
		return nil, errors.Wrap(err, "cannot load balance")
	}
}

// MoveCoins moves the given amount from src to dest.
func (c BaseController) MoveCoins(db custody.KVStore, src, dest custody.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "non-positive amount")
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}

	sender, err := c.load(db, src)
	if err != nil {
		return err
	}
	if sender.Amount < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "%s holds %d, want %d", src, sender.Amount, amount)
	}
	sender.Amount -= amount
	if err := c.bucket.Put(db, src, sender); err != nil {
		return err
	}
	return c.IssueCoins(db, dest, amount)
}

// IssueCoins attempts to add the given amount of coins to
// the destination address. Fails if it overflows the balance.
func (c BaseController) IssueCoins(db custody.KVStore, dest custody.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "non-positive amount")
	}
	recipient, err := c.load(db, dest)
	if err != nil {
		return err
	}
	if recipient.Amount+amount < recipient.Amount {
		return errors.Wrapf(errors.ErrOverflow, "balance of %s", dest)
	}
	recipient.Amount += amount
	return c.bucket.Put(db, dest, recipient)
}
