package wallet

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

// GetRegistry returns the signatory registry. ErrNotFound is returned if
// the wallet was not initialized.
func GetRegistry(db custody.ReadOnlyKVStore) (*Registry, error) {
	var r Registry
	if err := orm.NewModelBucket(registryBucketName).One(db, registryKey, &r); err != nil {
		return nil, errors.Wrap(err, "wallet registry")
	}
	return &r, nil
}

// IsSignatory returns true if addr is a current signatory.
func IsSignatory(db custody.ReadOnlyKVStore, addr custody.Address) (bool, error) {
	r, err := GetRegistry(db)
	if err != nil {
		return false, err
	}
	return r.IsSignatory(addr), nil
}

// CurrentThreshold returns the number of approvals required to execute.
func CurrentThreshold(db custody.ReadOnlyKVStore) (uint32, error) {
	r, err := GetRegistry(db)
	if err != nil {
		return 0, err
	}
	return r.CurrentThreshold(), nil
}

// GetTransaction returns the transaction with given id.
func GetTransaction(db custody.ReadOnlyKVStore, id uint64) (*Transaction, error) {
	var tx Transaction
	if err := orm.NewModelBucket(transactionBucketName).One(db, TransactionKey(id), &tx); err != nil {
		return nil, errors.Wrapf(err, "transaction %d", id)
	}
	return &tx, nil
}

// ListTransactions returns up to limit transactions in id order, starting
// with fromID. A zero limit returns all of them.
func ListTransactions(db custody.ReadOnlyKVStore, fromID uint64, limit int) ([]*Transaction, error) {
	it, err := orm.NewModelBucket(transactionBucketName).Iterate(db, TransactionKey(fromID), nil)
	if err != nil {
		return nil, err
	}
	defer it.Release()

	var res []*Transaction
	for limit <= 0 || len(res) < limit {
		var tx Transaction
		switch _, err := it.LoadNext(&tx); {
		case err == nil:
			res = append(res, &tx)
		case errors.ErrIteratorDone.Is(err):
			return res, nil
		default:
			return nil, err
		}
	}
	return res, nil
}

// GetUnit returns the code unit deployed at addr.
func GetUnit(db custody.ReadOnlyKVStore, addr custody.Address) (*Unit, error) {
	var u Unit
	if err := orm.NewModelBucket(unitBucketName).One(db, addr, &u); err != nil {
		return nil, errors.Wrapf(err, "unit %s", addr)
	}
	return &u, nil
}
