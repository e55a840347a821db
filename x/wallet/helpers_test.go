package wallet

import (
	"context"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/orm"
	"github.com/iov-one/custody/store"
	"github.com/iov-one/custody/x/cash"
)

// fixture is a wallet with a funded registry stored in memory.
type fixture struct {
	db       custody.CacheableKVStore
	ctx      custody.Context
	wallet   *Wallet
	ledger   cash.BaseController
	programs *Programs
	sigs     []custody.Address
	addr     custody.Address
}

func newFixture(t testing.TB, signatories int, threshold uint32, funds uint64) *fixture {
	t.Helper()

	db := store.MemStore()
	sigs := make([]custody.Address, signatories)
	for i := range sigs {
		sigs[i] = custodytest.NewAddress()
	}
	reg := NewRegistry("treasury", sigs, threshold)
	if err := orm.NewModelBucket(registryBucketName).Put(db, registryKey, reg); err != nil {
		t.Fatalf("cannot store registry: %s", err)
	}
	ledger := cash.NewController(cash.NewBucket())
	if funds > 0 {
		if err := ledger.IssueCoins(db, reg.Address, funds); err != nil {
			t.Fatalf("cannot fund wallet: %s", err)
		}
	}
	programs := NewPrograms()
	return &fixture{
		db:       db,
		ctx:      custody.WithHeight(context.Background(), 10),
		wallet:   New(ledger, programs),
		ledger:   ledger,
		programs: programs,
		sigs:     sigs,
		addr:     reg.Address,
	}
}

func (f *fixture) queue(t testing.TB, caller custody.Address, actions ...Action) uint64 {
	t.Helper()
	id, _, err := f.wallet.Queue(f.ctx, f.db, caller, actions)
	if err != nil {
		t.Fatalf("cannot queue: %+v", err)
	}
	return id
}

func (f *fixture) approve(caller custody.Address, id uint64) error {
	_, err := f.wallet.Approve(f.ctx, f.db, caller, id)
	return err
}

func (f *fixture) balance(t testing.TB, addr custody.Address) uint64 {
	t.Helper()
	n, err := f.ledger.Balance(f.db, addr)
	if err != nil {
		t.Fatalf("cannot read balance: %s", err)
	}
	return n
}

func (f *fixture) tx(t testing.TB, id uint64) *Transaction {
	t.Helper()
	tx, err := GetTransaction(f.db, id)
	if err != nil {
		t.Fatalf("cannot load transaction %d: %s", id, err)
	}
	return tx
}

func (f *fixture) registry(t testing.TB) *Registry {
	t.Helper()
	r, err := GetRegistry(f.db)
	if err != nil {
		t.Fatalf("cannot load registry: %s", err)
	}
	return r
}

func (f *fixture) amendment(t testing.TB, in Instruction) Action {
	t.Helper()
	a, err := NewAmendmentAction(f.addr, in)
	if err != nil {
		t.Fatalf("cannot create amendment: %s", err)
	}
	return a
}

// snapshot returns all key value pairs of the store.
func snapshot(t testing.TB, db custody.ReadOnlyKVStore) map[string]string {
	t.Helper()
	it, err := db.Iterator(nil, nil)
	if err != nil {
		t.Fatalf("cannot iterate: %s", err)
	}
	defer it.Release()
	res := make(map[string]string)
	for {
		k, v, err := it.Next()
		if err != nil {
			return res
		}
		res[string(k)] = string(v)
	}
}

func eventTypes(events []custody.Event) []string {
	res := make([]string, len(events))
	for i, e := range events {
		res[i] = e.Type
	}
	return res
}

func (f *fixture) updateRegistry(t testing.TB, fn func(*Registry)) {
	t.Helper()
	r := f.registry(t)
	fn(r)
	if err := orm.NewModelBucket(registryBucketName).Put(f.db, registryKey, r); err != nil {
		t.Fatalf("cannot store registry: %s", err)
	}
}
