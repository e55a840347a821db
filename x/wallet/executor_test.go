package wallet

import (
	"encoding/binary"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/custodytest/assert"
	"github.com/iov-one/custody/errors"
)

func TestDeploy(t *testing.T) {
	f := newFixture(t, 2, 1, 10)
	salt := [32]byte{1}
	code := []byte("counter v1")

	deploy, err := NewDeployAction(salt, code, 3)
	assert.Nil(t, err)
	id := f.queue(t, f.sigs[0], deploy)
	events, err := f.wallet.Approve(f.ctx, f.db, f.sigs[0], id)
	assert.Nil(t, err)
	assert.Equal(t,
		[]string{EventTransactionApproved, EventContractDeployed, EventTransactionExecuted},
		eventTypes(events))

	addr := DeriveAddress(f.addr, salt, code)
	got, _ := events[1].Attr("address")
	assert.Equal(t, addr.String(), got)

	unit, err := GetUnit(f.db, addr)
	assert.Nil(t, err)
	assert.Equal(t, f.addr, unit.Deployer)
	assert.Equal(t, CodeHash(code), unit.CodeHash)
	assert.Equal(t, id, unit.TransactionID)
	assert.Equal(t, uint64(3), f.balance(t, addr))
	assert.Equal(t, uint64(7), f.balance(t, f.addr))

	// The same salt and code cannot be deployed twice.
	again := f.queue(t, f.sigs[0], deploy)
	err = f.approve(f.sigs[0], again)
	assert.IsErr(t, ErrExecution, err)
	assert.IsErr(t, errors.ErrDuplicate, err)
	assert.Equal(t, false, f.tx(t, again).Executed)
	assert.Equal(t, uint64(7), f.balance(t, f.addr))

	// A different salt gives a different address.
	other, err := NewDeployAction([32]byte{2}, code, 0)
	assert.Nil(t, err)
	id = f.queue(t, f.sigs[0], other)
	assert.Nil(t, f.approve(f.sigs[0], id))
	_, err = GetUnit(f.db, DeriveAddress(f.addr, [32]byte{2}, code))
	assert.Nil(t, err)
}

func TestDeployToFundedAddressFails(t *testing.T) {
	f := newFixture(t, 1, 1, 10)
	salt := [32]byte{7}
	code := []byte("code")
	if err := f.ledger.IssueCoins(f.db, DeriveAddress(f.addr, salt, code), 1); err != nil {
		t.Fatalf("cannot fund: %s", err)
	}
	deploy, err := NewDeployAction(salt, code, 0)
	assert.Nil(t, err)
	id := f.queue(t, f.sigs[0], deploy)
	assert.IsErr(t, errors.ErrDuplicate, f.approve(f.sigs[0], id))
}

func TestDeployMalformedPayload(t *testing.T) {
	f := newFixture(t, 1, 1, 10)
	id := f.queue(t, f.sigs[0], Action{Target: custody.ZeroAddress(), Payload: []byte("garbage")})
	err := f.approve(f.sigs[0], id)
	assert.IsErr(t, ErrExecution, err)
	assert.IsErr(t, errors.ErrInput, err)
}

// recorder is an invoker remembering the environment of each call and
// counting calls in its own storage.
type recorder struct {
	envs []Env
	fail error
}

func (r *recorder) Invoke(env *Env, payload []byte) error {
	r.envs = append(r.envs, *env)
	raw, err := env.Store.Get([]byte("calls"))
	if err != nil {
		return err
	}
	var n uint64
	if len(raw) == 8 {
		n = binary.BigEndian.Uint64(raw)
	}
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, n+1)
	if err := env.Store.Set([]byte("calls"), buf); err != nil {
		return err
	}
	return r.fail
}

func calls(t testing.TB, db custody.KVStore, addr custody.Address) uint64 {
	t.Helper()
	raw, err := namespace(db, addr).Get([]byte("calls"))
	if err != nil {
		t.Fatalf("cannot read calls: %s", err)
	}
	if raw == nil {
		return 0
	}
	return binary.BigEndian.Uint64(raw)
}

func TestCallDeployedUnit(t *testing.T) {
	f := newFixture(t, 1, 1, 10)
	code := []byte("recorder")
	rec := &recorder{}
	f.programs.RegisterProgram(code, rec)

	deploy, err := NewDeployAction([32]byte{}, code, 0)
	assert.Nil(t, err)
	assert.Nil(t, f.approve(f.sigs[0], f.queue(t, f.sigs[0], deploy)))
	unit := DeriveAddress(f.addr, [32]byte{}, code)

	id := f.queue(t, f.sigs[0], NewCallAction(unit, 4, []byte("hello"), false))
	assert.Nil(t, f.approve(f.sigs[0], id))

	assert.Equal(t, 1, len(rec.envs))
	env := rec.envs[0]
	assert.Equal(t, unit, env.Self)
	assert.Equal(t, f.addr, env.Caller)
	assert.Equal(t, uint64(4), env.Value)
	assert.Equal(t, false, env.Delegate)
	assert.Equal(t, uint64(4), f.balance(t, unit))
	assert.Equal(t, uint64(1), calls(t, f.db, unit))
	assert.Equal(t, uint64(0), calls(t, f.db, f.addr))
}

func TestPlainCallWithoutCodeIsTransfer(t *testing.T) {
	f := newFixture(t, 1, 1, 10)
	dest := custodytest.NewAddress()
	id := f.queue(t, f.sigs[0], NewCallAction(dest, 2, []byte("ignored"), false))
	assert.Nil(t, f.approve(f.sigs[0], id))
	assert.Equal(t, uint64(2), f.balance(t, dest))
}

func TestDelegateCall(t *testing.T) {
	f := newFixture(t, 3, 2, 10)
	lib := custodytest.NewAddress()
	var self custody.Address
	f.programs.RegisterContract(lib, InvokerFunc(func(env *Env, payload []byte) error {
		self = env.Self
		if err := env.Store.Set([]byte("touched"), []byte{1}); err != nil {
			return err
		}
		return env.Amend(ChangeThreshold{Threshold: 3})
	}))

	id := f.queue(t, f.sigs[0], NewCallAction(lib, 0, nil, true))
	assert.Nil(t, f.approve(f.sigs[0], id))
	assert.Nil(t, f.approve(f.sigs[1], id))

	assert.Equal(t, f.addr, self)
	assert.Equal(t, uint32(3), f.registry(t).Threshold)
	raw, err := namespace(f.db, f.addr).Get([]byte("touched"))
	assert.Nil(t, err)
	assert.Equal(t, []byte{1}, raw)
}

func TestOrdinaryCallCannotAmend(t *testing.T) {
	f := newFixture(t, 1, 1, 10)
	lib := custodytest.NewAddress()
	f.programs.RegisterContract(lib, InvokerFunc(func(env *Env, payload []byte) error {
		return env.Amend(ChangeThreshold{Threshold: 1})
	}))
	id := f.queue(t, f.sigs[0], NewCallAction(lib, 1, nil, false))
	err := f.approve(f.sigs[0], id)
	assert.IsErr(t, ErrExecution, err)
	assert.IsErr(t, errors.ErrUnauthorized, err)
	assert.Equal(t, uint64(10), f.balance(t, f.addr))
}

func TestDelegateCallWithoutCodeFails(t *testing.T) {
	f := newFixture(t, 1, 1, 10)
	id := f.queue(t, f.sigs[0], NewCallAction(custodytest.NewAddress(), 0, nil, true))
	err := f.approve(f.sigs[0], id)
	assert.IsErr(t, ErrExecution, err)
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestFailingInvokerRevertsEverything(t *testing.T) {
	f := newFixture(t, 1, 1, 10)
	lib := custodytest.NewAddress()
	rec := &recorder{fail: errors.Wrap(errors.ErrState, "refused")}
	f.programs.RegisterContract(lib, rec)
	dest := custodytest.NewAddress()

	id := f.queue(t, f.sigs[0],
		NewTransferAction(dest, 1),
		NewCallAction(lib, 2, nil, false),
	)
	err := f.approve(f.sigs[0], id)
	assert.IsErr(t, errors.ErrState, err)
	index, _ := FailedAction(err)
	assert.Equal(t, 1, index)

	assert.Equal(t, 1, len(rec.envs))
	assert.Equal(t, uint64(0), calls(t, f.db, lib))
	assert.Equal(t, uint64(0), f.balance(t, dest))
	assert.Equal(t, uint64(0), f.balance(t, lib))
	assert.Equal(t, uint64(10), f.balance(t, f.addr))
}

func TestEnvTransfer(t *testing.T) {
	f := newFixture(t, 1, 1, 10)
	lib := custodytest.NewAddress()
	dest := custodytest.NewAddress()
	f.programs.RegisterContract(lib, InvokerFunc(func(env *Env, payload []byte) error {
		n, err := env.Balance(env.Self)
		if err != nil {
			return err
		}
		return env.Transfer(dest, n)
	}))
	id := f.queue(t, f.sigs[0], NewCallAction(lib, 5, nil, false))
	assert.Nil(t, f.approve(f.sigs[0], id))
	assert.Equal(t, uint64(0), f.balance(t, lib))
	assert.Equal(t, uint64(5), f.balance(t, dest))
}

func TestReentrantApprovalIsRejected(t *testing.T) {
	f := newFixture(t, 1, 1, 10)
	lib := custodytest.NewAddress()
	f.updateRegistry(t, func(r *Registry) {
		r.Signatories = append(r.Signatories, lib)
	})
	f.programs.RegisterContract(lib, InvokerFunc(func(env *Env, payload []byte) error {
		tx, err := env.Wallet.Transaction(binary.BigEndian.Uint64(payload))
		if err != nil {
			return err
		}
		if !tx.Executed {
			return errors.Wrap(errors.ErrState, "transaction must be marked as executed")
		}
		return env.Wallet.Approve(tx.ID)
	}))

	payload := make([]byte, 8)
	binary.BigEndian.PutUint64(payload, 0)
	id := f.queue(t, f.sigs[0],
		NewTransferAction(custodytest.NewAddress(), 1),
		NewCallAction(lib, 0, payload, false),
	)
	assert.Equal(t, uint64(0), id)
	err := f.approve(f.sigs[0], id)
	assert.IsErr(t, ErrExecution, err)
	assert.IsErr(t, ErrAlreadyExecuted, err)
	assert.Equal(t, false, f.tx(t, id).Executed)
	assert.Equal(t, uint64(10), f.balance(t, f.addr))
}

func TestInvokedCodeCanQueue(t *testing.T) {
	f := newFixture(t, 2, 2, 10)
	lib := custodytest.NewAddress()
	dest := custodytest.NewAddress()
	f.updateRegistry(t, func(r *Registry) {
		r.Signatories = append(r.Signatories, lib)
	})
	f.programs.RegisterContract(lib, InvokerFunc(func(env *Env, payload []byte) error {
		id, err := env.Wallet.Queue([]Action{NewTransferAction(dest, 1)})
		if err != nil {
			return err
		}
		return env.Wallet.Approve(id)
	}))

	id := f.queue(t, f.sigs[0], NewCallAction(lib, 0, nil, false))
	assert.Nil(t, f.approve(f.sigs[0], id))
	events, err := f.wallet.Approve(f.ctx, f.db, f.sigs[1], id)
	assert.Nil(t, err)
	assert.Equal(t, []string{
		EventTransactionApproved,
		EventTransactionQueued,
		EventTransactionApproved,
		EventTransactionExecuted,
	}, eventTypes(events))

	nested := f.tx(t, 1)
	assert.Equal(t, lib, nested.Proposer)
	assert.Equal(t, []custody.Address{lib}, nested.Approvals)
	assert.Equal(t, false, nested.Executed)
	assert.Equal(t, uint64(0), f.balance(t, dest))
}

func TestRecursiveExecutionIsBounded(t *testing.T) {
	f := newFixture(t, 1, 1, 10)
	lib := custodytest.NewAddress()
	f.updateRegistry(t, func(r *Registry) {
		r.Signatories = append(r.Signatories, lib)
	})
	f.programs.RegisterContract(lib, InvokerFunc(func(env *Env, payload []byte) error {
		id, err := env.Wallet.Queue([]Action{NewCallAction(env.Self, 0, nil, false)})
		if err != nil {
			return err
		}
		return env.Wallet.Approve(id)
	}))

	id := f.queue(t, f.sigs[0], NewCallAction(lib, 0, nil, false))
	err := f.approve(f.sigs[0], id)
	assert.IsErr(t, ErrExecution, err)
	assert.Equal(t, false, f.tx(t, id).Executed)
	txs, err := ListTransactions(f.db, 0, 0)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(txs))
}
