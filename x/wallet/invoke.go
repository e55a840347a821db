package wallet

import (
	"encoding/hex"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
	"github.com/iov-one/custody/store"
	"github.com/iov-one/custody/x/cash"
)

// Invoker is code that can be bound to an address and invoked by an
// executed action.
type Invoker interface {
	Invoke(env *Env, payload []byte) error
}

// InvokerFunc allows to use a function as an Invoker.
type InvokerFunc func(env *Env, payload []byte) error

// Invoke calls fn.
func (fn InvokerFunc) Invoke(env *Env, payload []byte) error {
	return fn(env, payload)
}

// Handle gives invoked code access to the wallet. Calls are made on behalf
// of the invoked address against the state of the running execution.
type Handle interface {
	Queue(actions []Action) (uint64, error)
	Approve(id uint64) error
	Transaction(id uint64) (*Transaction, error)
}

// Env is the execution environment of invoked code.
//
// For an ordinary call Self is the target, Store is the target namespace
// and Value was already moved to the target. For a delegate call Self is
// the wallet, Store is the wallet namespace and no value moves.
type Env struct {
	Ctx      custody.Context
	Self     custody.Address
	Caller   custody.Address
	Value    uint64
	Delegate bool
	Store    custody.KVStore
	Wallet   Handle

	db     custody.KVStore
	ledger cash.Controller
	amend  func(Instruction) error
}

// Balance returns the funds held by addr.
func (e *Env) Balance(addr custody.Address) (uint64, error) {
	return e.ledger.Balance(e.db, addr)
}

// Transfer moves funds held by Self.
func (e *Env) Transfer(dest custody.Address, amount uint64) error {
	return e.ledger.MoveCoins(e.db, e.Self, dest, amount)
}

// Amend applies a registry amendment. Only code running as a delegate of
// the wallet may amend it.
func (e *Env) Amend(in Instruction) error {
	if !e.Delegate || e.amend == nil {
		return errors.Wrap(errors.ErrUnauthorized, "amendment outside of a delegate call")
	}
	return e.amend(in)
}

func namespace(db custody.KVStore, addr custody.Address) custody.KVStore {
	return store.NewPrefixStore(db, []byte("ns:"+hex.EncodeToString(addr)+":"))
}

// Programs binds code to addresses. Programs are matched with deployed
// units by code hash. Contracts are bound to a fixed address. All
// registration must happen before the wallet is used.
type Programs struct {
	programs  map[string]Invoker
	contracts map[string]Invoker
}

// NewPrograms returns an empty set of bindings.
func NewPrograms() *Programs {
	return &Programs{
		programs:  make(map[string]Invoker),
		contracts: make(map[string]Invoker),
	}
}

// RegisterProgram makes units deployed with given code run inv. It panics
// if that code already has a program.
func (p *Programs) RegisterProgram(code []byte, inv Invoker) {
	key := string(CodeHash(code))
	if _, ok := p.programs[key]; ok {
		panic("program already registered")
	}
	p.programs[key] = inv
}

// RegisterContract binds inv to addr. It panics if addr is already bound.
func (p *Programs) RegisterContract(addr custody.Address, inv Invoker) {
	if err := addr.Validate(); err != nil {
		panic(err)
	}
	if _, ok := p.contracts[string(addr)]; ok {
		panic("contract already registered: " + addr.String())
	}
	p.contracts[string(addr)] = inv
}

// HasContract returns true if addr is bound to a contract.
func (p *Programs) HasContract(addr custody.Address) bool {
	if p == nil {
		return false
	}
	_, ok := p.contracts[string(addr)]
	return ok
}

// resolve returns the code bound to addr or nil if there is none.
func (p *Programs) resolve(db custody.ReadOnlyKVStore, units orm.ModelBucket, addr custody.Address) (Invoker, error) {
	if p == nil {
		return nil, nil
	}
	if inv, ok := p.contracts[string(addr)]; ok {
		return inv, nil
	}
	var u Unit
	switch err := units.One(db, addr, &u); {
	case errors.ErrNotFound.Is(err):
		return nil, nil
	case err != nil:
		return nil, err
	}
	if inv, ok := p.programs[string(u.CodeHash)]; ok {
		return inv, nil
	}
	return nil, nil
}
