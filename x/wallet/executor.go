package wallet

import (
	"context"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/utils"
)

// maxCallDepth limits executions triggered by invoked code.
const maxCallDepth = 8

type depthKey struct{}

func callDepth(ctx custody.Context) int {
	n, _ := ctx.Value(depthKey{}).(int)
	return n
}

// execute runs all actions of tx. Nothing is written unless every action
// succeeds. The transaction is marked as executed before the first action
// runs, so invoked code cannot execute it again.
func (w *Wallet) execute(ctx custody.Context, db custody.KVStore, tx *Transaction, caller custody.Address, log *eventLog) error {
	depth := callDepth(ctx)
	if depth >= maxCallDepth {
		return errors.Wrapf(ErrExecution, "call depth %d exceeded", depth)
	}
	ctx = context.WithValue(ctx, depthKey{}, depth+1)
	logger := custody.GetLogger(ctx)

	var batch eventLog
	err := utils.WithSavepoint(db, func(db custody.KVStore) error {
		done := tx.Copy()
		done.Executed = true
		done.ExecutedAt, _ = custody.GetHeight(ctx)
		if err := w.txs.Put(db, TransactionKey(done.ID), done); err != nil {
			return errors.Wrap(err, "mark executed")
		}
		for i, a := range done.Actions {
			if err := w.run(ctx, db, done, caller, a, &batch); err != nil {
				return newExecutionError(i, err)
			}
		}
		return nil
	})
	if err != nil {
		mExecutions.WithLabelValues("failure").Inc()
		logger.Error("transaction execution failed", "id", tx.ID, "err", err)
		return err
	}

	mExecutions.WithLabelValues("success").Inc()
	for _, ev := range batch.events {
		if ev.Type == EventContractDeployed {
			mDeployments.Inc()
		}
	}
	log.emit(batch.events...)
	log.emit(executedEvent(tx.ID))
	logger.Info("transaction executed", "id", tx.ID, "actions", len(tx.Actions))
	return nil
}

func (w *Wallet) run(ctx custody.Context, db custody.KVStore, tx *Transaction, caller custody.Address, a Action, log *eventLog) error {
	reg, err := GetRegistry(db)
	if err != nil {
		return err
	}
	if a.IsDeployment() {
		return w.deploy(db, reg.Address, tx.ID, a, log)
	}
	if a.Target.Equals(reg.Address) && !a.Delegate {
		in, err := DecodeAmendment(a.Payload)
		switch {
		case err == nil:
			return w.amend(db, in)
		case !errors.ErrType.Is(err):
			return err
		}
	}
	return w.call(ctx, db, reg.Address, caller, a, log)
}

func (w *Wallet) amend(db custody.KVStore, in Instruction) error {
	reg, err := GetRegistry(db)
	if err != nil {
		return err
	}
	conf, err := LoadConfiguration(db)
	if err != nil {
		return err
	}
	if err := reg.Apply(in, conf); err != nil {
		return err
	}
	return w.registry.Put(db, registryKey, reg)
}

func (w *Wallet) deploy(db custody.KVStore, wallet custody.Address, txID uint64, a Action, log *eventLog) error {
	d, err := DecodeDeploy(a.Payload)
	if err != nil {
		return err
	}
	addr := DeriveAddress(wallet, d.Salt, d.Code)

	if ok, err := w.units.Has(db, addr); err != nil {
		return err
	} else if ok {
		return errors.Wrapf(errors.ErrDuplicate, "unit %s already deployed", addr)
	}
	if w.programs.HasContract(addr) {
		return errors.Wrapf(errors.ErrDuplicate, "contract bound to %s", addr)
	}
	if balance, err := w.ledger.Balance(db, addr); err != nil {
		return err
	} else if balance > 0 {
		return errors.Wrapf(errors.ErrDuplicate, "account %s holds funds", addr)
	}

	unit := &Unit{
		Address:       addr,
		Deployer:      wallet.Clone(),
		Salt:          append([]byte(nil), d.Salt[:]...),
		CodeHash:      CodeHash(d.Code),
		Code:          d.Code,
		TransactionID: txID,
	}
	if err := w.units.Put(db, addr, unit); err != nil {
		return err
	}
	if a.Value > 0 {
		if err := w.ledger.MoveCoins(db, wallet, addr, a.Value); err != nil {
			return errors.Wrap(err, "fund unit")
		}
	}
	log.emit(deployedEvent(addr))
	return nil
}

func (w *Wallet) call(ctx custody.Context, db custody.KVStore, wallet, caller custody.Address, a Action, log *eventLog) error {
	if !a.Delegate && a.Value > 0 {
		if err := w.ledger.MoveCoins(db, wallet, a.Target, a.Value); err != nil {
			return err
		}
	}
	inv, err := w.programs.resolve(db, w.units, a.Target)
	if err != nil {
		return err
	}
	if inv == nil {
		if a.Delegate {
			return errors.Wrapf(errors.ErrNotFound, "no code at %s", a.Target)
		}
		return nil
	}

	env := &Env{
		Ctx:    ctx,
		Self:   a.Target,
		Caller: wallet,
		Value:  a.Value,
		db:     db,
		ledger: w.ledger,
	}
	if a.Delegate {
		env.Self = wallet
		env.Caller = caller
		env.Delegate = true
		env.amend = func(in Instruction) error { return w.amend(db, in) }
	}
	env.Store = namespace(db, env.Self)
	env.Wallet = &handle{w: w, ctx: ctx, db: db, self: env.Self, log: log}
	return inv.Invoke(env, a.Payload)
}
