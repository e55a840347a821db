package wallet

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
	"github.com/iov-one/custody/x/cash"
	"github.com/iov-one/custody/x/utils"
)

// Wallet implements the queue, approval and execution of transactions.
// All calls must be serialized by the caller.
type Wallet struct {
	registry orm.ModelBucket
	txs      orm.ModelBucket
	units    orm.ModelBucket
	seq      orm.Sequence
	ledger   cash.Controller
	programs *Programs
}

// New returns a wallet moving funds through the ledger. Code bound with
// programs can be invoked by executed actions. programs may be nil.
func New(ledger cash.Controller, programs *Programs) *Wallet {
	return &Wallet{
		registry: orm.NewModelBucket(registryBucketName),
		txs:      orm.NewModelBucket(transactionBucketName),
		units:    orm.NewModelBucket(unitBucketName),
		seq:      orm.NewSequence(transactionBucketName, transactionSequence),
		ledger:   ledger,
		programs: programs,
	}
}

// Queue stores a new transaction proposed by caller and returns its id.
func (w *Wallet) Queue(ctx custody.Context, db custody.KVStore, caller custody.Address, actions []Action) (uint64, []custody.Event, error) {
	var log eventLog
	id, err := w.queue(ctx, db, caller, actions, &log)
	if err != nil {
		return 0, nil, err
	}
	return id, log.events, nil
}

func (w *Wallet) queue(ctx custody.Context, db custody.KVStore, caller custody.Address, actions []Action, log *eventLog) (uint64, error) {
	reg, err := GetRegistry(db)
	if err != nil {
		return 0, err
	}
	if !reg.IsSignatory(caller) {
		return 0, errors.Wrapf(errors.ErrUnauthorized, "%s is not a signatory", caller)
	}
	if len(actions) == 0 {
		return 0, errors.Field("Actions", errors.ErrEmpty, "transaction without actions")
	}
	conf, err := LoadConfiguration(db)
	if err != nil {
		return 0, err
	}
	if uint32(len(actions)) > conf.MaxActions {
		return 0, errors.Wrapf(errors.ErrInput, "%d actions exceed the limit of %d", len(actions), conf.MaxActions)
	}
	batch := make([]Action, len(actions))
	for i, a := range actions {
		if err := a.Validate(); err != nil {
			return 0, errors.Wrapf(err, "action %d", i)
		}
		batch[i] = a.Copy()
	}

	height, _ := custody.GetHeight(ctx)
	var id uint64
	err = utils.WithSavepoint(db, func(db custody.KVStore) error {
		var err error
		if id, err = w.seq.NextInt(db); err != nil {
			return errors.Wrap(err, "next transaction id")
		}
		tx := &Transaction{
			ID:       id,
			Actions:  batch,
			Proposer: caller.Clone(),
			QueuedAt: height,
		}
		return w.txs.Put(db, TransactionKey(id), tx)
	})
	if err != nil {
		return 0, err
	}

	mQueued.Inc()
	log.emit(queuedEvent(id))
	custody.GetLogger(ctx).Debug("transaction queued", "id", id, "proposer", caller)
	return id, nil
}

// Approve records the approval of caller. Reaching the threshold executes
// the transaction before returning. If the execution fails, the approval
// is kept and the returned events describe it.
func (w *Wallet) Approve(ctx custody.Context, db custody.KVStore, caller custody.Address, id uint64) ([]custody.Event, error) {
	var log eventLog
	err := w.approve(ctx, db, caller, id, &log)
	return log.events, err
}

func (w *Wallet) approve(ctx custody.Context, db custody.KVStore, caller custody.Address, id uint64, log *eventLog) error {
	reg, err := GetRegistry(db)
	if err != nil {
		return err
	}
	if !reg.IsSignatory(caller) {
		return errors.Wrapf(errors.ErrUnauthorized, "%s is not a signatory", caller)
	}
	tx, err := GetTransaction(db, id)
	if err != nil {
		return err
	}
	if tx.Executed {
		return errors.Wrapf(ErrAlreadyExecuted, "transaction %d", id)
	}

	if !tx.HasApproved(caller) {
		tx.Approvals = append(tx.Approvals, caller.Clone())
		if err := w.txs.Put(db, TransactionKey(id), tx); err != nil {
			return err
		}
		mApprovals.Inc()
		log.emit(approvedEvent(caller, id))
	}

	if tx.ApprovalCount(reg) < int(reg.CurrentThreshold()) {
		return nil
	}
	return w.execute(ctx, db, tx, caller, log)
}

// handle is the access to the wallet given to invoked code.
type handle struct {
	w    *Wallet
	ctx  custody.Context
	db   custody.KVStore
	self custody.Address
	log  *eventLog
}

var _ Handle = (*handle)(nil)

func (h *handle) Queue(actions []Action) (uint64, error) {
	return h.w.queue(h.ctx, h.db, h.self, actions, h.log)
}

func (h *handle) Approve(id uint64) error {
	return h.w.approve(h.ctx, h.db, h.self, id, h.log)
}

func (h *handle) Transaction(id uint64) (*Transaction, error) {
	return GetTransaction(h.db, id)
}
