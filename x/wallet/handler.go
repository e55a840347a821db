package wallet

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r custody.Registry, auth x.Authenticator, w *Wallet) {
	r.Handle(pathQueueTransactionMsg, QueueTransactionHandler{auth: auth, wallet: w})
	r.Handle(pathApproveTransactionMsg, ApproveTransactionHandler{auth: auth, wallet: w})
}

// QueueTransactionHandler stores transactions proposed by a signatory.
type QueueTransactionHandler struct {
	auth   x.Authenticator
	wallet *Wallet
}

var _ custody.Handler = QueueTransactionHandler{}

// Deliver queues the transaction. The result data is the 8 byte big endian
// id of the new transaction.
func (h QueueTransactionHandler) Deliver(ctx custody.Context, db custody.KVStore, m custody.Msg) (*custody.DeliverResult, error) {
	var msg QueueTransactionMsg
	if err := custody.LoadMsg(m, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	caller := x.MainSigner(ctx, h.auth)
	if caller == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "signature missing")
	}
	id, events, err := h.wallet.Queue(ctx, db, caller, msg.Actions)
	if err != nil {
		return nil, err
	}
	return &custody.DeliverResult{Data: TransactionKey(id), Events: events}, nil
}

// ApproveTransactionHandler records approvals and executes transactions
// that reach the threshold.
type ApproveTransactionHandler struct {
	auth   x.Authenticator
	wallet *Wallet
}

var _ custody.Handler = ApproveTransactionHandler{}

// Deliver approves the transaction. When the triggered execution fails the
// result is returned together with the error, the approval stays recorded.
func (h ApproveTransactionHandler) Deliver(ctx custody.Context, db custody.KVStore, m custody.Msg) (*custody.DeliverResult, error) {
	var msg ApproveTransactionMsg
	if err := custody.LoadMsg(m, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	caller := x.MainSigner(ctx, h.auth)
	if caller == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "signature missing")
	}
	events, err := h.wallet.Approve(ctx, db, caller, msg.TransactionID)
	switch {
	case err == nil:
		return &custody.DeliverResult{Data: TransactionKey(msg.TransactionID), Events: events}, nil
	case ErrExecution.Is(err):
		return &custody.DeliverResult{
			Data:   TransactionKey(msg.TransactionID),
			Log:    "approval recorded, execution failed",
			Events: events,
		}, err
	default:
		return nil, err
	}
}
