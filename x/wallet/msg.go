package wallet

import (
	"fmt"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

const (
	pathQueueTransactionMsg   = "wallet/queue"
	pathApproveTransactionMsg = "wallet/approve"
)

// QueueTransactionMsg proposes a batch of actions. The sender must be a
// signatory.
type QueueTransactionMsg struct {
	Actions []Action `json:"actions"`
}

var _ custody.Msg = (*QueueTransactionMsg)(nil)

// Path returns the routing path for this message
func (QueueTransactionMsg) Path() string {
	return pathQueueTransactionMsg
}

// Validate checks every action of the batch.
func (m *QueueTransactionMsg) Validate() error {
	if len(m.Actions) == 0 {
		return errors.Field("Actions", errors.ErrEmpty, "transaction without actions")
	}
	var errs error
	for i, a := range m.Actions {
		errs = errors.AppendField(errs, fmt.Sprintf("Actions.%d", i), a.Validate())
	}
	return errs
}

// ApproveTransactionMsg approves a queued transaction on behalf of the
// sender.
type ApproveTransactionMsg struct {
	TransactionID uint64 `json:"transaction_id"`
}

var _ custody.Msg = (*ApproveTransactionMsg)(nil)

// Path returns the routing path for this message
func (ApproveTransactionMsg) Path() string {
	return pathApproveTransactionMsg
}

// Validate always passes, any id can be looked up.
func (m *ApproveTransactionMsg) Validate() error {
	return nil
}
