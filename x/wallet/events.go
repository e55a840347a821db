package wallet

import (
	"strconv"

	"github.com/iov-one/custody"
)

// Event types emitted by the wallet.
const (
	EventTransactionQueued   = "TransactionQueued"
	EventTransactionApproved = "TransactionApproved"
	EventTransactionExecuted = "TransactionExecuted"
	EventContractDeployed    = "ContractDeployed"
)

func queuedEvent(id uint64) custody.Event {
	return custody.NewEvent(EventTransactionQueued, "id", strconv.FormatUint(id, 10))
}

func approvedEvent(approver custody.Address, id uint64) custody.Event {
	return custody.NewEvent(EventTransactionApproved,
		"approver", approver.String(),
		"id", strconv.FormatUint(id, 10))
}

func executedEvent(id uint64) custody.Event {
	return custody.NewEvent(EventTransactionExecuted, "id", strconv.FormatUint(id, 10))
}

func deployedEvent(addr custody.Address) custody.Event {
	return custody.NewEvent(EventContractDeployed, "address", addr.String())
}

// eventLog collects events of a single call. Events of a reverted batch are
// collected separately and dropped.
type eventLog struct {
	events []custody.Event
}

func (l *eventLog) emit(ev ...custody.Event) {
	l.events = append(l.events, ev...)
}
