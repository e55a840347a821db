package wallet

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

const (
	registryBucketName    = "wallet"
	transactionBucketName = "walletxs"
	unitBucketName        = "units"
	transactionSequence   = "id"
)

var registryKey = []byte("registry")

// Registry is the set of signatories controlling the wallet and the number
// of approvals required to execute a transaction.
type Registry struct {
	Name        string            `json:"name"`
	Address     custody.Address   `json:"address"`
	Signatories []custody.Address `json:"signatories"`
	Threshold   uint32            `json:"threshold"`
}

var _ orm.Model = (*Registry)(nil)

// WalletAddress returns the address of the wallet registered under given
// name.
func WalletAddress(name string) custody.Address {
	return custody.NewCondition("wallet", "registry", []byte(name)).Address()
}

// NewRegistry returns a registry of a wallet with given name.
func NewRegistry(name string, signatories []custody.Address, threshold uint32) *Registry {
	sigs := make([]custody.Address, len(signatories))
	for i, s := range signatories {
		sigs[i] = s.Clone()
	}
	return &Registry{
		Name:        name,
		Address:     WalletAddress(name),
		Signatories: sigs,
		Threshold:   threshold,
	}
}

// Validate checks the registry rules.
func (r *Registry) Validate() error {
	if err := r.Address.Validate(); err != nil {
		return errors.Field("Address", err, "invalid wallet address")
	}
	if len(r.Signatories) == 0 {
		return errors.Field("Signatories", ErrInvariant, "no signatories")
	}
	for i, s := range r.Signatories {
		if err := s.Validate(); err != nil {
			return errors.Field("Signatories", err, "signatory %d", i)
		}
		for _, prev := range r.Signatories[:i] {
			if prev.Equals(s) {
				return errors.Field("Signatories", errors.Append(ErrInvariant, errors.ErrDuplicate), "signatory %s", s)
			}
		}
	}
	if r.Threshold == 0 {
		return errors.Field("Threshold", ErrInvariant, "threshold must be greater than zero")
	}
	if int(r.Threshold) > len(r.Signatories) {
		return errors.Field("Threshold", ErrInvariant,
			"threshold %d exceeds %d signatories", r.Threshold, len(r.Signatories))
	}
	return nil
}

// IsSignatory returns true if addr may queue and approve transactions.
func (r *Registry) IsSignatory(addr custody.Address) bool {
	return r.indexOf(addr) >= 0
}

// CurrentThreshold returns the number of approvals required to execute.
func (r *Registry) CurrentThreshold() uint32 {
	return r.Threshold
}

func (r *Registry) indexOf(addr custody.Address) int {
	for i, s := range r.Signatories {
		if s.Equals(addr) {
			return i
		}
	}
	return -1
}

// AddSignatory grants signing rights to addr. The registry may not grow
// beyond maxSignatories.
func (r *Registry) AddSignatory(addr custody.Address, maxSignatories uint32) error {
	if err := addr.Validate(); err != nil {
		return errors.Wrap(err, "signatory")
	}
	if r.IsSignatory(addr) {
		return errors.Wrapf(errors.Append(ErrInvariant, errors.ErrDuplicate), "signatory %s", addr)
	}
	if uint32(len(r.Signatories)) >= maxSignatories {
		return errors.Wrapf(ErrInvariant, "at most %d signatories allowed", maxSignatories)
	}
	r.Signatories = append(r.Signatories, addr.Clone())
	return nil
}

// RemoveSignatory revokes signing rights of addr. The signatories left must
// still be able to reach the threshold.
func (r *Registry) RemoveSignatory(addr custody.Address) error {
	i := r.indexOf(addr)
	if i < 0 {
		return errors.Wrapf(errors.ErrNotFound, "signatory %s", addr)
	}
	if len(r.Signatories)-1 < int(r.Threshold) {
		return errors.Wrapf(ErrInvariant, "removing %s leaves %d signatories for threshold %d",
			addr, len(r.Signatories)-1, r.Threshold)
	}
	sigs := make([]custody.Address, 0, len(r.Signatories)-1)
	sigs = append(sigs, r.Signatories[:i]...)
	r.Signatories = append(sigs, r.Signatories[i+1:]...)
	return nil
}

// ChangeThreshold sets the number of approvals required to execute.
func (r *Registry) ChangeThreshold(n uint32) error {
	if n == 0 {
		return errors.Wrap(ErrInvariant, "threshold must be greater than zero")
	}
	if int(n) > len(r.Signatories) {
		return errors.Wrapf(ErrInvariant, "threshold %d exceeds %d signatories", n, len(r.Signatories))
	}
	r.Threshold = n
	return nil
}

// Apply changes the registry according to given amendment.
func (r *Registry) Apply(in Instruction, conf Configuration) error {
	switch in := in.(type) {
	case AddSignatory:
		return r.AddSignatory(in.Signatory, conf.MaxSignatories)
	case RemoveSignatory:
		return r.RemoveSignatory(in.Signatory)
	case ChangeThreshold:
		return r.ChangeThreshold(in.Threshold)
	}
	return errors.Wrapf(errors.ErrType, "%T is not an amendment", in)
}

// Copy returns a deep copy of the registry.
func (r *Registry) Copy() *Registry {
	c := NewRegistry(r.Name, r.Signatories, r.Threshold)
	c.Address = r.Address.Clone()
	return c
}

// Status describes where a transaction is in its lifecycle.
type Status string

const (
	// StatusQueued is a transaction without approvals.
	StatusQueued Status = "queued"
	// StatusApproving is a transaction collecting approvals.
	StatusApproving Status = "approving"
	// StatusExecuted is a terminal state.
	StatusExecuted Status = "executed"
)

// Transaction is a queued batch of actions together with the approvals it
// has collected.
type Transaction struct {
	ID         uint64            `json:"id"`
	Actions    []Action          `json:"actions"`
	Approvals  []custody.Address `json:"approvals"`
	Executed   bool              `json:"executed"`
	Proposer   custody.Address   `json:"proposer"`
	QueuedAt   int64             `json:"queued_at"`
	ExecutedAt int64             `json:"executed_at,omitempty"`
}

var _ orm.Model = (*Transaction)(nil)

// Validate checks the structure of the transaction.
func (t *Transaction) Validate() error {
	if len(t.Actions) == 0 {
		return errors.Field("Actions", errors.ErrEmpty, "no actions")
	}
	for i, a := range t.Actions {
		if err := a.Validate(); err != nil {
			return errors.Wrapf(err, "action %d", i)
		}
	}
	for i, a := range t.Approvals {
		if err := a.Validate(); err != nil {
			return errors.Field("Approvals", err, "approval %d", i)
		}
	}
	if err := t.Proposer.Validate(); err != nil {
		return errors.Field("Proposer", err, "invalid proposer")
	}
	return nil
}

// HasApproved returns true if addr has approved this transaction.
func (t *Transaction) HasApproved(addr custody.Address) bool {
	for _, a := range t.Approvals {
		if a.Equals(addr) {
			return true
		}
	}
	return false
}

// ApprovalCount returns the number of approvals given by addresses that are
// signatories of the registry.
func (t *Transaction) ApprovalCount(r *Registry) int {
	var n int
	for _, a := range t.Approvals {
		if r.IsSignatory(a) {
			n++
		}
	}
	return n
}

// Status returns the lifecycle state of the transaction.
func (t *Transaction) Status() Status {
	switch {
	case t.Executed:
		return StatusExecuted
	case len(t.Approvals) > 0:
		return StatusApproving
	default:
		return StatusQueued
	}
}

// Copy returns a deep copy of the transaction.
func (t *Transaction) Copy() *Transaction {
	c := *t
	c.Actions = make([]Action, len(t.Actions))
	for i, a := range t.Actions {
		c.Actions[i] = a.Copy()
	}
	c.Approvals = make([]custody.Address, len(t.Approvals))
	for i, a := range t.Approvals {
		c.Approvals[i] = a.Clone()
	}
	c.Proposer = t.Proposer.Clone()
	return &c
}

// Unit is a code unit deployed by the wallet.
type Unit struct {
	Address       custody.Address `json:"address"`
	Deployer      custody.Address `json:"deployer"`
	Salt          []byte          `json:"salt"`
	CodeHash      []byte          `json:"code_hash"`
	Code          []byte          `json:"code"`
	TransactionID uint64          `json:"transaction_id"`
}

var _ orm.Model = (*Unit)(nil)

// Validate checks the structure of the unit.
func (u *Unit) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Address", u.Address.Validate())
	errs = errors.AppendField(errs, "Deployer", u.Deployer.Validate())
	if len(u.Salt) != 32 {
		errs = errors.AppendField(errs, "Salt", errors.Wrap(errors.ErrInput, "salt must be 32 bytes"))
	}
	if len(u.CodeHash) != 32 {
		errs = errors.AppendField(errs, "CodeHash", errors.Wrap(errors.ErrInput, "code hash must be 32 bytes"))
	}
	if len(u.Code) == 0 {
		errs = errors.AppendField(errs, "Code", errors.ErrEmpty)
	}
	return errs
}

// TransactionKey returns the database key of the transaction with given id.
func TransactionKey(id uint64) []byte {
	return orm.EncodeSequence(id)
}
