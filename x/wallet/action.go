package wallet

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// Action is a single step of a transaction. An action targeting the zero
// address deploys new code. An action targeting the wallet itself with an
// amendment payload changes the registry. Anything else moves Value to the
// target and invokes the code bound to it, if any.
type Action struct {
	Target   custody.Address `json:"target"`
	Value    uint64          `json:"value"`
	Payload  []byte          `json:"payload,omitempty"`
	Delegate bool            `json:"delegate,omitempty"`
}

// Validate checks the structure of the action. It does not know anything
// about the wallet state.
func (a Action) Validate() error {
	if err := a.Target.Validate(); err != nil {
		return errors.Field("Target", err, "invalid target")
	}
	if a.Delegate && a.Value != 0 {
		return errors.Field("Value", errors.ErrInput, "delegate call cannot carry value")
	}
	if a.Delegate && a.Target.IsZero() {
		return errors.Field("Delegate", errors.ErrInput, "deployment cannot be a delegate call")
	}
	if a.Target.IsZero() && len(a.Payload) == 0 {
		return errors.Field("Payload", errors.ErrEmpty, "deployment requires code")
	}
	return nil
}

// IsDeployment returns true if the action requests a new code unit.
func (a Action) IsDeployment() bool {
	return a.Target.IsZero()
}

// Copy returns a deep copy of the action.
func (a Action) Copy() Action {
	return Action{
		Target:   a.Target.Clone(),
		Value:    a.Value,
		Payload:  append([]byte(nil), a.Payload...),
		Delegate: a.Delegate,
	}
}

// NewTransferAction returns an action moving amount from the wallet to the
// destination.
func NewTransferAction(dest custody.Address, amount uint64) Action {
	return Action{Target: dest, Value: amount}
}

// NewCallAction returns an action invoking the code bound to target.
func NewCallAction(target custody.Address, value uint64, payload []byte, delegate bool) Action {
	return Action{Target: target, Value: value, Payload: payload, Delegate: delegate}
}

// NewAmendmentAction returns an action applying the instruction to the
// registry of the wallet at given address.
func NewAmendmentAction(wallet custody.Address, in Instruction) (Action, error) {
	switch in.(type) {
	case AddSignatory, RemoveSignatory, ChangeThreshold:
	default:
		return Action{}, errors.Wrapf(errors.ErrType, "%T is not an amendment", in)
	}
	payload, err := EncodeInstruction(in)
	if err != nil {
		return Action{}, err
	}
	return Action{Target: wallet, Payload: payload}, nil
}

// NewDeployAction returns an action deploying code under the address
// derived from the wallet address, salt and code. Value is moved to the new
// unit.
func NewDeployAction(salt [32]byte, code []byte, value uint64) (Action, error) {
	payload, err := EncodeInstruction(Deploy{Salt: salt, Code: code})
	if err != nil {
		return Action{}, err
	}
	return Action{Target: custody.ZeroAddress(), Value: value, Payload: payload}, nil
}
