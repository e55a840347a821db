package sigs

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// SignedMsg is a message together with the signatures authorizing it. It
// is routed like the message it carries.
type SignedMsg struct {
	Msg        custody.Msg
	Signatures []*StdSignature
}

var _ custody.Msg = (*SignedMsg)(nil)

// NewSignedMsg signs msg with given key.
func NewSignedMsg(msg custody.Msg, sig *StdSignature) *SignedMsg {
	return &SignedMsg{Msg: msg, Signatures: []*StdSignature{sig}}
}

// Path returns the path of the carried message.
func (m *SignedMsg) Path() string {
	return m.Msg.Path()
}

// Validate checks the carried message and the signatures.
func (m *SignedMsg) Validate() error {
	if m.Msg == nil {
		return errors.Field("Msg", errors.ErrEmpty, "no message")
	}
	errs := m.Msg.Validate()
	for i, s := range m.Signatures {
		errs = errors.AppendField(errs, "Signatures", errors.Wrapf(s.Validate(), "signature %d", i))
	}
	return errs
}
