package cash

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

const maxMemoSize int = 128

// SendMsg moves value from the source to the destination account.
type SendMsg struct {
	Source      custody.Address `json:"source"`
	Destination custody.Address `json:"destination"`
	Amount      uint64          `json:"amount"`
	Memo        string          `json:"memo,omitempty"`
}

var _ custody.Msg = (*SendMsg)(nil)

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return "cash/send"
}

// Validate makes sure that this is sensible
func (m *SendMsg) Validate() error {
	var errs error
	if m.Amount == 0 {
		errs = errors.AppendField(errs, "Amount", errors.ErrAmount)
	}
	errs = errors.AppendField(errs, "Source", m.Source.Validate())
	errs = errors.AppendField(errs, "Destination", m.Destination.Validate())
	if len(m.Memo) > maxMemoSize {
		errs = errors.AppendField(errs, "Memo", errors.Wrap(errors.ErrInput, "memo too long"))
	}
	return errs
}
