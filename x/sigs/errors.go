package sigs

import "github.com/iov-one/custody/errors"

// ErrInvalidSequence is returned when a signature does not use the
// expected sequence of its signer.
var ErrInvalidSequence = errors.Register(120, "invalid sequence number")
