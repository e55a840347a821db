package utils

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// Recovery is a decorator to recover from panics in handlers,
// so we can log them as errors
type Recovery struct{}

var _ custody.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

// Deliver turns panics into normal errors
func (r Recovery) Deliver(ctx custody.Context, store custody.KVStore, msg custody.Msg, next custody.Handler) (_ *custody.DeliverResult, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, store, msg)
}
