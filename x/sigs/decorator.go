package sigs

import (
	"context"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x"
)

type contextKey int // local to the sigs module

const (
	contextKeySigners contextKey = iota
)

// withSigners is a private method, as only this module
// can add a signer
func withSigners(ctx custody.Context, signers []custody.Address) custody.Context {
	return context.WithValue(ctx, contextKeySigners, signers)
}

// Authenticate gives access to the signers verified by the Decorator.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetSigners returns who signed the current Context.
// May be empty
func (a Authenticate) GetSigners(ctx custody.Context) []custody.Address {
	val, _ := ctx.Value(contextKeySigners).([]custody.Address)
	return val
}

// HasAddress returns true if addr signed the current Context.
func (a Authenticate) HasAddress(ctx custody.Context, addr custody.Address) bool {
	for _, s := range a.GetSigners(ctx) {
		if addr.Equals(s) {
			return true
		}
	}
	return false
}

// Decorator verifies the signatures and adds them to the context
type Decorator struct {
	allowMissingSigs bool
}

var _ custody.Decorator = Decorator{}

// NewDecorator returns a default authentication decorator,
// which appends the chainID before checking the signature,
// and requires at least one signature to be present
func NewDecorator() Decorator {
	return Decorator{}
}

// AllowMissingSigs allows us to pass along items with no signatures
func (d Decorator) AllowMissingSigs() Decorator {
	d.allowMissingSigs = true
	return d
}

// Deliver verifies signatures before calling down the stack with the
// carried message.
func (d Decorator) Deliver(ctx custody.Context, store custody.KVStore, msg custody.Msg, next custody.Handler) (*custody.DeliverResult, error) {
	smsg, ok := msg.(*SignedMsg)
	if !ok {
		if !d.allowMissingSigs {
			return nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
		}
		return next.Deliver(ctx, store, msg)
	}

	signers, err := VerifySignatures(store, smsg, custody.GetChainID(ctx))
	if err != nil {
		return nil, errors.Wrap(err, "cannot verify signatures")
	}
	if len(signers) == 0 && !d.allowMissingSigs {
		return nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return next.Deliver(withSigners(ctx, signers), store, smsg.Msg)
}
