package custodytest

import (
	"context"
	"fmt"

	"github.com/iov-one/custody"
)

// Auth is a mock implementing x.Authenticator interface.
//
// This structure authenticates any of referenced addresses.
// You can use either Signer or Signers (or both) attributes. Each time all
// of them are considered.
type Auth struct {
	// Signer represents an authentication of a single signer. The first
	// signer is the main signer.
	Signer custody.Address

	// Signers represents an authentication of multiple signers.
	Signers []custody.Address
}

func (a *Auth) GetSigners(custody.Context) []custody.Address {
	if a.Signer != nil {
		return append([]custody.Address{a.Signer}, a.Signers...)
	}
	return a.Signers
}

func (a *Auth) HasAddress(ctx custody.Context, addr custody.Address) bool {
	for _, s := range a.GetSigners(ctx) {
		if addr.Equals(s) {
			return true
		}
	}
	return false
}

// CtxAuth is a mock implementing x.Authenticator interface.
//
// This implementation is using context to store and retrieve signers.
type CtxAuth struct {
	// Key used to set and retrieve signers from the context. For
	// convenience only string type keys are allowed.
	Key string
}

// SetSigners returns a context that authenticates given addresses.
func (a *CtxAuth) SetSigners(ctx custody.Context, signers ...custody.Address) custody.Context {
	return context.WithValue(ctx, a.Key, signers)
}

func (a *CtxAuth) GetSigners(ctx custody.Context) []custody.Address {
	val := ctx.Value(a.Key)
	if val == nil {
		return nil
	}
	signers, ok := val.([]custody.Address)
	if !ok {
		panic(fmt.Sprintf("instead of []custody.Address got %T", val))
	}
	return signers
}

func (a *CtxAuth) HasAddress(ctx custody.Context, addr custody.Address) bool {
	for _, s := range a.GetSigners(ctx) {
		if addr.Equals(s) {
			return true
		}
	}
	return false
}
