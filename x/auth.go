package x

import (
	"github.com/iov-one/custody"
)

// Authenticator reveals who authorized the message being processed.
// Handlers receive it in their constructor so that tests can replace the
// signature checks.
type Authenticator interface {
	// GetSigners returns all addresses that authorized the current
	// message. The first one is the main signer.
	GetSigners(custody.Context) []custody.Address
	// HasAddress returns true if addr is among the signers.
	HasAddress(custody.Context, custody.Address) bool
}

// MainSigner returns the first signer, or nil if the message is not
// signed.
func MainSigner(ctx custody.Context, auth Authenticator) custody.Address {
	signers := auth.GetSigners(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}
