/*
Package crypto provides the ed25519 development keys used to authenticate
signatories from the command line.

A public key is turned into a Condition of the form sigs/ed25519/<pubkey>,
which in turn hashes to the signatory address.
*/
package crypto

import (
	"crypto/rand"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"golang.org/x/crypto/ed25519"
)

// ExtensionName is used for the Conditions we get from signatures
const ExtensionName = "sigs"

// PrivateKey is an ed25519 private key.
type PrivateKey struct {
	key ed25519.PrivateKey
}

// PublicKey is an ed25519 public key.
type PublicKey []byte

// GenPrivKeyEd25519 returns a random new private key
func GenPrivKeyEd25519() (*PrivateKey, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrHuman, "cannot generate ed25519 key: %s", err)
	}
	return &PrivateKey{key: priv}, nil
}

// PrivKeyEd25519FromSeed will deterministically generate a private key from
// a given seed. Use if you have a strong source of external randomness,
// or for deterministic keys in test cases.
func PrivKeyEd25519FromSeed(seed []byte) (*PrivateKey, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, errors.Wrapf(errors.ErrInput, "seed must be %d bytes", ed25519.SeedSize)
	}
	return &PrivateKey{key: ed25519.NewKeyFromSeed(seed)}, nil
}

// Seed returns the private key seed. It is all that needs to be stored to
// recreate the key.
func (p *PrivateKey) Seed() []byte {
	return p.key.Seed()
}

// Sign returns a signature of the message.
func (p *PrivateKey) Sign(message []byte) []byte {
	return ed25519.Sign(p.key, message)
}

// PublicKey returns the corresponding PublicKey
func (p *PrivateKey) PublicKey() PublicKey {
	return PublicKey(p.key.Public().(ed25519.PublicKey))
}

// Verify verifies the signature was created with this message and public key
func (p PublicKey) Verify(message, sig []byte) bool {
	if len(p) != ed25519.PublicKeySize || len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(p), message, sig)
}

// Condition encodes the public key into a custody permission
func (p PublicKey) Condition() custody.Condition {
	return custody.NewCondition(ExtensionName, "ed25519", p)
}

// Address returns the signatory address of this key.
func (p PublicKey) Address() custody.Address {
	return p.Condition().Address()
}
