package custodytest

import (
	"encoding/binary"
	"sync/atomic"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/crypto"
)

// ParseAddress takes an address in a human readable format and returns
// its binary representation. It fails the test on a malformed input.
func ParseAddress(t testing.TB, encodedAddress string) custody.Address {
	t.Helper()

	addr, err := custody.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}

var sequence uint64

// NewCondition returns a unique condition on every call. Conditions are
// deterministic across test runs.
func NewCondition() custody.Condition {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, atomic.AddUint64(&sequence, 1))
	return custody.NewCondition("test", "seq", raw)
}

// NewAddress returns a unique address on every call.
func NewAddress() custody.Address {
	return NewCondition().Address()
}

// NewKey returns a new random ed25519 key. It fails the test when the key
// cannot be created.
func NewKey(t testing.TB) *crypto.PrivateKey {
	t.Helper()
	key, err := crypto.GenPrivKeyEd25519()
	if err != nil {
		t.Fatalf("cannot generate key: %s", err)
	}
	return key
}
