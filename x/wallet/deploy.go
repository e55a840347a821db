package wallet

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/iov-one/custody"
)

// CodeHash returns the keccak256 hash of the code.
func CodeHash(code []byte) []byte {
	return crypto.Keccak256(code)
}

// DeriveAddress returns the address a unit deployed by deployer with given
// salt and code is stored under:
//
//   keccak256(0xff ++ deployer ++ salt ++ keccak256(code))[12:]
//
// The same inputs always produce the same address.
func DeriveAddress(deployer custody.Address, salt [32]byte, code []byte) custody.Address {
	addr := crypto.CreateAddress2(common.BytesToAddress(deployer), salt, CodeHash(code))
	return custody.Address(addr.Bytes())
}
