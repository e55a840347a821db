package sigs

import (
	"crypto/sha512"
	"encoding/binary"
	"encoding/json"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/crypto"
	"github.com/iov-one/custody/errors"
)

// SignCodeV1 is the current way to prefix the bytes we use to build
// a signature
var SignCodeV1 = []byte{0, 0xCA, 0xFE, 0}

// StdSignature is a signature of a message together with the key that
// made it.
type StdSignature struct {
	Pubkey    crypto.PublicKey `json:"pubkey"`
	Signature []byte           `json:"signature"`
	Sequence  int64            `json:"sequence"`
}

// Validate ensures the StdSignature meets basic standards
func (s *StdSignature) Validate() error {
	if s.Sequence < 0 {
		return errors.Wrap(ErrInvalidSequence, "negative")
	}
	if len(s.Pubkey) == 0 {
		return errors.Wrap(errors.ErrUnauthorized, "missing public key")
	}
	if len(s.Signature) == 0 {
		return errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return nil
}

// SignBytes returns the canonical representation of msg that is signed.
func SignBytes(msg custody.Msg) ([]byte, error) {
	raw, err := json.Marshal(struct {
		Path string      `json:"path"`
		Msg  custody.Msg `json:"msg"`
	}{Path: msg.Path(), Msg: msg})
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "serialize %s: %s", msg.Path(), err)
	}
	return raw, nil
}

/*
BuildSignBytes combines all info on the actual message before signing

version | len(chainID) | chainID      | nonce             | signBytes
4bytes  | uint8        | ascii string | int64 (bigendian) | serialized message

This is then prehashed with sha512 before fed into
the public key signing/verification step
*/
func BuildSignBytes(signBytes []byte, chainID string, seq int64) ([]byte, error) {
	if seq < 0 {
		return nil, errors.Wrap(ErrInvalidSequence, "negative")
	}
	if len(chainID) == 0 || len(chainID) > 255 {
		return nil, errors.Wrapf(errors.ErrInput, "chain id: %q", chainID)
	}

	nonce := make([]byte, 8)
	binary.BigEndian.PutUint64(nonce, uint64(seq))

	output := make([]byte, 0, 4+1+len(chainID)+8+len(signBytes))
	output = append(output, SignCodeV1...)
	output = append(output, uint8(len(chainID)))
	output = append(output, chainID...)
	output = append(output, nonce...)
	output = append(output, signBytes...)

	hashed := sha512.Sum512(output)
	return hashed[:], nil
}

// Sign creates a signature of msg for the given chain and sequence.
func Sign(key *crypto.PrivateKey, msg custody.Msg, chainID string, seq int64) (*StdSignature, error) {
	raw, err := SignBytes(msg)
	if err != nil {
		return nil, err
	}
	toSign, err := BuildSignBytes(raw, chainID, seq)
	if err != nil {
		return nil, err
	}
	return &StdSignature{
		Pubkey:    key.PublicKey(),
		Signature: key.Sign(toSign),
		Sequence:  seq,
	}, nil
}

// VerifySignature checks one signature against signbytes,
// check chain and updates state in the store
func VerifySignature(db custody.KVStore, sig *StdSignature, signBytes []byte, chainID string) (custody.Address, error) {
	if err := sig.Validate(); err != nil {
		return nil, err
	}

	addr := sig.Pubkey.Address()
	bucket := NewBucket()
	var user UserData
	switch err := bucket.One(db, addr, &user); {
	case errors.ErrNotFound.Is(err):
		user = UserData{Pubkey: sig.Pubkey}
	case err != nil:
		return nil, err
	}

	toSign, err := BuildSignBytes(signBytes, chainID, sig.Sequence)
	if err != nil {
		return nil, err
	}
	if !sig.Pubkey.Verify(toSign, sig.Signature) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "invalid signature")
	}
	if err := user.CheckAndIncrementSequence(sig.Sequence); err != nil {
		return nil, err
	}
	if err := bucket.Put(db, addr, &user); err != nil {
		return nil, err
	}
	return addr, nil
}

// VerifySignatures checks all signatures of msg. It returns the signer
// addresses, or an error if any signature is invalid.
func VerifySignatures(db custody.KVStore, msg *SignedMsg, chainID string) ([]custody.Address, error) {
	raw, err := SignBytes(msg.Msg)
	if err != nil {
		return nil, err
	}
	signers := make([]custody.Address, 0, len(msg.Signatures))
	for i, sig := range msg.Signatures {
		signer, err := VerifySignature(db, sig, raw, chainID)
		if err != nil {
			return nil, errors.Wrapf(err, "signature %d", i)
		}
		signers = append(signers, signer)
	}
	return signers, nil
}
