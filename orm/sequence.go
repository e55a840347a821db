package orm

import (
	"encoding/binary"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// Sequence maintains a counter, and generates a
// series of keys. Each key is greater than the last,
// both NextInt() as well as bytes.Compare() on NextVal().
// The first value is zero. Values are never reused.
type Sequence struct {
	id []byte
}

// NewSequence returns a sequence counter. Sequence is using following pattern
// to construct a key:
//    _s.<bucket>:<name>
func NewSequence(bucket, name string) Sequence {
	return Sequence{id: []byte("_s." + bucket + ":" + name)}
}

// NextVal returns the next value encoded as 8 bytes and increments the
// sequence.
func (s *Sequence) NextVal(db custody.KVStore) ([]byte, error) {
	val, err := s.NextInt(db)
	if err != nil {
		return nil, err
	}
	return EncodeSequence(val), nil
}

// NextInt returns the next value and increments the sequence.
func (s *Sequence) NextInt(db custody.KVStore) (uint64, error) {
	val, err := s.Count(db)
	if err != nil {
		return 0, err
	}
	if val+1 == 0 {
		return 0, errors.Wrap(errors.ErrOverflow, "sequence exhausted")
	}
	if err := db.Set(s.id, EncodeSequence(val+1)); err != nil {
		return 0, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return val, nil
}

// Count returns how many values were issued so far. This is also the value
// the next NextInt call returns. This method does not modify the sequence.
func (s *Sequence) Count(db custody.ReadOnlyKVStore) (uint64, error) {
	raw, err := db.Get(s.id)
	if err != nil {
		return 0, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return DecodeSequence(raw)
}

// DecodeSequence decodes a sequence value. Nil decodes to zero.
func DecodeSequence(bz []byte) (uint64, error) {
	if bz == nil {
		return 0, nil
	}
	if len(bz) != 8 {
		return 0, errors.Wrapf(errors.ErrInput, "sequence value must be 8 bytes, got %d", len(bz))
	}
	return binary.BigEndian.Uint64(bz), nil
}

// EncodeSequence encodes a sequence value as 8 bytes big endian, so that
// byte order follows numeric order.
func EncodeSequence(val uint64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, val)
	return bz
}
