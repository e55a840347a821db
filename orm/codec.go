package orm

import (
	"github.com/iov-one/custody/errors"
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

// RegisterConcrete makes given concrete type known to the codec, so that it
// can be serialized behind an interface field.
func RegisterConcrete(o interface{}, name string) {
	cdc.RegisterConcrete(o, name, nil)
}

// RegisterInterface makes given interface known to the codec. ptr must be a
// pointer to the interface type.
func RegisterInterface(ptr interface{}) {
	cdc.RegisterInterface(ptr, nil)
}

// Marshal serializes given model into its binary representation.
func Marshal(m interface{}) ([]byte, error) {
	raw, err := cdc.MarshalBinaryBare(m)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "marshal %T: %s", m, err)
	}
	return raw, nil
}

// Unmarshal loads the binary representation into dest. dest must be a
// pointer.
func Unmarshal(raw []byte, dest interface{}) error {
	if err := cdc.UnmarshalBinaryBare(raw, dest); err != nil {
		return errors.Wrapf(errors.ErrModel, "unmarshal %T: %s", dest, err)
	}
	return nil
}
