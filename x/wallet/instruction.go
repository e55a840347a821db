package wallet

import (
	"math"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// Instruction is a decoded action payload understood by the wallet.
type Instruction interface {
	instruction()
}

// AddSignatory grants signing rights to an address.
type AddSignatory struct {
	Signatory custody.Address
}

// RemoveSignatory revokes signing rights of an address.
type RemoveSignatory struct {
	Signatory custody.Address
}

// ChangeThreshold sets the number of approvals required to execute.
type ChangeThreshold struct {
	Threshold uint32
}

// Deploy requests a new code unit.
type Deploy struct {
	Salt [32]byte
	Code []byte
}

func (AddSignatory) instruction()    {}
func (RemoveSignatory) instruction() {}
func (ChangeThreshold) instruction() {}
func (Deploy) instruction()          {}

const amendmentABI = `[
	{"type":"function","name":"addSignatory","inputs":[{"name":"signatory","type":"address"}],"outputs":[]},
	{"type":"function","name":"removeSignatory","inputs":[{"name":"signatory","type":"address"}],"outputs":[]},
	{"type":"function","name":"changeThreshold","inputs":[{"name":"threshold","type":"uint256"}],"outputs":[]}
]`

var (
	amendments = mustParseABI(amendmentABI)
	deployArgs = abi.Arguments{
		{Name: "salt", Type: mustNewType("bytes32")},
		{Name: "code", Type: mustNewType("bytes")},
	}
)

func mustParseABI(def string) abi.ABI {
	a, err := abi.JSON(strings.NewReader(def))
	if err != nil {
		panic(err)
	}
	return a
}

func mustNewType(t string) abi.Type {
	typ, err := abi.NewType(t, "", nil)
	if err != nil {
		panic(err)
	}
	return typ
}

// EncodeInstruction returns the action payload of given instruction.
// Amendments are encoded as contract calls, a deployment as the
// (bytes32 salt, bytes code) tuple.
func EncodeInstruction(in Instruction) ([]byte, error) {
	var (
		raw []byte
		err error
	)
	switch in := in.(type) {
	case AddSignatory:
		if err := in.Signatory.Validate(); err != nil {
			return nil, errors.Wrap(err, "signatory")
		}
		raw, err = amendments.Pack("addSignatory", common.BytesToAddress(in.Signatory))
	case RemoveSignatory:
		if err := in.Signatory.Validate(); err != nil {
			return nil, errors.Wrap(err, "signatory")
		}
		raw, err = amendments.Pack("removeSignatory", common.BytesToAddress(in.Signatory))
	case ChangeThreshold:
		raw, err = amendments.Pack("changeThreshold", new(big.Int).SetUint64(uint64(in.Threshold)))
	case Deploy:
		if len(in.Code) == 0 {
			return nil, errors.Wrap(errors.ErrEmpty, "code")
		}
		raw, err = deployArgs.Pack(in.Salt, in.Code)
	default:
		return nil, errors.Wrapf(errors.ErrType, "unknown instruction %T", in)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return raw, nil
}

// DecodeAmendment decodes a registry amendment from an action payload.
// ErrType is returned when the payload does not call any amendment. ErrInput
// is returned when the call arguments are malformed.
func DecodeAmendment(payload []byte) (Instruction, error) {
	if len(payload) < 4 {
		return nil, errors.Wrap(errors.ErrType, "no method selector")
	}
	m, err := amendments.MethodById(payload[:4])
	if err != nil {
		return nil, errors.Wrapf(errors.ErrType, "selector %x", payload[:4])
	}
	args, err := m.Inputs.Unpack(payload[4:])
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "%s arguments: %s", m.Name, err)
	}
	if len(args) != 1 {
		return nil, errors.Wrapf(errors.ErrInput, "%s expects one argument", m.Name)
	}

	switch m.Name {
	case "addSignatory", "removeSignatory":
		a, ok := args[0].(common.Address)
		if !ok {
			return nil, errors.Wrapf(errors.ErrInput, "%s argument type %T", m.Name, args[0])
		}
		addr := custody.Address(a.Bytes())
		if m.Name == "addSignatory" {
			return AddSignatory{Signatory: addr}, nil
		}
		return RemoveSignatory{Signatory: addr}, nil
	case "changeThreshold":
		n, ok := args[0].(*big.Int)
		if !ok {
			return nil, errors.Wrapf(errors.ErrInput, "%s argument type %T", m.Name, args[0])
		}
		if !n.IsUint64() || n.Uint64() > math.MaxUint32 {
			return nil, errors.Wrapf(errors.ErrOverflow, "threshold %s", n)
		}
		return ChangeThreshold{Threshold: uint32(n.Uint64())}, nil
	}
	return nil, errors.Wrapf(errors.ErrHuman, "unhandled method %s", m.Name)
}

// DecodeDeploy decodes the payload of a deployment action.
func DecodeDeploy(payload []byte) (Deploy, error) {
	args, err := deployArgs.Unpack(payload)
	if err != nil {
		return Deploy{}, errors.Wrapf(errors.ErrInput, "deploy payload: %s", err)
	}
	if len(args) != 2 {
		return Deploy{}, errors.Wrap(errors.ErrInput, "deploy payload: want salt and code")
	}
	salt, ok := args[0].([32]byte)
	if !ok {
		return Deploy{}, errors.Wrapf(errors.ErrInput, "salt type %T", args[0])
	}
	code, ok := args[1].([]byte)
	if !ok {
		return Deploy{}, errors.Wrapf(errors.ErrInput, "code type %T", args[1])
	}
	if len(code) == 0 {
		return Deploy{}, errors.Wrap(errors.ErrEmpty, "code")
	}
	return Deploy{Salt: salt, Code: code}, nil
}
