package custody_test

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressPrinting(t *testing.T) {
	Convey("test hexademical address printing", t, func() {
		b := []byte("ABCD123456LHB")
		addr := custody.Address(b)

		So(addr.String(), ShouldNotEqual, fmt.Sprintf("%X", addr))
		So(addr.String(), ShouldEqual, strings.ToUpper(fmt.Sprintf("%x", b)))
	})

	Convey("test hexademical condition printing", t, func() {
		cond := custody.NewCondition("12", "32", []byte("ABCD123456LHB"))

		So(cond.String(), ShouldNotEqual, fmt.Sprintf("%X", cond))
	})
}

func TestAddressUnmarshalJSON(t *testing.T) {
	const raw = "0102030405060708090a0b0c0d0e0f1011121314"
	want, err := custody.ParseAddress(raw)
	require.NoError(t, err)
	b32, err := want.Bech32("custody")
	require.NoError(t, err)

	cases := map[string]struct {
		json     string
		wantErr  *errors.Error
		wantAddr custody.Address
	}{
		"default decoding": {
			json:     `"` + raw + `"`,
			wantAddr: want,
		},
		"hex decoding": {
			json:     `"hex:` + raw + `"`,
			wantAddr: want,
		},
		"bech32 decoding": {
			json:     `"bech32:` + b32 + `"`,
			wantAddr: want,
		},
		"cond decoding": {
			json:     `"cond:foo/bar/636f6e646974696f6e64617461"`,
			wantAddr: custody.NewCondition("foo", "bar", []byte("conditiondata")).Address(),
		},
		"invalid condition format": {
			json:    `"cond:foo/636f6e646974696f6e64617461"`,
			wantErr: errors.ErrInput,
		},
		"invalid condition data": {
			json:    `"cond:foo/bar/zzzzz"`,
			wantErr: errors.ErrInput,
		},
		"short hex address": {
			json:    `"6865782d61646472"`,
			wantErr: errors.ErrInput,
		},
		"unknown format": {
			json:    `"foobar:xxx"`,
			wantErr: errors.ErrType,
		},
		"zero address": {
			json:     `""`,
			wantAddr: nil,
		},
		"zero cond address": {
			json:     `"cond:"`,
			wantAddr: nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var a custody.Address
			err := json.Unmarshal([]byte(tc.json), &a)
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error: %+v", err)
			}
			if err == nil {
				assert.Equal(t, tc.wantAddr, a)
			}
		})
	}
}

func TestAddressJSONRoundTrip(t *testing.T) {
	addr := custody.NewCondition("wallet", "registry", []byte("main")).Address()
	raw, err := json.Marshal(addr)
	require.NoError(t, err)
	assert.Equal(t, `"`+addr.String()+`"`, string(raw))

	var got custody.Address
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.True(t, addr.Equals(got))
}

func TestZeroAddress(t *testing.T) {
	zero := custody.ZeroAddress()
	assert.True(t, zero.IsZero())
	assert.NoError(t, zero.Validate())

	addr := custody.NewCondition("foo", "bar", []byte("baz")).Address()
	assert.False(t, addr.IsZero())
	assert.Len(t, addr, custody.AddressLength)

	// nil is not the deployment target
	assert.False(t, custody.Address(nil).IsZero())
}

func TestConditionParse(t *testing.T) {
	cases := map[string]struct {
		cond    custody.Condition
		ext     string
		typ     string
		data    []byte
		wantErr *errors.Error
	}{
		"valid": {
			cond: custody.NewCondition("sigs", "ed25519", []byte{1, 2, 3}),
			ext:  "sigs",
			typ:  "ed25519",
			data: []byte{1, 2, 3},
		},
		"data with newline": {
			cond: custody.NewCondition("wallet", "registry", []byte("a\nb")),
			ext:  "wallet",
			typ:  "registry",
			data: []byte("a\nb"),
		},
		"extension too short": {
			cond:    custody.NewCondition("ab", "registry", []byte("x")),
			wantErr: errors.ErrInput,
		},
		"missing data": {
			cond:    custody.Condition("wallet/registry/"),
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ext, typ, data, err := tc.cond.Parse()
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if !tc.wantErr.Is(tc.cond.Validate()) {
				t.Fatal("validate and parse disagree")
			}
			if tc.wantErr != nil {
				return
			}
			assert.Equal(t, tc.ext, ext)
			assert.Equal(t, tc.typ, typ)
			assert.Equal(t, tc.data, data)
		})
	}
}
