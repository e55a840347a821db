package x_test

import (
	"context"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/custodytest/assert"
	"github.com/iov-one/custody/x"
)

func TestMainSigner(t *testing.T) {
	a := custodytest.NewAddress()
	b := custodytest.NewAddress()

	ctxAuth := &custodytest.CtxAuth{Key: "signers"}
	ctx := ctxAuth.SetSigners(context.Background(), b, a)

	cases := map[string]struct {
		auth x.Authenticator
		want custody.Address
	}{
		"single signer":   {auth: &custodytest.Auth{Signer: a}, want: a},
		"first of many":   {auth: &custodytest.Auth{Signers: []custody.Address{b, a}}, want: b},
		"context signers": {auth: ctxAuth, want: b},
		"no signers":      {auth: &custodytest.Auth{}, want: nil},
		"other ctx key":   {auth: &custodytest.CtxAuth{Key: "other"}, want: nil},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.want, x.MainSigner(ctx, tc.auth))
		})
	}
}
