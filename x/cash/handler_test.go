package cash

import (
	"context"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/custodytest/assert"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
)

func TestSendHandler(t *testing.T) {
	alice := custodytest.NewAddress()
	bob := custodytest.NewAddress()

	cases := map[string]struct {
		signer      custody.Address
		msg         custody.Msg
		wantErr     *errors.Error
		wantAlice   uint64
		wantBob     uint64
		wantEvents  int
		wantFieldOf string
	}{
		"send": {
			signer:     alice,
			msg:        &SendMsg{Source: alice, Destination: bob, Amount: 10, Memo: "fund"},
			wantAlice:  90,
			wantBob:    10,
			wantEvents: 1,
		},
		"source signature missing": {
			signer:    bob,
			msg:       &SendMsg{Source: alice, Destination: bob, Amount: 10},
			wantErr:   errors.ErrUnauthorized,
			wantAlice: 100,
		},
		"insufficient funds": {
			signer:    alice,
			msg:       &SendMsg{Source: alice, Destination: bob, Amount: 101},
			wantErr:   errors.ErrInsufficientAmount,
			wantAlice: 100,
		},
		"invalid message": {
			signer:      alice,
			msg:         &SendMsg{Source: alice, Destination: bob},
			wantErr:     errors.ErrAmount,
			wantAlice:   100,
			wantFieldOf: "Amount",
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			control := NewController(NewBucket())
			assert.Nil(t, control.IssueCoins(db, alice, 100))

			auth := &custodytest.CtxAuth{Key: "auth"}
			ctx := auth.SetSigners(context.Background(), tc.signer)
			h := NewSendHandler(auth, control)

			res, err := h.Deliver(ctx, db, tc.msg)
			assert.IsErr(t, tc.wantErr, err)
			if tc.wantFieldOf != "" {
				assert.FieldError(t, err, tc.wantFieldOf, tc.wantErr)
			}
			if err == nil {
				assert.Equal(t, tc.wantEvents, len(res.Events))
				assert.Equal(t, "Transfer", res.Events[0].Type)
			}

			a, err := control.Balance(db, alice)
			assert.Nil(t, err)
			assert.Equal(t, tc.wantAlice, a)
			b, err := control.Balance(db, bob)
			assert.Nil(t, err)
			assert.Equal(t, tc.wantBob, b)
		})
	}
}

func TestSendMsgValidate(t *testing.T) {
	msg := &SendMsg{Source: []byte("x"), Memo: string(make([]byte, maxMemoSize+1))}
	err := msg.Validate()
	assert.FieldError(t, err, "Amount", errors.ErrAmount)
	assert.FieldError(t, err, "Source", errors.ErrInput)
	assert.FieldError(t, err, "Destination", errors.ErrInput)
	assert.FieldError(t, err, "Memo", errors.ErrInput)
}
