package wallet

import (
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/custodytest/assert"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

type routes map[string]custody.Handler

func (r routes) Handle(path string, h custody.Handler) {
	r[path] = h
}

func TestHandlers(t *testing.T) {
	f := newFixture(t, 2, 2, 10)
	auth := &custodytest.CtxAuth{Key: "auth"}
	r := make(routes)
	RegisterRoutes(r, auth, f.wallet)
	dest := custodytest.NewAddress()

	queue := r[pathQueueTransactionMsg]
	approve := r[pathApproveTransactionMsg]

	msg := &QueueTransactionMsg{Actions: []Action{NewTransferAction(dest, 4)}}
	res, err := queue.Deliver(auth.SetSigners(f.ctx, f.sigs[0]), f.db, msg)
	assert.Nil(t, err)
	id, err := orm.DecodeSequence(res.Data)
	assert.Nil(t, err)
	assert.Equal(t, uint64(0), id)
	assert.Equal(t, []string{EventTransactionQueued}, eventTypes(res.Events))

	res, err = approve.Deliver(auth.SetSigners(f.ctx, f.sigs[0]), f.db, &ApproveTransactionMsg{TransactionID: id})
	assert.Nil(t, err)
	assert.Equal(t, []string{EventTransactionApproved}, eventTypes(res.Events))

	res, err = approve.Deliver(auth.SetSigners(f.ctx, f.sigs[1]), f.db, &ApproveTransactionMsg{TransactionID: id})
	assert.Nil(t, err)
	assert.Equal(t, []string{EventTransactionApproved, EventTransactionExecuted}, eventTypes(res.Events))
	assert.Equal(t, uint64(4), f.balance(t, dest))
}

func TestQueueHandlerErrors(t *testing.T) {
	f := newFixture(t, 2, 2, 10)
	auth := &custodytest.CtxAuth{Key: "auth"}
	h := QueueTransactionHandler{auth: auth, wallet: f.wallet}

	cases := map[string]struct {
		signers   []custody.Address
		msg       custody.Msg
		wantErr   *errors.Error
		wantField string
	}{
		"not a signatory": {
			signers: []custody.Address{custodytest.NewAddress()},
			msg:     &QueueTransactionMsg{Actions: []Action{NewTransferAction(f.sigs[0], 1)}},
			wantErr: errors.ErrUnauthorized,
		},
		"no signature": {
			msg:     &QueueTransactionMsg{Actions: []Action{NewTransferAction(f.sigs[0], 1)}},
			wantErr: errors.ErrUnauthorized,
		},
		"no actions": {
			signers:   f.sigs[:1],
			msg:       &QueueTransactionMsg{},
			wantErr:   errors.ErrEmpty,
			wantField: "Actions",
		},
		"invalid action": {
			signers:   f.sigs[:1],
			msg:       &QueueTransactionMsg{Actions: []Action{NewTransferAction(f.sigs[0], 1), {Value: 1}}},
			wantErr:   errors.ErrInput,
			wantField: "Actions.1",
		},
		"wrong message": {
			signers: f.sigs[:1],
			msg:     &ApproveTransactionMsg{},
			wantErr: errors.ErrType,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			before := snapshot(t, f.db)
			ctx := auth.SetSigners(f.ctx, tc.signers...)
			_, err := h.Deliver(ctx, f.db, tc.msg)
			assert.IsErr(t, tc.wantErr, err)
			if tc.wantField != "" {
				assert.FieldError(t, err, tc.wantField, tc.wantErr)
			}
			assert.Equal(t, before, snapshot(t, f.db))
		})
	}
}

func TestApproveHandlerFailedExecution(t *testing.T) {
	f := newFixture(t, 1, 1, 0)
	auth := &custodytest.CtxAuth{Key: "auth"}
	h := ApproveTransactionHandler{auth: auth, wallet: f.wallet}
	id := f.queue(t, f.sigs[0], NewTransferAction(custodytest.NewAddress(), 1))

	res, err := h.Deliver(auth.SetSigners(f.ctx, f.sigs[0]), f.db, &ApproveTransactionMsg{TransactionID: id})
	assert.IsErr(t, ErrExecution, err)
	if res == nil {
		t.Fatal("result must describe the recorded approval")
	}
	assert.Equal(t, []string{EventTransactionApproved}, eventTypes(res.Events))

	res, err = h.Deliver(auth.SetSigners(f.ctx, f.sigs[0]), f.db, &ApproveTransactionMsg{TransactionID: id + 5})
	assert.IsErr(t, errors.ErrNotFound, err)
	assert.Equal(t, (*custody.DeliverResult)(nil), res)
}
