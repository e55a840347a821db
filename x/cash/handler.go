package cash

import (
	"strconv"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r custody.Registry, auth x.Authenticator, control Controller) {
	r.Handle(SendMsg{}.Path(), NewSendHandler(auth, control))
}

// SendHandler will handle sending coins
type SendHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ custody.Handler = SendHandler{}

// NewSendHandler creates a handler for SendMsg
func NewSendHandler(auth x.Authenticator, control Controller) SendHandler {
	return SendHandler{
		auth:    auth,
		control: control,
	}
}

// Deliver moves the tokens from source to receiver if
// all preconditions are met
func (h SendHandler) Deliver(ctx custody.Context, store custody.KVStore, m custody.Msg) (*custody.DeliverResult, error) {
	var msg SendMsg
	if err := custody.LoadMsg(m, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}

	// Make sure we have permission from the source.
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "account owner signature missing")
	}

	if err := h.control.MoveCoins(store, msg.Source, msg.Destination, msg.Amount); err != nil {
		return nil, err
	}
	ev := custody.NewEvent("Transfer",
		"source", msg.Source.String(),
		"destination", msg.Destination.String(),
		"amount", strconv.FormatUint(msg.Amount, 10),
	)
	return &custody.DeliverResult{Events: []custody.Event{ev}}, nil
}
