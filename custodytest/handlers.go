package custodytest

import "github.com/iov-one/custody"

// Handler is a mock implementation of the custody.Handler interface.
// It returns configured result and counts calls.
type Handler struct {
	deliverCall int
	// DeliverResult is returned by every call.
	DeliverResult custody.DeliverResult
	// DeliverErr if set is returned together with the result.
	DeliverErr error
}

var _ custody.Handler = (*Handler)(nil)

func (h *Handler) Deliver(ctx custody.Context, db custody.KVStore, msg custody.Msg) (*custody.DeliverResult, error) {
	h.deliverCall++
	res := h.DeliverResult
	return &res, h.DeliverErr
}

func (h *Handler) CallCount() int {
	return h.deliverCall
}

// Decorator is a mock implementation of the custody.Decorator interface.
//
// Set DeliverErr to force error response. If not set the wrapped handler is
// called and its result returned. Every call is counted.
type Decorator struct {
	deliverCall int
	DeliverErr  error
}

var _ custody.Decorator = (*Decorator)(nil)

func (d *Decorator) Deliver(ctx custody.Context, db custody.KVStore, msg custody.Msg, next custody.Handler) (*custody.DeliverResult, error) {
	d.deliverCall++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, msg)
}

func (d *Decorator) CallCount() int {
	return d.deliverCall
}

// Decorate wraps the handler with one decorator and returns it
// as a single handler.
func Decorate(h custody.Handler, d custody.Decorator) custody.Handler {
	return custody.HandlerFunc(func(ctx custody.Context, db custody.KVStore, msg custody.Msg) (*custody.DeliverResult, error) {
		return d.Deliver(ctx, db, msg, h)
	})
}

// Msg is a custody.Msg mock with configurable path and validation result.
type Msg struct {
	RoutePath   string
	ValidateErr error
}

var _ custody.Msg = (*Msg)(nil)

func (m *Msg) Path() string { return m.RoutePath }

func (m *Msg) Validate() error { return m.ValidateErr }
