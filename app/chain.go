package app

import (
	"reflect"

	"github.com/iov-one/custody"
)

// Decorators is an ordered list of decorators waiting for the handler they
// wrap. The first decorator sees a message first.
type Decorators struct {
	chain []custody.Decorator
}

// ChainDecorators returns the decorators in the given order. Nil entries
// are skipped, so optional decorators can be passed unconditionally.
//
//	app.ChainDecorators(
//		utils.NewLogging(),
//		utils.NewRecovery(),
//		sigs.NewDecorator(),
//	).WithHandler(router)
func ChainDecorators(chain ...custody.Decorator) Decorators {
	return Decorators{}.Chain(chain...)
}

// Chain returns a copy with more decorators appended at the end.
func (d Decorators) Chain(chain ...custody.Decorator) Decorators {
	res := make([]custody.Decorator, 0, len(d.chain)+len(chain))
	res = append(res, d.chain...)
	for _, dec := range chain {
		if !isNil(dec) {
			res = append(res, dec)
		}
	}
	return Decorators{chain: res}
}

func isNil(d custody.Decorator) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler returns h wrapped by all decorators.
func (d Decorators) WithHandler(h custody.Handler) custody.Handler {
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = step{d: d.chain[i], next: h}
	}
	return h
}

// step runs one decorator in front of the rest of the stack.
type step struct {
	d    custody.Decorator
	next custody.Handler
}

var _ custody.Handler = step{}

func (s step) Deliver(ctx custody.Context, store custody.KVStore, msg custody.Msg) (*custody.DeliverResult, error) {
	return s.d.Deliver(ctx, store, msg, s.next)
}
