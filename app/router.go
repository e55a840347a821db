package app

import (
	"regexp"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

var isPath = regexp.MustCompile(`^[a-z0-9_]+/[a-z0-9_]+$`).MatchString

// Router dispatches messages to the handler registered for their path.
type Router struct {
	routes map[string]custody.Handler
}

var _ custody.Registry = (*Router)(nil)
var _ custody.Handler = (*Router)(nil)

// NewRouter returns an empty router.
func NewRouter() *Router {
	return &Router{routes: make(map[string]custody.Handler)}
}

// Handle registers a handler for given path. It panics if the path is
// malformed or already taken.
func (r *Router) Handle(path string, h custody.Handler) {
	if !isPath(path) {
		panic("invalid route path: " + path)
	}
	if _, ok := r.routes[path]; ok {
		panic("route already registered: " + path)
	}
	r.routes[path] = h
}

// Deliver calls the handler registered for the message path.
func (r *Router) Deliver(ctx custody.Context, store custody.KVStore, msg custody.Msg) (*custody.DeliverResult, error) {
	h, ok := r.routes[msg.Path()]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "no handler for path %q", msg.Path())
	}
	return h.Deliver(ctx, store, msg)
}
