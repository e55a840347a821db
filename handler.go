package custody

import (
	"encoding/json"

	"github.com/iov-one/custody/errors"
)

// Msg is a request for an action to be performed. Each handler knows how to
// process a message identified by its path.
type Msg interface {
	// Path returns a path that identifies the handler responsible for
	// processing this message, in the form "<extension>/<action>".
	Path() string

	// Validate performs a sanity check. It must not access the state.
	Validate() error
}

// Handler is a core engine that can process a few specific messages.
// This could represent "coin transfer", or "approve a queued transaction".
type Handler interface {
	Deliver(ctx Context, store KVStore, msg Msg) (*DeliverResult, error)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx Context, store KVStore, msg Msg) (*DeliverResult, error)

func (fn HandlerFunc) Deliver(ctx Context, store KVStore, msg Msg) (*DeliverResult, error) {
	return fn(ctx, store, msg)
}

// Decorator wraps a Handler to provide common functionality
// like logging, or panic recovery, to many Handlers
type Decorator interface {
	Deliver(ctx Context, store KVStore, msg Msg, next Handler) (*DeliverResult, error)
}

// Registry is an interface to register your handler,
// the setup side of a Router
type Registry interface {
	Handle(path string, h Handler)
}

// DeliverResult captures any non-error results of processing a message.
type DeliverResult struct {
	// Data is a machine-parseable return value, like the id of a queued
	// transaction.
	Data []byte
	// Log is human-readable informational string.
	Log string
	// Events are the notifications emitted while processing. They are
	// published once the call returns.
	Events []Event
}

// LoadMsg extracts the message represented by given handler input into
// provided destination. The destination must be a pointer to a type
// implementing Msg.
func LoadMsg(msg Msg, destination interface{}) error {
	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}
	return assignMsg(msg, destination)
}

// Options are the app options
// Each extension can look up it's key and parse the json as desired
type Options map[string]json.RawMessage

// ReadOptions reads the values stored under a given key,
// and parses the json into the given obj.
// Returns an error if it cannot parse.
// Noop and no error if key is missing
func (o Options) ReadOptions(key string, obj interface{}) error {
	msg := o[key]
	if len(msg) == 0 {
		return nil
	}
	if err := json.Unmarshal(msg, obj); err != nil {
		return errors.Wrapf(errors.ErrInput, "option %q: %s", key, err)
	}
	return nil
}

// Initializer implementations are used to initialize
// extensions from genesis file contents
type Initializer interface {
	FromGenesis(Options, KVStore) error
}
