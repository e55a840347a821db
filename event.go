package custody

import (
	"github.com/tendermint/tendermint/libs/common"
)

// Event is a discrete notification emitted by a handler, like a queued or
// an executed transaction.
type Event struct {
	Type       string
	Attributes []common.KVPair
}

// NewEvent returns an event of given type. Attributes are provided as
// key, value pairs.
func NewEvent(typ string, kv ...string) Event {
	if len(kv)%2 != 0 {
		panic("event attributes must be key value pairs")
	}
	ev := Event{Type: typ}
	for i := 0; i < len(kv); i += 2 {
		ev.Attributes = append(ev.Attributes, common.KVPair{
			Key:   []byte(kv[i]),
			Value: []byte(kv[i+1]),
		})
	}
	return ev
}

// Attr returns the value of the first attribute with given key.
func (e Event) Attr(key string) (string, bool) {
	for _, a := range e.Attributes {
		if string(a.Key) == key {
			return string(a.Value), true
		}
	}
	return "", false
}

// EventSink is notified about every event emitted by a successfully
// processed message.
type EventSink interface {
	Publish(Event)
}
