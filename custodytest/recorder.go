package custodytest

import (
	"sync"

	"github.com/iov-one/custody"
)

// Recorder is an EventSink that keeps all published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []custody.Event
}

var _ custody.EventSink = (*Recorder)(nil)

func (r *Recorder) Publish(ev custody.Event) {
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
}

// Events returns all published events in publication order.
func (r *Recorder) Events() []custody.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]custody.Event(nil), r.events...)
}

// Types returns types of all published events in publication order.
func (r *Recorder) Types() []string {
	evs := r.Events()
	types := make([]string, len(evs))
	for i, e := range evs {
		types[i] = e.Type
	}
	return types
}

// Reset drops all recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}
