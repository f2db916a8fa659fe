package timer

// Event identifies a state-machine occurrence observers can subscribe to.
type Event string

const (
	// EventTick fires every second while the tick pump is alive,
	// regardless of whether a session is running.
	EventTick Event = "tick"
	// EventStart fires when a session starts.
	EventStart Event = "start"
	// EventStop fires when a session ends, by stop or auto-completion.
	EventStop Event = "stop"
	// EventChange fires on any state mutation.
	EventChange Event = "change"
	// EventLog fires after a session has been committed to the in-memory
	// store and its document write has been issued.
	EventLog Event = "log"
)

type subscription struct {
	id      int
	event   Event
	handler func()
}

// emitter is a plain observer list. It is only touched from the single event
// loop that owns the Manager, so it carries no lock. Subscriptions are held
// by id so observers can detach on teardown.
type emitter struct {
	nextID int
	subs   []subscription
}

func (e *emitter) subscribe(ev Event, fn func()) int {
	e.nextID++
	e.subs = append(e.subs, subscription{id: e.nextID, event: ev, handler: fn})
	return e.nextID
}

func (e *emitter) unsubscribe(id int) {
	for i, s := range e.subs {
		if s.id == id {
			e.subs = append(e.subs[:i], e.subs[i+1:]...)
			return
		}
	}
}

func (e *emitter) emit(ev Event) {
	// Iterate over a snapshot: a handler may unsubscribe itself.
	subs := make([]subscription, len(e.subs))
	copy(subs, e.subs)
	for _, s := range subs {
		if s.event == ev {
			s.handler()
		}
	}
}
