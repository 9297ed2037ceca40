// Package observe provides the synchronous publish/subscribe registry shared
// by the map, the road network, the clock and the interaction layer.
package observe

// Kind tags an event, e.g. "create" or "tick".
type Kind string

// Common kinds used by indexed containers.
const (
	Create Kind = "create"
	Update Kind = "update"
	Delete Kind = "delete"
)

// Event is anything that carries a Kind.
type Event interface {
	EventKind() Kind
}

// Listener receives events.
type Listener[E Event] func(E)

// Remove unregisters a listener. Calling it more than once is harmless.
type Remove func()

type subscription[E Event] struct {
	fn     Listener[E]
	kinds  []Kind
	active bool
}

func (s *subscription[E]) wants(k Kind) bool {
	if len(s.kinds) == 0 {
		return true
	}
	for _, want := range s.kinds {
		if want == k {
			return true
		}
	}
	return false
}

// Registry dispatches events to listeners in registration order. Delivery is
// synchronous and re-entrant: a listener may fire further events or add and
// remove listeners. Listeners removed during a Fire are skipped; listeners
// added during a Fire only see later events.
//
// The zero value is ready to use. A Registry is not safe for concurrent use.
type Registry[E Event] struct {
	subs []*subscription[E]
}

// Listen registers fn for the given kinds, or for every kind when none are given.
func (r *Registry[E]) Listen(fn Listener[E], kinds ...Kind) Remove {
	sub := &subscription[E]{fn: fn, kinds: kinds, active: true}
	r.subs = append(r.subs, sub)
	return func() {
		if !sub.active {
			return
		}
		sub.active = false
		for i, s := range r.subs {
			if s == sub {
				r.subs = append(r.subs[:i:i], r.subs[i+1:]...)
				break
			}
		}
	}
}

// Fire delivers e to every listener interested in its kind.
func (r *Registry[E]) Fire(e E) {
	kind := e.EventKind()
	snapshot := append([]*subscription[E](nil), r.subs...)
	for _, sub := range snapshot {
		if sub.active && sub.wants(kind) {
			sub.fn(e)
		}
	}
}

// Len returns the number of registered listeners.
func (r *Registry[E]) Len() int {
	return len(r.subs)
}

// Close drops every listener.
func (r *Registry[E]) Close() {
	for _, sub := range r.subs {
		sub.active = false
	}
	r.subs = nil
}
