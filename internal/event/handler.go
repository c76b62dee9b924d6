package event

import (
	"fmt"
	"log/slog"
)

// Handler attempts to process one event. Handle reports whether the event
// matched and was consumed. It must accept any Event, including nil.
type Handler interface {
	Handle(ev Event) bool
}

// Func binds a function to one concrete event type E.
// Handle runs the function only when the event's dynamic type is E.
type Func[E Event] func(E)

// Handle implements Handler. A nil event, typed or not, matches nothing.
func (f Func[E]) Handle(ev Event) bool {
	if IsNil(ev) {
		return false
	}
	e, ok := ev.(E)
	if !ok {
		return false
	}
	f(e)
	return true
}

// Bind returns a Handler calling fn for events of type E. fn is usually a
// method value, so the target object is captured with it:
//
//	event.Bind(w.windowResized)
func Bind[E Event](fn func(E)) Handler {
	return Func[E](fn)
}

// Handlers is an ordered list of handlers. Earlier handlers have priority.
type Handlers []Handler

// Register adds h in front of the existing handlers, so the most recently
// registered handler is tried first.
func (hs *Handlers) Register(h Handler) {
	*hs = append(Handlers{h}, *hs...)
}

// Append adds h after the existing handlers.
func (hs *Handlers) Append(h Handler) {
	*hs = append(*hs, h)
}

// Dispatch offers ev to each handler in order and stops at the first one
// that consumes it. An event nobody handles is dropped; that is not an error.
func (hs Handlers) Dispatch(ev Event) bool {
	for _, h := range hs {
		if h.Handle(ev) {
			return true
		}
	}
	slog.Debug("event dropped", "type", fmt.Sprintf("%T", ev))
	return false
}
