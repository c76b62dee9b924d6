// Package event turns native window callbacks into typed values that can be
// queued and dispatched to handlers bound to a concrete event type.
package event

import (
	"errors"
	"reflect"
)

// ErrQueued is returned when an event is re-stamped after it entered a Queue.
var ErrQueued = errors.New("event: already queued")

// WindowID is an opaque handle to the window an event originated from.
// The event package never resolves it; see platform.Registry.
type WindowID uint64

// NoWindow marks synthetic events that are not tied to any window.
const NoWindow WindowID = 0

// Event is something that happened at a point in time. Every Event embeds
// Base, so events are always handled through pointers and never copied.
type Event interface {
	// Timestamp is the value of the monotonic tick counter when the event
	// happened. It shares its source with the frame clock.
	Timestamp() uint64

	// SetTimestamp re-stamps the event. It fails once the event is queued.
	SetTimestamp(t uint64) error

	// Window is the originating window, or NoWindow.
	Window() WindowID

	base() *Base
}

// noCopy makes go vet's copylocks check report events passed by value.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Base holds the fields shared by all events. Embed it to define a new
// event type; no central registry needs updating.
type Base struct {
	_         noCopy
	timestamp uint64
	window    WindowID
	queued    bool
}

// Timestamp implements Event.
func (b *Base) Timestamp() uint64 { return b.timestamp }

// SetTimestamp implements Event.
func (b *Base) SetTimestamp(t uint64) error {
	if b.queued {
		return ErrQueued
	}
	b.timestamp = t
	return nil
}

// Window implements Event.
func (b *Base) Window() WindowID { return b.window }

func (b *Base) base() *Base { return b }

// Init sets the timestamp and window of an event built outside this package.
func (b *Base) Init(timestamp uint64, window WindowID) {
	b.timestamp = timestamp
	b.window = window
}

// IsNil reports whether ev is nil or a nil pointer held in a non-nil
// interface, such as (*Keyboard)(nil).
func IsNil(ev Event) bool {
	if ev == nil {
		return true
	}
	v := reflect.ValueOf(ev)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
