package platform

import (
	"sync/atomic"

	"github.com/3Ution-BK/ModelViewer/internal/event"
)

var lastID atomic.Uint64

// NextID returns a window id that has not been handed out before.
func NextID() event.WindowID {
	return event.WindowID(lastID.Add(1))
}

// Registry maps window ids to the objects that own those windows. Native
// callbacks only carry the id; the registry resolves it back to the owner.
// Entries are added when a window is created and removed when it is
// destroyed, so a lookup never returns a destroyed owner.
//
// A Registry is used from the main thread only and takes no locks.
type Registry[T any] struct {
	owners map[event.WindowID]T
}

// Add records owner under id, replacing any previous owner.
func (r *Registry[T]) Add(id event.WindowID, owner T) {
	if r.owners == nil {
		r.owners = make(map[event.WindowID]T)
	}
	r.owners[id] = owner
}

// Lookup returns the owner of id.
func (r *Registry[T]) Lookup(id event.WindowID) (T, bool) {
	owner, ok := r.owners[id]
	return owner, ok
}

// Remove forgets id. Removing an unknown id does nothing.
func (r *Registry[T]) Remove(id event.WindowID) {
	delete(r.owners, id)
}

// Len returns the number of registered windows.
func (r *Registry[T]) Len() int { return len(r.owners) }
