package viewer

import (
	"image"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/3Ution-BK/ModelViewer/internal/event"
	"github.com/3Ution-BK/ModelViewer/internal/platform"
)

// windows resolves the id carried by native callbacks to its Window.
var windows platform.Registry[*Window]

// callbacks turns native callbacks into events on the owning window's
// queue. Events are stamped when the callback runs. Resize and move events
// carry the value the window last handled as their previous value.
type callbacks struct{}

var _ platform.Callbacks = callbacks{}

func lookup(id event.WindowID) (*Window, uint64, bool) {
	w, ok := windows.Lookup(id)
	if !ok {
		return nil, 0, false
	}
	return w, w.surface.TimerValue(), true
}

func (callbacks) WindowSize(id event.WindowID, width, height int) {
	if w, now, ok := lookup(id); ok {
		w.queue.Push(event.NewWindowResize(image.Pt(width, height), w.size, now, id))
	}
}

func (callbacks) WindowPos(id event.WindowID, x, y int) {
	if w, now, ok := lookup(id); ok {
		w.queue.Push(event.NewMove(image.Pt(x, y), w.position, now, id))
	}
}

func (callbacks) FramebufferSize(id event.WindowID, width, height int) {
	if w, now, ok := lookup(id); ok {
		w.queue.Push(event.NewFramebufferResize(image.Pt(width, height), w.framebuffer, now, id))
	}
}

func (callbacks) Key(id event.WindowID, key, scanCode, action, mods int) {
	if w, now, ok := lookup(id); ok {
		w.queue.Push(event.NewKeyboard(event.Key(key), event.Action(action), scanCode, event.Modifiers(mods), now, id))
	}
}

func (callbacks) MouseButton(id event.WindowID, button, action, mods int) {
	if w, now, ok := lookup(id); ok {
		pos := w.surface.CursorPos()
		w.queue.Push(event.NewMouse(event.MouseButton(button), event.Action(action), pos, event.Modifiers(mods), now, id))
	}
}

func (callbacks) CursorPos(id event.WindowID, x, y float64) {
	if w, now, ok := lookup(id); ok {
		w.queue.Push(event.NewCursorMove(mgl64.Vec2{x, y}, w.cursor, now, id))
	}
}

func (callbacks) CursorEnter(id event.WindowID, entered bool) {
	if w, now, ok := lookup(id); ok {
		w.queue.Push(event.NewCursorEnter(entered, now, id))
	}
}

func (callbacks) Scroll(id event.WindowID, x, y float64) {
	if w, now, ok := lookup(id); ok {
		w.queue.Push(event.NewScroll(mgl64.Vec2{x, y}, now, id))
	}
}

func (callbacks) Char(id event.WindowID, char rune) {
	if w, now, ok := lookup(id); ok {
		w.queue.Push(event.NewChar(char, now, id))
	}
}
