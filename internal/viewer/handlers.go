package viewer

import (
	"log/slog"

	"github.com/3Ution-BK/ModelViewer/internal/event"
)

// registerHandlers installs one handler per event type the window reacts
// to. Handlers registered later by callers take priority over these.
func (w *Window) registerHandlers() {
	w.handlers.Append(event.Bind(w.moved))
	w.handlers.Append(event.Bind(w.windowResized))
	w.handlers.Append(event.Bind(w.framebufferResized))
	w.handlers.Append(event.Bind(w.keyboard))
	w.handlers.Append(event.Bind(w.mouse))
	w.handlers.Append(event.Bind(w.cursorMoved))
	w.handlers.Append(event.Bind(w.cursorEntered))
	w.handlers.Append(event.Bind(w.scrolled))
	w.handlers.Append(event.Bind(w.typed))
	w.handlers.Append(event.Bind(w.shaderChanged))
}

func (w *Window) moved(e *event.Move)                 { w.position = e.Position() }
func (w *Window) windowResized(e *event.WindowResize) { w.size = e.Size() }

func (w *Window) framebufferResized(e *event.FramebufferResize) {
	w.framebuffer = e.Size()
	w.graphics.Viewport(w.framebuffer)
}

// keyboard forwards keys to the overlay and runs the viewer shortcuts,
// unless a panel widget has keyboard focus.
func (w *Window) keyboard(e *event.Keyboard) {
	if w.overlay != nil {
		w.overlay.Key(e.Key(), e.Action())
		if w.overlay.WantCaptureKeyboard() {
			return
		}
	}
	if e.Action() != event.Press {
		return
	}
	switch e.Key() {
	case event.KeyEscape:
		w.surface.SetShouldClose(true)
	case event.KeyF:
		w.settings.RenderMode = w.settings.RenderMode.Toggle()
		w.graphics.PolygonMode(w.settings.RenderMode)
	case event.KeyR:
		w.settings.Camera = w.initial.Camera
		w.settings.LookAt = w.initial.LookAt
	case event.KeySpace:
		w.togglePause()
	}
}

// togglePause sets the time scale to zero, or back to the scale it had
// before pausing.
func (w *Window) togglePause() {
	if w.settings.TimeScale > 0 {
		w.resume = w.settings.TimeScale
		w.setTimeScale(0)
		return
	}
	w.setTimeScale(w.resume)
}

func (w *Window) mouse(e *event.Mouse) {
	if w.overlay != nil {
		w.overlay.MouseButton(e.Button(), e.Action())
	}
}

func (w *Window) cursorMoved(e *event.CursorMove) {
	w.cursor = e.Position()
	if w.overlay != nil {
		w.overlay.CursorPos(w.cursor)
	}
}

func (w *Window) cursorEntered(e *event.CursorEnter) {
	if w.overlay != nil {
		w.overlay.CursorEnter(e.Entered())
	}
}

func (w *Window) scrolled(e *event.Scroll) {
	if w.overlay != nil {
		w.overlay.Scroll(e.Offset())
	}
}

func (w *Window) typed(e *event.Char) {
	if w.overlay != nil {
		w.overlay.Char(e.Char())
	}
}

// shaderChanged rebuilds every program using the changed file. A program
// that fails to build is logged and the old one stays in use.
func (w *Window) shaderChanged(e *event.ShaderChanged) {
	for _, s := range w.shaders {
		if !s.uses(e.Path()) {
			continue
		}
		p, err := w.load.program(s.sources)
		if err != nil {
			slog.Error("shader reload failed, keeping the previous program", "path", e.Path(), "err", err)
			continue
		}
		s.program.Replace(p)
		slog.Info("shader reloaded", "path", e.Path())
	}
}
