// Package platform wraps GLFW: library setup, window and context creation,
// the monotonic timer and native input callbacks. It is the only package
// that imports GLFW directly.
//
// GLFW must be used from the main OS thread; callers lock it with
// runtime.LockOSThread before calling Init.
package platform

import (
	"errors"
	"fmt"
	"image"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/3Ution-BK/ModelViewer/internal/event"
)

// ErrInit is wrapped by errors from Init and NewWindow.
var ErrInit = errors.New("platform: initialization failed")

// Init initializes GLFW.
func Init() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("%w: failed to initialize GLFW: %v", ErrInit, err)
	}
	return nil
}

// Terminate destroys any remaining windows and releases GLFW.
func Terminate() { glfw.Terminate() }

// TimerValue returns the raw value of GLFW's monotonic timer. Event
// timestamps and the frame clock both read it.
func TimerValue() uint64 { return glfw.GetTimerValue() }

// TimerFrequency returns the number of timer ticks per second.
func TimerFrequency() uint64 { return glfw.GetTimerFrequency() }

// PollEvents processes pending native events, running the installed
// callbacks on the calling goroutine.
func PollEvents() { glfw.PollEvents() }

// PostEmptyEvent wakes the main thread if it is waiting for events.
// It is the only function here that may be called from any goroutine.
func PostEmptyEvent() { glfw.PostEmptyEvent() }

// Options describe a window and its OpenGL context.
type Options struct {
	Title    string
	Size     image.Point
	Position image.Point

	// Major and Minor give the requested OpenGL core profile version.
	Major, Minor int

	// Debug requests a debug context so that GL debug output can be enabled.
	Debug bool
}

// Callbacks receives native window events. Each method gets the id of the
// window the event came from and the raw GLFW arguments.
type Callbacks interface {
	WindowSize(id event.WindowID, width, height int)
	WindowPos(id event.WindowID, x, y int)
	FramebufferSize(id event.WindowID, width, height int)
	Key(id event.WindowID, key, scanCode, action, mods int)
	MouseButton(id event.WindowID, button, action, mods int)
	CursorPos(id event.WindowID, x, y float64)
	CursorEnter(id event.WindowID, entered bool)
	Scroll(id event.WindowID, x, y float64)
	Char(id event.WindowID, char rune)
}

// Window is a native window with a current OpenGL context.
type Window struct {
	id  event.WindowID
	win *glfw.Window
}

// NewWindow creates a window with an OpenGL core profile context and makes
// the context current. Init must have been called.
func NewWindow(opts Options) (*Window, error) {
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ContextVersionMajor, opts.Major)
	glfw.WindowHint(glfw.ContextVersionMinor, opts.Minor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	if runtime.GOOS == "darwin" {
		glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	}
	if opts.Debug {
		glfw.WindowHint(glfw.OpenGLDebugContext, glfw.True)
	}

	win, err := glfw.CreateWindow(opts.Size.X, opts.Size.Y, opts.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create GLFW window: %v", ErrInit, err)
	}
	win.MakeContextCurrent()
	glfw.SwapInterval(1)
	win.SetPos(opts.Position.X, opts.Position.Y)

	return &Window{id: NextID(), win: win}, nil
}

// ID returns the id stamped on events from this window.
func (w *Window) ID() event.WindowID { return w.id }

// SetCallbacks routes the window's native events to cb.
func (w *Window) SetCallbacks(cb Callbacks) {
	id := w.id
	w.win.SetSizeCallback(func(_ *glfw.Window, width, height int) {
		cb.WindowSize(id, width, height)
	})
	w.win.SetPosCallback(func(_ *glfw.Window, x, y int) {
		cb.WindowPos(id, x, y)
	})
	w.win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		cb.FramebufferSize(id, width, height)
	})
	w.win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scanCode int, action glfw.Action, mods glfw.ModifierKey) {
		cb.Key(id, int(key), scanCode, int(action), int(mods))
	})
	w.win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		cb.MouseButton(id, int(button), int(action), int(mods))
	})
	w.win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		cb.CursorPos(id, x, y)
	})
	w.win.SetCursorEnterCallback(func(_ *glfw.Window, entered bool) {
		cb.CursorEnter(id, entered)
	})
	w.win.SetScrollCallback(func(_ *glfw.Window, x, y float64) {
		cb.Scroll(id, x, y)
	})
	w.win.SetCharCallback(func(_ *glfw.Window, char rune) {
		cb.Char(id, char)
	})
}

func (w *Window) ShouldClose() bool      { return w.win.ShouldClose() }
func (w *Window) SetShouldClose(v bool)  { w.win.SetShouldClose(v) }
func (w *Window) SwapBuffers()           { w.win.SwapBuffers() }
func (w *Window) PollEvents()            { glfw.PollEvents() }
func (w *Window) TimerValue() uint64     { return glfw.GetTimerValue() }
func (w *Window) TimerFrequency() uint64 { return glfw.GetTimerFrequency() }

func (w *Window) SetPos(p image.Point)  { w.win.SetPos(p.X, p.Y) }
func (w *Window) SetSize(s image.Point) { w.win.SetSize(s.X, s.Y) }

func (w *Window) Pos() image.Point {
	x, y := w.win.GetPos()
	return image.Pt(x, y)
}

func (w *Window) Size() image.Point {
	width, height := w.win.GetSize()
	return image.Pt(width, height)
}

// FramebufferSize returns the size of the framebuffer in pixels.
func (w *Window) FramebufferSize() image.Point {
	width, height := w.win.GetFramebufferSize()
	return image.Pt(width, height)
}

// CursorPos returns the cursor position in screen coordinates relative to
// the window's content area.
func (w *Window) CursorPos() mgl64.Vec2 {
	x, y := w.win.GetCursorPos()
	return mgl64.Vec2{x, y}
}

// Destroy destroys the window and its context. The window must not be used
// afterwards.
func (w *Window) Destroy() {
	if w.win == nil {
		return
	}
	w.win.Destroy()
	w.win = nil
}

