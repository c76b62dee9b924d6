// Package overlay draws the settings panel over the scene with Dear ImGui.
//
// Input is not read from the native window. The viewer forwards mouse,
// keyboard, text and scroll events to the overlay, which hands them to
// imgui once per frame.
package overlay

import (
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/inkyblackness/imgui-go/v4"

	"github.com/3Ution-BK/ModelViewer/internal/event"
)

// fallbackDelta is used when the clock has not measured a frame yet;
// imgui rejects a zero delta time.
const fallbackDelta = 1.0 / 60

// Overlay owns an imgui context and its OpenGL renderer. It must be
// created and used on the thread that owns the GL context.
type Overlay struct {
	context  *imgui.Context
	io       imgui.IO
	renderer *renderer
	mouse    mouseState
	keyboard keyboardState
}

// New creates the imgui context and uploads the font atlas. The OpenGL
// context must be current.
func New() (*Overlay, error) {
	context := imgui.CreateContext(nil)
	io := imgui.CurrentIO()
	imgui.StyleColorsDark()
	for _, k := range keyMap {
		io.KeyMap(k.imgui, int(k.native))
	}

	r, err := newRenderer(io)
	if err != nil {
		context.Destroy()
		return nil, err
	}
	return &Overlay{context: context, io: io, renderer: r}, nil
}

// MouseButton records a mouse button event for the next frame.
func (o *Overlay) MouseButton(button event.MouseButton, action event.Action) {
	o.mouse.button(button, action)
}

// CursorPos records the cursor position in window coordinates.
func (o *Overlay) CursorPos(p mgl64.Vec2) { o.mouse.move(p) }

// CursorEnter records the cursor entering or leaving the window. While it
// is outside, imgui sees no mouse position.
func (o *Overlay) CursorEnter(entered bool) {
	if !entered {
		o.mouse.leave()
	}
}

// Key records a key press or release for the next frame.
func (o *Overlay) Key(key event.Key, action event.Action) { o.keyboard.key(key, action) }

// Char records a typed character for text fields.
func (o *Overlay) Char(r rune) { o.keyboard.char(r) }

// Scroll records mouse wheel movement.
func (o *Overlay) Scroll(offset mgl64.Vec2) { o.keyboard.scroll(offset) }

// WantCaptureMouse reports whether the last frame used the mouse, for
// example because the cursor is over the panel.
func (o *Overlay) WantCaptureMouse() bool { return o.io.WantCaptureMouse() }

// WantCaptureKeyboard reports whether a panel widget has keyboard focus,
// such as a slider being edited as text.
func (o *Overlay) WantCaptureKeyboard() bool { return o.io.WantCaptureKeyboard() }

// Frame feeds the pending input to imgui, builds the settings panel for s
// and draws it. It reports whether the panel changed s. delta is the
// unscaled frame time in seconds, so the panel stays usable while the
// scene is paused.
func (o *Overlay) Frame(display, framebuffer image.Point, delta float64, s *Settings, stats Stats) bool {
	o.io.SetDisplaySize(imgui.Vec2{X: float32(display.X), Y: float32(display.Y)})
	if delta <= 0 {
		delta = fallbackDelta
	}
	o.io.SetDeltaTime(float32(delta))

	if o.mouse.inside {
		o.io.SetMousePosition(imgui.Vec2{X: float32(o.mouse.position.X()), Y: float32(o.mouse.position.Y())})
	} else {
		o.io.SetMousePosition(imgui.Vec2{X: -math.MaxFloat32, Y: -math.MaxFloat32})
	}
	for i, down := range o.mouse.frame() {
		o.io.SetMouseButtonDown(i, down)
	}
	o.feedKeyboard()

	imgui.NewFrame()
	changed := drawPanel(s, stats)
	imgui.Render()
	o.renderer.render(display, framebuffer, imgui.RenderedDrawData())
	return changed
}

func (o *Overlay) feedKeyboard() {
	changes, text, wheel := o.keyboard.frame()
	for _, c := range changes {
		if c.down {
			o.io.KeyPress(c.key)
		} else {
			o.io.KeyRelease(c.key)
		}
	}
	o.io.KeyCtrl(int(event.KeyLeftControl), int(event.KeyRightControl))
	o.io.KeyShift(int(event.KeyLeftShift), int(event.KeyRightShift))
	o.io.KeyAlt(int(event.KeyLeftAlt), int(event.KeyRightAlt))
	o.io.KeySuper(int(event.KeyLeftSuper), int(event.KeyRightSuper))
	if text != "" {
		o.io.AddInputCharacters(text)
	}
	if wheel != (mgl64.Vec2{}) {
		o.io.AddMouseWheelDelta(float32(wheel.X()), float32(wheel.Y()))
	}
}

// Destroy frees the GL resources and the imgui context.
func (o *Overlay) Destroy() {
	if o.context == nil {
		return
	}
	o.renderer.delete()
	o.context.Destroy()
	o.context = nil
}
