package event

import (
	"fmt"
	"image"

	"github.com/go-gl/mathgl/mgl64"
)

// Keyboard is sent when a key is pressed, repeated or released.
type Keyboard struct {
	Input
	key      Key
	action   Action
	scanCode int
}

// NewKeyboard returns a keyboard event.
func NewKeyboard(key Key, action Action, scanCode int, mods Modifiers, timestamp uint64, window WindowID) *Keyboard {
	return &Keyboard{
		Input:    Input{Base: Base{timestamp: timestamp, window: window}, mods: mods},
		key:      key,
		action:   action,
		scanCode: scanCode,
	}
}

func (e *Keyboard) Key() Key       { return e.key }
func (e *Keyboard) Action() Action { return e.action }
func (e *Keyboard) ScanCode() int  { return e.scanCode }
func (e *Keyboard) String() string {
	return fmt.Sprintf("Keyboard{%v %v scan=%d mods=%v t=%d}", e.key, e.action, e.scanCode, e.mods, e.timestamp)
}

// MouseButton identifies a mouse button, numbered as in GLFW.
type MouseButton int

const (
	Button1 MouseButton = iota
	Button2
	Button3
	Button4
	Button5
	Button6
	Button7
	Button8

	ButtonLeft   = Button1
	ButtonRight  = Button2
	ButtonMiddle = Button3
	ButtonLast   = Button8
)

// Known reports whether b is a valid button number.
func (b MouseButton) Known() bool { return b >= Button1 && b <= ButtonLast }

func (b MouseButton) String() string {
	switch b {
	case ButtonLeft:
		return "Left"
	case ButtonRight:
		return "Right"
	case ButtonMiddle:
		return "Middle"
	}
	if b.Known() {
		return fmt.Sprintf("Button%d", int(b)+1)
	}
	return "Unknown"
}

// Mouse is sent when a mouse button is pressed or released.
type Mouse struct {
	Input
	button   MouseButton
	action   Action
	position mgl64.Vec2
}

// NewMouse returns a mouse button event at the given cursor position.
func NewMouse(button MouseButton, action Action, position mgl64.Vec2, mods Modifiers, timestamp uint64, window WindowID) *Mouse {
	return &Mouse{
		Input:    Input{Base: Base{timestamp: timestamp, window: window}, mods: mods},
		button:   button,
		action:   action,
		position: position,
	}
}

func (e *Mouse) Button() MouseButton  { return e.button }
func (e *Mouse) Action() Action       { return e.action }
func (e *Mouse) Position() mgl64.Vec2 { return e.position }

// CursorMove is sent when the cursor moves over the window.
type CursorMove struct {
	Base
	position, previous mgl64.Vec2
}

// NewCursorMove returns a cursor move event.
func NewCursorMove(position, previous mgl64.Vec2, timestamp uint64, window WindowID) *CursorMove {
	return &CursorMove{
		Base:     Base{timestamp: timestamp, window: window},
		position: position,
		previous: previous,
	}
}

func (e *CursorMove) Position() mgl64.Vec2 { return e.position }
func (e *CursorMove) Previous() mgl64.Vec2 { return e.previous }

// CursorEnter is sent when the cursor enters or leaves the window's
// content area.
type CursorEnter struct {
	Base
	entered bool
}

// NewCursorEnter returns a cursor enter or leave event.
func NewCursorEnter(entered bool, timestamp uint64, window WindowID) *CursorEnter {
	return &CursorEnter{Base: Base{timestamp: timestamp, window: window}, entered: entered}
}

func (e *CursorEnter) Entered() bool { return e.entered }

// Scroll is sent for mouse wheel and touchpad scrolling.
type Scroll struct {
	Base
	offset mgl64.Vec2
}

// NewScroll returns a scroll event.
func NewScroll(offset mgl64.Vec2, timestamp uint64, window WindowID) *Scroll {
	return &Scroll{Base: Base{timestamp: timestamp, window: window}, offset: offset}
}

// Offset is the horizontal and vertical scroll amount.
func (e *Scroll) Offset() mgl64.Vec2 { return e.offset }

// Char is sent for each Unicode character typed, after keyboard layout and
// modifiers are applied. It is separate from Keyboard, which reports
// physical keys.
type Char struct {
	Base
	char rune
}

// NewChar returns a character input event.
func NewChar(char rune, timestamp uint64, window WindowID) *Char {
	return &Char{Base: Base{timestamp: timestamp, window: window}, char: char}
}

func (e *Char) Char() rune { return e.char }

// Move is sent when the window is moved on screen.
type Move struct {
	Base
	position, previous image.Point
}

// NewMove returns a window move event.
func NewMove(position, previous image.Point, timestamp uint64, window WindowID) *Move {
	return &Move{
		Base:     Base{timestamp: timestamp, window: window},
		position: position,
		previous: previous,
	}
}

func (e *Move) Position() image.Point { return e.position }
func (e *Move) Previous() image.Point { return e.previous }

// Resize carries a new and a previous size. It is only used through
// WindowResize and FramebufferResize, which are dispatched separately:
// the framebuffer may lag the window size, for example under DPI scaling.
type Resize struct {
	Base
	size, previous image.Point
}

func (e *Resize) Size() image.Point     { return e.size }
func (e *Resize) Previous() image.Point { return e.previous }

// WindowResize is sent when the window's screen-coordinate size changes.
type WindowResize struct{ Resize }

// NewWindowResize returns a window resize event.
func NewWindowResize(size, previous image.Point, timestamp uint64, window WindowID) *WindowResize {
	return &WindowResize{Resize{Base: Base{timestamp: timestamp, window: window}, size: size, previous: previous}}
}

// FramebufferResize is sent when the window's framebuffer size in pixels changes.
type FramebufferResize struct{ Resize }

// NewFramebufferResize returns a framebuffer resize event.
func NewFramebufferResize(size, previous image.Point, timestamp uint64, window WindowID) *FramebufferResize {
	return &FramebufferResize{Resize{Base: Base{timestamp: timestamp, window: window}, size: size, previous: previous}}
}

// ShaderChanged is sent when a watched shader source file changes on disk.
type ShaderChanged struct {
	Base
	path string
}

// NewShaderChanged returns a shader change event for path.
func NewShaderChanged(path string, timestamp uint64) *ShaderChanged {
	return &ShaderChanged{Base: Base{timestamp: timestamp}, path: path}
}

func (e *ShaderChanged) Path() string { return e.path }
