package overlay

import (
	"unicode/utf8"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/inkyblackness/imgui-go/v4"

	"github.com/3Ution-BK/ModelViewer/internal/event"
)

// buttonCount is the number of mouse buttons imgui tracks.
const buttonCount = 5

// mouseState accumulates mouse input between frames.
type mouseState struct {
	down     [buttonCount]bool
	pressed  [buttonCount]bool
	position mgl64.Vec2
	inside   bool
}

// button records a press or release. A press is remembered until the next
// frame so that a click shorter than one frame still registers.
func (m *mouseState) button(b event.MouseButton, a event.Action) {
	if b < 0 || int(b) >= buttonCount {
		return
	}
	switch a {
	case event.Press:
		m.down[b] = true
		m.pressed[b] = true
	case event.Release:
		m.down[b] = false
	}
}

func (m *mouseState) move(p mgl64.Vec2) {
	m.position = p
	m.inside = true
}

// frame returns the button state for the next frame and forgets presses
// that have been released.
func (m *mouseState) frame() [buttonCount]bool {
	var state [buttonCount]bool
	for i := range state {
		state[i] = m.down[i] || m.pressed[i]
	}
	m.pressed = [buttonCount]bool{}
	return state
}

func (m *mouseState) leave() { m.inside = false }

// keysDown is the size of imgui's key state table; native key codes at or
// above it are ignored.
const keysDown = 512

type keyChange struct {
	key  int
	down bool
}

// keyboardState accumulates keyboard, text and wheel input between frames.
type keyboardState struct {
	changes []keyChange
	text    []rune
	wheel   mgl64.Vec2
}

// key records a press or release. Repeats are left to imgui, which
// generates its own from the held state.
func (k *keyboardState) key(key event.Key, a event.Action) {
	if key < 0 || int(key) >= keysDown {
		return
	}
	switch a {
	case event.Press:
		k.changes = append(k.changes, keyChange{int(key), true})
	case event.Release:
		k.changes = append(k.changes, keyChange{int(key), false})
	}
}

func (k *keyboardState) char(r rune) {
	if r > 0 && r != utf8.RuneError && utf8.ValidRune(r) {
		k.text = append(k.text, r)
	}
}

func (k *keyboardState) scroll(offset mgl64.Vec2) { k.wheel = k.wheel.Add(offset) }

// frame returns the input gathered since the last frame and resets it.
func (k *keyboardState) frame() (changes []keyChange, text string, wheel mgl64.Vec2) {
	changes, text, wheel = k.changes, string(k.text), k.wheel
	k.changes, k.text, k.wheel = nil, nil, mgl64.Vec2{}
	return changes, text, wheel
}

// keyMap pairs imgui's navigation and editing keys with native key codes.
var keyMap = [...]struct {
	imgui  int
	native event.Key
}{
	{imgui.KeyTab, event.KeyTab},
	{imgui.KeyLeftArrow, event.KeyLeft},
	{imgui.KeyRightArrow, event.KeyRight},
	{imgui.KeyUpArrow, event.KeyUp},
	{imgui.KeyDownArrow, event.KeyDown},
	{imgui.KeyPageUp, event.KeyPageUp},
	{imgui.KeyPageDown, event.KeyPageDown},
	{imgui.KeyHome, event.KeyHome},
	{imgui.KeyEnd, event.KeyEnd},
	{imgui.KeyInsert, event.KeyInsert},
	{imgui.KeyDelete, event.KeyDelete},
	{imgui.KeyBackspace, event.KeyBackspace},
	{imgui.KeySpace, event.KeySpace},
	{imgui.KeyEnter, event.KeyEnter},
	{imgui.KeyEscape, event.KeyEscape},
	{imgui.KeyKeyPadEnter, event.KeyKPEnter},
	{imgui.KeyA, event.KeyA},
	{imgui.KeyC, event.KeyC},
	{imgui.KeyV, event.KeyV},
	{imgui.KeyX, event.KeyX},
	{imgui.KeyY, event.KeyY},
	{imgui.KeyZ, event.KeyZ},
}
