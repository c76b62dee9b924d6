package event

import "fmt"

// Key is a keyboard key code. It shares its integer space with GLFW's key
// table; values outside the table are kept as-is and report Known false.
type Key int

const KeyUnknown Key = -1

// Printable keys.
const (
	KeySpace        Key = 32
	KeyApostrophe   Key = 39
	KeyComma        Key = 44
	KeyMinus        Key = 45
	KeyPeriod       Key = 46
	KeySlash        Key = 47
	KeySemicolon    Key = 59
	KeyEqual        Key = 61
	KeyLeftBracket  Key = 91
	KeyBackslash    Key = 92
	KeyRightBracket Key = 93
	KeyGraveAccent  Key = 96
	KeyWorld1       Key = 161
	KeyWorld2       Key = 162
)

const (
	Key0 Key = iota + 48
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
)

const (
	KeyA Key = iota + 65
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
)

// Function keys.
const (
	KeyEscape Key = iota + 256
	KeyEnter
	KeyTab
	KeyBackspace
	KeyInsert
	KeyDelete
	KeyRight
	KeyLeft
	KeyDown
	KeyUp
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
)

const (
	KeyCapsLock Key = iota + 280
	KeyScrollLock
	KeyNumLock
	KeyPrintScreen
	KeyPause
)

const (
	KeyF1 Key = iota + 290
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyF13
	KeyF14
	KeyF15
	KeyF16
	KeyF17
	KeyF18
	KeyF19
	KeyF20
	KeyF21
	KeyF22
	KeyF23
	KeyF24
	KeyF25
)

// Keypad.
const (
	KeyKP0 Key = iota + 320
	KeyKP1
	KeyKP2
	KeyKP3
	KeyKP4
	KeyKP5
	KeyKP6
	KeyKP7
	KeyKP8
	KeyKP9
	KeyKPDecimal
	KeyKPDivide
	KeyKPMultiply
	KeyKPSubtract
	KeyKPAdd
	KeyKPEnter
	KeyKPEqual
)

const (
	KeyLeftShift Key = iota + 340
	KeyLeftControl
	KeyLeftAlt
	KeyLeftSuper
	KeyRightShift
	KeyRightControl
	KeyRightAlt
	KeyRightSuper
	KeyMenu

	KeyLast = KeyMenu
)

var keyNames = map[Key]string{
	KeySpace: "Space", KeyApostrophe: "Apostrophe", KeyComma: "Comma",
	KeyMinus: "Minus", KeyPeriod: "Period", KeySlash: "Slash",
	KeySemicolon: "Semicolon", KeyEqual: "Equal", KeyLeftBracket: "LeftBracket",
	KeyBackslash: "Backslash", KeyRightBracket: "RightBracket",
	KeyGraveAccent: "GraveAccent", KeyWorld1: "World1", KeyWorld2: "World2",

	KeyEscape: "Escape", KeyEnter: "Enter", KeyTab: "Tab", KeyBackspace: "Backspace",
	KeyInsert: "Insert", KeyDelete: "Delete", KeyRight: "Right", KeyLeft: "Left",
	KeyDown: "Down", KeyUp: "Up", KeyPageUp: "PageUp", KeyPageDown: "PageDown",
	KeyHome: "Home", KeyEnd: "End", KeyCapsLock: "CapsLock",
	KeyScrollLock: "ScrollLock", KeyNumLock: "NumLock",
	KeyPrintScreen: "PrintScreen", KeyPause: "Pause",

	KeyKPDecimal: "KPDecimal", KeyKPDivide: "KPDivide", KeyKPMultiply: "KPMultiply",
	KeyKPSubtract: "KPSubtract", KeyKPAdd: "KPAdd", KeyKPEnter: "KPEnter",
	KeyKPEqual: "KPEqual",

	KeyLeftShift: "LeftShift", KeyLeftControl: "LeftControl", KeyLeftAlt: "LeftAlt",
	KeyLeftSuper: "LeftSuper", KeyRightShift: "RightShift",
	KeyRightControl: "RightControl", KeyRightAlt: "RightAlt",
	KeyRightSuper: "RightSuper", KeyMenu: "Menu",
}

func init() {
	for k := Key0; k <= Key9; k++ {
		keyNames[k] = string(rune('0' + (k - Key0)))
	}
	for k := KeyA; k <= KeyZ; k++ {
		keyNames[k] = string(rune('A' + (k - KeyA)))
	}
	for k := KeyF1; k <= KeyF25; k++ {
		keyNames[k] = fmt.Sprintf("F%d", k-KeyF1+1)
	}
	for k := KeyKP0; k <= KeyKP9; k++ {
		keyNames[k] = fmt.Sprintf("KP%d", k-KeyKP0)
	}
}

// Known reports whether k is in the key table.
func (k Key) Known() bool {
	_, ok := keyNames[k]
	return ok
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "Unknown"
}
