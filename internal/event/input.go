package event

import "strings"

// Modifiers is the set of modifier keys held while an input event happened.
// Values match GLFW's mod bits, so a native mods argument converts directly.
// The usual bitwise operators apply.
type Modifiers int

const (
	NoModifier Modifiers = 0
	Shift      Modifiers = 0x0001
	Control    Modifiers = 0x0002
	Alt        Modifiers = 0x0004
	Super      Modifiers = 0x0008
	CapsLock   Modifiers = 0x0010
	NumLock    Modifiers = 0x0020
)

var modifierNames = []struct {
	flag Modifiers
	name string
}{
	{Shift, "Shift"},
	{Control, "Control"},
	{Alt, "Alt"},
	{Super, "Super"},
	{CapsLock, "CapsLock"},
	{NumLock, "NumLock"},
}

// HasFlag reports whether all of the given flags are set.
func (m Modifiers) HasFlag(flags Modifiers) bool {
	return m&flags == flags
}

// SetFlag sets or clears the given flags depending on on.
func (m *Modifiers) SetFlag(on bool, flags ...Modifiers) {
	var mask Modifiers
	for _, f := range flags {
		mask |= f
	}
	if on {
		*m |= mask
	} else {
		*m &^= mask
	}
}

func (m Modifiers) String() string {
	if m == NoModifier {
		return "NoModifier"
	}
	var names []string
	for _, mn := range modifierNames {
		if m.HasFlag(mn.flag) {
			names = append(names, mn.name)
		}
	}
	if len(names) == 0 {
		return "Unknown"
	}
	return strings.Join(names, "|")
}

// Action is what happened to a key or button.
type Action int

const (
	Release Action = 0
	Press   Action = 1
	Repeat  Action = 2
)

func (a Action) String() string {
	switch a {
	case Release:
		return "Release"
	case Press:
		return "Press"
	case Repeat:
		return "Repeat"
	}
	return "Unknown"
}

// Input is the common part of keyboard and mouse events.
type Input struct {
	Base
	mods Modifiers
}

// Modifiers returns the modifier keys held during the event.
func (in *Input) Modifiers() Modifiers { return in.mods }

// SetModifiers replaces the modifier set.
func (in *Input) SetModifiers(m Modifiers) { in.mods = m }
