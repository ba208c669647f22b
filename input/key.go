package input

import "strings"

// Key is a logical game key, independent of the physical binding
type Key uint8

const (
	KeyNone Key = iota
	KeyUp
	KeyLeft
	KeyDown
	KeyRight
	KeySpecial
	KeyQuit
	KeyScreenshot

	keyCount
)

// Keys lists every bindable logical key in declaration order
var Keys = []Key{KeyUp, KeyLeft, KeyDown, KeyRight, KeySpecial, KeyQuit, KeyScreenshot}

var keyNames = [keyCount]string{
	KeyNone:       "none",
	KeyUp:         "up",
	KeyLeft:       "left",
	KeyDown:       "down",
	KeyRight:      "right",
	KeySpecial:    "special",
	KeyQuit:       "quit",
	KeyScreenshot: "screenshot",
}

// String returns the action name used in configuration files
func (k Key) String() string {
	if k < keyCount {
		return keyNames[k]
	}
	return "unknown"
}

// KeyByAction resolves a configuration action name to a logical key
func KeyByAction(name string) (Key, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, k := range Keys {
		if keyNames[k] == name {
			return k, true
		}
	}
	return KeyNone, false
}
