package input

import (
	"maps"

	"github.com/gdamore/tcell/v2"
)

// KeyTable maps physical terminal keys to logical game keys
type KeyTable struct {
	// Special keys (arrows, Esc, Ctrl+*)
	SpecialKeys map[tcell.Key]Key

	// Printable rune bindings, matched case-insensitively
	Runes map[rune]Key
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]Key{
			tcell.KeyUp:     KeyUp,
			tcell.KeyDown:   KeyDown,
			tcell.KeyLeft:   KeyLeft,
			tcell.KeyRight:  KeyRight,
			tcell.KeyEscape: KeyQuit,
			tcell.KeyCtrlC:  KeyQuit,
		},
		Runes: map[rune]Key{
			'w': KeyUp,
			'a': KeyLeft,
			's': KeyDown,
			'd': KeyRight,
			'q': KeySpecial,
			' ': KeySpecial,
			'p': KeyScreenshot,
		},
	}
}

// Clone returns a deep copy of the table
func (kt *KeyTable) Clone() *KeyTable {
	return &KeyTable{
		SpecialKeys: maps.Clone(kt.SpecialKeys),
		Runes:       maps.Clone(kt.Runes),
	}
}

// Resolve maps a terminal key event to a logical key
func (kt *KeyTable) Resolve(ev *tcell.EventKey) (Key, bool) {
	if ev.Key() == tcell.KeyRune {
		r := toLower(ev.Rune())
		// Some terminals report Ctrl+letter as a modified rune
		if ev.Modifiers()&tcell.ModCtrl != 0 && r >= 'a' && r <= 'z' {
			k, ok := kt.SpecialKeys[tcell.KeyCtrlA+tcell.Key(r-'a')]
			return k, ok
		}
		k, ok := kt.Runes[r]
		return k, ok
	}
	k, ok := kt.SpecialKeys[ev.Key()]
	return k, ok
}

func toLower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}
