package input

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Rune aliases for keys that can't be written as a bare single character
var runeAliases = map[string]rune{
	"space":     ' ',
	"backslash": '\\',
}

// specialKeyNames indexes tcell key names case-insensitively ("up", "esc", "ctrl-c")
var specialKeyNames = func() map[string]tcell.Key {
	m := make(map[string]tcell.Key, len(tcell.KeyNames)+2)
	for k, name := range tcell.KeyNames {
		m[strings.ToLower(name)] = k
	}
	m["escape"] = tcell.KeyEscape
	m["return"] = tcell.KeyEnter
	return m
}()

// ApplyBindings returns a table where every action present in bindings is rebound
// to exactly the listed key names, replacing its default keys.
// Actions absent from bindings keep their defaults.
// Returns error on unknown action names or invalid key names.
func ApplyBindings(base *KeyTable, bindings map[string][]string) (*KeyTable, error) {
	result := base.Clone()

	for action, names := range bindings {
		key, ok := KeyByAction(action)
		if !ok {
			return nil, fmt.Errorf("keys: unknown action: %q", action)
		}

		unbind(result, key)

		for _, name := range names {
			if err := bind(result, key, name); err != nil {
				return nil, fmt.Errorf("keys.%s: %w", key, err)
			}
		}
	}

	return result, nil
}

func unbind(kt *KeyTable, key Key) {
	for k, v := range kt.SpecialKeys {
		if v == key {
			delete(kt.SpecialKeys, k)
		}
	}
	for r, v := range kt.Runes {
		if v == key {
			delete(kt.Runes, r)
		}
	}
}

func bind(kt *KeyTable, key Key, name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("empty key name")
	}

	if r, ok := runeAliases[strings.ToLower(trimmed)]; ok {
		kt.Runes[r] = key
		return nil
	}

	runes := []rune(trimmed)
	if len(runes) == 1 {
		kt.Runes[toLower(runes[0])] = key
		return nil
	}

	if k, ok := specialKeyNames[strings.ToLower(trimmed)]; ok {
		kt.SpecialKeys[k] = key
		return nil
	}

	return fmt.Errorf("unknown key name: %q", name)
}
