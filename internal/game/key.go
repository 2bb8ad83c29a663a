package game

import (
	"strings"
	"unicode"
)

// Key is a logical key identifier, always upper case ("A", "S", ...).
type Key string

func NewKey(s string) Key {
	return Key(strings.ToUpper(strings.TrimSpace(s)))
}

// KeyMap translates runes reported by the input sampler into logical keys.
// It is built once at startup and never mutated afterwards.
type KeyMap map[rune]Key

// NewKeyMap maps every rune of row, in either case, onto its upper case key.
func NewKeyMap(row string) KeyMap {
	m := make(KeyMap, len(row)*2)
	for _, r := range row {
		if unicode.IsSpace(r) {
			continue
		}
		k := Key(string(unicode.ToUpper(r)))
		m[unicode.ToLower(r)] = k
		m[unicode.ToUpper(r)] = k
	}
	return m
}

func (m KeyMap) Lookup(r rune) (Key, bool) {
	k, ok := m[r]
	return k, ok
}

// KeyRow splits a row such as "asdfghjkl" into ordered keys, one per lane or column.
func KeyRow(row string) []Key {
	keys := []Key{}
	for _, r := range row {
		if unicode.IsSpace(r) {
			continue
		}
		keys = append(keys, Key(string(unicode.ToUpper(r))))
	}
	return keys
}
