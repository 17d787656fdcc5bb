// keymap/keymap.go
// Copyright(c) 2022-2026 PaneBoard contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package keymap translates between macOS virtual keycodes and the
// config-file key vocabulary (§6 "Key vocabulary", §3 "Key-symbol map").
// The table is the one place besides DisplayQuirk's platform
// discriminator where cross-platform generalisation would branch (§9);
// targeting another OS means swapping this table and the virtual-keycode
// side of it, not the Form engine.
package keymap

import "github.com/iancoleman/orderedmap"

// Map is a bidirectional virtual-keycode <-> key-name translator. The
// zero value is not usable; use Default.
type Map struct {
	toName    map[int]string
	toKeycode map[string]int
	// order preserves declaration order, so Names lists the keys
	// reproducibly across runs.
	order *orderedmap.OrderedMap
}

// ToName maps a macOS virtual keycode to its config-file key name.
func (m *Map) ToName(keycode int) (string, bool) {
	n, ok := m.toName[keycode]
	return n, ok
}

// ToKeycode maps a config-file key name to its macOS virtual keycode.
func (m *Map) ToKeycode(name string) (int, bool) {
	k, ok := m.toKeycode[name]
	return k, ok
}

// Names returns every known key name, in declaration order.
func (m *Map) Names() []string {
	return m.order.Keys()
}

func newMap(entries [][2]any) *Map {
	m := &Map{
		toName:    make(map[int]string, len(entries)),
		toKeycode: make(map[string]int, len(entries)),
		order:     orderedmap.New(),
	}
	for _, e := range entries {
		keycode := e[0].(int)
		name := e[1].(string)
		m.toName[keycode] = name
		m.toKeycode[name] = keycode
		m.order.Set(name, keycode)
	}
	return m
}

// Default is the macOS virtual-keycode table (values from
// <Carbon/HIToolbox/Events.h>'s kVK_ constants, the table every AX/CG
// event-tap consumer on macOS is built against).
var Default = newMap([][2]any{
	{0x00, "a"}, {0x0B, "b"}, {0x08, "c"}, {0x02, "d"}, {0x0E, "e"},
	{0x03, "f"}, {0x05, "g"}, {0x04, "h"}, {0x22, "i"}, {0x26, "j"},
	{0x28, "k"}, {0x25, "l"}, {0x2E, "m"}, {0x2D, "n"}, {0x1F, "o"},
	{0x23, "p"}, {0x0C, "q"}, {0x0F, "r"}, {0x01, "s"}, {0x11, "t"},
	{0x20, "u"}, {0x09, "v"}, {0x0D, "w"}, {0x07, "x"}, {0x10, "y"},
	{0x06, "z"},

	{0x1D, "0"}, {0x12, "1"}, {0x13, "2"}, {0x14, "3"}, {0x15, "4"},
	{0x17, "5"}, {0x16, "6"}, {0x1A, "7"}, {0x1C, "8"}, {0x19, "9"},

	{0x7A, "f1"}, {0x78, "f2"}, {0x63, "f3"}, {0x76, "f4"}, {0x60, "f5"},
	{0x61, "f6"}, {0x62, "f7"}, {0x64, "f8"}, {0x65, "f9"}, {0x6D, "f10"},
	{0x67, "f11"}, {0x6F, "f12"},

	{0x7E, "up"}, {0x7D, "down"}, {0x7B, "left"}, {0x7C, "right"},
	{0x73, "home"}, {0x77, "end"}, {0x74, "pageup"}, {0x79, "pagedown"},

	{0x35, "escape"}, {0x30, "tab"}, {0x31, "space"}, {0x24, "enter"},
	{0x33, "backspace"}, {0x75, "delete"},

	{0x32, "grave"}, {0x1B, "minus"}, {0x18, "equals"},
	{0x21, "leftbracket"}, {0x1E, "rightbracket"}, {0x2A, "backslash"},
	{0x29, "semicolon"}, {0x27, "apostrophe"}, {0x2B, "comma"},
	{0x2F, "period"}, {0x2C, "slash"},

	{0x52, "numpad0"}, {0x53, "numpad1"}, {0x54, "numpad2"},
	{0x55, "numpad3"}, {0x56, "numpad4"}, {0x57, "numpad5"},
	{0x58, "numpad6"}, {0x59, "numpad7"}, {0x5B, "numpad8"},
	{0x5C, "numpad9"},
})
