// keymap/keymap_test.go
// Copyright(c) 2022-2026 PaneBoard contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package keymap

import "testing"

func TestRoundTrip(t *testing.T) {
	for _, name := range Default.Names() {
		code, ok := Default.ToKeycode(name)
		if !ok {
			t.Fatalf("ToKeycode(%q) missing", name)
		}
		got, ok := Default.ToName(code)
		if !ok || got != name {
			t.Errorf("round trip for %q: ToName(%d) = (%q, %v)", name, code, got, ok)
		}
	}
}

func TestKnownKeycodes(t *testing.T) {
	tests := map[string]int{
		"tab":   0x30,
		"space": 0x31,
		"a":     0x00,
		"f1":    0x7A,
	}
	for name, want := range tests {
		got, ok := Default.ToKeycode(name)
		if !ok || got != want {
			t.Errorf("ToKeycode(%q) = (%d, %v), want (%d, true)", name, got, ok, want)
		}
	}
}

func TestUnknownKeycode(t *testing.T) {
	if _, ok := Default.ToName(0xFFFF); ok {
		t.Error("ToName(0xFFFF) should be unknown")
	}
}
