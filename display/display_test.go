// display/display_test.go
// Copyright(c) 2022-2026 PaneBoard contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package display

import (
	"testing"

	"github.com/paneboard/paneboard/geom"
)

func TestMaxBottomInset(t *testing.T) {
	quirks := []Quirk{
		{NameContains: "SomeTV", Platform: "macos", MinBottomInset: 60},
		{NameContains: "SomeTV", Platform: "macos", MinBottomInset: 40},
		{NameContains: "Other", Platform: "macos", MinBottomInset: 100},
	}
	got := MaxBottomInset(quirks, "My SomeTV Display", "macos")
	if got != 60 {
		t.Errorf("MaxBottomInset = %v, want 60", got)
	}
}

func TestMaxBottomInsetNoMatch(t *testing.T) {
	quirks := []Quirk{{NameContains: "SomeTV", Platform: "macos", MinBottomInset: 60}}
	if got := MaxBottomInset(quirks, "Studio Display", "macos"); got != 0 {
		t.Errorf("MaxBottomInset = %v, want 0", got)
	}
}

func TestCorrectMenuBarAndQuirk(t *testing.T) {
	full := geom.PixelRect{X: 0, Y: 0, Width: 1920, Height: 1080}
	visible := geom.PixelRect{X: 0, Y: 0, Width: 1920, Height: 1055}
	got := Correct(visible, full, 60)
	want := 1055.0 - 25 - 60 // 25 = undetected menu-bar height, 60 = quirk inset
	if got.Height != want {
		t.Errorf("Correct height = %v, want %v", got.Height, want)
	}
}

func TestCorrectNoMenuBarWhenOriginOffset(t *testing.T) {
	full := geom.PixelRect{X: 0, Y: 0, Width: 1920, Height: 1080}
	visible := geom.PixelRect{X: 0, Y: 25, Width: 1920, Height: 1055}
	got := Correct(visible, full, 0)
	if got.Height != 1055 {
		t.Errorf("Correct height = %v, want 1055 (no double menu-bar subtraction)", got.Height)
	}
}
