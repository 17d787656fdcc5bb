// display/display.go
// Copyright(c) 2022-2026 PaneBoard contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package display holds per-monitor design-viewport math: the one-time
// gather-and-correct step at startup (§4.2) and the live-viewport
// re-read used at every chord (§4.2, §4.10). The actual OS enumeration
// lives in the platform package; this package is the pure, testable
// arithmetic the platform layer calls into.
package display

import (
	"strings"

	"github.com/paneboard/paneboard/geom"
)

// Quirk is a per-platform, display-name-substring-keyed correction: a
// pixel amount to subtract from the bottom of a matching display's
// usable area (§3 DisplayQuirk, §6 DisplayQuirk element).
type Quirk struct {
	NameContains   string
	Platform       string // "macos", "windows", "linux"
	MinBottomInset float64
}

// Matches reports whether q applies to a display named name on the
// current platform.
func (q Quirk) Matches(name, platform string) bool {
	return q.Platform == platform && containsFold(name, q.NameContains)
}

func containsFold(s, substr string) bool {
	return substr == "" || strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// MaxBottomInset returns the largest MinBottomInset among quirks
// matching (name, platform), or 0 if none match (§3: "chosen as the
// maximum over all matching quirks").
func MaxBottomInset(quirks []Quirk, name, platform string) float64 {
	var max float64
	for _, q := range quirks {
		if q.Matches(name, platform) && q.MinBottomInset > max {
			max = q.MinBottomInset
		}
	}
	return max
}

// Info is a physical display's design viewport, gathered once at
// startup and never mutated (§3 DisplayInfo).
type Info struct {
	Index        int
	Name         string
	DesignWidth  float64
	DesignHeight float64
	Quirks       []Quirk // the full quirk list, cached for live re-correction
}

// Props is the lightweight (width, height, name) projection used for
// Space/Include predicate evaluation (§3 DisplayProps).
type Props struct {
	Width  float64
	Height float64
	Name   string
}

// ToProps derives the conditional-evaluation projection from an Info.
func (i Info) ToProps() Props {
	return Props{Width: i.DesignWidth, Height: i.DesignHeight, Name: i.Name}
}

// Correct computes the design (or live) dimensions of a display from its
// raw OS-reported visible and full frames, the menu-bar heuristic, and
// the maximum matching quirk inset (§4.2).
//
// menuBarHeight is subtracted only when the visible and full frame
// origins coincide on Y (meaning the OS visible frame has not already
// excluded the menu bar). quirkInset is always subtracted.
func Correct(visible, full geom.PixelRect, quirkInset float64) geom.PixelRect {
	height := visible.Height
	if visible.Y == full.Y {
		// Visible frame doesn't already exclude the menu bar: the gap
		// between the two frames' heights is the menu bar height.
		menuBarHeight := full.Height - visible.Height
		if menuBarHeight > 0 {
			height -= menuBarHeight
		}
	}
	height -= quirkInset
	if height < 0 {
		height = 0
	}
	return geom.PixelRect{
		X:      visible.X,
		Y:      visible.Y,
		Width:  visible.Width,
		Height: height,
	}
}
