// form/resolve_test.go
// Copyright(c) 2022-2026 PaneBoard contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package form

import (
	"testing"

	"github.com/paneboard/paneboard/display"
	"github.com/paneboard/paneboard/geom"
)

func quadrantFrame() Frame {
	half := geom.MustNew(1, 2)
	zero := geom.Zero
	return Frame{
		Name: "grid2x2",
		Panes: []Pane{
			{X: zero, Y: zero, Width: half, Height: half},
			{X: half, Y: zero, Width: half, Height: half},
			{X: zero, Y: half, Width: half, Height: half},
			{X: half, Y: half, Width: half, Height: half},
		},
	}
}

func quadrantDoc(traverse, mirrorX, mirrorY string) *Document {
	shape := &Shape{
		Frame: "grid2x2",
		Children: []ShapeChild{
			&Include{Kind: IncludeTerminal},
			&Include{Kind: IncludeTerminal},
			&Include{Kind: IncludeTerminal},
			&Include{Kind: IncludeTerminal},
		},
	}
	return &Document{
		Frames:  []Frame{quadrantFrame()},
		Layouts: []Layout{{Name: "home", Roots: []*Shape{shape}}},
		Actions: []LayoutAction{{Key: "home", Layout: "home", Traverse: traverse, MirrorX: mirrorX, MirrorY: mirrorY}},
	}
}

func TestQuadrantTile(t *testing.T) {
	doc := quadrantDoc("xfyf", "keep", "keep")
	if errs := Validate(doc); len(errs) != 0 {
		t.Fatalf("unexpected validation errors: %v", errs)
	}
	f := Resolve(doc, "macos")
	props := display.Props{Width: 1920, Height: 1080, Name: "Main"}

	want := []geom.PaneFrac{
		{X: 0, Y: 0, Width: 0.5, Height: 0.5},
		{X: 0, Y: 0.5, Width: 0.5, Height: 0.5},
		{X: 0.5, Y: 0, Width: 0.5, Height: 0.5},
		{X: 0.5, Y: 0.5, Width: 0.5, Height: 0.5},
	}
	for i, w := range want {
		got, err := f.GetNextPane("home", props, 0)
		if err != nil {
			t.Fatalf("GetNextPane #%d: %v", i, err)
		}
		if got != w {
			t.Errorf("pane #%d = %+v, want %+v", i, got, w)
		}
	}
	// Fifth call wraps to the first.
	got, err := f.GetNextPane("home", props, 0)
	if err != nil {
		t.Fatalf("GetNextPane #5: %v", err)
	}
	if got != want[0] {
		t.Errorf("wrapped pane = %+v, want %+v", got, want[0])
	}
}

func TestMirrorXFlip(t *testing.T) {
	doc := quadrantDoc("xfyf", "flip", "keep")
	f := Resolve(doc, "macos")
	props := display.Props{Width: 1920, Height: 1080, Name: "Main"}

	got, err := f.GetNextPane("home", props, 0)
	if err != nil {
		t.Fatalf("GetNextPane: %v", err)
	}
	want := geom.PaneFrac{X: 0.5, Y: 0, Width: 0.5, Height: 0.5}
	if got != want {
		t.Errorf("first mirrored pane = %+v, want %+v", got, want)
	}
}

func TestConditionalDrop(t *testing.T) {
	half := geom.MustNew(1, 2)
	third := geom.MustNew(1, 3)
	zero := geom.Zero
	frame := Frame{
		Name: "three",
		Panes: []Pane{
			{X: zero, Y: zero, Width: third, Height: half},
			{X: third, Y: zero, Width: third, Height: half},
			{X: geom.Add(third, third), Y: zero, Width: third, Height: half},
		},
	}
	shape := &Shape{
		Frame: "three",
		Children: []ShapeChild{
			&Include{Kind: IncludeTerminal},
			&Include{Kind: IncludeTerminal, Predicate: IncludePredicate{Orientation: "portrait"}},
			&Include{Kind: IncludeTerminal},
		},
	}
	doc := &Document{
		Frames:  []Frame{frame},
		Layouts: []Layout{{Name: "triple", Roots: []*Shape{shape}}},
		Actions: []LayoutAction{{Key: "triple", Layout: "triple", Traverse: "xfyf", MirrorX: "keep", MirrorY: "keep"}},
	}
	f := Resolve(doc, "macos")
	props := display.Props{Width: 1920, Height: 1080, Name: "Landscape"} // landscape: width >= height

	rects, err := f.Realize("triple", props, 0)
	if err != nil {
		t.Fatalf("Realize: %v", err)
	}
	if len(rects) != 2 {
		t.Fatalf("got %d panes, want 2 (middle elided on landscape)", len(rects))
	}
}

func TestDisplayQuirkInset(t *testing.T) {
	quirks := []display.Quirk{{NameContains: "SomeTV", Platform: "macos", MinBottomInset: 60}}
	inset := display.MaxBottomInset(quirks, "My SomeTV", "macos")
	full := geomPixelRect(0, 0, 1920, 1100)
	visible := geomPixelRect(0, 0, 1920, 1080)
	corrected := display.Correct(visible, full, inset)
	if corrected.Height > 1080-60+0.0001 {
		t.Errorf("corrected height %v exceeds design height bound", corrected.Height)
	}
}

func geomPixelRect(x, y, w, h float64) geom.PixelRect {
	return geom.PixelRect{X: x, Y: y, Width: w, Height: h}
}

func TestDisplayMoveWrap(t *testing.T) {
	doc := &Document{Moves: []DisplayMoveBinding{{Key: "right", Target: "next", Wrap: true}}}
	f := Resolve(doc, "macos")

	target, ok, err := f.ExecuteDisplayMove("right", 2, 3)
	if err != nil || !ok || target != 0 {
		t.Errorf("wrap next: got (%d, %v, %v), want (0, true, nil)", target, ok, err)
	}

	doc2 := &Document{Moves: []DisplayMoveBinding{{Key: "right", Target: "next", Wrap: false}}}
	f2 := Resolve(doc2, "macos")
	_, ok2, _ := f2.ExecuteDisplayMove("right", 2, 3)
	if ok2 {
		t.Errorf("no-wrap next at end should report absent, got ok=true")
	}
}

func TestDisplayMovePrevWrap(t *testing.T) {
	// Checks that ExecuteDisplayMove's prev mirrors next: prev from
	// index 0 with wrap lands on the last display.
	doc := &Document{Moves: []DisplayMoveBinding{{Key: "left", Target: "prev", Wrap: true}}}
	f := Resolve(doc, "macos")
	target, ok, err := f.ExecuteDisplayMove("left", 0, 3)
	if err != nil || !ok || target != 2 {
		t.Errorf("wrap prev: got (%d, %v, %v), want (2, true, nil)", target, ok, err)
	}
}
