// clipboard/clipboard_test.go
// Copyright(c) 2022-2026 PaneBoard contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package clipboard

import (
	"testing"

	"github.com/paneboard/paneboard/log"
)

func testLogger() *log.Logger { return log.New("error", "") }

func TestHistoryDedupAdjacent(t *testing.T) {
	var h History
	h.Push("a")
	h.Push("a")
	h.Push("b")
	h.Push("a")
	got := h.Entries()
	want := []string{"a", "b", "a"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestHistoryTruncates(t *testing.T) {
	var h History
	for i := 0; i < MaxHistory+10; i++ {
		h.Push(string(rune('a' + i%26)))
	}
	if len(h.Entries()) != MaxHistory {
		t.Errorf("len = %d, want %d", len(h.Entries()), MaxHistory)
	}
}

type fakeOverlay struct {
	shown     bool
	hidden    bool
	snapshot  []string
	highlight int
}

func (o *fakeOverlay) Show(entries []string, highlight int) {
	o.shown = true
	o.hidden = false
	o.snapshot = entries
	o.highlight = highlight
}
func (o *fakeOverlay) UpdateHighlight(h int) { o.highlight = h }
func (o *fakeOverlay) Hide()                 { o.hidden = true }

type fakeSys struct {
	set string
}

func (f *fakeSys) SetText(s string) error { f.set = s; return nil }

func TestTriggerShowsFullHistory(t *testing.T) {
	var h History
	h.Push("c")
	h.Push("b")
	h.Push("a")
	ov := &fakeOverlay{}
	s := New(testLogger(), &h, ov, &fakeSys{})
	s.Trigger()
	if !ov.shown || ov.highlight != 0 || len(ov.snapshot) != 3 {
		t.Errorf("overlay state after trigger: %+v", ov)
	}
	if !s.Active() {
		t.Error("session should be active after trigger")
	}
}

func TestArrowNavigationNoWrap(t *testing.T) {
	var h History
	h.Push("c")
	h.Push("b")
	h.Push("a")
	ov := &fakeOverlay{}
	s := New(testLogger(), &h, ov, &fakeSys{})
	s.Trigger()

	s.HandleKey(KeyUp) // already at 0, should not go negative
	if ov.highlight != 0 {
		t.Errorf("highlight = %d, want 0", ov.highlight)
	}
	s.HandleKey(KeyDown)
	s.HandleKey(KeyDown)
	if ov.highlight != 2 {
		t.Errorf("highlight = %d, want 2", ov.highlight)
	}
	s.HandleKey(KeyDown) // at end, should not exceed bounds
	if ov.highlight != 2 {
		t.Errorf("highlight = %d, want 2 (no wrap)", ov.highlight)
	}
}

func TestEnterCommitsAndCloses(t *testing.T) {
	var h History
	h.Push("c")
	h.Push("b")
	h.Push("a")
	ov := &fakeOverlay{}
	sys := &fakeSys{}
	s := New(testLogger(), &h, ov, sys)
	s.Trigger()
	s.HandleKey(KeyDown)
	s.HandleKey(KeyEnter)

	if sys.set != "b" {
		t.Errorf("system clipboard = %q, want %q", sys.set, "b")
	}
	if !ov.hidden || s.Active() {
		t.Error("session should be closed after Enter")
	}
}

func TestEscapeClosesWithoutCommit(t *testing.T) {
	var h History
	h.Push("a")
	ov := &fakeOverlay{}
	sys := &fakeSys{}
	s := New(testLogger(), &h, ov, sys)
	s.Trigger()
	s.HandleKey(KeyEscape)

	if sys.set != "" {
		t.Errorf("system clipboard should be untouched, got %q", sys.set)
	}
	if !ov.hidden || s.Active() {
		t.Error("session should be closed after Escape")
	}
}

func TestOtherKeyIgnored(t *testing.T) {
	var h History
	h.Push("a")
	ov := &fakeOverlay{}
	s := New(testLogger(), &h, ov, &fakeSys{})
	s.Trigger()
	s.HandleKey(KeyOther)
	if !s.Active() {
		t.Error("session should remain active on an ignored key")
	}
}
