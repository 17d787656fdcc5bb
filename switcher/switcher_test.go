// switcher/switcher_test.go
// Copyright(c) 2022-2026 PaneBoard contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package switcher

import (
	"testing"

	"github.com/paneboard/paneboard/log"
	"github.com/paneboard/paneboard/mru"
)

type fakeAppEnum struct {
	apps    map[int]string
	front   int
	windows map[int][]mru.Window
	focused map[int]mru.Window
}

func (f *fakeAppEnum) RunningApps() (apps []struct {
	PID  int
	Name string
}, frontmostPID int, err error) {
	for pid, name := range f.apps {
		apps = append(apps, struct {
			PID  int
			Name string
		}{PID: pid, Name: name})
	}
	return apps, f.front, nil
}

func (f *fakeAppEnum) Windows(pid int) ([]mru.Window, error) { return f.windows[pid], nil }
func (f *fakeAppEnum) FocusedWindow(pid int) (mru.Window, bool, error) {
	w, ok := f.focused[pid]
	return w, ok, nil
}

type fakeOverlay struct {
	shown     bool
	snapshot  []mru.Entry
	highlight int
	hidden    bool
}

func (o *fakeOverlay) Show(snap []mru.Entry, highlight int) {
	o.shown = true
	o.hidden = false
	o.snapshot = snap
	o.highlight = highlight
}
func (o *fakeOverlay) UpdateHighlight(h int) { o.highlight = h }
func (o *fakeOverlay) Hide()                 { o.hidden = true }

func testLogger() *log.Logger { return log.New("error", "") }

func newTestSession(t *testing.T, entries int) (*Session, *fakeOverlay) {
	t.Helper()
	app := &fakeAppEnum{apps: map[int]string{1: "A"}, front: 1, windows: map[int][]mru.Window{}}
	reg := mru.New(testLogger(), app)
	ov := &fakeOverlay{}
	s := New(testLogger(), reg, ov)

	snap := make([]mru.Entry, entries)
	for i := range snap {
		snap[i] = mru.Entry{PID: i + 1, WindowID: uint32(i + 1)}
	}
	s.registry = reg
	reg.Prepopulate() // seeds one placeholder for app A; the session snapshot is set directly below
	s.snapshotForTest(snap)
	return s, ov
}

// snapshotForTest seeds session state directly, bypassing the registry,
// so tests can exercise the state machine in isolation.
func (s *Session) snapshotForTest(snap []mru.Entry) {
	s.active = true
	s.snapshot = snap
	if len(snap) > 1 {
		s.highlight = 1
	}
}

func TestAdvanceWraps(t *testing.T) {
	s, ov := newTestSession(t, 3)
	s.TriggerOrAdvance(false)
	if ov.highlight != 2 {
		t.Errorf("highlight = %d, want 2", ov.highlight)
	}
	s.TriggerOrAdvance(false)
	if ov.highlight != 0 {
		t.Errorf("highlight = %d, want 0 (wrapped)", ov.highlight)
	}
}

func TestAdvanceReverseWraps(t *testing.T) {
	s, ov := newTestSession(t, 3)
	s.TriggerOrAdvance(true)
	if ov.highlight != 0 {
		t.Errorf("highlight = %d, want 0", ov.highlight)
	}
	s.TriggerOrAdvance(true)
	if ov.highlight != 2 {
		t.Errorf("highlight = %d, want 2 (wrapped)", ov.highlight)
	}
}

func TestCancelClearsState(t *testing.T) {
	s, ov := newTestSession(t, 2)
	s.Cancel()
	if s.Active() {
		t.Error("session still active after cancel")
	}
	if !ov.hidden {
		t.Error("overlay not hidden after cancel")
	}
}

func TestEndAndCommitOutOfBounds(t *testing.T) {
	s, _ := newTestSession(t, 2)
	s.highlight = 5
	c := s.EndAndCommit()
	if c.OK {
		t.Error("expected commit to report !OK for out-of-bounds highlight")
	}
	if s.Active() {
		t.Error("session should be cleared after EndAndCommit regardless of OK")
	}
}

func TestEndAndCommitValid(t *testing.T) {
	s, ov := newTestSession(t, 2)
	c := s.EndAndCommit()
	if !c.OK || c.Entry.PID != 2 {
		t.Errorf("commit = %+v, want OK with pid 2", c)
	}
	if !ov.hidden {
		t.Error("overlay should be hidden after commit")
	}
}

func TestTriggerOnEmptyMRUDoesNotActivate(t *testing.T) {
	app := &fakeAppEnum{apps: map[int]string{}, windows: map[int][]mru.Window{}}
	reg := mru.New(testLogger(), app)
	ov := &fakeOverlay{}
	s := New(testLogger(), reg, ov)

	s.TriggerOrAdvance(false)
	if s.Active() {
		t.Error("session should not activate with empty MRU")
	}
	if ov.shown {
		t.Error("overlay should not be shown")
	}
}

type fakeActivator struct {
	activated     []int
	unminimized   []uint32
	setMain       []uint32
	raised        []uint32
	frontmostPID  int
	focusedWindow map[int]uint32
}

func (a *fakeActivator) ActivateApp(pid int) error { a.activated = append(a.activated, pid); return nil }
func (a *fakeActivator) Unminimize(pid int, w uint32) error {
	a.unminimized = append(a.unminimized, w)
	return nil
}
func (a *fakeActivator) SetMain(pid int, w uint32) error { a.setMain = append(a.setMain, w); return nil }
func (a *fakeActivator) Raise(pid int, w uint32) error   { a.raised = append(a.raised, w); return nil }
func (a *fakeActivator) FrontmostApp() (int, error)      { return a.frontmostPID, nil }
func (a *fakeActivator) FocusedWindow(pid int) (uint32, bool, error) {
	w, ok := a.focusedWindow[pid]
	return w, ok, nil
}

func TestApplyCrossAppFocusesAndRaises(t *testing.T) {
	act := &fakeActivator{frontmostPID: 1, focusedWindow: map[int]uint32{}}
	c := Commit{OK: true, Entry: entryFor(2, 20)}
	Apply(act, c, testLogger())

	if len(act.activated) != 1 || act.activated[0] != 2 {
		t.Errorf("activated = %v, want [2]", act.activated)
	}
	if len(act.raised) != 1 || act.raised[0] != 20 {
		t.Errorf("raised = %v, want [20]", act.raised)
	}
}

func TestApplySameWindowAlreadyFocusedSkipsFocusWork(t *testing.T) {
	act := &fakeActivator{frontmostPID: 2, focusedWindow: map[int]uint32{2: 20}}
	c := Commit{OK: true, Entry: entryFor(2, 20)}
	Apply(act, c, testLogger())

	if len(act.activated) != 0 || len(act.raised) != 0 {
		t.Errorf("expected no activation/raise work, got activated=%v raised=%v", act.activated, act.raised)
	}
}

func entryFor(pid int, win uint32) mru.Entry {
	return mru.Entry{PID: pid, WindowID: win}
}
