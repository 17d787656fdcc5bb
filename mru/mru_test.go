// mru/mru_test.go
// Copyright(c) 2022-2026 PaneBoard contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package mru

import (
	"testing"

	"github.com/paneboard/paneboard/log"
)

type fakeApp struct {
	apps      map[int]string
	frontmost int
	windows   map[int][]Window
	focused   map[int]Window
}

func (f *fakeApp) RunningApps() (apps []struct {
	PID  int
	Name string
}, frontmostPID int, err error) {
	for pid, name := range f.apps {
		apps = append(apps, struct {
			PID  int
			Name string
		}{PID: pid, Name: name})
	}
	return apps, f.frontmost, nil
}

func (f *fakeApp) Windows(pid int) ([]Window, error) {
	return f.windows[pid], nil
}

func (f *fakeApp) FocusedWindow(pid int) (Window, bool, error) {
	w, ok := f.focused[pid]
	return w, ok, nil
}

func testLogger() *log.Logger {
	return log.New("error", "")
}

func TestPrepopulateKnownAndGuess(t *testing.T) {
	app := &fakeApp{
		apps:      map[int]string{1: "Front", 2: "Other"},
		frontmost: 1,
		windows: map[int][]Window{
			1: {{ID: 10, Title: "a", Role: StandardWindowRole}, {ID: 11, Title: "b", Role: StandardWindowRole}},
			2: {{ID: 20, Title: "c", Role: StandardWindowRole}},
		},
		focused: map[int]Window{1: {ID: 11, Title: "b", Role: StandardWindowRole}},
	}
	r := New(testLogger(), app)
	if err := r.Prepopulate(); err != nil {
		t.Fatalf("Prepopulate: %v", err)
	}
	snap := r.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("got %d entries, want 3", len(snap))
	}
	if snap[0].WindowID != 11 || snap[0].State != Known {
		t.Errorf("front entry = %+v, want Known window 11", snap[0])
	}
	for _, e := range snap[1:] {
		if e.State != Guess {
			t.Errorf("entry %+v should be Guess", e)
		}
	}
}

func TestPrepopulatePlaceholderForEmptyApp(t *testing.T) {
	app := &fakeApp{
		apps:      map[int]string{3: "Empty"},
		frontmost: 3,
		windows:   map[int][]Window{},
	}
	r := New(testLogger(), app)
	if err := r.Prepopulate(); err != nil {
		t.Fatalf("Prepopulate: %v", err)
	}
	snap := r.Snapshot()
	if len(snap) != 1 || snap[0].WindowID != 0 || snap[0].State != Guess {
		t.Errorf("snapshot = %+v, want one placeholder Guess entry", snap)
	}
}

func TestUpdateWithFocusRejectsBadRoleOrZeroID(t *testing.T) {
	r := New(testLogger(), &fakeApp{})
	r.UpdateWithFocus(1, 0, "x", StandardWindowRole, "App")
	r.UpdateWithFocus(1, 5, "x", "AXSheet", "App")
	if r.Len() != 0 {
		t.Errorf("expected no entries inserted, got %d", r.Len())
	}
}

func TestUpdateWithFocusDropsPlaceholdersAndDuplicates(t *testing.T) {
	app := &fakeApp{}
	r := New(testLogger(), app)
	r.entries = []Entry{
		{PID: 1, WindowID: 0, State: Guess},
		{PID: 1, WindowID: 7, State: Guess},
		{PID: 2, WindowID: 9, State: Known},
	}
	r.UpdateWithFocus(1, 7, "t", StandardWindowRole, "App1")

	snap := r.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("got %d entries, want 2: %+v", len(snap), snap)
	}
	if snap[0].PID != 1 || snap[0].WindowID != 7 || snap[0].State != Known {
		t.Errorf("front entry = %+v", snap[0])
	}
	if snap[1].PID != 2 {
		t.Errorf("second entry = %+v, want pid 2 preserved", snap[1])
	}
}

func TestTerminateRemovesAllEntriesForPID(t *testing.T) {
	r := New(testLogger(), &fakeApp{})
	r.entries = []Entry{
		{PID: 1, WindowID: 1},
		{PID: 1, WindowID: 2},
		{PID: 2, WindowID: 3},
	}
	r.Terminate(1)
	snap := r.Snapshot()
	if len(snap) != 1 || snap[0].PID != 2 {
		t.Errorf("snapshot after terminate = %+v", snap)
	}
}

func TestPruneKeepsLiveAndPlaceholders(t *testing.T) {
	app := &fakeApp{
		windows: map[int][]Window{
			1: {{ID: 5, Role: StandardWindowRole}},
		},
	}
	r := New(testLogger(), app)
	r.entries = []Entry{
		{PID: 1, WindowID: 5},  // live
		{PID: 1, WindowID: 6},  // stale, should be pruned
		{PID: 2, WindowID: 0},  // placeholder, always kept
	}
	r.Prune()
	snap := r.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("got %d entries after prune, want 2: %+v", len(snap), snap)
	}
	for _, e := range snap {
		if e.WindowID == 6 {
			t.Errorf("stale entry should have been pruned: %+v", e)
		}
	}
}
