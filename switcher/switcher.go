// switcher/switcher.go
// Copyright(c) 2022-2026 PaneBoard contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package switcher implements the Command+Tab-style application/window
// switcher session state machine (§4.7): trigger, advance, cancel, and
// commit, driven entirely from the event pipeline.
package switcher

import (
	"github.com/paneboard/paneboard/log"
	"github.com/paneboard/paneboard/mru"
	"github.com/paneboard/paneboard/util"
)

// Overlay is the switcher's half of the overlay ABI (§6): show/update
// the highlighted entry list, or hide it.
type Overlay interface {
	Show(snapshot []mru.Entry, highlight int)
	UpdateHighlight(highlight int)
	Hide()
}

// Session is the process-wide switcher singleton (§5: one of three
// mutex-guarded shared-state objects).
type Session struct {
	mu util.LoggingMutex
	lg *log.Logger

	registry *mru.Registry
	overlay  Overlay

	active    bool
	snapshot  []mru.Entry
	highlight int
}

// New constructs a Session bound to reg and the platform's overlay
// implementation.
func New(lg *log.Logger, reg *mru.Registry, overlay Overlay) *Session {
	return &Session{lg: lg, registry: reg, overlay: overlay}
}

// TriggerOrAdvance handles a Tab press while the switcher modifier is
// held (§4.7). shiftHeld selects the reverse direction (or, on the
// triggering press, the last snapshot index).
func (s *Session) TriggerOrAdvance(shiftHeld bool) {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)

	if !s.active {
		s.startLocked(shiftHeld)
		return
	}
	s.advanceLocked(shiftHeld)
}

func (s *Session) startLocked(shiftHeld bool) {
	s.registry.Prune()
	snap := s.registry.Snapshot()
	if len(snap) == 0 {
		s.lg.Info("switcher: no windows to switch between")
		return
	}

	s.active = true
	s.snapshot = snap

	highlight := 0
	if len(snap) > 1 {
		highlight = 1
	}
	if shiftHeld {
		highlight = len(snap) - 1
	}
	s.highlight = highlight

	s.overlay.Show(snap, highlight)
}

func (s *Session) advanceLocked(shiftHeld bool) {
	if !s.active || len(s.snapshot) == 0 {
		return
	}
	n := len(s.snapshot)
	if shiftHeld {
		s.highlight = (s.highlight - 1 + n) % n
	} else {
		s.highlight = (s.highlight + 1) % n
	}
	s.overlay.UpdateHighlight(s.highlight)
}

// Active reports whether a session is in progress.
func (s *Session) Active() bool {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)
	return s.active
}

// Cancel aborts the session on mouse-down (§4.7): overlay hidden,
// state cleared, nothing committed.
func (s *Session) Cancel() {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)
	if !s.active {
		return
	}
	s.active = false
	s.snapshot = nil
	s.highlight = 0
	s.overlay.Hide()
}

// Commit is the result of the switcher modifier being released: the
// entry to activate, if the session produced a valid target.
type Commit struct {
	Entry mru.Entry
	OK    bool
}

// EndAndCommit hides the overlay and clears session state synchronously,
// returning the target to commit on the main run-loop (§4.7). If the
// highlight is absent or out of bounds, OK is false and the caller does
// nothing further.
func (s *Session) EndAndCommit() Commit {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)

	if !s.active {
		return Commit{}
	}
	defer func() {
		s.active = false
		s.snapshot = nil
		s.highlight = 0
		s.overlay.Hide()
	}()

	if s.highlight < 0 || s.highlight >= len(s.snapshot) {
		return Commit{}
	}
	return Commit{Entry: s.snapshot[s.highlight], OK: true}
}

// Activator performs the main-thread work of §4.7's "Commit" paragraph:
// application activation and window focus/raise.
type Activator interface {
	ActivateApp(pid int) error
	Unminimize(pid int, windowID uint32) error
	SetMain(pid int, windowID uint32) error
	Raise(pid int, windowID uint32) error
	FrontmostApp() (pid int, err error)
	FocusedWindow(pid int) (windowID uint32, ok bool, err error)
}

// Apply runs the main-thread commit work for c against act (§4.7). It
// reports each step's success without aborting the whole commit when
// one step fails; a window that's already focused on the right app
// requires no work at all.
func Apply(act Activator, c Commit, lg *log.Logger) {
	if !c.OK {
		return
	}

	frontPID, err := act.FrontmostApp()
	crossedApps := err != nil || frontPID != c.Entry.PID
	if crossedApps {
		if err := act.ActivateApp(c.Entry.PID); err != nil {
			lg.Warnf("switcher: activate app %d failed: %v", c.Entry.PID, err)
		}
	}

	if c.Entry.WindowID == 0 {
		return
	}

	needsFocus := crossedApps
	if !needsFocus {
		cur, ok, _ := act.FocusedWindow(c.Entry.PID)
		needsFocus = !ok || cur != c.Entry.WindowID
	}
	if !needsFocus {
		return
	}

	if err := act.Unminimize(c.Entry.PID, c.Entry.WindowID); err != nil {
		lg.Debugf("switcher: unminimize failed (may not have been minimized): %v", err)
	}
	if err := act.SetMain(c.Entry.PID, c.Entry.WindowID); err != nil {
		lg.Warnf("switcher: set main failed: %v", err)
	}
	if err := act.Raise(c.Entry.PID, c.Entry.WindowID); err != nil {
		lg.Warnf("switcher: raise failed: %v", err)
	}
}
