// mru/mru.go
// Copyright(c) 2022-2026 PaneBoard contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package mru implements the process-wide most-recently-used window
// stack (§4.6): prepopulation by enumeration, update-with-focus,
// liveness pruning, and per-pid termination cleanup.
package mru

import (
	"github.com/paneboard/paneboard/log"
	"github.com/paneboard/paneboard/util"
)

// State distinguishes an entry materialised from an actual focus
// observation from one only guessed at (§4.6).
type State int

const (
	// Guess marks an entry seeded by enumeration without a focus
	// observation, or a placeholder for an app with no enumerable
	// windows.
	Guess State = iota
	// Known marks an entry that was observed focused.
	Known
)

func (s State) String() string {
	if s == Known {
		return "known"
	}
	return "guess"
}

// Entry is one stack slot, keyed by (PID, WindowID).
type Entry struct {
	PID      int
	WindowID uint32 // 0 denotes a placeholder entry
	Title    string
	App      string
	State    State
}

// Window describes one enumerable top-level window, as reported by the
// accessibility layer.
type Window struct {
	ID    uint32
	Title string
	Role  string // must equal StandardWindowRole to count
}

// StandardWindowRole is the accessibility role value that qualifies a
// window for MRU tracking (AXWindow on macOS).
const StandardWindowRole = "AXWindow"

// AppEnumerator enumerates windows for one running application. The
// platform package supplies the concrete implementation (AXUIElement
// window lists on macOS).
type AppEnumerator interface {
	// RunningApps returns the pid and display name of every running
	// application, in no particular order, and the pid of the frontmost
	// one.
	RunningApps() (apps []struct {
		PID  int
		Name string
	}, frontmostPID int, err error)
	// Windows enumerates the top-level windows of the application with
	// the given pid.
	Windows(pid int) ([]Window, error)
	// FocusedWindow returns the currently focused window of the
	// application with the given pid, if any.
	FocusedWindow(pid int) (Window, bool, error)
}

// Registry is the process-wide MRU stack. The zero value is not usable;
// construct with New.
type Registry struct {
	mu  util.LoggingMutex
	lg  *log.Logger
	app AppEnumerator

	entries []Entry
}

// New constructs an empty Registry.
func New(lg *log.Logger, app AppEnumerator) *Registry {
	return &Registry{lg: lg, app: app}
}

// Prepopulate seeds the registry at startup (§4.6 population source 1).
func (r *Registry) Prepopulate() error {
	apps, frontmost, err := r.app.RunningApps()
	if err != nil {
		return err
	}

	r.mu.Lock(r.lg)
	defer r.mu.Unlock(r.lg)

	r.entries = r.entries[:0]
	var front []Entry
	var rest []Entry

	for _, a := range apps {
		wins, err := r.app.Windows(a.PID)
		if err != nil || len(wins) == 0 {
			rest = append(rest, Entry{PID: a.PID, WindowID: 0, App: a.Name, State: Guess})
			continue
		}

		focusedID := uint32(0)
		haveFocused := false
		if a.PID == frontmost {
			if w, ok, err := r.app.FocusedWindow(a.PID); err == nil && ok {
				focusedID = w.ID
				haveFocused = true
			}
		}

		for _, w := range wins {
			if w.Role != StandardWindowRole || w.ID == 0 {
				continue
			}
			e := Entry{PID: a.PID, WindowID: w.ID, Title: w.Title, App: a.Name, State: Guess}
			if haveFocused && w.ID == focusedID {
				e.State = Known
				front = append(front, e)
				continue
			}
			rest = append(rest, e)
		}
	}

	r.entries = append(front, rest...)
	r.lg.Debugf("mru: prepopulated %d entries (%d known)", len(r.entries), len(front))
	return nil
}

// UpdateWithFocus applies the update rule of §4.6 step #3: reject
// non-standard roles and zero window ids, drop placeholders and any
// stale entry for the same window, then push the new Known entry to
// the front.
func (r *Registry) UpdateWithFocus(pid int, windowID uint32, title, role, app string) {
	if role != StandardWindowRole || windowID == 0 {
		return
	}

	r.mu.Lock(r.lg)
	defer r.mu.Unlock(r.lg)

	kept := r.entries[:0:0]
	for _, e := range r.entries {
		if e.PID == pid && e.WindowID == 0 {
			continue // drop placeholders for this pid
		}
		if e.PID == pid && e.WindowID == windowID {
			continue // drop stale entry for this window
		}
		kept = append(kept, e)
	}
	r.entries = append([]Entry{{PID: pid, WindowID: windowID, Title: title, App: app, State: Known}}, kept...)
}

// Terminate removes all entries for pid (§4.6 "Termination"). The
// caller is responsible for tearing down pid's focus observer.
func (r *Registry) Terminate(pid int) {
	r.mu.Lock(r.lg)
	defer r.mu.Unlock(r.lg)

	kept := r.entries[:0:0]
	for _, e := range r.entries {
		if e.PID != pid {
			kept = append(kept, e)
		}
	}
	r.entries = kept
}

// Prune removes entries whose window no longer exists, called at the
// start of every switcher session (§4.7). Placeholder entries are
// always kept.
func (r *Registry) Prune() {
	r.mu.Lock(r.lg)
	defer r.mu.Unlock(r.lg)

	live := make(map[int][]Window)
	kept := r.entries[:0:0]
	for _, e := range r.entries {
		if e.WindowID == 0 {
			kept = append(kept, e)
			continue
		}
		wins, ok := live[e.PID]
		if !ok {
			wins, _ = r.app.Windows(e.PID)
			live[e.PID] = wins
		}
		if windowStillLive(wins, e.WindowID) {
			kept = append(kept, e)
		}
	}
	r.entries = kept
}

func windowStillLive(wins []Window, id uint32) bool {
	for _, w := range wins {
		if w.ID == id && w.Role == StandardWindowRole {
			return true
		}
	}
	return false
}

// Snapshot returns a copy of the current stack, most-recent-first.
func (r *Registry) Snapshot() []Entry {
	r.mu.Lock(r.lg)
	defer r.mu.Unlock(r.lg)

	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len reports the current number of tracked entries.
func (r *Registry) Len() int {
	r.mu.Lock(r.lg)
	defer r.mu.Unlock(r.lg)
	return len(r.entries)
}
