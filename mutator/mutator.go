// mutator/mutator.go
// Copyright(c) 2022-2026 PaneBoard contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package mutator performs window geometry work: tiling jobs, the
// observer-retry path for applications whose accessibility tree isn't
// yet queryable, and DisplayMove execution (§4.10). Everything here
// runs on the main run-loop.
package mutator

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/paneboard/paneboard/display"
	"github.com/paneboard/paneboard/errkind"
	"github.com/paneboard/paneboard/form"
	"github.com/paneboard/paneboard/geom"
	"github.com/paneboard/paneboard/log"
)

// Handle is an opaque, scoped accessibility element reference. Callers
// must Release it on every exit path (§5 "Resource lifecycle").
type Handle interface{}

// AX abstracts the accessibility calls the mutator drives. The darwin
// implementation wraps AXUIElementRef.
type AX interface {
	FocusedWindowHandle(pid int) (Handle, error)
	Geometry(h Handle) (geom.PixelRect, error)
	SetPosition(h Handle, x, y float64) error
	SetSize(h Handle, w, height float64) error
	Release(h Handle)
}

// Displays reports the live display viewports and their Form-facing
// Props, in a stable index order; index 0 is the main display (the
// fallback when centre-containment finds no match).
type Displays interface {
	Viewports() []geom.PixelRect
	Props(index int) display.Props
}

// Observer lets the retry path subscribe to one pid's
// focused-window-changed notification; cancel tears the subscription
// down. onChange fires at most once per subscription, on the main
// run-loop thread.
type Observer interface {
	WatchFocusedWindow(pid int, onChange func(Handle)) (cancel func())
}

// Runner posts work back onto the main run-loop. The retry path's
// timeout fires on its own goroutine (time.AfterFunc) and must post
// back through Runner before touching AX state, matching how the
// observer callback itself already arrives on the main thread (§5
// "Suspension points").
type Runner interface {
	Post(func())
}

// Job is a tiling job: a layout-chord key name, the frontmost
// application captured at chord time, and a retry attempt counter.
type Job struct {
	Key     string
	PID     int
	Attempt int
}

// retryTimeout bounds the observer-retry path (§5 "Cancellation &
// timeouts").
const retryTimeout = 500 * time.Millisecond

// Mutator drives tiling jobs and DisplayMove execution against AX,
// Displays, and a resolved Form.
type Mutator struct {
	lg       *log.Logger
	ax       AX
	displays Displays
	observer Observer
	runner   Runner
	form     *form.Form

	retryMu  sync.Mutex
	retrying map[int]bool // pid -> retry in flight
}

// New constructs a Mutator. runner is used only by the observer-retry
// path's timeout, to post back onto the main run-loop; it may be nil
// in tests that never exercise a not-ready retry timeout.
func New(lg *log.Logger, ax AX, displays Displays, observer Observer, runner Runner, f *form.Form) *Mutator {
	return &Mutator{lg: lg, ax: ax, displays: displays, observer: observer, runner: runner, form: f,
		retrying: make(map[int]bool)}
}

// Result reports one job's outcome for the structured "TILE: key |
// (SUCCESS | FAILED reason=<kind>)" log line, or the matching
// "DISPLAYMOVE: ..." line for a display move (§7).
type Result struct {
	OK     bool
	Reason string
}

// RunTileJob executes j (§4.10). On "not ready"/"cannot complete" at
// attempt 0 it switches to the observer-retry path instead of failing
// immediately.
func (m *Mutator) RunTileJob(j Job) Result {
	handle, err := m.ax.FocusedWindowHandle(j.PID)
	if err != nil {
		if j.Attempt == 0 && (errors.Is(err, errkind.ErrNotReady) || errors.Is(err, errkind.ErrCannotComplete)) {
			return m.retry(j)
		}
		return m.fail(j.Key, err)
	}
	defer m.ax.Release(handle)

	return m.applyTile(j.Key, handle)
}

// applyTile runs steps 2-5 of §4.10 against an already-obtained handle.
func (m *Mutator) applyTile(key string, handle Handle) Result {
	cur, err := m.ax.Geometry(handle)
	if err != nil {
		return m.fail(key, err)
	}

	dispIndex := m.displayIndexFor(cur)
	props := m.displays.Props(dispIndex)

	pane, err := m.form.GetNextPane(key, props, dispIndex)
	if err != nil {
		return m.fail(key, err)
	}

	viewport := m.displays.Viewports()[dispIndex]
	target := pane.Realize(viewport)
	if target.TooSmall() {
		return m.fail(key, fmt.Errorf("%w: realised pane below the minimum size floor", errkind.ErrCannotComplete))
	}

	// Position first, then size (§4.10 step 4): some applications clamp
	// size against the current position.
	if err := m.ax.SetPosition(handle, target.X, target.Y); err != nil {
		return m.fail(key, err)
	}
	if err := m.ax.SetSize(handle, target.Width, target.Height); err != nil {
		return m.fail(key, err)
	}

	if got, err := m.ax.Geometry(handle); err == nil {
		if absDiff(got.X, target.X) > 1 || absDiff(got.Y, target.Y) > 1 ||
			absDiff(got.Width, target.Width) > 1 || absDiff(got.Height, target.Height) > 1 {
			m.lg.Warnf("TILE: %s | applied geometry differs from requested by more than one pixel: got=%+v want=%+v",
				key, got, target)
		}
	}

	m.lg.Infof("TILE: %s | SUCCESS", key)
	return Result{OK: true}
}

func (m *Mutator) displayIndexFor(r geom.PixelRect) int {
	for i, vf := range m.displays.Viewports() {
		if vf.ContainsPoint(r.CenterX(), r.CenterY()) {
			return i
		}
	}
	return 0 // fall back to the main display
}

func (m *Mutator) fail(key string, err error) Result {
	reason := errkind.Kind(err)
	m.lg.Warnf("TILE: %s | FAILED reason=%s", key, reason)
	return Result{OK: false, Reason: reason}
}

// retry runs the observer-retry path for j.PID (§4.10 "Observer-retry
// path"). It never blocks: it subscribes to the pid's
// focused-window-changed notification and arms a timeout, then returns
// control to the caller (the main run-loop) immediately. The AX
// observer callback and the timeout fire later, on the main thread,
// and apply the tile or log the failure themselves — nothing consumes
// a synchronous return value for this path. At most one retry per pid
// may be in flight at a time, matching the "at most one active retry
// context per pid" invariant.
func (m *Mutator) retry(j Job) Result {
	m.retryMu.Lock()
	if m.retrying[j.PID] {
		m.retryMu.Unlock()
		m.lg.Debugf("TILE: %s | retry already in flight for pid %d, dropping duplicate", j.Key, j.PID)
		return Result{OK: false, Reason: "retry_in_flight"}
	}
	m.retrying[j.PID] = true
	m.retryMu.Unlock()

	// finished and cancel are only ever touched from the main run-loop
	// thread: the observer callback arrives there via its CFRunLoop
	// source, and the timer below posts back onto it via Runner before
	// calling finish. No mutex is needed between them.
	finished := false
	var cancel func()
	finish := func(res Result) {
		if finished {
			return
		}
		finished = true
		if cancel != nil {
			cancel()
		}
		m.retryMu.Lock()
		delete(m.retrying, j.PID)
		m.retryMu.Unlock()
	}

	cancel = m.observer.WatchFocusedWindow(j.PID, func(h Handle) {
		res := m.applyTile(j.Key, h)
		m.ax.Release(h)
		finish(res)
	})

	time.AfterFunc(retryTimeout, func() {
		post := func() {
			if finished {
				return
			}
			m.lg.Warnf("TILE: %s | FAILED reason=not_ready_timeout", j.Key)
			finish(Result{OK: false, Reason: "not_ready_timeout"})
		}
		if m.runner != nil {
			m.runner.Post(post)
		} else {
			post()
		}
	})

	return Result{OK: true, Reason: "retry_scheduled"}
}

func absDiff(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}

// ExecuteDisplayMove runs the main-thread work of §4.10 "DisplayMove
// execution": translate the focused window by the origin difference
// between its current and target display viewports, preserving its
// offset within the visible frame. A no-op when current equals target.
func (m *Mutator) ExecuteDisplayMove(key string, pid int) Result {
	fail := func(err error) Result {
		reason := errkind.Kind(err)
		m.lg.Warnf("DISPLAYMOVE: %s | FAILED reason=%s", key, reason)
		return Result{OK: false, Reason: reason}
	}

	handle, err := m.ax.FocusedWindowHandle(pid)
	if err != nil {
		return fail(err)
	}
	defer m.ax.Release(handle)

	cur, err := m.ax.Geometry(handle)
	if err != nil {
		return fail(err)
	}

	viewports := m.displays.Viewports()
	curIndex := m.displayIndexFor(cur)
	target, ok, err := m.form.ExecuteDisplayMove(key, curIndex, len(viewports))
	if err != nil {
		return fail(err)
	}
	if !ok || target == curIndex {
		return Result{OK: true}
	}

	from := viewports[curIndex]
	to := viewports[target]
	dx := to.X - from.X
	dy := to.Y - from.Y

	if err := m.ax.SetPosition(handle, cur.X+dx, cur.Y+dy); err != nil {
		return fail(err)
	}
	m.lg.Infof("DISPLAYMOVE: %s | SUCCESS", key)
	return Result{OK: true}
}
