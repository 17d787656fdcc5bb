// eventpipe/eventpipe.go
// Copyright(c) 2022-2026 PaneBoard contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package eventpipe is the sole entry point for keystrokes and pointer
// clicks (§4.9). It runs on the tap thread and must return a decision
// quickly. Tiling jobs, DisplayMove execution and the switcher commit
// are posted to the main run-loop via Runner.Post. The chord-time
// frontmost capture and the switcher and clipboard session calls run on
// the tap thread itself, including the overlay show/update/hide calls
// and the switcher's MRU prune that those sessions make.
package eventpipe

import (
	"github.com/paneboard/paneboard/clipboard"
	"github.com/paneboard/paneboard/form"
	"github.com/paneboard/paneboard/keymap"
	"github.com/paneboard/paneboard/log"
	"github.com/paneboard/paneboard/mru"
	"github.com/paneboard/paneboard/switcher"
)

// Kind distinguishes the event types the tap callback observes (§4.9).
type Kind int

const (
	KeyDown Kind = iota
	KeyUp
	ModifierFlagsChanged
	MouseDown
)

// Modifiers is the decoded modifier-flag state of one event (§4.9 step 1).
type Modifiers struct {
	Control bool
	Shift   bool
	Command bool
	Option  bool
}

// layoutHeld reports whether the chord held throughout a layout-cycling
// session (§4.9 step 8) is down: Control+Shift+Option on macOS.
func (m Modifiers) layoutHeld() bool {
	return m.Control && m.Shift && m.Option
}

// switcherHeld reports whether the platform's window-cycle modifier
// (Command on macOS) is held (§4.7 "Trigger").
func (m Modifiers) switcherHeld() bool {
	return m.Command
}

// Event is one normalized tap callback event.
type Event struct {
	Kind        Kind
	Modifiers   Modifiers
	Keycode    int
	AutoRepeat bool
}

// Decision is the tap callback's verdict: whether to swallow the event
// (prevent it reaching the target application) or let it pass, plus any
// synthetic events to inject (§4.8 Control+C/X/V mirroring).
type Decision struct {
	Swallow   bool
	Synthetic []Synthetic
}

// Synthetic is a synthesized key event to inject into the session event
// tap (§4.8: Control+C/X/V mirrors to Command+C/X/V, non-consuming).
type Synthetic struct {
	Keycode int
	Down    bool
}

// FrontmostInfo identifies the frontmost application and its focused
// window at chord time (§4.6 population source 4, §4.9 step 10).
type FrontmostInfo struct {
	PID      int
	WindowID uint32
	Title    string
	Role     string
	AppName  string
}

// Frontmost is the platform hook for querying the current frontmost
// application and focused window; used for chord-time MRU capture.
type Frontmost interface {
	Current() (FrontmostInfo, error)
}

// Runner posts blocking work to the main run-loop (§5 "Suspension
// points"). Tiling jobs and DisplayMove execution are posted here, never
// run on the tap thread.
type Runner interface {
	Post(func())
}

// KeyLog records a diagnostic key-state line when enabled (§6
// "PANEBOARD_LOG_KEYS").
type KeyLog interface {
	Enabled() bool
	Log(ev Event, name string)
}

// Pipeline wires together the session singletons and the Form to
// implement the ten-step processing order of §4.9.
type Pipeline struct {
	lg *log.Logger

	keys      *keymap.Map
	form      *form.Form
	mru       *mru.Registry
	switcher  *switcher.Session
	clipboard *clipboard.Session
	frontmost Frontmost
	runner    Runner
	keyLog    KeyLog

	onLayoutAction   func(keyName string, front FrontmostInfo)
	onDisplayMove    func(keyName string)
	onSwitcherCommit func(switcher.Commit)

	layoutHeldLast bool
}

// New constructs a Pipeline. onLayoutAction, onDisplayMove, and
// onSwitcherCommit are invoked (already posted to the main run-loop by
// Pipeline) when a layout chord resolves to a LayoutAction binding, a
// DisplayMove binding, or the switcher modifier is released,
// respectively.
func New(lg *log.Logger, keys *keymap.Map, f *form.Form, reg *mru.Registry, sw *switcher.Session,
	cb *clipboard.Session, front Frontmost, runner Runner, keyLog KeyLog,
	onLayoutAction func(string, FrontmostInfo), onDisplayMove func(string), onSwitcherCommit func(switcher.Commit)) *Pipeline {
	return &Pipeline{
		lg: lg, keys: keys, form: f, mru: reg, switcher: sw, clipboard: cb,
		frontmost: front, runner: runner, keyLog: keyLog,
		onLayoutAction: onLayoutAction, onDisplayMove: onDisplayMove, onSwitcherCommit: onSwitcherCommit,
	}
}

// Handle processes one event and returns the tap's verdict (§4.9).
func (p *Pipeline) Handle(ev Event) Decision {
	// Step 1 is normalization on the way in; Event already carries it.

	// Step 2: diagnostic key-state log.
	if p.keyLog != nil && p.keyLog.Enabled() {
		name, _ := p.keys.ToName(ev.Keycode)
		p.keyLog.Log(ev, name)
	}

	// Step 3: mouse-down during an active switcher session cancels it.
	if ev.Kind == MouseDown {
		if p.switcher.Active() {
			p.switcher.Cancel()
			return Decision{Swallow: true}
		}
		return Decision{}
	}

	// Step 4: clipboard session active routes key-downs to its handler.
	if p.clipboard.Active() {
		if ev.Kind == KeyDown {
			// Any key not in {up,down,enter,escape} still reaches
			// HandleKey as KeyOther and is a no-op there; all keyboard
			// events are consumed while the overlay is active (§4.8).
			p.clipboard.HandleKey(clipboardKey(ev.Keycode))
			return Decision{Swallow: true}
		}
		return Decision{}
	}

	// Step 5: clipboard chord detection.
	if ev.Kind == KeyDown && ev.Modifiers.Control && ev.Modifiers.Shift && !ev.Modifiers.Command && !ev.Modifiers.Option &&
		ev.Keycode == vKeyV {
		p.clipboard.Trigger()
		return Decision{Swallow: true}
	}
	if dec, handled := mirrorControlClipboardChord(ev); handled {
		return dec
	}

	// Step 6: switcher modifier release detection.
	if (ev.Kind == ModifierFlagsChanged || ev.Kind == KeyUp) && p.switcher.Active() && !ev.Modifiers.switcherHeld() {
		commit := p.switcher.EndAndCommit()
		p.runner.Post(func() {
			switcherCommitHook(p, commit)
		})
		return Decision{Swallow: true}
	}

	// Step 7: switcher Tab press.
	if ev.Kind == KeyDown && !ev.AutoRepeat && ev.Modifiers.switcherHeld() && ev.Keycode == vKeyTab {
		p.switcher.TriggerOrAdvance(ev.Modifiers.Shift)
		return Decision{Swallow: true}
	}

	// Step 8: layout-modifier release detection (held -> not-held edge).
	held := ev.Modifiers.layoutHeld()
	if p.layoutHeldLast && !held {
		p.form.ResetSession()
	}
	p.layoutHeldLast = held

	// Step 9: ignore everything that cannot be a layout/display-move chord.
	if ev.Kind != KeyDown || ev.AutoRepeat {
		return Decision{}
	}
	name, known := p.keys.ToName(ev.Keycode)
	if !known {
		return Decision{}
	}

	// Step 10: layout chord.
	if !held {
		return Decision{}
	}

	front, err := p.frontmost.Current()
	if err == nil {
		p.mru.UpdateWithFocus(front.PID, front.WindowID, front.Title, front.Role, front.AppName)
	}

	if _, ok := p.form.Action(name); ok {
		p.runner.Post(func() { p.onLayoutAction(name, front) })
		return Decision{Swallow: true}
	}
	if _, ok := p.form.Move(name); ok {
		p.runner.Post(func() { p.onDisplayMove(name) })
		return Decision{Swallow: true}
	}
	return Decision{}
}

// switcherCommitHook exists as a separate function (rather than an
// inline closure field) so the main-run-loop commit work can be
// exercised directly from tests without constructing a Pipeline.
func switcherCommitHook(p *Pipeline, commit switcher.Commit) {
	if p.onSwitcherCommit != nil {
		p.onSwitcherCommit(commit)
	}
}

func clipboardKey(keycode int) clipboard.Key {
	switch keycode {
	case vKeyUp:
		return clipboard.KeyUp
	case vKeyDown:
		return clipboard.KeyDown
	case vKeyEnter:
		return clipboard.KeyEnter
	case vKeyEscape:
		return clipboard.KeyEscape
	}
	return clipboard.KeyOther
}

// macOS virtual keycodes used directly by the pipeline's chord
// detection, duplicated from keymap.Default's table rather than looked
// up by name since these are structural (never reconfigurable).
const (
	vKeyTab    = 0x30
	vKeyV      = 0x09
	vKeyC      = 0x08
	vKeyX      = 0x07
	vKeyUp     = 0x7E
	vKeyDown   = 0x7D
	vKeyEnter  = 0x24
	vKeyEscape = 0x35
)

// mirrorControlClipboardChord implements §4.8's "plain Control+C/X/V"
// mirroring: a synthetic Command+{C,X,V} key event is injected without
// consuming the original (§4.9 step 5).
func mirrorControlClipboardChord(ev Event) (Decision, bool) {
	if !ev.Modifiers.Control || ev.Modifiers.Shift || ev.Modifiers.Command || ev.Modifiers.Option {
		return Decision{}, false
	}
	if ev.Kind != KeyDown && ev.Kind != KeyUp {
		return Decision{}, false
	}
	switch ev.Keycode {
	case vKeyC, vKeyX, vKeyV:
		return Decision{Swallow: false, Synthetic: []Synthetic{{Keycode: ev.Keycode, Down: ev.Kind == KeyDown}}}, true
	}
	return Decision{}, false
}
