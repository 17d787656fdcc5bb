// platform/eventtap_darwin.go
// Copyright(c) 2022-2026 PaneBoard contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

//go:build darwin

package platform

/*
#cgo LDFLAGS: -framework ApplicationServices -framework Cocoa
#import <Cocoa/Cocoa.h>
#include <ApplicationServices/ApplicationServices.h>
#include <dispatch/dispatch.h>

extern void paneboardRunQueuedWork(void *ctx);
extern CGEventRef paneboardTapCallback(CGEventTapProxy proxy, CGEventType type, CGEventRef event, void *refcon);

static void paneboard_dispatch_main(void *ctx) {
	dispatch_async_f(dispatch_get_main_queue(), ctx, (dispatch_function_t)paneboardRunQueuedWork);
}

static CFMachPortRef paneboard_install_tap(void) {
	CGEventMask mask =
		CGEventMaskBit(kCGEventKeyDown) | CGEventMaskBit(kCGEventKeyUp) |
		CGEventMaskBit(kCGEventFlagsChanged) |
		CGEventMaskBit(kCGEventLeftMouseDown) | CGEventMaskBit(kCGEventRightMouseDown) |
		CGEventMaskBit(kCGEventOtherMouseDown);

	CFMachPortRef tap = CGEventTapCreate(kCGSessionEventTap, kCGHeadInsertEventTap,
		kCGEventTapOptionDefault, mask, paneboardTapCallback, NULL);
	if (!tap) {
		return NULL;
	}

	CFRunLoopSourceRef src = CFMachPortCreateRunLoopSource(kCFAllocatorDefault, tap, 0);
	CFRunLoopAddSource(CFRunLoopGetMain(), src, kCFRunLoopCommonModes);
	CFRelease(src);
	CGEventTapEnable(tap, true);
	return tap;
}

static int paneboard_tap_enabled(CFMachPortRef tap) {
	return CGEventTapIsEnabled(tap) ? 1 : 0;
}

static void paneboard_tap_enable(CFMachPortRef tap) {
	CGEventTapEnable(tap, true);
}

static void paneboard_post_key(CGKeyCode keycode, int down) {
	CGEventRef ev = CGEventCreateKeyboardEvent(NULL, keycode, down ? true : false);
	CGEventSetFlags(ev, kCGEventFlagMaskCommand);
	CGEventPost(kCGSessionEventTap, ev);
	CFRelease(ev);
}
*/
import "C"

import (
	"fmt"
	"runtime/cgo"
	"time"
	"unsafe"

	"github.com/paneboard/paneboard/errkind"
	"github.com/paneboard/paneboard/eventpipe"
	"github.com/paneboard/paneboard/log"
)

var errTapInstall = fmt.Errorf("eventtap: CGEventTapCreate failed, accessibility trust likely missing: %w", errkind.ErrPermission)

//export paneboardRunQueuedWork
func paneboardRunQueuedWork(ctx unsafe.Pointer) {
	h := cgo.Handle(uintptr(ctx))
	defer h.Delete()
	h.Value().(func())()
}

// Runner implements eventpipe.Runner by posting work to the main
// queue's run loop via GCD (§5 "Suspension points").
type Runner struct{}

func NewRunner() *Runner { return &Runner{} }

func (Runner) Post(f func()) {
	h := cgo.NewHandle(f)
	C.paneboard_dispatch_main(unsafe.Pointer(uintptr(h)))
}

var _ eventpipe.Runner = Runner{}

// activePipeline is the process's one Pipeline; CGEventTapCreate's
// callback is a bare C function pointer with no way to carry a Go
// receiver, so the exported trampoline reaches it here (§9 "Global
// mutable state": the tap's OS-owned callback carries a single opaque
// context, which in this implementation is just this package variable).
var activePipeline *eventpipe.Pipeline

//export paneboardTapCallback
func paneboardTapCallback(proxy C.CGEventTapProxy, etype C.CGEventType, event C.CGEventRef, refcon unsafe.Pointer) C.CGEventRef {
	if activePipeline == nil {
		return event
	}

	ev := decodeEvent(etype, event)
	dec := activePipeline.Handle(ev)

	for _, syn := range dec.Synthetic {
		C.paneboard_post_key(C.CGKeyCode(syn.Keycode), boolToInt(syn.Down))
	}

	if dec.Swallow {
		return nil
	}
	return event
}

func boolToInt(b bool) C.int {
	if b {
		return 1
	}
	return 0
}

func decodeEvent(etype C.CGEventType, event C.CGEventRef) eventpipe.Event {
	flags := C.CGEventGetFlags(event)
	mods := eventpipe.Modifiers{
		Control: flags&C.kCGEventFlagMaskControl != 0,
		Shift:   flags&C.kCGEventFlagMaskShift != 0,
		Command: flags&C.kCGEventFlagMaskCommand != 0,
		Option:  flags&C.kCGEventFlagMaskAlternate != 0,
	}

	var kind eventpipe.Kind
	switch etype {
	case C.kCGEventKeyDown:
		kind = eventpipe.KeyDown
	case C.kCGEventKeyUp:
		kind = eventpipe.KeyUp
	case C.kCGEventFlagsChanged:
		kind = eventpipe.ModifierFlagsChanged
	default:
		kind = eventpipe.MouseDown
	}

	keycode := int(C.CGEventGetIntegerValueField(event, C.kCGKeyboardEventKeycode))
	autoRepeat := C.CGEventGetIntegerValueField(event, C.kCGKeyboardEventAutorepeat) != 0

	return eventpipe.Event{Kind: kind, Modifiers: mods, Keycode: keycode, AutoRepeat: autoRepeat}
}

// EventTap owns the installed CGEventTap and its watchdog (§4.9
// "Watchdog").
type EventTap struct {
	lg  *log.Logger
	tap C.CFMachPortRef

	stop chan struct{}
}

// Install installs the tap and wires p as the process's active
// pipeline. Only one EventTap may be installed per process.
func Install(lg *log.Logger, p *eventpipe.Pipeline) (*EventTap, error) {
	activePipeline = p

	tap := C.paneboard_install_tap()
	if tap == nil {
		return nil, errTapInstall
	}

	t := &EventTap{lg: lg, tap: tap, stop: make(chan struct{})}
	go t.watchdog()
	return t, nil
}

// watchdogPeriod matches §4.9's 500ms watchdog.
const watchdogPeriod = 500 * time.Millisecond

func (t *EventTap) watchdog() {
	ticker := time.NewTicker(watchdogPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-t.stop:
			return
		case <-ticker.C:
			if C.paneboard_tap_enabled(t.tap) == 0 {
				C.paneboard_tap_enable(t.tap)
				t.lg.Warnf("eventtap: tap was disabled by the OS, re-enabled")
			}
		}
	}
}

// Stop tears down the watchdog goroutine. The tap itself is released
// when the process exits; PaneBoard never reinstalls it mid-run.
func (t *EventTap) Stop() {
	close(t.stop)
}
