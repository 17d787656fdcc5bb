// platform/observer_darwin.go
// Copyright(c) 2022-2026 PaneBoard contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

//go:build darwin

package platform

/*
#cgo LDFLAGS: -framework ApplicationServices
#include <ApplicationServices/ApplicationServices.h>

extern void paneboardFocusedWindowChanged(AXObserverRef observer, AXUIElementRef element, CFStringRef notification, void *refcon);

static AXObserverRef paneboard_make_observer(pid_t pid, int *ok) {
	AXObserverRef obs = NULL;
	AXError err = AXObserverCreate(pid, (AXObserverCallback)paneboardFocusedWindowChanged, &obs);
	*ok = (err == kAXErrorSuccess) ? 1 : 0;
	return obs;
}

static void paneboard_observer_watch(AXObserverRef obs, pid_t pid) {
	AXUIElementRef app = AXUIElementCreateApplication(pid);
	AXObserverAddNotification(obs, app, kAXFocusedWindowChangedNotification, NULL);
	CFRelease(app);
	CFRunLoopAddSource(CFRunLoopGetMain(), AXObserverGetRunLoopSource(obs), kCFRunLoopDefaultMode);
}

static void paneboard_observer_teardown(AXObserverRef obs, pid_t pid) {
	AXUIElementRef app = AXUIElementCreateApplication(pid);
	AXObserverRemoveNotification(obs, app, kAXFocusedWindowChangedNotification);
	CFRelease(app);
	CFRunLoopRemoveSource(CFRunLoopGetMain(), AXObserverGetRunLoopSource(obs), kCFRunLoopDefaultMode);
	CFRelease(obs);
}
*/
import "C"

import (
	"sync"
	"unsafe"

	"github.com/paneboard/paneboard/mutator"
)

// pendingObservers maps a live AXObserverRef (identified by its pointer
// value) to the one-shot callback waiting on it. The C trampoline below
// has no Go receiver to dispatch through, so it looks itself up here.
var (
	pendingMu  sync.Mutex
	pendingObs = make(map[uintptr]func(mutator.Handle))
)

//export paneboardFocusedWindowChanged
func paneboardFocusedWindowChanged(observer C.AXObserverRef, element C.AXUIElementRef, notification C.CFStringRef, refcon unsafe.Pointer) {
	key := uintptr(unsafe.Pointer(observer))

	pendingMu.Lock()
	cb, ok := pendingObs[key]
	delete(pendingObs, key)
	pendingMu.Unlock()

	if ok {
		cb(&axHandle{ref: element})
	}
}

// Observer implements mutator.Observer (§4.10 "Observer-retry path").
// AXObserverCreate's run-loop source must be installed on the main
// run-loop, so every Observer method must run there.
type Observer struct{}

// NewObserver constructs an Observer.
func NewObserver() *Observer { return &Observer{} }

func (o *Observer) WatchFocusedWindow(pid int, onChange func(mutator.Handle)) (cancel func()) {
	cpid := C.pid_t(pid)
	var ok C.int
	obs := C.paneboard_make_observer(cpid, &ok)
	if ok == 0 {
		return func() {}
	}

	key := uintptr(unsafe.Pointer(obs))
	pendingMu.Lock()
	pendingObs[key] = onChange
	pendingMu.Unlock()

	C.paneboard_observer_watch(obs, cpid)

	return func() {
		pendingMu.Lock()
		delete(pendingObs, key)
		pendingMu.Unlock()
		C.paneboard_observer_teardown(obs, cpid)
	}
}

var _ mutator.Observer = (*Observer)(nil)
