// platform/activator_darwin.go
// Copyright(c) 2022-2026 PaneBoard contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

//go:build darwin

package platform

/*
#cgo LDFLAGS: -framework ApplicationServices -framework Cocoa
#import <Cocoa/Cocoa.h>
#include <ApplicationServices/ApplicationServices.h>

extern AXError _AXUIElementGetWindow(AXUIElementRef element, CGWindowID *out);

static int paneboard_activate_app(pid_t pid) {
	NSRunningApplication *app = [NSRunningApplication runningApplicationWithProcessIdentifier:pid];
	if (!app) return 0;
	return [app activateWithOptions:NSApplicationActivateIgnoringOtherApps] ? 1 : 0;
}

static pid_t paneboard_frontmost_app(void) {
	NSRunningApplication *app = [[NSWorkspace sharedWorkspace] frontmostApplication];
	return app ? app.processIdentifier : 0;
}

// paneboard_find_window returns a +1-retained AXUIElementRef for pid's
// window identified by windowID, or NULL if no such window exists
// anymore (the switcher's MRU snapshot can go stale between trigger and
// commit).
static AXUIElementRef paneboard_find_window(pid_t pid, unsigned int windowID) {
	AXUIElementRef app = AXUIElementCreateApplication(pid);
	CFArrayRef windows = NULL;
	AXError err = AXUIElementCopyAttributeValue(app, kAXWindowsAttribute, (CFTypeRef *)&windows);
	CFRelease(app);
	if (err != kAXErrorSuccess || windows == NULL) {
		return NULL;
	}

	AXUIElementRef found = NULL;
	CFIndex count = CFArrayGetCount(windows);
	for (CFIndex i = 0; i < count; i++) {
		AXUIElementRef win = (AXUIElementRef)CFArrayGetValueAtIndex(windows, i);
		CGWindowID wid = 0;
		if (_AXUIElementGetWindow(win, &wid) == kAXErrorSuccess && wid == windowID) {
			found = win;
			CFRetain(found);
			break;
		}
	}
	CFRelease(windows);
	return found;
}

static int paneboard_unminimize(AXUIElementRef win) {
	AXError err = AXUIElementSetAttributeValue(win, kAXMinimizedAttribute, kCFBooleanFalse);
	return err == kAXErrorSuccess;
}

static int paneboard_set_main(AXUIElementRef win) {
	AXError err = AXUIElementSetAttributeValue(win, kAXMainAttribute, kCFBooleanTrue);
	return err == kAXErrorSuccess;
}

static int paneboard_raise(AXUIElementRef win) {
	AXError err = AXUIElementPerformAction(win, kAXRaiseAction);
	return err == kAXErrorSuccess;
}

static int paneboard_focused_window_id(pid_t pid, unsigned int *out) {
	AXUIElementRef app = AXUIElementCreateApplication(pid);
	AXUIElementRef win = NULL;
	AXError err = AXUIElementCopyAttributeValue(app, kAXFocusedWindowAttribute, (CFTypeRef *)&win);
	CFRelease(app);
	if (err != kAXErrorSuccess || win == NULL) {
		return 0;
	}
	CGWindowID wid = 0;
	int ok = (_AXUIElementGetWindow(win, &wid) == kAXErrorSuccess);
	if (ok) *out = (unsigned int)wid;
	CFRelease(win);
	return ok;
}
*/
import "C"

import (
	"fmt"

	"github.com/paneboard/paneboard/errkind"
	"github.com/paneboard/paneboard/switcher"
)

// Activator implements switcher.Activator (§4.7 "Commit").
type Activator struct{}

func (Activator) ActivateApp(pid int) error {
	if C.paneboard_activate_app(C.pid_t(pid)) == 0 {
		return fmt.Errorf("activate pid %d: %w", pid, errkind.ErrCannotComplete)
	}
	return nil
}

func (Activator) FrontmostApp() (int, error) {
	pid := int(C.paneboard_frontmost_app())
	if pid == 0 {
		return 0, fmt.Errorf("frontmost app: %w", errkind.ErrNoTarget)
	}
	return pid, nil
}

func (Activator) FocusedWindow(pid int) (uint32, bool, error) {
	var id C.uint
	if C.paneboard_focused_window_id(C.pid_t(pid), &id) == 0 {
		return 0, false, nil
	}
	return uint32(id), true, nil
}

func (Activator) Unminimize(pid int, windowID uint32) error {
	win := C.paneboard_find_window(C.pid_t(pid), C.uint(windowID))
	if win == nil {
		return fmt.Errorf("pid %d window %d: %w", pid, windowID, errkind.ErrNoTarget)
	}
	defer C.CFRelease(C.CFTypeRef(win))
	if C.paneboard_unminimize(win) == 0 {
		return fmt.Errorf("unminimize: %w", errkind.ErrCannotComplete)
	}
	return nil
}

func (Activator) SetMain(pid int, windowID uint32) error {
	win := C.paneboard_find_window(C.pid_t(pid), C.uint(windowID))
	if win == nil {
		return fmt.Errorf("pid %d window %d: %w", pid, windowID, errkind.ErrNoTarget)
	}
	defer C.CFRelease(C.CFTypeRef(win))
	if C.paneboard_set_main(win) == 0 {
		return fmt.Errorf("set main: %w", errkind.ErrCannotComplete)
	}
	return nil
}

func (Activator) Raise(pid int, windowID uint32) error {
	win := C.paneboard_find_window(C.pid_t(pid), C.uint(windowID))
	if win == nil {
		return fmt.Errorf("pid %d window %d: %w", pid, windowID, errkind.ErrNoTarget)
	}
	defer C.CFRelease(C.CFTypeRef(win))
	if C.paneboard_raise(win) == 0 {
		return fmt.Errorf("raise: %w", errkind.ErrCannotComplete)
	}
	return nil
}

var _ switcher.Activator = Activator{}
