// platform/enumerator_darwin.go
// Copyright(c) 2022-2026 PaneBoard contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

//go:build darwin

package platform

/*
#cgo LDFLAGS: -framework ApplicationServices -framework Cocoa
#import <Cocoa/Cocoa.h>
#include <ApplicationServices/ApplicationServices.h>
#include <string.h>

// _AXUIElementGetWindow is an undocumented but long-stable private API
// (the same one window-manager tools such as yabai and Amethyst rely
// on) that maps an AXUIElementRef window to the CGWindowID the rest of
// the accessibility/window-server stack addresses it by. There is no
// public replacement.
extern AXError _AXUIElementGetWindow(AXUIElementRef element, CGWindowID *out);

typedef struct {
	pid_t pid;
	const char *name;
} paneboard_app_t;

// paneboard_running_apps fills out with one entry per regular (Dock-
// visible) running application, in NSWorkspace's order, and returns the
// frontmost application's pid via *frontmost.
int paneboard_running_apps(paneboard_app_t *out, int cap, pid_t *frontmost) {
	@autoreleasepool {
		NSArray<NSRunningApplication *> *apps = [[NSWorkspace sharedWorkspace] runningApplications];
		NSRunningApplication *front = [[NSWorkspace sharedWorkspace] frontmostApplication];
		*frontmost = front ? front.processIdentifier : 0;

		int n = 0;
		for (NSRunningApplication *a in apps) {
			if (a.activationPolicy != NSApplicationActivationPolicyRegular) {
				continue;
			}
			if (n >= cap) break;
			out[n].pid = a.processIdentifier;
			out[n].name = strdup(a.localizedName.UTF8String ?: "");
			n++;
		}
		return n;
	}
}

typedef struct {
	unsigned int id;
	const char *title;
	const char *role;
} paneboard_window_t;

static int paneboard_window_list(pid_t pid, paneboard_window_t *out, int cap) {
	AXUIElementRef app = AXUIElementCreateApplication(pid);
	CFArrayRef windows = NULL;
	AXError err = AXUIElementCopyAttributeValue(app, kAXWindowsAttribute, (CFTypeRef *)&windows);
	CFRelease(app);
	if (err != kAXErrorSuccess || windows == NULL) {
		return 0;
	}

	CFIndex count = CFArrayGetCount(windows);
	int n = 0;
	for (CFIndex i = 0; i < count && n < cap; i++) {
		AXUIElementRef win = (AXUIElementRef)CFArrayGetValueAtIndex(windows, i);

		CGWindowID wid = 0;
		if (_AXUIElementGetWindow(win, &wid) != kAXErrorSuccess) {
			continue;
		}

		CFStringRef roleRef = NULL;
		AXUIElementCopyAttributeValue(win, kAXRoleAttribute, (CFTypeRef *)&roleRef);
		CFStringRef titleRef = NULL;
		AXUIElementCopyAttributeValue(win, kAXTitleAttribute, (CFTypeRef *)&titleRef);

		out[n].id = (unsigned int)wid;
		out[n].role = roleRef ? strdup([(NSString *)roleRef UTF8String]) : strdup("");
		out[n].title = titleRef ? strdup([(NSString *)titleRef UTF8String]) : strdup("");
		if (roleRef) CFRelease(roleRef);
		if (titleRef) CFRelease(titleRef);
		n++;
	}
	CFRelease(windows);
	return n;
}

static int paneboard_focused_window_info(pid_t pid, paneboard_window_t *out) {
	AXUIElementRef app = AXUIElementCreateApplication(pid);
	AXUIElementRef win = NULL;
	AXError err = AXUIElementCopyAttributeValue(app, kAXFocusedWindowAttribute, (CFTypeRef *)&win);
	CFRelease(app);
	if (err != kAXErrorSuccess || win == NULL) {
		return 0;
	}

	CGWindowID wid = 0;
	if (_AXUIElementGetWindow(win, &wid) != kAXErrorSuccess) {
		CFRelease(win);
		return 0;
	}

	CFStringRef roleRef = NULL;
	AXUIElementCopyAttributeValue(win, kAXRoleAttribute, (CFTypeRef *)&roleRef);
	CFStringRef titleRef = NULL;
	AXUIElementCopyAttributeValue(win, kAXTitleAttribute, (CFTypeRef *)&titleRef);

	out->id = (unsigned int)wid;
	out->role = roleRef ? strdup([(NSString *)roleRef UTF8String]) : strdup("");
	out->title = titleRef ? strdup([(NSString *)titleRef UTF8String]) : strdup("");
	if (roleRef) CFRelease(roleRef);
	if (titleRef) CFRelease(titleRef);
	CFRelease(win);
	return 1;
}
*/
import "C"

import (
	"unsafe"

	"github.com/paneboard/paneboard/mru"
)

const (
	maxApps    = 256
	maxWindows = 64
)

// Enumerator implements mru.AppEnumerator against NSWorkspace and the
// Accessibility API.
type Enumerator struct{}

func (Enumerator) RunningApps() (apps []struct {
	PID  int
	Name string
}, frontmostPID int, err error) {
	buf := make([]C.paneboard_app_t, maxApps)
	var front C.pid_t
	n := int(C.paneboard_running_apps(&buf[0], C.int(maxApps), &front))

	apps = make([]struct {
		PID  int
		Name string
	}, n)
	for i := 0; i < n; i++ {
		apps[i].PID = int(buf[i].pid)
		apps[i].Name = C.GoString(buf[i].name)
		C.free(unsafe.Pointer(buf[i].name))
	}
	return apps, int(front), nil
}

func (Enumerator) Windows(pid int) ([]mru.Window, error) {
	buf := make([]C.paneboard_window_t, maxWindows)
	n := int(C.paneboard_window_list(C.pid_t(pid), &buf[0], C.int(maxWindows)))

	out := make([]mru.Window, n)
	for i := 0; i < n; i++ {
		out[i] = mru.Window{
			ID:    uint32(buf[i].id),
			Title: C.GoString(buf[i].title),
			Role:  C.GoString(buf[i].role),
		}
		C.free(unsafe.Pointer(buf[i].title))
		C.free(unsafe.Pointer(buf[i].role))
	}
	return out, nil
}

func (Enumerator) FocusedWindow(pid int) (mru.Window, bool, error) {
	var w C.paneboard_window_t
	if C.paneboard_focused_window_info(C.pid_t(pid), &w) == 0 {
		return mru.Window{}, false, nil
	}
	defer C.free(unsafe.Pointer(w.title))
	defer C.free(unsafe.Pointer(w.role))
	return mru.Window{ID: uint32(w.id), Title: C.GoString(w.title), Role: C.GoString(w.role)}, true, nil
}

var _ mru.AppEnumerator = Enumerator{}
