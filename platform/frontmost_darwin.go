// platform/frontmost_darwin.go
// Copyright(c) 2022-2026 PaneBoard contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

//go:build darwin

package platform

/*
#cgo LDFLAGS: -framework ApplicationServices -framework Cocoa
#import <Cocoa/Cocoa.h>
#include <ApplicationServices/ApplicationServices.h>
#include <string.h>

extern AXError _AXUIElementGetWindow(AXUIElementRef element, CGWindowID *out);

typedef struct {
	pid_t pid;
	unsigned int windowID;
	const char *title;
	const char *role;
	const char *appName;
	int haveWindow;
} paneboard_frontmost_t;

static int paneboard_frontmost(paneboard_frontmost_t *out) {
	@autoreleasepool {
		NSRunningApplication *app = [[NSWorkspace sharedWorkspace] frontmostApplication];
		if (!app) return 0;

		out->pid = app.processIdentifier;
		out->appName = strdup(app.localizedName.UTF8String ?: "");
		out->haveWindow = 0;

		AXUIElementRef axApp = AXUIElementCreateApplication(out->pid);
		AXUIElementRef win = NULL;
		AXError err = AXUIElementCopyAttributeValue(axApp, kAXFocusedWindowAttribute, (CFTypeRef *)&win);
		CFRelease(axApp);
		if (err != kAXErrorSuccess || win == NULL) {
			out->title = strdup("");
			out->role = strdup("");
			return 1;
		}

		CGWindowID wid = 0;
		if (_AXUIElementGetWindow(win, &wid) == kAXErrorSuccess) {
			out->windowID = (unsigned int)wid;
			out->haveWindow = 1;
		}

		CFStringRef titleRef = NULL;
		AXUIElementCopyAttributeValue(win, kAXTitleAttribute, (CFTypeRef *)&titleRef);
		CFStringRef roleRef = NULL;
		AXUIElementCopyAttributeValue(win, kAXRoleAttribute, (CFTypeRef *)&roleRef);
		out->title = titleRef ? strdup([(NSString *)titleRef UTF8String]) : strdup("");
		out->role = roleRef ? strdup([(NSString *)roleRef UTF8String]) : strdup("");
		if (titleRef) CFRelease(titleRef);
		if (roleRef) CFRelease(roleRef);
		CFRelease(win);
		return 1;
	}
}
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/paneboard/paneboard/errkind"
	"github.com/paneboard/paneboard/eventpipe"
)

// Frontmost implements eventpipe.Frontmost (§4.6 population source 4,
// §4.9 step 10's chord-time MRU capture).
type Frontmost struct{}

func (Frontmost) Current() (eventpipe.FrontmostInfo, error) {
	var out C.paneboard_frontmost_t
	if C.paneboard_frontmost(&out) == 0 {
		return eventpipe.FrontmostInfo{}, fmt.Errorf("frontmost: %w", errkind.ErrNoTarget)
	}
	defer C.free(unsafe.Pointer(out.appName))
	defer C.free(unsafe.Pointer(out.title))
	defer C.free(unsafe.Pointer(out.role))

	info := eventpipe.FrontmostInfo{
		PID:     int(out.pid),
		Title:   C.GoString(out.title),
		Role:    C.GoString(out.role),
		AppName: C.GoString(out.appName),
	}
	if out.haveWindow != 0 {
		info.WindowID = uint32(out.windowID)
	}
	return info, nil
}

var _ eventpipe.Frontmost = Frontmost{}
