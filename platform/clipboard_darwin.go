// platform/clipboard_darwin.go
// Copyright(c) 2022-2026 PaneBoard contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

//go:build darwin

package platform

/*
#cgo LDFLAGS: -framework Cocoa
#import <Cocoa/Cocoa.h>
#include <string.h>

static long paneboard_pasteboard_change_count(void) {
	return (long)[[NSPasteboard generalPasteboard] changeCount];
}

// paneboard_pasteboard_string returns a copy of the general pasteboard's
// current string content, or NULL if it holds no text (e.g. an image
// was copied). Caller must free() the result.
static const char *paneboard_pasteboard_string(void) {
	@autoreleasepool {
		NSString *s = [[NSPasteboard generalPasteboard] stringForType:NSPasteboardTypeString];
		if (!s) return NULL;
		return strdup(s.UTF8String);
	}
}

static void paneboard_pasteboard_set_string(const char *s) {
	@autoreleasepool {
		NSPasteboard *pb = [NSPasteboard generalPasteboard];
		[pb clearContents];
		[pb setString:[NSString stringWithUTF8String:s] forType:NSPasteboardTypeString];
	}
}
*/
import "C"

import (
	"time"
	"unsafe"

	"github.com/paneboard/paneboard/clipboard"
)

// pollInterval bounds the clipboard-watch poll loop. Cocoa has no
// change-notification API for the general pasteboard; polling
// changeCount is the standard technique (§1 treats the clipboard
// subsystem itself as an external collaborator specified only by
// interface — this is PaneBoard's concrete choice of collaborator).
const pollInterval = 250 * time.Millisecond

// SystemClipboard implements clipboard.SystemClipboard.
type SystemClipboard struct{}

func (SystemClipboard) SetText(s string) error {
	cs := C.CString(s)
	defer C.free(unsafe.Pointer(cs))
	C.paneboard_pasteboard_set_string(cs)
	return nil
}

var _ clipboard.SystemClipboard = SystemClipboard{}

// WatchClipboard polls the general pasteboard's changeCount and invokes
// onText with every new UTF-8 string entry until stop is closed
// (§4.8: "populated by an external subsystem that delivers a callback
// whenever a new UTF-8 string enters the clipboard").
func WatchClipboard(stop <-chan struct{}, onText func(string)) {
	last := C.paneboard_pasteboard_change_count()
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			cur := C.paneboard_pasteboard_change_count()
			if cur == last {
				continue
			}
			last = cur

			cs := C.paneboard_pasteboard_string()
			if cs == nil {
				continue
			}
			s := C.GoString(cs)
			C.free(unsafe.Pointer(cs))
			onText(s)
		}
	}
}
