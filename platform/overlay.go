// platform/overlay.go
// Copyright(c) 2022-2026 PaneBoard contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

//go:build darwin

package platform

/*
// The six overlay ABI functions (§6 "Overlay ABI") are implemented by a
// separate native UI component, not by this repository; these are the
// extern prototypes PaneBoard links against. String arrays are
// null-terminated UTF-8 C strings, passed across one call and not
// retained by the callee.
void paneboard_switcher_show(const char **bundleIDs, const char **titles, const char **states, int count, int highlight);
void paneboard_switcher_update_highlight(int highlight);
void paneboard_switcher_hide(void);

void paneboard_clipboard_show(const char **entries, int count, int highlight);
void paneboard_clipboard_update_highlight(int highlight);
void paneboard_clipboard_hide(void);
*/
import "C"

import (
	"unsafe"

	"github.com/paneboard/paneboard/clipboard"
	"github.com/paneboard/paneboard/mru"
	"github.com/paneboard/paneboard/switcher"
)

// cStringArray builds a C array of C strings from ss, returning the
// array pointer and a release func the caller must defer. The overlay
// ABI does not retain the array past the call (§6), so freeing
// immediately after the call is safe.
func cStringArray(ss []string) (**C.char, func()) {
	if len(ss) == 0 {
		return nil, func() {}
	}
	arr := C.malloc(C.size_t(len(ss)) * C.size_t(unsafe.Sizeof(uintptr(0))))
	slice := unsafe.Slice((**C.char)(arr), len(ss))
	for i, s := range ss {
		slice[i] = C.CString(s)
	}
	return (**C.char)(arr), func() {
		for _, cs := range slice {
			C.free(unsafe.Pointer(cs))
		}
		C.free(arr)
	}
}

// SwitcherOverlay implements switcher.Overlay against the overlay ABI.
// The ABI's bundleIDs array is filled with each entry's application
// display name (mru.Entry.App); MRU entries carry no bundle identifier.
type SwitcherOverlay struct{}

func (SwitcherOverlay) Show(snapshot []mru.Entry, highlight int) {
	bundleIDs := make([]string, len(snapshot))
	titles := make([]string, len(snapshot))
	states := make([]string, len(snapshot))
	for i, e := range snapshot {
		bundleIDs[i] = e.App
		titles[i] = e.Title
		states[i] = e.State.String()
	}

	bPtr, bFree := cStringArray(bundleIDs)
	defer bFree()
	tPtr, tFree := cStringArray(titles)
	defer tFree()
	sPtr, sFree := cStringArray(states)
	defer sFree()

	C.paneboard_switcher_show(bPtr, tPtr, sPtr, C.int(len(snapshot)), C.int(highlight))
}

func (SwitcherOverlay) UpdateHighlight(highlight int) {
	C.paneboard_switcher_update_highlight(C.int(highlight))
}

func (SwitcherOverlay) Hide() {
	C.paneboard_switcher_hide()
}

var _ switcher.Overlay = SwitcherOverlay{}

// ClipboardOverlay implements clipboard.Overlay against the overlay ABI.
type ClipboardOverlay struct{}

func (ClipboardOverlay) Show(entries []string, highlight int) {
	ptr, free := cStringArray(entries)
	defer free()
	C.paneboard_clipboard_show(ptr, C.int(len(entries)), C.int(highlight))
}

func (ClipboardOverlay) UpdateHighlight(highlight int) {
	C.paneboard_clipboard_update_highlight(C.int(highlight))
}

func (ClipboardOverlay) Hide() {
	C.paneboard_clipboard_hide()
}

var _ clipboard.Overlay = ClipboardOverlay{}
