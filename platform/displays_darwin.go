// platform/displays_darwin.go
// Copyright(c) 2022-2026 PaneBoard contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

//go:build darwin

package platform

/*
#cgo LDFLAGS: -framework Cocoa
#import <Cocoa/Cocoa.h>
#include <string.h>

typedef struct {
	double vx, vy, vw, vh;
	double fx, fy, fw, fh;
	const char *name;
} paneboard_screen_t;

// paneboard_screens fills out, capacity cap, with one entry per active
// NSScreen, in NSScreen.screens order, and returns the count. Cocoa's
// coordinate system has its origin at the bottom-left of the primary
// screen; we flip to the top-left-origin convention the rest of the
// tree uses by subtracting from the primary screen's full-frame height.
int paneboard_screens(paneboard_screen_t *out, int cap) {
	@autoreleasepool {
		NSArray<NSScreen *> *screens = [NSScreen screens];
		double primaryHeight = screens.count > 0 ? screens[0].frame.size.height : 0;
		int n = (int)screens.count;
		if (n > cap) n = cap;
		for (int i = 0; i < n; i++) {
			NSScreen *s = screens[i];
			NSRect vis = s.visibleFrame;
			NSRect full = s.frame;
			out[i].vx = vis.origin.x;
			out[i].vy = primaryHeight - (vis.origin.y + vis.size.height);
			out[i].vw = vis.size.width;
			out[i].vh = vis.size.height;
			out[i].fx = full.origin.x;
			out[i].fy = primaryHeight - (full.origin.y + full.size.height);
			out[i].fw = full.size.width;
			out[i].fh = full.size.height;
			NSString *name = s.localizedName;
			out[i].name = strdup(name.UTF8String);
		}
		return n;
	}
}
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/paneboard/paneboard/display"
	"github.com/paneboard/paneboard/geom"
)

const maxScreens = 32

type rawFrame struct {
	Name          string
	Visible, Full geom.PixelRect
}

func gatherScreens() []rawFrame {
	buf := make([]C.paneboard_screen_t, maxScreens)
	n := int(C.paneboard_screens(&buf[0], C.int(maxScreens)))
	out := make([]rawFrame, n)
	for i := 0; i < n; i++ {
		s := buf[i]
		out[i] = rawFrame{
			Name:    C.GoString(s.name),
			Visible: geom.PixelRect{X: float64(s.vx), Y: float64(s.vy), Width: float64(s.vw), Height: float64(s.vh)},
			Full:    geom.PixelRect{X: float64(s.fx), Y: float64(s.fy), Width: float64(s.fw), Height: float64(s.fh)},
		}
		C.free(unsafe.Pointer(s.name))
	}
	return out
}

// Displays implements mutator.Displays. The design Info list (Props) is
// gathered once at construction and never re-corrected (§4.2); Viewports
// re-reads the OS frames and reapplies the same quirk on every call.
type Displays struct {
	infos []display.Info
}

// NewDisplays gathers the startup display list and applies quirks,
// implementing §4.2's "at startup, enumerate displays... record the
// corrected design dimensions."
func NewDisplays(quirks []display.Quirk) (*Displays, error) {
	raw := gatherScreens()
	if len(raw) == 0 {
		return nil, fmt.Errorf("platform: no displays enumerated")
	}
	infos := make([]display.Info, len(raw))
	for i, r := range raw {
		inset := display.MaxBottomInset(quirks, r.Name, "macos")
		vf := display.Correct(r.Visible, r.Full, inset)
		infos[i] = display.Info{
			Index: i, Name: r.Name,
			DesignWidth: vf.Width, DesignHeight: vf.Height,
			Quirks: quirks,
		}
	}
	return &Displays{infos: infos}, nil
}

// Viewports re-reads the live OS frames in the same enumeration order
// captured at startup and reapplies each display's quirk inset.
func (d *Displays) Viewports() []geom.PixelRect {
	raw := gatherScreens()
	out := make([]geom.PixelRect, 0, len(d.infos))
	for i, info := range d.infos {
		if i >= len(raw) {
			// A display vanished since startup; keep going with what's
			// left rather than panicking mid-chord.
			break
		}
		inset := display.MaxBottomInset(info.Quirks, info.Name, "macos")
		out = append(out, display.Correct(raw[i].Visible, raw[i].Full, inset))
	}
	return out
}

func (d *Displays) Props(index int) display.Props {
	return d.infos[index].ToProps()
}
