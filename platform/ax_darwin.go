// platform/ax_darwin.go
// Copyright(c) 2022-2026 PaneBoard contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

//go:build darwin

package platform

/*
#cgo LDFLAGS: -framework ApplicationServices
#include <ApplicationServices/ApplicationServices.h>

static AXUIElementRef paneboard_focused_window(pid_t pid, int *notReady, int *cannotComplete) {
	AXUIElementRef app = AXUIElementCreateApplication(pid);
	AXUIElementRef win = NULL;
	AXError err = AXUIElementCopyAttributeValue(app, kAXFocusedWindowAttribute, (CFTypeRef *)&win);
	CFRelease(app);
	if (err == kAXErrorCannotComplete || err == kAXErrorNotImplemented) {
		*cannotComplete = 1;
		return NULL;
	}
	if (err != kAXErrorSuccess || win == NULL) {
		*notReady = 1;
		return NULL;
	}
	return win;
}

static AXError paneboard_copy_rect(AXUIElementRef win, CFStringRef attr, CGPoint *pt, CGSize *sz, int isPoint) {
	AXValueRef v = NULL;
	AXError err = AXUIElementCopyAttributeValue(win, attr, (CFTypeRef *)&v);
	if (err != kAXErrorSuccess || v == NULL) {
		return err;
	}
	if (isPoint) {
		AXValueGetValue(v, kAXValueCGPointType, pt);
	} else {
		AXValueGetValue(v, kAXValueCGSizeType, sz);
	}
	CFRelease(v);
	return kAXErrorSuccess;
}

static AXError paneboard_set_position(AXUIElementRef win, double x, double y) {
	CGPoint pt = CGPointMake(x, y);
	AXValueRef v = AXValueCreate(kAXValueCGPointType, &pt);
	AXError err = AXUIElementSetAttributeValue(win, kAXPositionAttribute, v);
	CFRelease(v);
	return err;
}

static AXError paneboard_set_size(AXUIElementRef win, double w, double h) {
	CGSize sz = CGSizeMake(w, h);
	AXValueRef v = AXValueCreate(kAXValueCGSizeType, &sz);
	AXError err = AXUIElementSetAttributeValue(win, kAXSizeAttribute, v);
	CFRelease(v);
	return err;
}
*/
import "C"

import (
	"errors"
	"fmt"

	"github.com/paneboard/paneboard/errkind"
	"github.com/paneboard/paneboard/geom"
	"github.com/paneboard/paneboard/mutator"
)

// axHandle is the scoped AXUIElementRef wrapper mutator.Handle resolves
// to on darwin (§5 "Resource lifecycle": released on every exit path).
type axHandle struct {
	ref C.AXUIElementRef
}

// AX implements mutator.AX against the Accessibility API.
type AX struct{}

func (AX) FocusedWindowHandle(pid int) (mutator.Handle, error) {
	var notReady, cannotComplete C.int
	ref := C.paneboard_focused_window(C.pid_t(pid), &notReady, &cannotComplete)
	if ref == nil {
		if cannotComplete != 0 {
			return nil, fmt.Errorf("pid %d: %w", pid, errkind.ErrCannotComplete)
		}
		return nil, fmt.Errorf("pid %d: %w", pid, errkind.ErrNotReady)
	}
	return &axHandle{ref: ref}, nil
}

func (AX) Geometry(h mutator.Handle) (geom.PixelRect, error) {
	hh, ok := h.(*axHandle)
	if !ok {
		return geom.PixelRect{}, errors.New("platform: not an axHandle")
	}
	var pt C.CGPoint
	var sz C.CGSize
	if C.paneboard_copy_rect(hh.ref, C.kAXPositionAttribute, &pt, nil, 1) != C.kAXErrorSuccess {
		return geom.PixelRect{}, fmt.Errorf("read position: %w", errkind.ErrCannotComplete)
	}
	if C.paneboard_copy_rect(hh.ref, C.kAXSizeAttribute, nil, &sz, 0) != C.kAXErrorSuccess {
		return geom.PixelRect{}, fmt.Errorf("read size: %w", errkind.ErrCannotComplete)
	}
	return geom.PixelRect{
		X: float64(pt.x), Y: float64(pt.y),
		Width: float64(sz.width), Height: float64(sz.height),
	}, nil
}

func (AX) SetPosition(h mutator.Handle, x, y float64) error {
	hh, ok := h.(*axHandle)
	if !ok {
		return errors.New("platform: not an axHandle")
	}
	if C.paneboard_set_position(hh.ref, C.double(x), C.double(y)) != C.kAXErrorSuccess {
		return fmt.Errorf("set position: %w", errkind.ErrCannotComplete)
	}
	return nil
}

func (AX) SetSize(h mutator.Handle, w, height float64) error {
	hh, ok := h.(*axHandle)
	if !ok {
		return errors.New("platform: not an axHandle")
	}
	if C.paneboard_set_size(hh.ref, C.double(w), C.double(height)) != C.kAXErrorSuccess {
		return fmt.Errorf("set size: %w", errkind.ErrCannotComplete)
	}
	return nil
}

func (AX) Release(h mutator.Handle) {
	if hh, ok := h.(*axHandle); ok && hh.ref != nil {
		C.CFRelease(C.CFTypeRef(hh.ref))
		hh.ref = nil
	}
}

var _ mutator.AX = AX{}
