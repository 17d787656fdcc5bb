// platform/doc.go
// Copyright(c) 2022-2026 PaneBoard contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

//go:build darwin

// Package platform is the darwin side of every interface the rest of
// the tree defines against its own concerns (mru.AppEnumerator,
// switcher.Activator, switcher.Overlay, clipboard.SystemClipboard,
// clipboard.Overlay, mutator.AX, mutator.Displays, mutator.Observer,
// eventpipe.Frontmost, eventpipe.Runner, eventpipe.KeyLog). It is the
// one place, besides keymap's virtual-keycode table, where targeting a
// platform other than macOS would mean new code rather than a
// recompile (§9 "OS-API polymorphism").
//
// Every file here only builds on darwin; most reach Cocoa,
// ApplicationServices, CoreGraphics or CoreFoundation through cgo.
package platform
