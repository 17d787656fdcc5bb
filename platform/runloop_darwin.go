// platform/runloop_darwin.go
// Copyright(c) 2022-2026 PaneBoard contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

//go:build darwin

package platform

/*
#include <CoreFoundation/CoreFoundation.h>

static void paneboard_run_main_loop(void) {
	CFRunLoopRun();
}

static void paneboard_stop_main_loop(void) {
	CFRunLoopStop(CFRunLoopGetMain());
}
*/
import "C"

// RunMainLoop enters step 9 of the bootstrap sequence ("Enter the main
// run-loop") and blocks until StopMainLoop is called. Must run on the
// OS thread the event tap's run-loop source was installed on (the
// process's main thread, by convention and by runtime.LockOSThread in
// cmd/paneboard).
func RunMainLoop() {
	C.paneboard_run_main_loop()
}

// StopMainLoop unblocks RunMainLoop, used from the process's SIGTERM
// handler.
func StopMainLoop() {
	C.paneboard_stop_main_loop()
}
