// platform/sandbox_darwin.go
// Copyright(c) 2022-2026 PaneBoard contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

//go:build darwin

package platform

/*
#cgo LDFLAGS: -framework Security
#include <sandbox.h>
#include <stdlib.h>

// kSBXProfileNoInternet is one of the predefined profile names
// sandbox_init accepts with SANDBOX_NAMED; it denies AF_INET/AF_INET6
// sockets while leaving local file access, Mach-IPC (accessibility's
// transport), and the overlay FFI boundary untouched.
static int paneboard_sandbox_init(char **errorbuf) {
	return sandbox_init(kSBXProfileNoInternet, SANDBOX_NAMED, errorbuf);
}
*/
import "C"

import "fmt"

// DropNetworkAccess applies the named sandbox profile denying all
// network access (§6 "Process boundary": "drops network access
// permanently at first-line startup"). The drop cannot be undone for
// the lifetime of the process.
func DropNetworkAccess() error {
	var errbuf *C.char
	rc := C.paneboard_sandbox_init(&errbuf)
	if rc != 0 {
		defer C.sandbox_free_error(errbuf)
		return fmt.Errorf("sandbox_init: %s", C.GoString(errbuf))
	}
	return nil
}
