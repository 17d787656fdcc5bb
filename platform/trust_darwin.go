// platform/trust_darwin.go
// Copyright(c) 2022-2026 PaneBoard contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

//go:build darwin

package platform

/*
#cgo LDFLAGS: -framework ApplicationServices
#include <ApplicationServices/ApplicationServices.h>

static Boolean paneboard_ax_trusted_prompting(void) {
	const void *keys[] = {kAXTrustedCheckOptionPrompt};
	const void *values[] = {kCFBooleanTrue};
	CFDictionaryRef opts = CFDictionaryCreate(kCFAllocatorDefault, keys, values, 1,
		&kCFTypeDictionaryKeyCallBacks, &kCFTypeDictionaryValueCallBacks);
	Boolean trusted = AXIsProcessTrustedWithOptions(opts);
	CFRelease(opts);
	return trusted;
}
*/
import "C"

// AccessibilityTrusted reports whether the process currently holds
// accessibility trust (§6 "Process boundary": "absence is fatal with a
// user-directed message"), without prompting the user.
func AccessibilityTrusted() bool {
	return bool(C.AXIsProcessTrusted())
}

// PromptAccessibilityTrust asks the OS to show its own "grant
// accessibility access" alert, then reports the trust state observed at
// that moment (it does not block for the user's eventual choice; the
// caller re-checks AccessibilityTrusted on the next run).
func PromptAccessibilityTrust() bool {
	return bool(C.paneboard_ax_trusted_prompting())
}

// AccessibilitySettingsURL is opened via github.com/pkg/browser by the
// caller (§6, bootstrap step 4) so the fatal message is actionable.
const AccessibilitySettingsURL = "x-apple.systempreferences:com.apple.preference.security?Privacy_Accessibility"
