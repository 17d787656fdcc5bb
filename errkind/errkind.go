// errkind/errkind.go
// Copyright(c) 2022-2026 PaneBoard contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package errkind defines the fixed taxonomy of error kinds PaneBoard
// reports (§7): a sentinel per kind plus a reverse string→error table so
// a log line's reason=<kind> tag survives being reconstructed from text.
package errkind

import "errors"

var (
	// ErrPermission: accessibility trust missing or revoked.
	ErrPermission = errors.New("ax_permission_missing_or_revoked")

	// ErrNotReady: the application's accessibility tree is not yet
	// queryable; triggers the observer-retry path once per job.
	ErrNotReady = errors.New("not_ready")

	// ErrCannotComplete: the application refused the operation.
	ErrCannotComplete = errors.New("cannot_complete")

	// ErrParse: the config XML is malformed or schema-violating.
	ErrParse = errors.New("parse_error")

	// ErrValidation: a batch of reference/arity errors in the parse tree.
	ErrValidation = errors.New("validation_error")

	// ErrNoTarget: no focused window, empty MRU, or empty clipboard
	// history.
	ErrNoTarget = errors.New("no_target")

	// ErrIndexOutOfRange: a DisplayMove target or pane index is out of
	// bounds.
	ErrIndexOutOfRange = errors.New("index_out_of_range")

	// ErrTapDisabled: the OS disabled the event tap; the watchdog
	// re-enables it.
	ErrTapDisabled = errors.New("tap_disabled")
)

// byString mirrors the teacher's errorStringToError reverse lookup: there
// it exists to cross an RPC boundary, here it exists to keep the
// reason=<kind> log tag stable and greppable across releases even if the
// error only survives as a logged string.
var byString = map[string]error{
	ErrPermission.Error():      ErrPermission,
	ErrNotReady.Error():        ErrNotReady,
	ErrCannotComplete.Error():  ErrCannotComplete,
	ErrParse.Error():           ErrParse,
	ErrValidation.Error():      ErrValidation,
	ErrNoTarget.Error():        ErrNoTarget,
	ErrIndexOutOfRange.Error(): ErrIndexOutOfRange,
	ErrTapDisabled.Error():     ErrTapDisabled,
}

// FromString looks up a sentinel by its exact Error() text, returning ok
// = false if s doesn't name one of the fixed kinds.
func FromString(s string) (error, bool) {
	e, ok := byString[s]
	return e, ok
}

// all lists every sentinel, in declaration order, for classification.
var all = []error{
	ErrPermission, ErrNotReady, ErrCannotComplete, ErrParse, ErrValidation,
	ErrNoTarget, ErrIndexOutOfRange, ErrTapDisabled,
}

// Kind classifies err against the fixed sentinel table using errors.Is,
// returning the matching sentinel's text for a reason=<kind> log tag, or
// "unknown" if err doesn't wrap any of them.
func Kind(err error) string {
	if err == nil {
		return ""
	}
	for _, s := range all {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "unknown"
}
