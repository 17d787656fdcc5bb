// errkind/errkind_test.go
// Copyright(c) 2022-2026 PaneBoard contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package errkind

import (
	"fmt"
	"testing"
)

func TestKindWrapped(t *testing.T) {
	err := fmt.Errorf("window 42: %w", ErrNotReady)
	if got := Kind(err); got != ErrNotReady.Error() {
		t.Errorf("Kind() = %q, want %q", got, ErrNotReady.Error())
	}
}

func TestKindUnknown(t *testing.T) {
	err := fmt.Errorf("some other failure")
	if got := Kind(err); got != "unknown" {
		t.Errorf("Kind() = %q, want unknown", got)
	}
}

func TestFromString(t *testing.T) {
	tests := []struct {
		in   string
		want error
		ok   bool
	}{
		{ErrPermission.Error(), ErrPermission, true},
		{ErrTapDisabled.Error(), ErrTapDisabled, true},
		{"not_a_kind", nil, false},
	}
	for _, tt := range tests {
		got, ok := FromString(tt.in)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("FromString(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
