// util/generic.go
// Copyright(c) 2022-2026 PaneBoard contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

// Select returns a if cond is true, else b: a ternary-style helper.
func Select[T any](cond bool, a, b T) T {
	if cond {
		return a
	}
	return b
}
