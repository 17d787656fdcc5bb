// log/stack.go
// Copyright(c) 2022-2026 PaneBoard contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package log

import (
	"fmt"
	"runtime"
	"strings"
)

// StackFrame describes a single call-stack entry.
type StackFrame struct {
	Function string
	File     string
	Line     int
}

func (f StackFrame) String() string {
	return fmt.Sprintf("%s (%s:%d)", f.Function, f.File, f.Line)
}

// StackFrames is a captured call stack, innermost (most recent) frame
// first.
type StackFrames []StackFrame

func (s StackFrames) Strings() []string {
	strs := make([]string, len(s))
	for i, f := range s {
		strs[i] = f.String()
	}
	return strs
}

func (s StackFrames) String() string {
	return strings.Join(s.Strings(), "\n")
}

// Callstack captures the stack of the caller, skipping the Callstack frame
// itself and, when reuse is non-nil, reusing its backing array.
func Callstack(reuse StackFrames) StackFrames {
	const maxDepth = 32
	pc := make([]uintptr, maxDepth)
	// Skip runtime.Callers, Callstack, and the immediate caller (one of
	// Logger's Debug/Info/Warn/Error wrappers).
	n := runtime.Callers(3, pc)
	if n == 0 {
		return reuse[:0]
	}

	frames := reuse[:0]
	iter := runtime.CallersFrames(pc[:n])
	for {
		frame, more := iter.Next()
		frames = append(frames, StackFrame{
			Function: frame.Function,
			File:     frame.File,
			Line:     frame.Line,
		})
		if !more {
			break
		}
	}
	return frames
}
