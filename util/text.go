// util/text.go
// Copyright(c) 2022-2026 PaneBoard contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"hash/fnv"
	"io"
	"strings"
)

type TextWrapConfig struct {
	ColumnLimit int
	Indent      int
	WrapAll     bool
	WrapNoSpace bool
}

func (cfg TextWrapConfig) Wrap(s string) (string, int) {
	if cfg.ColumnLimit <= 0 {
		return s, strings.Count(s, "\n") + 1
	}

	var result strings.Builder
	lines := 1

	// Buffer for the current (not-yet-emitted) line segment
	var currentLine []rune
	lastSpaceIndex := -1 // index of last space in currentLine; -1 means none

	isContinuation := false // true if current physical line is a wrapped continuation
	preformatted := false   // true if current input line should bypass wrapping

	capacityForLine := func() int {
		if isContinuation {
			cap := cfg.ColumnLimit - cfg.Indent
			if cap <= 0 {
				return 1 // ensure forward progress
			}
			return cap
		}
		return cfg.ColumnLimit
	}

	writeIndent := func() {
		for i := 0; i < cfg.Indent; i++ {
			result.WriteRune(' ')
		}
	}

	recomputeLastSpace := func() {
		lastSpaceIndex = -1
		for i := len(currentLine) - 1; i >= 0; i-- {
			if currentLine[i] == ' ' {
				lastSpaceIndex = i
				break
			}
		}
	}

	for _, ch := range s {
		if len(currentLine) == 0 && !isContinuation {
			preformatted = !cfg.WrapAll && ch == ' '
		}

		if preformatted {
			result.WriteRune(ch)
			if ch == '\n' {
				lines++
				isContinuation = false
				preformatted = false
			}
			continue
		}

		currentLine = append(currentLine, ch)
		if ch == ' ' {
			lastSpaceIndex = len(currentLine) - 1
		}

		if ch == '\n' {
			result.WriteString(string(currentLine))
			currentLine = currentLine[:0]
			lastSpaceIndex = -1
			lines++
			isContinuation = false
			continue
		}

		for cap := capacityForLine(); len(currentLine) > cap; cap = capacityForLine() {
			if !cfg.WrapNoSpace && lastSpaceIndex == -1 {
				break
			}

			breakPos := cap
			if !cfg.WrapNoSpace && lastSpaceIndex >= 0 {
				breakPos = lastSpaceIndex + 1
			}

			result.WriteString(string(currentLine[:breakPos]))
			result.WriteRune('\n')
			lines++
			writeIndent()

			currentLine = currentLine[breakPos:]
			isContinuation = true
			recomputeLastSpace()
		}
	}

	if len(currentLine) > 0 {
		result.WriteString(string(currentLine))
	}

	return result.String(), lines
}

// WrapText wraps s at columnLimit using a TextWrapConfig; no non-test
// code calls it.
func WrapText(s string, columnLimit int, indent int, wrapAll bool, noSpace bool) (string, int) {
	cfg := TextWrapConfig{
		ColumnLimit: columnLimit,
		Indent:      indent,
		WrapAll:     wrapAll,
		WrapNoSpace: noSpace,
	}
	return cfg.Wrap(s)
}

// HashString64 returns the 64-bit FNV-1a hash of s. The Form's
// pane-realisation memoization hashes a display's Props (name, width,
// height) with it; the layout key, display index and session epoch sit
// beside that hash in the cache key, unhashed.
func HashString64(s string) uint64 {
	hash := fnv.New64a()
	io.Copy(hash, strings.NewReader(s))
	return hash.Sum64()
}
