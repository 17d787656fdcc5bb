// clipboard/clipboard.go
// Copyright(c) 2022-2026 PaneBoard contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package clipboard implements the bounded, deduplicated clipboard
// history and its modal overlay session (§4.8).
package clipboard

import (
	"github.com/paneboard/paneboard/log"
	"github.com/paneboard/paneboard/util"
)

// MaxHistory bounds the clipboard history (§4.8).
const MaxHistory = 50

// History is the deduplicated, bounded clipboard ring. Not
// concurrency-guarded on its own; Session wraps it with the
// process-wide mutex.
type History struct {
	entries []string
}

// Push records s unless it duplicates the current front entry,
// truncating to MaxHistory (§4.8). Non-UTF-8 text never reaches here;
// the platform clipboard-watch callback only delivers valid UTF-8.
func (h *History) Push(s string) {
	if len(h.entries) > 0 && h.entries[0] == s {
		return
	}
	h.entries = append([]string{s}, h.entries...)
	if len(h.entries) > MaxHistory {
		h.entries = h.entries[:MaxHistory]
	}
}

// Entries returns a copy of the history, most-recent-first.
func (h *History) Entries() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

// Overlay is the clipboard's half of the overlay ABI (§6).
type Overlay interface {
	Show(entries []string, highlight int)
	UpdateHighlight(highlight int)
	Hide()
}

// SystemClipboard abstracts the platform pasteboard so Session can set
// the clipboard on Enter without depending on platform code directly.
type SystemClipboard interface {
	SetText(s string) error
}

// Session is the process-wide clipboard overlay singleton (§5).
type Session struct {
	mu util.LoggingMutex
	lg *log.Logger

	history *History
	overlay Overlay
	sys     SystemClipboard

	active    bool
	highlight int
	snapshot  []string
}

// New constructs a Session over the given history, overlay, and system
// clipboard.
func New(lg *log.Logger, history *History, overlay Overlay, sys SystemClipboard) *Session {
	return &Session{lg: lg, history: history, overlay: overlay, sys: sys}
}

// Trigger shows the overlay with the full history highlighted at 0
// (§4.8 trigger: Control+Shift+V).
func (s *Session) Trigger() {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)

	s.snapshot = s.history.Entries()
	s.highlight = 0
	s.active = true
	s.overlay.Show(s.snapshot, 0)
}

// Record appends text to the history under the session's mutex,
// satisfying History's "Session wraps it with the process-wide mutex"
// contract. Called from the platform clipboard-watch callback whenever
// a new string enters the system pasteboard (§4.8).
func (s *Session) Record(text string) {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)
	s.history.Push(text)
}

// Active reports whether the overlay session is in progress; while
// true, the event pipeline must route all key-downs here (§4.9 step
// 4) rather than to the layout/switcher/clipboard-chord paths.
func (s *Session) Active() bool {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)
	return s.active
}

// Key identifies the arrow/Enter/Escape keys the overlay session
// consumes; any other key is ignored per §4.8.
type Key int

const (
	KeyOther Key = iota
	KeyUp
	KeyDown
	KeyEnter
	KeyEscape
)

// HandleKey processes one key-down while the session is active (§4.8).
// Arrow keys move the highlight within bounds, without wrap. Enter
// commits the highlighted entry to the system clipboard and closes the
// overlay. Escape closes it without committing.
func (s *Session) HandleKey(k Key) {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)
	if !s.active {
		return
	}

	switch k {
	case KeyUp:
		if s.highlight > 0 {
			s.highlight--
			s.overlay.UpdateHighlight(s.highlight)
		}
	case KeyDown:
		if s.highlight < len(s.snapshot)-1 {
			s.highlight++
			s.overlay.UpdateHighlight(s.highlight)
		}
	case KeyEnter:
		if s.highlight >= 0 && s.highlight < len(s.snapshot) {
			if err := s.sys.SetText(s.snapshot[s.highlight]); err != nil {
				s.lg.Warnf("clipboard: set system clipboard failed: %v", err)
			}
		}
		s.closeLocked()
	case KeyEscape:
		s.closeLocked()
	}
}

func (s *Session) closeLocked() {
	s.active = false
	s.snapshot = nil
	s.highlight = 0
	s.overlay.Hide()
}
