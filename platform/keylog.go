// platform/keylog.go
// Copyright(c) 2022-2026 PaneBoard contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

//go:build darwin

package platform

import (
	"os"
	"strings"

	"github.com/goforj/godump"

	"github.com/paneboard/paneboard/eventpipe"
)

// EnvLogKeys is the environment variable that turns on the diagnostic
// key-state dump (§6 "Environment variables").
const EnvLogKeys = "PANEBOARD_LOG_KEYS"

// KeyLog implements eventpipe.KeyLog by dumping every tap event with
// godump straight to stdout, never through the rotating log file: this
// is a developer-only firehose, not an operational log.
type KeyLog struct {
	enabled bool
}

// NewKeyLog reads EnvLogKeys once at startup.
func NewKeyLog() *KeyLog {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(EnvLogKeys)))
	return &KeyLog{enabled: v == "1" || v == "true"}
}

func (k *KeyLog) Enabled() bool { return k.enabled }

func (k *KeyLog) Log(ev eventpipe.Event, name string) {
	godump.Dump(struct {
		Kind       eventpipe.Kind
		Keycode    int
		Name       string
		Modifiers  eventpipe.Modifiers
		AutoRepeat bool
	}{ev.Kind, ev.Keycode, name, ev.Modifiers, ev.AutoRepeat})
}

var _ eventpipe.KeyLog = (*KeyLog)(nil)
