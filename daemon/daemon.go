// daemon/daemon.go
// Copyright(c) 2022-2026 PaneBoard contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package daemon wires together every other package into the bootstrap
// sequence and main run-loop described in §6 "Process boundary": drop
// network access, confirm accessibility trust, load the config file,
// prepopulate the MRU stack, install the event tap, and block on the
// main run-loop until a termination signal arrives.
package daemon

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/browser"
	"github.com/ncruces/zenity"

	"github.com/paneboard/paneboard/clipboard"
	"github.com/paneboard/paneboard/config"
	"github.com/paneboard/paneboard/eventpipe"
	"github.com/paneboard/paneboard/keymap"
	"github.com/paneboard/paneboard/log"
	"github.com/paneboard/paneboard/mru"
	"github.com/paneboard/paneboard/mutator"
	"github.com/paneboard/paneboard/platform"
	"github.com/paneboard/paneboard/switcher"
)

// Options carries the parsed command-line flags into Run.
type Options struct {
	LogLevel  string
	LogDir    string
	ConfigDir string // full path to form.xml, replacing config.Path's result; empty uses the default
}

// Run executes the full bootstrap sequence and then blocks in the main
// run-loop until SIGINT/SIGTERM. It returns only on a fatal bootstrap
// failure (accessibility trust denied, no displays enumerable) or after
// a clean shutdown.
func Run(opt Options) error {
	// Step 1: flags are parsed by the caller (cmd/paneboard/main.go) and
	// passed in as Options.

	// Step 2: logger, constructed before anything else can log.
	lg := log.New(opt.LogLevel, opt.LogDir)
	lg.Info("paneboard: starting")

	// Step 3: drop network access permanently; this can never be undone
	// for the rest of the process's life (§6).
	if err := platform.DropNetworkAccess(); err != nil {
		fatal(lg, "Failed to sandbox network access", err)
		return err
	}

	// Step 4: accessibility trust is load-bearing for every other
	// subsystem; absence is fatal with a user-directed message (§6).
	if !platform.AccessibilityTrusted() {
		platform.PromptAccessibilityTrust()
		if err := browser.OpenURL(platform.AccessibilitySettingsURL); err != nil {
			lg.Warnf("daemon: open accessibility settings URL failed: %v", err)
		}
		err := fmt.Errorf("accessibility access not granted")
		fatal(lg, "PaneBoard needs Accessibility access. Grant it in System Settings, then relaunch.", err)
		return err
	}

	// Step 5: config deploy/load/parse/validate/resolve.
	path, err := config.Path()
	if err != nil {
		fatal(lg, "Failed to resolve the config file path", err)
		return err
	}
	if opt.ConfigDir != "" {
		path = opt.ConfigDir
	}
	if err := config.Deploy(path); err != nil {
		lg.Warnf("daemon: deploy default config failed, trying to load an existing file anyway: %v", err)
	}
	f := config.Load(lg, path, "macos")

	// Step 6: MRU prepopulation. No workspace-activation, per-app focus
	// or termination observers are registered; after this the MRU changes
	// only through the event pipeline's chord-time focus capture and the
	// switcher's prune.
	enum := platform.Enumerator{}
	registry := mru.New(lg, enum)
	if err := registry.Prepopulate(); err != nil {
		lg.Warnf("daemon: mru prepopulate failed, starting with an empty stack: %v", err)
	}

	// Step 7: overlay ABI sessions.
	sw := switcher.New(lg, registry, platform.SwitcherOverlay{})
	history := &clipboard.History{}
	cb := clipboard.New(lg, history, platform.ClipboardOverlay{}, platform.SystemClipboard{})

	displays, err := platform.NewDisplays(f.Quirks())
	if err != nil {
		fatal(lg, "Failed to enumerate displays", err)
		return err
	}
	runner := platform.NewRunner()
	mut := mutator.New(lg, platform.AX{}, displays, platform.NewObserver(), runner, f)

	keyLog := platform.NewKeyLog()

	pipeline := eventpipe.New(lg, keymap.Default, f, registry, sw, cb, platform.Frontmost{}, runner, keyLog,
		func(key string, front eventpipe.FrontmostInfo) {
			mut.RunTileJob(mutator.Job{Key: key, PID: front.PID})
		},
		func(key string) {
			onDisplayMove(lg, mut, platform.Activator{}, key)
		},
		func(commit switcher.Commit) {
			switcher.Apply(platform.Activator{}, commit, lg)
		},
	)

	clipStop := make(chan struct{})
	go platform.WatchClipboard(clipStop, cb.Record)
	defer close(clipStop)

	// Step 8: event tap install plus its watchdog (started inside Install).
	tap, err := platform.Install(lg, pipeline)
	if err != nil {
		fatal(lg, "Failed to install the keyboard/mouse event tap", err)
		return err
	}
	defer tap.Stop()

	stopOnSignal(lg)

	// Step 9: the main run-loop; blocks until stopOnSignal calls
	// platform.StopMainLoop from the signal handler goroutine.
	lg.Info("paneboard: entering main run-loop")
	platform.RunMainLoop()
	lg.Info("paneboard: shutting down")
	return nil
}

// onDisplayMove runs a DisplayMove binding's main-thread work. It
// re-queries the frontmost application because eventpipe's
// onDisplayMove hook only carries the key name, not the chord-time
// FrontmostInfo (§4.9 step 10 only captures that for LayoutAction jobs).
func onDisplayMove(lg *log.Logger, mut *mutator.Mutator, act platform.Activator, key string) {
	pid, err := act.FrontmostApp()
	if err != nil {
		lg.Warnf("DISPLAYMOVE: %s | FAILED reason=%s", key, "no_target")
		return
	}
	mut.ExecuteDisplayMove(key, pid)
}

// stopOnSignal installs a SIGINT/SIGTERM handler that unblocks the main
// run-loop (§6, grounded on the teacher's os/signal + syscall.SIGTERM
// shutdown handling).
func stopOnSignal(lg *log.Logger) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		s := <-sig
		lg.Infof("paneboard: received signal %v, stopping", s)
		platform.StopMainLoop()
	}()
}

// fatal logs err and shows a blocking alert dialog, matching the
// teacher's pattern of surfacing unrecoverable startup failures to the
// user rather than only to the log file.
func fatal(lg *log.Logger, message string, err error) {
	lg.Errorf("daemon: fatal: %s: %v", message, err)
	if zerr := zenity.Error(fmt.Sprintf("%s\n\n%v", message, err), zenity.Title("PaneBoard")); zerr != nil {
		lg.Warnf("daemon: zenity dialog failed: %v", zerr)
	}
}
