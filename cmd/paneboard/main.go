// cmd/paneboard/main.go
// Copyright(c) 2022-2026 PaneBoard contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/paneboard/paneboard/daemon"
)

func init() {
	// CGEventTapCreate and the AXObserver run-loop source must live on
	// the same OS thread that later calls CFRunLoopRun; pin main() to it.
	runtime.LockOSThread()
}

func main() {
	logLevel := flag.String("loglevel", "info", "logging level: debug, info, warn, or error")
	logDir := flag.String("logdir", "", "directory for the rotating log file (default: the user's config directory)")
	configPath := flag.String("config", "", "path to form.xml (default: the user's config directory)")
	flag.Parse()

	if err := daemon.Run(daemon.Options{
		LogLevel:  *logLevel,
		LogDir:    *logDir,
		ConfigDir: *configPath,
	}); err != nil {
		fmt.Fprintln(os.Stderr, "paneboard:", err)
		os.Exit(1)
	}
}
