// config/config.go
// Copyright(c) 2022-2026 PaneBoard contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package config implements the Form config file's on-disk lifecycle
// (§6 "Config file"): archiving any existing file at startup, writing
// the embedded default, loading, parsing and validating it, and falling
// back to a fully-disabled Form on failure.
package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/paneboard/paneboard/errkind"
	"github.com/paneboard/paneboard/form"
	"github.com/paneboard/paneboard/log"
)

//go:embed default.xml
var defaultXML []byte

// DirName and FileName together make up the path under the user's
// config directory (§6: "the user's home config directory under
// paneboard/form.xml").
const (
	DirName  = "paneboard"
	FileName = "form.xml"
)

// archiveFloor is the least backup suffix considered (§6: "for the
// least N >= 10000 that is not already taken").
const archiveFloor = 10000

// Path returns the config file's path, resolving the user config
// directory via os.UserConfigDir().
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DirName, FileName), nil
}

// Deploy ensures path's directory exists, archives any existing file by
// renaming it to form.xml.N for the least untaken N >= archiveFloor,
// then writes the embedded default in its place (§6).
func Deploy(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("config: create directory %s: %w", dir, err)
	}

	if _, err := os.Stat(path); err == nil {
		archived, err := nextArchivePath(path)
		if err != nil {
			return err
		}
		if err := os.Rename(path, archived); err != nil {
			return fmt.Errorf("config: archive existing config to %s: %w", archived, err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("config: stat %s: %w", path, err)
	}

	if err := os.WriteFile(path, defaultXML, 0o644); err != nil {
		return fmt.Errorf("config: write default config to %s: %w", path, err)
	}
	return nil
}

func nextArchivePath(path string) (string, error) {
	for n := archiveFloor; ; n++ {
		candidate := fmt.Sprintf("%s.%d", path, n)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate, nil
		} else if err != nil {
			return "", fmt.Errorf("config: stat %s: %w", candidate, err)
		}
	}
}

// Load reads path, parses it, validates the result, and resolves it
// into a runtime Form for platform. On read failure it falls back to
// the embedded default text (§6: "On read failure, fall back to the
// embedded default"). On parse or validation failure, it logs every
// error and returns form.Empty(), running with every binding disabled
// rather than a partially broken Form (§4.4, §7).
func Load(lg *log.Logger, path, platform string) *form.Form {
	data, err := os.ReadFile(path)
	if err != nil {
		lg.Warnf("config: read %s failed, falling back to embedded default: %v", path, err)
		data = defaultXML
	}

	doc, err := form.Parse(bytes.NewReader(data))
	if err != nil {
		lg.Errorf("config: parse failed (%s): %v", errkind.Kind(err), err)
		return form.Empty()
	}

	if errs := form.Validate(doc); len(errs) != 0 {
		for _, e := range errs {
			lg.Errorf("config: validation error: %v", e)
		}
		return form.Empty()
	}

	return form.Resolve(doc, platform)
}
