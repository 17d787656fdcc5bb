// config/config_test.go
// Copyright(c) 2022-2026 PaneBoard contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/paneboard/paneboard/log"
)

func testLogger() *log.Logger { return log.New("error", "") }

func TestDeployWritesDefaultWhenAbsent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DirName, FileName)
	if err := Deploy(path); err != nil {
		t.Fatalf("Deploy: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != string(defaultXML) {
		t.Error("deployed file does not match embedded default")
	}
}

func TestDeployArchivesExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DirName, FileName)
	if err := Deploy(path); err != nil {
		t.Fatalf("first Deploy: %v", err)
	}
	if err := os.WriteFile(path, []byte("<Form><custom/></Form>"), 0o644); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	if err := Deploy(path); err != nil {
		t.Fatalf("second Deploy: %v", err)
	}

	archived := filepath.Join(dir, DirName, FileName+".10000")
	data, err := os.ReadFile(archived)
	if err != nil {
		t.Fatalf("archived file missing: %v", err)
	}
	if string(data) != "<Form><custom/></Form>" {
		t.Errorf("archived content = %q, want custom marker preserved", data)
	}

	fresh, err := os.ReadFile(path)
	if err != nil || string(fresh) != string(defaultXML) {
		t.Error("expected fresh default written after archiving")
	}
}

func TestDeployArchivesToNextFreeSuffix(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DirName, FileName)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path+".10000", []byte("taken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("<Form/>"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := Deploy(path); err != nil {
		t.Fatalf("Deploy: %v", err)
	}

	data, err := os.ReadFile(path + ".10001")
	if err != nil || string(data) != "<Form/>" {
		t.Errorf("expected archive at .10001, err=%v data=%q", err, data)
	}
}

func TestLoadValidDefaultConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DirName, FileName)
	if err := Deploy(path); err != nil {
		t.Fatalf("Deploy: %v", err)
	}
	f := Load(testLogger(), path, "macos")
	if f == nil {
		t.Fatal("Load returned nil")
	}
	if _, ok := f.Action("h"); !ok {
		t.Error("expected default config to bind key 'h'")
	}
}

func TestLoadMissingFileFallsBackToEmbeddedDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "does-not-exist", FileName)
	f := Load(testLogger(), path, "macos")
	if _, ok := f.Action("h"); !ok {
		t.Error("expected fallback to embedded default to still bind key 'h'")
	}
}

func TestLoadParseFailureDisablesAllBindings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DirName, FileName)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("<Form><Unknown/></Form>"), 0o644); err != nil {
		t.Fatal(err)
	}

	f := Load(testLogger(), path, "macos")
	if _, ok := f.Action("h"); ok {
		t.Error("expected all bindings disabled after parse failure")
	}
}
