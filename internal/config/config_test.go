package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Listen != ":2222" {
		t.Errorf("Listen = %q, want :2222", cfg.Listen)
	}
	if cfg.AppName != "pixelboard" {
		t.Errorf("AppName = %q, want pixelboard", cfg.AppName)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("listen: \":2022\"\nboards_dir: \"/tmp/boards\"\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Listen != ":2022" {
		t.Errorf("Listen = %q, want :2022", cfg.Listen)
	}
	if cfg.BoardsDir != "/tmp/boards" {
		t.Errorf("BoardsDir = %q, want /tmp/boards", cfg.BoardsDir)
	}
	// Unset fields keep defaults.
	if cfg.HostKey != "host_key" {
		t.Errorf("HostKey = %q, want host_key", cfg.HostKey)
	}
	if cfg.DefaultBoard != "demo" {
		t.Errorf("DefaultBoard = %q, want demo", cfg.DefaultBoard)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoadRejectsEmptyListen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("listen: \"\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for empty listen address")
	}
}
