package config

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/micha/vm-master-control/panel"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.UI.PollInterval != DefaultPollInterval {
		t.Errorf("poll interval = %v", cfg.UI.PollInterval)
	}
	s := cfg.Settings()
	if !reflect.DeepEqual(s.Reserved, panel.DefaultReserved) || s.CableMatch != panel.DefaultCableMatch {
		t.Errorf("settings = %+v", s)
	}
	if s.Routing.SecondaryStrip != 1 || s.WindowTitle != "Voicemeeter Banana" || !s.ShutdownOnExit {
		t.Errorf("settings = %+v", s)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
mixer:
  kind: potato
  settle_delay: 250ms
  minimize_window: false
  shutdown_on_exit: false
devices:
  reserved: ["CABLE", "VAIO", "Hi-Fi"]
routing:
  secondary_strip: 2
ui:
  poll_interval: 200ms
  hotkey: F8
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	s := cfg.Settings()
	if s.SettleDelay != 250*time.Millisecond || s.WindowTitle != "" || s.ShutdownOnExit {
		t.Errorf("mixer settings = %+v", s)
	}
	if !reflect.DeepEqual(s.Reserved, []string{"CABLE", "VAIO", "Hi-Fi"}) {
		t.Errorf("reserved = %q", s.Reserved)
	}
	if s.CableMatch != panel.DefaultCableMatch {
		t.Errorf("unset keys should keep defaults, cable match = %q", s.CableMatch)
	}
	if s.Routing.SecondaryStrip != 2 || s.Routing.PrimaryStrip != 0 {
		t.Errorf("routing = %+v", s.Routing)
	}
	if cfg.UI.PollInterval != 200*time.Millisecond || cfg.UI.Hotkey != "F8" {
		t.Errorf("ui = %+v", cfg.UI)
	}
	if cfg.Kind() != "potato" {
		t.Errorf("kind = %q", cfg.Kind())
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"kind":          "mixer:\n  kind: strawberry\n",
		"poll interval": "ui:\n  poll_interval: 1ms\n",
		"same strips":   "routing:\n  primary_strip: 1\n",
		"cable match":   "devices:\n  cable_match: \"  \"\n",
		"syntax":        "ui: [",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Fatalf("expected an error")
			}
		})
	}
}

func TestPathPrecedence(t *testing.T) {
	t.Setenv(EnvPath, "/tmp/env.yaml")
	if p, _ := Path("/tmp/flag.yaml"); p != "/tmp/flag.yaml" {
		t.Errorf("flag path ignored: %q", p)
	}
	if p, _ := Path(""); p != "/tmp/env.yaml" {
		t.Errorf("env path ignored: %q", p)
	}
}

func TestWatchReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("ui:\n  hotkey: F9\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	got := make(chan *Config, 4)
	done := make(chan error, 1)
	go func() { done <- Watch(ctx, path, func(c *Config) { got <- c }) }()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(path, []byte("ui:\n  hotkey: F10\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case c := <-got:
		if c.UI.Hotkey != "F10" {
			t.Fatalf("reloaded hotkey = %q", c.UI.Hotkey)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no reload observed")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Watch did not stop")
	}
}
