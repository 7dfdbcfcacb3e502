// Package config loads the control panel's settings from an optional YAML
// file and watches it for edits.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/micha/vm-master-control/panel"
	"github.com/micha/vm-master-control/voicemeeter"
)

// EnvPath overrides the config file location.
const EnvPath = "VMCTL_CONFIG"

const (
	DefaultPollInterval  = 100 * time.Millisecond
	DefaultHotkey        = "F9"
	DefaultActivityLines = 6
	minPollInterval      = 20 * time.Millisecond
)

type Config struct {
	Mixer struct {
		Kind           string        `yaml:"kind"`
		DLLPath        string        `yaml:"dll_path"`
		SettleDelay    time.Duration `yaml:"settle_delay"`
		MinimizeWindow bool          `yaml:"minimize_window"`
		ShutdownOnExit bool          `yaml:"shutdown_on_exit"`
	} `yaml:"mixer"`

	Devices struct {
		Reserved   []string `yaml:"reserved"`
		CableMatch string   `yaml:"cable_match"`
	} `yaml:"devices"`

	Routing struct {
		MasterBus      int `yaml:"master_bus"`
		PrimaryStrip   int `yaml:"primary_strip"`
		SecondaryStrip int `yaml:"secondary_strip"`
	} `yaml:"routing"`

	UI struct {
		PollInterval  time.Duration `yaml:"poll_interval"`
		Hotkey        string        `yaml:"hotkey"`
		ActivityLines int           `yaml:"activity_lines"`
		LogFile       string        `yaml:"log_file"`
	} `yaml:"ui"`
}

// Default returns the settings used when no file is present.
func Default() *Config {
	d := panel.DefaultSettings()
	var c Config
	c.Mixer.Kind = string(voicemeeter.Banana)
	c.Mixer.SettleDelay = d.SettleDelay
	c.Mixer.MinimizeWindow = true
	c.Mixer.ShutdownOnExit = d.ShutdownOnExit
	c.Devices.Reserved = d.Reserved
	c.Devices.CableMatch = d.CableMatch
	c.Routing.MasterBus = d.Routing.MasterBus
	c.Routing.PrimaryStrip = d.Routing.PrimaryStrip
	c.Routing.SecondaryStrip = d.Routing.SecondaryStrip
	c.UI.PollInterval = DefaultPollInterval
	c.UI.Hotkey = DefaultHotkey
	c.UI.ActivityLines = DefaultActivityLines
	return &c
}

// Path returns the config file to use: flagPath if set, then $VMCTL_CONFIG,
// then config.yaml under the user config directory.
func Path(flagPath string) (string, error) {
	if flagPath != "" {
		return flagPath, nil
	}
	if env := os.Getenv(EnvPath); env != "" {
		return env, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not get user config directory: %w", err)
	}
	return filepath.Join(dir, "vm-master-control", "config.yaml"), nil
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings the panel cannot run with.
func (c *Config) Validate() error {
	if _, err := voicemeeter.ParseKind(c.Mixer.Kind); err != nil {
		return err
	}
	if c.UI.PollInterval < minPollInterval {
		return fmt.Errorf("ui.poll_interval %v is below %v", c.UI.PollInterval, minPollInterval)
	}
	if c.Mixer.SettleDelay < 0 {
		return fmt.Errorf("mixer.settle_delay must not be negative")
	}
	for name, v := range map[string]int{
		"routing.master_bus":      c.Routing.MasterBus,
		"routing.primary_strip":   c.Routing.PrimaryStrip,
		"routing.secondary_strip": c.Routing.SecondaryStrip,
	} {
		if v < 0 {
			return fmt.Errorf("%s must not be negative", name)
		}
	}
	if c.Routing.PrimaryStrip == c.Routing.SecondaryStrip {
		return fmt.Errorf("routing.primary_strip and routing.secondary_strip must differ")
	}
	if strings.TrimSpace(c.Devices.CableMatch) == "" {
		return fmt.Errorf("devices.cable_match must not be empty")
	}
	if c.UI.ActivityLines < 0 {
		return fmt.Errorf("ui.activity_lines must not be negative")
	}
	return nil
}

// Kind returns the configured Voicemeeter edition.
func (c *Config) Kind() voicemeeter.Kind {
	k, err := voicemeeter.ParseKind(c.Mixer.Kind)
	if err != nil {
		return voicemeeter.Banana
	}
	return k
}

// Settings converts the file into the panel's settings.
func (c *Config) Settings() panel.Settings {
	s := panel.Settings{
		Routing: panel.Routing{
			MasterBus:      c.Routing.MasterBus,
			PrimaryStrip:   c.Routing.PrimaryStrip,
			SecondaryStrip: c.Routing.SecondaryStrip,
		},
		Reserved:       append([]string(nil), c.Devices.Reserved...),
		CableMatch:     c.Devices.CableMatch,
		SettleDelay:    c.Mixer.SettleDelay,
		ShutdownOnExit: c.Mixer.ShutdownOnExit,
	}
	if c.Mixer.MinimizeWindow {
		s.WindowTitle = c.Kind().WindowTitle()
	}
	return s
}
