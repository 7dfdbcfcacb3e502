package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/micha/vm-master-control/audio"
	"github.com/micha/vm-master-control/config"
	"github.com/micha/vm-master-control/hotkey"
	"github.com/micha/vm-master-control/monitor"
	"github.com/micha/vm-master-control/parser"
	"github.com/micha/vm-master-control/setup"
	"github.com/micha/vm-master-control/ui"
	"github.com/micha/vm-master-control/voicemeeter"
)

func listAudioDevices() {
	fmt.Println(audio.GetDeviceHelpText())
	devices, err := audio.GetAvailableDevices()
	if err != nil {
		fmt.Printf("Error listing devices: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Playback devices:")
	for i, name := range devices.Playback {
		fmt.Printf("  %d. %s\n", i+1, name)
	}
	fmt.Println("Capture devices:")
	for i, name := range devices.Capture {
		fmt.Printf("  %d. %s\n", i+1, name)
	}
	os.Exit(0)
}

// openRemote picks the mixer binding. Setup runs before the TUI takes over
// the terminal, so its prompts read plain stdin.
func openRemote(cfg *config.Config, simulate bool, dll string, skipSetup bool) voicemeeter.Remote {
	if simulate {
		inputs, outputs := audio.SimulatorTables()
		fmt.Printf("Simulating %s with %d inputs and %d outputs\n", cfg.Kind().WindowTitle(), len(inputs), len(outputs))
		return voicemeeter.NewSim(inputs, outputs)
	}

	if dll == "" {
		dll = cfg.Mixer.DLLPath
	}
	if skipSetup {
		if dll == "" {
			if found, err := setup.FindRemoteDLL(""); err == nil {
				dll = found
			}
		}
	} else if found, err := setup.EnsureEnvironment(bufio.NewScanner(os.Stdin), dll); err != nil {
		fmt.Printf("Warning: %v\n", err)
	} else {
		dll = found
	}
	if dll == "" {
		// Let the loader search PATH; a miss shows up as a connection failure.
		dll = setup.DLLName()
	}
	return voicemeeter.New(dll, cfg.Kind())
}

func followLog(ctx context.Context, p *ui.Program, path string) {
	mon, err := monitor.NewMonitor(path)
	if err != nil {
		log.Printf("[monitor] %v", err)
		return
	}
	defer mon.Stop()
	mon.Entries(ctx, func(e parser.Entry) { p.Send(ui.ActivityMsg(e)) })
}

func watchConfig(ctx context.Context, p *ui.Program, path string) {
	err := config.Watch(ctx, path, func(c *config.Config) {
		p.Send(ui.ConfigMsg{Settings: c.Settings(), PollInterval: c.UI.PollInterval})
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("[config] not watching %s: %v", path, err)
	}
}

func listenHotkey(ctx context.Context, p *ui.Program, name string) {
	if hotkeyLabel(name) == "" {
		return
	}
	k, err := hotkey.ParseKey(name)
	if err != nil {
		log.Printf("[hotkey] %v", err)
		return
	}
	hk := hotkey.NewListener(k)
	go func() {
		if err := hk.Start(ctx); err != nil && ctx.Err() == nil {
			log.Printf("[hotkey] %s unavailable: %v", k.Name, err)
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return
		case <-hk.KeyPressed():
			log.Printf("[hotkey] %s pressed", k.Name)
			p.Send(ui.HotkeyMsg{})
		}
	}
}

func hotkeyLabel(name string) string {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "off", "none":
		return ""
	}
	return name
}
