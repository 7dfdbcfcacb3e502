package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/micha/vm-master-control/config"
	"github.com/micha/vm-master-control/panel"
	"github.com/micha/vm-master-control/ui"
)

func main() {
	configPath := flag.String("config", "", "Path to the YAML config file (default: $"+config.EnvPath+" or the user config dir)")
	simulate := flag.Bool("simulate", false, "Run against a simulated mixer instead of Voicemeeter")
	listDevices := flag.Bool("list-audio-devices", false, "List available audio devices and exit")
	logPath := flag.String("log", "", "Path to the log file (default: vmctl.log in the user cache dir)")
	dllPath := flag.String("dll", "", "Path to VoicemeeterRemote64.dll (default: auto-detect)")
	hotkeyName := flag.String("hotkey", "", "Global hotkey that toggles the secondary routing (\"off\" to disable)")
	skipSetup := flag.Bool("skip-setup", false, "Skip the Voicemeeter installation check")

	flag.Parse()

	if *listDevices {
		listAudioDevices()
	}

	path, err := config.Path(*configPath)
	if err != nil {
		log.Fatalf("Error locating config: %v", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	if *hotkeyName != "" {
		cfg.UI.Hotkey = *hotkeyName
	}

	remote := openRemote(cfg, *simulate, *dllPath, *skipSetup)

	logFile := *logPath
	if logFile == "" {
		logFile = cfg.UI.LogFile
	}
	if logFile == "" {
		if logFile, err = defaultLogPath(); err != nil {
			log.Fatalf("Error locating log file: %v", err)
		}
	}
	f, err := tea.LogToFile(logFile, "")
	if err != nil {
		log.Fatalf("Error opening log file: %v", err)
	}
	defer f.Close()
	log.Printf("[session] starting, config %s", path)

	loop := panel.NewLoop(cfg.Settings(), remote)
	p := ui.NewProgram(loop, ui.Options{
		PollInterval:  cfg.UI.PollInterval,
		ActivityLines: cfg.UI.ActivityLines,
		Hotkey:        hotkeyLabel(cfg.UI.Hotkey),
	}, tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go followLog(ctx, p, logFile)
	go watchConfig(ctx, p, path)
	go listenHotkey(ctx, p, cfg.UI.Hotkey)

	if err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
