// Package audio lists the audio endpoints the operating system exposes,
// independently of Voicemeeter, through miniaudio.
package audio

import (
	"fmt"
	"log"
	"strings"

	"github.com/gen2brain/malgo"
)

// Virtual endpoints a Voicemeeter + VB-Cable install adds next to the
// hardware ones.
var (
	VirtualInputs = []string{
		"CABLE Output (VB-Audio Virtual Cable)",
		"Voicemeeter Out B1 (VB-Audio Voicemeeter VAIO)",
	}
	VirtualOutputs = []string{
		"CABLE Input (VB-Audio Virtual Cable)",
		"Voicemeeter Input (VB-Audio Voicemeeter VAIO)",
	}
)

// fallback tables used when no audio backend is available.
var (
	sampleInputs  = []string{"Microphone (Realtek High Definition Audio)", "Headset Microphone (USB Audio)"}
	sampleOutputs = []string{"Speakers (Realtek High Definition Audio)", "Headphones (USB Audio)"}
)

// Devices holds endpoint names by direction.
type Devices struct {
	Capture  []string
	Playback []string
}

// GetAvailableDevices returns the capture and playback devices reported by
// the default miniaudio backend.
func GetAvailableDevices() (Devices, error) {
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, func(message string) {
		log.Printf("[audio] %s", strings.TrimSpace(message))
	})
	if err != nil {
		return Devices{}, fmt.Errorf("failed to init audio context: %w", err)
	}
	defer func() {
		_ = ctx.Uninit()
		ctx.Free()
	}()

	capture, err := ctx.Devices(malgo.Capture)
	if err != nil {
		return Devices{}, fmt.Errorf("failed to list capture devices: %w", err)
	}
	playback, err := ctx.Devices(malgo.Playback)
	if err != nil {
		return Devices{}, fmt.Errorf("failed to list playback devices: %w", err)
	}
	return Devices{Capture: names(capture), Playback: names(playback)}, nil
}

func names(infos []malgo.DeviceInfo) []string {
	out := make([]string, 0, len(infos))
	for _, info := range infos {
		out = append(out, info.Name())
	}
	return out
}

// SimulatorTables returns device tables for a simulated mixer: the real
// system devices when they can be listed, sample hardware otherwise, plus
// the Voicemeeter and VB-Cable virtual endpoints.
func SimulatorTables() (inputs, outputs []string) {
	d, err := GetAvailableDevices()
	if err != nil || len(d.Capture)+len(d.Playback) == 0 {
		if err != nil {
			log.Printf("[audio] using sample devices: %v", err)
		}
		d = Devices{Capture: sampleInputs, Playback: sampleOutputs}
	}
	return withVirtual(d.Capture, VirtualInputs), withVirtual(d.Playback, VirtualOutputs)
}

func withVirtual(hw, virtual []string) []string {
	out := make([]string, 0, len(hw)+len(virtual))
	out = append(out, hw...)
	return append(out, virtual...)
}

// GetDeviceHelpText explains how the panel picks devices.
func GetDeviceHelpText() string {
	return `Device selection:
- Output and microphone lists come from Voicemeeter's own device tables
- Names containing "CABLE" or "Voicemeeter" are hidden (devices.reserved in the config)
- The VB-Cable "CABLE Output" device is wired to the secondary strip automatically
- The list below is what the operating system reports, for comparison
`
}
