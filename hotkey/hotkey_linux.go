//go:build linux

package hotkey

import (
	"context"
	"encoding/binary"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// Layout of struct input_event on 64-bit Linux: a 16-byte timeval followed
// by __u16 type, __u16 code and __s32 value.
const (
	eventSize   = 24
	evKey       = 1 // EV_KEY
	keyPress    = 1 // key down, not repeat
	typeOffset  = 16
	codeOffset  = 18
	valueOffset = 20
)

// keyboardDevices returns event devices whose name looks like a keyboard,
// or every event device when none does.
func keyboardDevices() ([]string, error) {
	matches, err := filepath.Glob("/dev/input/event*")
	if err != nil {
		return nil, err
	}

	var keyboards []string
	for _, dev := range matches {
		namePath := filepath.Join("/sys/class/input", filepath.Base(dev), "device/name")
		nameBytes, err := os.ReadFile(namePath)
		if err != nil {
			continue
		}
		name := strings.ToLower(strings.TrimSpace(string(nameBytes)))
		if strings.Contains(name, "keyboard") || strings.Contains(name, "kbd") {
			keyboards = append(keyboards, dev)
		}
	}
	if len(keyboards) == 0 {
		return matches, nil
	}
	return keyboards, nil
}

func isPress(buf []byte, code uint16) bool {
	return binary.LittleEndian.Uint16(buf[typeOffset:]) == evKey &&
		binary.LittleEndian.Uint16(buf[codeOffset:]) == code &&
		int32(binary.LittleEndian.Uint32(buf[valueOffset:])) == keyPress
}

func (l *Listener) listen(ctx context.Context) error {
	devices, err := keyboardDevices()
	if err != nil {
		return fmt.Errorf("failed to find keyboard devices: %w", err)
	}
	if len(devices) == 0 {
		return fmt.Errorf("no input devices found in /dev/input/")
	}

	var files []*os.File
	for _, dev := range devices {
		f, err := os.Open(dev)
		if err != nil {
			log.Printf("[hotkey] cannot open %s: %v", dev, err)
			continue
		}
		files = append(files, f)
	}
	if len(files) == 0 {
		return fmt.Errorf("could not open any input devices; add your user to the 'input' group: sudo usermod -aG input $USER")
	}
	// Closing the files unblocks the readers below.
	defer func() {
		for _, f := range files {
			f.Close()
		}
	}()

	log.Printf("[hotkey] watching %d device(s) for %s", len(files), l.key.Name)

	for _, f := range files {
		go func(f *os.File) {
			buf := make([]byte, eventSize)
			for {
				n, err := f.Read(buf)
				if err != nil {
					return
				}
				if n == eventSize && isPress(buf, l.key.evdev) {
					l.notify()
				}
			}
		}(f)
	}

	<-ctx.Done()
	return ctx.Err()
}
