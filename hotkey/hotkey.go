// Package hotkey provides a system-wide hotkey that works while another
// window (usually a game) has focus.
package hotkey

import (
	"context"
	"fmt"
	"strings"
)

// Key identifies a hotkey by name together with its platform key codes.
type Key struct {
	Name  string
	evdev uint16 // Linux KEY_* code
	vk    uint32 // Windows VK_* code
}

var keys = []Key{
	{"F1", 59, 0x70}, {"F2", 60, 0x71}, {"F3", 61, 0x72}, {"F4", 62, 0x73},
	{"F5", 63, 0x74}, {"F6", 64, 0x75}, {"F7", 65, 0x76}, {"F8", 66, 0x77},
	{"F9", 67, 0x78}, {"F10", 68, 0x79}, {"F11", 87, 0x7A}, {"F12", 88, 0x7B},
	{"ScrollLock", 70, 0x91},
	{"Pause", 119, 0x13},
}

// ParseKey looks a key up by name, case-insensitively.
func ParseKey(name string) (Key, error) {
	for _, k := range keys {
		if strings.EqualFold(k.Name, strings.TrimSpace(name)) {
			return k, nil
		}
	}
	return Key{}, fmt.Errorf("unsupported hotkey %q", name)
}

// Listener watches for a specific key press and sends on a channel.
type Listener struct {
	keyChan chan struct{}
	key     Key
}

// NewListener creates a hotkey listener for key.
func NewListener(key Key) *Listener {
	return &Listener{
		keyChan: make(chan struct{}, 1),
		key:     key,
	}
}

// KeyPressed returns a channel that receives a value each time the hotkey is pressed.
func (l *Listener) KeyPressed() <-chan struct{} {
	return l.keyChan
}

// Start begins listening for the hotkey. It blocks until the context is cancelled.
// Call this in a goroutine.
func (l *Listener) Start(ctx context.Context) error {
	return l.listen(ctx)
}

// notify records a press without blocking; presses arriving faster than
// they are consumed collapse into one.
func (l *Listener) notify() {
	select {
	case l.keyChan <- struct{}{}:
	default:
	}
}
