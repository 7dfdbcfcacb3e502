// Package voicemeeter talks to the Voicemeeter Remote API.
//
// On Windows the API lives in VoicemeeterRemote64.dll; elsewhere every call
// fails with ErrUnsupported. Sim provides an in-memory mixer with the same
// surface for development and tests.
package voicemeeter

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupported is returned by the remote on platforms without Voicemeeter.
var ErrUnsupported = errors.New("voicemeeter remote API is only available on Windows")

// DeviceKind selects the input or output device table.
type DeviceKind int

const (
	Input DeviceKind = iota
	Output
)

func (k DeviceKind) String() string {
	if k == Output {
		return "output"
	}
	return "input"
}

// Route names a strip→bus assignment flag.
type Route string

const (
	A1 Route = "A1"
	B1 Route = "B1"
)

// Kind is the Voicemeeter edition to launch when it is not running.
type Kind string

const (
	Basic  Kind = "basic"
	Banana Kind = "banana"
	Potato Kind = "potato"
)

// ParseKind accepts the edition names used in configuration files.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case Basic, Banana, Potato:
		return k, nil
	case "":
		return Banana, nil
	}
	return "", fmt.Errorf("unknown voicemeeter kind %q", s)
}

// launchCode is the argument VBVMR_RunVoicemeeter expects (64-bit builds).
func (k Kind) launchCode() int {
	switch k {
	case Basic:
		return 4
	case Potato:
		return 6
	}
	return 5
}

// WindowTitle is the title of the mixer's main window.
func (k Kind) WindowTitle() string {
	switch k {
	case Basic:
		return "Voicemeeter"
	case Potato:
		return "Voicemeeter Potato"
	}
	return "Voicemeeter Banana"
}

// Remote is the subset of the Voicemeeter Remote API the control panel uses.
type Remote interface {
	Login() error
	Logout() error
	// Shutdown asks the Voicemeeter application to exit.
	Shutdown() error
	// Dirty reports whether any parameter changed since the previous call.
	Dirty() (bool, error)

	DeviceCount(kind DeviceKind) (int, error)
	DeviceName(kind DeviceKind, index int) (string, error)

	SetBusDevice(bus int, name string) error
	SetStripDevice(strip int, name string) error
	StripRoute(strip int, route Route) (bool, error)
	SetStripRoute(strip int, route Route, on bool) error
}

// CallError reports a negative result code from a DLL function.
type CallError struct {
	Func string
	Code int32
}

func (e *CallError) Error() string {
	return fmt.Sprintf("%s failed with code %d", e.Func, e.Code)
}
