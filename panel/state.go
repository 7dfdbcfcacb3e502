// Package panel holds the control panel's behaviour: which devices are
// offered, what "apply" writes to the mixer, and how the connect toggle
// follows the mixer's routing.
//
// Update is pure. It turns the current State and an Event into the next
// State plus Commands; a Runner performs the Commands against the mixer and
// answers with further Events; Loop drives the two until the queue drains.
package panel

import "time"

// Selection placeholders shown before the user picks a device.
const (
	OutputPlaceholder = "Select Speakers..."
	MicPlaceholder    = "Select Mic..."
)

// ToggleState is what the connect toggle currently shows.
type ToggleState int

const (
	ToggleUnknown ToggleState = iota
	ToggleConnected
	ToggleDisconnected
)

func toggleFor(connected bool) ToggleState {
	if connected {
		return ToggleConnected
	}
	return ToggleDisconnected
}

// Label is the toggle's button text: the action a press would take.
func (t ToggleState) Label() string {
	switch t {
	case ToggleConnected:
		return "DISCONNECT"
	case ToggleDisconnected:
		return "CONNECT"
	}
	return "Loading..."
}

func (t ToggleState) String() string {
	switch t {
	case ToggleConnected:
		return "connected"
	case ToggleDisconnected:
		return "disconnected"
	}
	return "unknown"
}

// Session tracks the link to the mixer.
type Session int

const (
	SessionConnecting Session = iota
	SessionOnline
	SessionOffline
	SessionClosed
)

func (s Session) String() string {
	switch s {
	case SessionOnline:
		return "online"
	case SessionOffline:
		return "offline"
	case SessionClosed:
		return "closed"
	}
	return "connecting"
}

// Severity colours the status line.
type Severity int

const (
	Info Severity = iota
	Success
	Warning
	Failure
)

// Status is the one-line message shown at the bottom of the panel.
type Status struct {
	Text     string
	Severity Severity
	// Err is the failure behind a Failure or Warning status.
	Err error
}

// Routing names the mixer channels the panel drives.
type Routing struct {
	MasterBus      int
	PrimaryStrip   int
	SecondaryStrip int
}

// Settings are the tunables that shape Update's decisions.
type Settings struct {
	Routing Routing
	// Reserved substrings hide devices from the selection lists.
	Reserved []string
	// CableMatch finds the virtual cable among the raw inputs.
	CableMatch string

	SettleDelay time.Duration
	// WindowTitle, when set, is minimised after connecting.
	WindowTitle    string
	ShutdownOnExit bool
}

// DefaultSettings mirrors a stock Voicemeeter Banana setup.
func DefaultSettings() Settings {
	return Settings{
		Routing:        Routing{MasterBus: 0, PrimaryStrip: 0, SecondaryStrip: 1},
		Reserved:       append([]string(nil), DefaultReserved...),
		CableMatch:     DefaultCableMatch,
		SettleDelay:    time.Second,
		ShutdownOnExit: true,
	}
}

// State is everything the panel displays.
type State struct {
	Settings Settings
	Session  Session

	// Filtered device names offered for selection.
	Outputs []string
	Inputs  []string

	Output string
	Mic    string

	Toggle ToggleState
	Status Status

	// PollFailures counts consecutive failed poll ticks.
	PollFailures int
}

// NewState returns the state before the first connection attempt.
func NewState(s Settings) State {
	return State{
		Settings: s,
		Session:  SessionConnecting,
		Output:   OutputPlaceholder,
		Mic:      MicPlaceholder,
		Toggle:   ToggleUnknown,
		Status:   Status{Text: "Connecting to Voicemeeter..."},
	}
}

// Ready reports whether both selections are concrete devices.
func (s State) Ready() bool {
	return isSelection(s.Output, OutputPlaceholder) && isSelection(s.Mic, MicPlaceholder)
}

func isSelection(v, placeholder string) bool {
	return v != "" && v != placeholder
}
