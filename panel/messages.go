package panel

import "time"

// Event is an input to Update: a user action, a timer tick, or the outcome
// of a Command.
type Event interface{ event() }

// User and timer events.
type (
	ConnectRequested  struct{}
	RefreshRequested  struct{}
	OutputSelected    struct{ Name string }
	MicSelected       struct{ Name string }
	ApplyRequested    struct{}
	ToggleRequested   struct{}
	Ticked            struct{}
	ShutdownRequested struct{}
	SettingsChanged   struct{ Settings Settings }
)

// Command outcomes.
type (
	Connected     struct{}
	ConnectFailed struct{ Err error }
	// DevicesListed carries the raw, unfiltered device tables.
	DevicesListed struct{ Inputs, Outputs []string }
	// Applied reports a finished configuration. Cable is empty when the
	// virtual cable was not found.
	Applied         struct{ Cable string }
	Toggled         struct{ Connected bool }
	RoutingRead     struct{ Connected bool }
	OperationFailed struct{ Err error }
	Polled          struct {
		Dirty     bool
		Connected bool
	}
	PollFailed       struct{ Err error }
	ShutdownFinished struct{ Err error }
)

func (ConnectRequested) event()  {}
func (RefreshRequested) event()  {}
func (OutputSelected) event()    {}
func (MicSelected) event()       {}
func (ApplyRequested) event()    {}
func (ToggleRequested) event()   {}
func (Ticked) event()            {}
func (ShutdownRequested) event() {}
func (SettingsChanged) event()   {}
func (Connected) event()         {}
func (ConnectFailed) event()     {}
func (DevicesListed) event()     {}
func (Applied) event()           {}
func (Toggled) event()           {}
func (RoutingRead) event()       {}
func (OperationFailed) event()   {}
func (Polled) event()            {}
func (PollFailed) event()        {}
func (ShutdownFinished) event()  {}

// Command is a side effect requested by Update.
type Command interface{ command() }

type (
	// Connect opens the session, waits for it to settle and optionally
	// minimises the mixer window.
	Connect struct {
		SettleDelay time.Duration
		WindowTitle string
	}
	ListDevices struct{}
	// Apply assigns the devices, reroutes the primary strip and links the
	// virtual cable.
	Apply struct {
		Output, Mic string
		Routing     Routing
		CableMatch  string
	}
	ReadRouting struct{ Strip int }
	Toggle      struct{ Strip int }
	Poll        struct{ Strip int }
	Shutdown    struct{ Terminate bool }
	Log         struct{ Text string }
)

func (Connect) command()     {}
func (ListDevices) command() {}
func (Apply) command()       {}
func (ReadRouting) command() {}
func (Toggle) command()      {}
func (Poll) command()        {}
func (Shutdown) command()    {}
func (Log) command()         {}
