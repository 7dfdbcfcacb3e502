package panel

import "github.com/micha/vm-master-control/voicemeeter"

// Loop owns the panel state and feeds events through Update and the Runner
// until no work is left. It is not safe for concurrent use; callers deliver
// every event from one goroutine.
type Loop struct {
	state  State
	runner *Runner
}

// NewLoop returns a loop in the Connecting state. Call Initialize to open
// the session.
func NewLoop(settings Settings, remote voicemeeter.Remote) *Loop {
	return &Loop{
		state:  NewState(settings),
		runner: NewRunner(remote),
	}
}

// State returns the current state.
func (l *Loop) State() State { return l.state }

// Dispatch applies ev and every event produced by the resulting commands,
// in order, and returns the final state.
func (l *Loop) Dispatch(ev Event) State {
	queue := []Event{ev}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]

		var cmds []Command
		l.state, cmds = Update(l.state, next)
		for _, cmd := range cmds {
			if out := l.runner.Run(cmd); out != nil {
				queue = append(queue, out)
			}
		}
	}
	return l.state
}

// Initialize connects to the mixer and loads the device lists.
func (l *Loop) Initialize() State { return l.Dispatch(ConnectRequested{}) }

// ListDevices returns the current device names of kind with reserved
// devices filtered out.
func (l *Loop) ListDevices(kind voicemeeter.DeviceKind) ([]string, error) {
	raw, err := l.runner.RawDevices(kind)
	if err != nil {
		return nil, err
	}
	return FilterDevices(raw, l.state.Settings.Reserved), nil
}

// ApplyConfiguration selects output and mic and applies them.
func (l *Loop) ApplyConfiguration(output, mic string) State {
	l.Dispatch(OutputSelected{Name: output})
	l.Dispatch(MicSelected{Name: mic})
	return l.Dispatch(ApplyRequested{})
}

// ToggleSecondaryRouting flips the secondary strip's B1 routing.
func (l *Loop) ToggleSecondaryRouting() State { return l.Dispatch(ToggleRequested{}) }

// PollAndRefresh runs one poll tick.
func (l *Loop) PollAndRefresh() State { return l.Dispatch(Ticked{}) }

// Shutdown closes the session.
func (l *Loop) Shutdown() State { return l.Dispatch(ShutdownRequested{}) }
