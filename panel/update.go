package panel

import (
	"fmt"
	"slices"
)

// Update returns the state that follows ev and the commands to run.
func Update(s State, ev Event) (State, []Command) {
	switch ev := ev.(type) {
	case ConnectRequested:
		if s.Session == SessionOnline {
			return s, nil
		}
		s.Session = SessionConnecting
		s.Status = Status{Text: "Connecting to Voicemeeter..."}
		return s, []Command{Connect{SettleDelay: s.Settings.SettleDelay, WindowTitle: s.Settings.WindowTitle}}

	case Connected:
		s.Session = SessionOnline
		s.PollFailures = 0
		s.Status = Status{Text: "System Ready"}
		return s, []Command{
			Log{Text: "[session] connected to Voicemeeter API"},
			ListDevices{},
			ReadRouting{Strip: s.Settings.Routing.SecondaryStrip},
		}

	case ConnectFailed:
		s.Session = SessionOffline
		s.Inputs, s.Outputs = nil, nil
		s.Toggle = ToggleUnknown
		s.Status = Status{Text: fmt.Sprintf("Connection failed: %v", ev.Err), Severity: Failure, Err: ev.Err}
		return s, []Command{Log{Text: fmt.Sprintf("[session] connection failed: %v", ev.Err)}}

	case RefreshRequested:
		if s.Session != SessionOnline {
			return offline(s), nil
		}
		return s, []Command{ListDevices{}}

	case DevicesListed:
		s.Inputs = FilterDevices(ev.Inputs, s.Settings.Reserved)
		s.Outputs = FilterDevices(ev.Outputs, s.Settings.Reserved)
		if !slices.Contains(s.Outputs, s.Output) {
			s.Output = OutputPlaceholder
		}
		if !slices.Contains(s.Inputs, s.Mic) {
			s.Mic = MicPlaceholder
		}
		return s, []Command{Log{Text: fmt.Sprintf("[devices] %d outputs, %d inputs offered", len(s.Outputs), len(s.Inputs))}}

	case OutputSelected:
		s.Output = ev.Name
		return s, nil

	case MicSelected:
		s.Mic = ev.Name
		return s, nil

	case ApplyRequested:
		if !s.Ready() {
			s.Status = Status{
				Text:     "Please select devices in the dropdowns first!",
				Severity: Failure,
				Err:      opError(ValidationFailure, "apply", ErrPlaceholder),
			}
			return s, nil
		}
		if s.Session != SessionOnline {
			return offline(s), nil
		}
		s.Status = Status{Text: "Applying configuration..."}
		return s, []Command{Apply{
			Output:     s.Output,
			Mic:        s.Mic,
			Routing:    s.Settings.Routing,
			CableMatch: s.Settings.CableMatch,
		}}

	case Applied:
		cmds := []Command{ReadRouting{Strip: s.Settings.Routing.SecondaryStrip}}
		if ev.Cable == "" {
			s.Status = Status{
				Text:     fmt.Sprintf("Applied, but the '%s' driver was not found", s.Settings.CableMatch),
				Severity: Warning,
				Err:      opError(DeviceNotFound, "link cable", ErrCableMissing),
			}
			return s, cmds
		}
		s.Status = Status{Text: "Configuration Applied Successfully!", Severity: Success}
		return s, cmds

	case ToggleRequested:
		if s.Session != SessionOnline {
			return offline(s), nil
		}
		return s, []Command{Toggle{Strip: s.Settings.Routing.SecondaryStrip}}

	case Toggled:
		s.Toggle = toggleFor(ev.Connected)
		s.Status = Status{Text: fmt.Sprintf("Strip %d → B1 %s", s.Settings.Routing.SecondaryStrip, s.Toggle)}
		return s, nil

	case RoutingRead:
		s.Toggle = toggleFor(ev.Connected)
		return s, nil

	case OperationFailed:
		s.Status = Status{Text: fmt.Sprintf("Error: %v", ev.Err), Severity: Failure, Err: ev.Err}
		return s, []Command{Log{Text: fmt.Sprintf("[error] %s: %v", KindOf(ev.Err), ev.Err)}}

	case Ticked:
		if s.Session != SessionOnline {
			return s, nil
		}
		return s, []Command{Poll{Strip: s.Settings.Routing.SecondaryStrip}}

	case Polled:
		var cmds []Command
		if s.PollFailures > 0 {
			cmds = append(cmds, Log{Text: fmt.Sprintf("[poll] recovered after %d failed ticks", s.PollFailures)})
			s.PollFailures = 0
		}
		if ev.Dirty {
			s.Toggle = toggleFor(ev.Connected)
		}
		return s, cmds

	case PollFailed:
		s.PollFailures++
		if s.PollFailures == 1 {
			return s, []Command{Log{Text: fmt.Sprintf("[poll] %v (retrying every tick)", ev.Err)}}
		}
		return s, nil

	case SettingsChanged:
		s.Settings = ev.Settings
		if s.Session != SessionOnline {
			return s, nil
		}
		return s, []Command{ListDevices{}, ReadRouting{Strip: s.Settings.Routing.SecondaryStrip}}

	case ShutdownRequested:
		if s.Session != SessionOnline {
			s.Session = SessionClosed
			return s, nil
		}
		s.Status = Status{Text: "Shutting down Voicemeeter..."}
		return s, []Command{Shutdown{Terminate: s.Settings.ShutdownOnExit}}

	case ShutdownFinished:
		s.Session = SessionClosed
		if ev.Err != nil {
			s.Status = Status{Text: fmt.Sprintf("Error during shutdown: %v", ev.Err), Severity: Failure, Err: ev.Err}
			return s, []Command{Log{Text: fmt.Sprintf("[session] error during shutdown: %v", ev.Err)}}
		}
		s.Status = Status{Text: "Disconnected"}
		return s, nil
	}
	return s, nil
}

func offline(s State) State {
	text := "Not connected to Voicemeeter (press r to reconnect)"
	if s.Session == SessionConnecting {
		text = "Still connecting to Voicemeeter..."
	}
	s.Status = Status{Text: text, Severity: Failure, Err: opError(ConnectionFailure, "session", ErrOffline)}
	return s
}
