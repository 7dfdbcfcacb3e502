package panel

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/micha/vm-master-control/voicemeeter"
)

// Runner performs Commands against a Voicemeeter remote. Calls are
// synchronous and must come from a single goroutine.
type Runner struct {
	remote voicemeeter.Remote

	// Overridable in tests.
	sleep    func(time.Duration)
	minimize func(title string) (bool, error)
}

// NewRunner returns a Runner driving remote.
func NewRunner(remote voicemeeter.Remote) *Runner {
	return &Runner{
		remote:   remote,
		sleep:    time.Sleep,
		minimize: voicemeeter.MinimizeWindow,
	}
}

// Run executes cmd and returns the event describing its outcome, or nil.
func (r *Runner) Run(cmd Command) Event {
	switch cmd := cmd.(type) {
	case Connect:
		if err := r.Connect(cmd.SettleDelay, cmd.WindowTitle); err != nil {
			return ConnectFailed{Err: err}
		}
		return Connected{}

	case ListDevices:
		inputs, err := r.RawDevices(voicemeeter.Input)
		if err != nil {
			return OperationFailed{Err: err}
		}
		outputs, err := r.RawDevices(voicemeeter.Output)
		if err != nil {
			return OperationFailed{Err: err}
		}
		return DevicesListed{Inputs: inputs, Outputs: outputs}

	case Apply:
		cable, err := r.ApplyConfiguration(cmd)
		if err != nil {
			return OperationFailed{Err: err}
		}
		return Applied{Cable: cable}

	case ReadRouting:
		on, err := r.ReadRouting(cmd.Strip)
		if err != nil {
			return OperationFailed{Err: err}
		}
		return RoutingRead{Connected: on}

	case Toggle:
		on, err := r.ToggleSecondaryRouting(cmd.Strip)
		if err != nil {
			return OperationFailed{Err: err}
		}
		return Toggled{Connected: on}

	case Poll:
		dirty, on, err := r.PollAndRefresh(cmd.Strip)
		if err != nil {
			return PollFailed{Err: err}
		}
		return Polled{Dirty: dirty, Connected: on}

	case Shutdown:
		return ShutdownFinished{Err: r.Shutdown(cmd.Terminate)}

	case Log:
		log.Print(cmd.Text)
		return nil
	}
	return nil
}

// Connect opens the session, waits settle for the engine to come up and
// minimises the mixer window when title is set.
func (r *Runner) Connect(settle time.Duration, title string) error {
	if err := r.remote.Login(); err != nil {
		return opError(ConnectionFailure, "login", err)
	}
	if settle > 0 {
		r.sleep(settle)
	}
	if title != "" {
		found, err := r.minimize(title)
		switch {
		case err != nil:
			log.Printf("[session] minimize error: %v", err)
		case !found:
			log.Printf("[session] window %q not found, leaving it as is", title)
		}
	}
	return nil
}

// RawDevices lists every device name of the given kind as the mixer reports
// it. Slots whose name cannot be read are skipped.
func (r *Runner) RawDevices(kind voicemeeter.DeviceKind) ([]string, error) {
	n, err := r.remote.DeviceCount(kind)
	if err != nil {
		return nil, opError(ConnectionFailure, fmt.Sprintf("count %s devices", kind), err)
	}
	names := make([]string, 0, n)
	for i := 0; i < n; i++ {
		name, err := r.remote.DeviceName(kind, i)
		if err != nil {
			log.Printf("[devices] skipping %s slot %d: %v", kind, i, err)
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

// ApplyConfiguration assigns the selected devices, routes the primary strip
// to B1 only, and links the virtual cable. It returns the cable's name, or ""
// when no cable was found. A failing call aborts the sequence; earlier writes
// stay in place.
func (r *Runner) ApplyConfiguration(cmd Apply) (string, error) {
	if cmd.Output == "" || cmd.Output == OutputPlaceholder || cmd.Mic == "" || cmd.Mic == MicPlaceholder {
		return "", opError(ValidationFailure, "apply", ErrPlaceholder)
	}
	rt := cmd.Routing
	steps := []struct {
		op string
		fn func() error
	}{
		{"set master output", func() error { return r.remote.SetBusDevice(rt.MasterBus, cmd.Output) }},
		{"set microphone", func() error { return r.remote.SetStripDevice(rt.PrimaryStrip, cmd.Mic) }},
		{"route microphone off A1", func() error { return r.remote.SetStripRoute(rt.PrimaryStrip, voicemeeter.A1, false) }},
		{"route microphone to B1", func() error { return r.remote.SetStripRoute(rt.PrimaryStrip, voicemeeter.B1, true) }},
	}
	for _, st := range steps {
		if err := st.fn(); err != nil {
			return "", opError(RoutingOperationFailure, st.op, err)
		}
	}
	log.Printf("[apply] output %q on bus %d, mic %q on strip %d", cmd.Output, rt.MasterBus, cmd.Mic, rt.PrimaryStrip)

	cable, err := r.LinkAuxiliaryCable(rt.SecondaryStrip, cmd.CableMatch)
	if errors.Is(err, ErrCableMissing) {
		return "", nil
	}
	return cable, err
}

// LinkAuxiliaryCable looks through the raw input list, including the devices
// hidden from the user, for the virtual cable and routes it to A1 and B1 on
// strip. Without a match nothing is written and ErrCableMissing is returned.
func (r *Runner) LinkAuxiliaryCable(strip int, match string) (string, error) {
	inputs, err := r.RawDevices(voicemeeter.Input)
	if err != nil {
		return "", err
	}
	cable, ok := FindCable(inputs, match)
	if !ok {
		log.Printf("[cable] could not find '%s' driver in Windows", match)
		return "", opError(DeviceNotFound, "link cable", ErrCableMissing)
	}
	if err := r.remote.SetStripDevice(strip, cable); err != nil {
		return "", opError(RoutingOperationFailure, "set cable device", err)
	}
	if err := r.remote.SetStripRoute(strip, voicemeeter.A1, true); err != nil {
		return "", opError(RoutingOperationFailure, "route cable to A1", err)
	}
	if err := r.remote.SetStripRoute(strip, voicemeeter.B1, true); err != nil {
		return "", opError(RoutingOperationFailure, "route cable to B1", err)
	}
	log.Printf("[cable] hidden cable found and connected: %s", cable)
	return cable, nil
}

// ReadRouting returns strip's B1 flag after refreshing the parameter cache.
func (r *Runner) ReadRouting(strip int) (bool, error) {
	if _, err := r.remote.Dirty(); err != nil {
		return false, opError(RoutingOperationFailure, "read routing", err)
	}
	on, err := r.remote.StripRoute(strip, voicemeeter.B1)
	if err != nil {
		return false, opError(RoutingOperationFailure, "read routing", err)
	}
	return on, nil
}

// ToggleSecondaryRouting inverts strip's B1 flag and returns the new value.
func (r *Runner) ToggleSecondaryRouting(strip int) (bool, error) {
	// Reading the dirty flag makes the remote refresh its parameter cache.
	if _, err := r.remote.Dirty(); err != nil {
		return false, opError(RoutingOperationFailure, "toggle", err)
	}
	on, err := r.remote.StripRoute(strip, voicemeeter.B1)
	if err != nil {
		return false, opError(RoutingOperationFailure, "toggle", err)
	}
	if err := r.remote.SetStripRoute(strip, voicemeeter.B1, !on); err != nil {
		return false, opError(RoutingOperationFailure, "toggle", err)
	}
	log.Printf("[toggle] strip %d B1 -> %t", strip, !on)
	return !on, nil
}

// PollAndRefresh checks the dirty flag and, when set, reads strip's B1 flag.
func (r *Runner) PollAndRefresh(strip int) (dirty, connected bool, err error) {
	dirty, err = r.remote.Dirty()
	if err != nil {
		return false, false, opError(PollTransientFailure, "poll", err)
	}
	if !dirty {
		return false, false, nil
	}
	connected, err = r.remote.StripRoute(strip, voicemeeter.B1)
	if err != nil {
		return false, false, opError(PollTransientFailure, "poll", err)
	}
	return true, connected, nil
}

// Shutdown optionally asks Voicemeeter to exit, then logs out. Both steps are
// attempted; their errors are joined.
func (r *Runner) Shutdown(terminate bool) error {
	var errs []error
	if terminate {
		log.Printf("[session] shutting down Voicemeeter")
		if err := r.remote.Shutdown(); err != nil {
			errs = append(errs, fmt.Errorf("shutdown command: %w", err))
		}
	}
	if err := r.remote.Logout(); err != nil {
		errs = append(errs, fmt.Errorf("logout: %w", err))
	}
	return errors.Join(errs...)
}
