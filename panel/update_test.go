package panel

import (
	"errors"
	"testing"
)

func online() State {
	s := NewState(DefaultSettings())
	s.Session = SessionOnline
	s.Outputs = []string{"Speakers"}
	s.Inputs = []string{"Mic"}
	return s
}

func TestUpdateApplyValidation(t *testing.T) {
	tests := []struct {
		name        string
		output, mic string
	}{
		{"both placeholders", OutputPlaceholder, MicPlaceholder},
		{"output placeholder", OutputPlaceholder, "Mic"},
		{"mic placeholder", "Speakers", MicPlaceholder},
		{"empty output", "", "Mic"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := online()
			s.Output, s.Mic = tt.output, tt.mic
			next, cmds := Update(s, ApplyRequested{})
			if len(cmds) != 0 {
				t.Fatalf("expected no commands, got %#v", cmds)
			}
			if KindOf(next.Status.Err) != ValidationFailure || !errors.Is(next.Status.Err, ErrPlaceholder) {
				t.Fatalf("expected validation failure, got %v", next.Status.Err)
			}
		})
	}
}

func TestUpdateApplyIssuesCommand(t *testing.T) {
	s := online()
	s.Output, s.Mic = "Speakers", "Mic"
	_, cmds := Update(s, ApplyRequested{})
	if len(cmds) != 1 {
		t.Fatalf("expected one command, got %#v", cmds)
	}
	apply, ok := cmds[0].(Apply)
	if !ok || apply.Output != "Speakers" || apply.Mic != "Mic" || apply.CableMatch != DefaultCableMatch {
		t.Fatalf("unexpected command %#v", cmds[0])
	}
}

func TestUpdateAppliedResyncsToggle(t *testing.T) {
	for _, cable := range []string{"CABLE Output", ""} {
		next, cmds := Update(online(), Applied{Cable: cable})
		if len(cmds) != 1 {
			t.Fatalf("expected a resync command, got %#v", cmds)
		}
		if _, ok := cmds[0].(ReadRouting); !ok {
			t.Fatalf("expected ReadRouting, got %#v", cmds[0])
		}
		if cable == "" && KindOf(next.Status.Err) != DeviceNotFound {
			t.Fatalf("missing cable should be reported, got %v", next.Status)
		}
		if cable != "" && next.Status.Severity != Success {
			t.Fatalf("expected success status, got %v", next.Status)
		}
	}
}

func TestUpdatePollReconciles(t *testing.T) {
	s := online()
	s.Toggle = ToggleDisconnected

	next, _ := Update(s, Polled{Dirty: false, Connected: true})
	if next.Toggle != ToggleDisconnected {
		t.Fatalf("clean poll changed the toggle to %v", next.Toggle)
	}
	next, _ = Update(s, Polled{Dirty: true, Connected: true})
	if next.Toggle != ToggleConnected {
		t.Fatalf("dirty poll should reconcile, got %v", next.Toggle)
	}
}

func TestUpdatePollFailuresAreQuiet(t *testing.T) {
	s := online()
	s.Status = Status{Text: "System Ready"}

	s, cmds := Update(s, PollFailed{Err: errors.New("gone")})
	if len(cmds) != 1 {
		t.Fatalf("first failure should be logged once, got %#v", cmds)
	}
	s, cmds = Update(s, PollFailed{Err: errors.New("gone")})
	if len(cmds) != 0 || s.PollFailures != 2 {
		t.Fatalf("later failures should be silent, got %#v (failures %d)", cmds, s.PollFailures)
	}
	if s.Status.Text != "System Ready" {
		t.Fatalf("poll failures must not touch the status, got %q", s.Status.Text)
	}
	s, cmds = Update(s, Polled{})
	if s.PollFailures != 0 || len(cmds) != 1 {
		t.Fatalf("recovery should reset and log, got failures %d cmds %#v", s.PollFailures, cmds)
	}
}

func TestUpdateOfflineIgnoresTicks(t *testing.T) {
	s := NewState(DefaultSettings())
	s.Session = SessionOffline
	if _, cmds := Update(s, Ticked{}); len(cmds) != 0 {
		t.Fatalf("offline tick issued %#v", cmds)
	}
	next, cmds := Update(s, ToggleRequested{})
	if len(cmds) != 0 || !errors.Is(next.Status.Err, ErrOffline) {
		t.Fatalf("offline toggle: cmds %#v status %v", cmds, next.Status)
	}
}

func TestUpdateDevicesListedKeepsValidSelection(t *testing.T) {
	s := online()
	s.Output, s.Mic = "Speakers", "Old Mic"
	next, _ := Update(s, DevicesListed{
		Inputs:  []string{"CABLE Output (VB-Audio Virtual Cable)", "New Mic"},
		Outputs: []string{"Speakers", "Voicemeeter VAIO"},
	})
	if next.Output != "Speakers" || next.Mic != MicPlaceholder {
		t.Fatalf("selection = %q / %q", next.Output, next.Mic)
	}
	if len(next.Inputs) != 1 || next.Inputs[0] != "New Mic" {
		t.Fatalf("inputs = %q", next.Inputs)
	}
}

func TestUpdateShutdownWhenOffline(t *testing.T) {
	s := NewState(DefaultSettings())
	s.Session = SessionOffline
	next, cmds := Update(s, ShutdownRequested{})
	if len(cmds) != 0 || next.Session != SessionClosed {
		t.Fatalf("offline shutdown: session %v cmds %#v", next.Session, cmds)
	}
}

func TestUpdateRefresh(t *testing.T) {
	_, cmds := Update(online(), RefreshRequested{})
	if len(cmds) != 1 {
		t.Fatalf("cmds = %#v", cmds)
	}
	if _, ok := cmds[0].(ListDevices); !ok {
		t.Fatalf("cmd = %#v", cmds[0])
	}

	s := online()
	s.Session = SessionOffline
	next, cmds := Update(s, RefreshRequested{})
	if len(cmds) != 0 || KindOf(next.Status.Err) != ConnectionFailure {
		t.Fatalf("offline refresh: status %+v cmds %#v", next.Status, cmds)
	}
}

func TestToggleLabels(t *testing.T) {
	for state, want := range map[ToggleState]string{
		ToggleUnknown:      "Loading...",
		ToggleConnected:    "DISCONNECT",
		ToggleDisconnected: "CONNECT",
	} {
		if got := state.Label(); got != want {
			t.Errorf("%v.Label() = %q, want %q", state, got, want)
		}
	}
}

func TestUpdateSettingsChangedRereadsRouting(t *testing.T) {
	s := online()
	settings := s.Settings
	settings.Routing.SecondaryStrip = 3

	next, cmds := Update(s, SettingsChanged{Settings: settings})
	if next.Settings.Routing.SecondaryStrip != 3 || len(cmds) != 2 {
		t.Fatalf("settings %+v cmds %#v", next.Settings.Routing, cmds)
	}
	if rr, ok := cmds[1].(ReadRouting); !ok || rr.Strip != 3 {
		t.Fatalf("second command = %#v", cmds[1])
	}

	s.Session = SessionOffline
	if _, cmds := Update(s, SettingsChanged{Settings: settings}); len(cmds) != 0 {
		t.Fatalf("offline reload issued %#v", cmds)
	}
}
