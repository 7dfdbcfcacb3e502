package ui

import (
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/micha/vm-master-control/panel"
	"github.com/micha/vm-master-control/parser"
	"github.com/micha/vm-master-control/voicemeeter"
)

func newTestModel(t *testing.T) (Model, *voicemeeter.Sim) {
	t.Helper()
	sim := voicemeeter.NewSim(
		[]string{"Microphone (Realtek)", "Headset Mic", "CABLE Output (VB-Audio Virtual Cable)"},
		[]string{"Speakers (Realtek)", "Headphones", "Voicemeeter VAIO"},
	)
	s := panel.DefaultSettings()
	s.SettleDelay = 0
	m := New(panel.NewLoop(s, sim), Options{PollInterval: 50 * time.Millisecond, ActivityLines: 2})

	next, cmd := m.Update(connectMsg{})
	if cmd == nil {
		t.Fatal("connect should schedule the first tick")
	}
	m = next.(Model)
	if m.State().Session != panel.SessionOnline {
		t.Fatalf("session = %v", m.State().Session)
	}
	return m, sim
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(Model)
	}
	return m
}

var (
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
)

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestSelectAndApply(t *testing.T) {
	m, sim := newTestModel(t)

	m = press(t, m, keyDown, keyEnter, keyTab, keyEnter)
	st := m.State()
	if st.Output != "Headphones" || st.Mic != "Microphone (Realtek)" {
		t.Fatalf("selection = %q / %q", st.Output, st.Mic)
	}

	m = press(t, m, keyTab, keyEnter)
	if m.State().Status.Severity != panel.Success {
		t.Fatalf("status = %+v", m.State().Status)
	}
	if sim.BusDevice(0) != "Headphones" || sim.StripDevice(0) != "Microphone (Realtek)" {
		t.Fatalf("mixer = %q / %q", sim.BusDevice(0), sim.StripDevice(0))
	}
}

func TestApplyWithoutSelection(t *testing.T) {
	m, sim := newTestModel(t)
	before := len(sim.Writes())

	m = press(t, m, runes("a"))
	if m.State().Status.Severity != panel.Failure {
		t.Fatalf("status = %+v", m.State().Status)
	}
	if len(sim.Writes()) != before {
		t.Fatalf("validation failure wrote to the mixer: %q", sim.Writes()[before:])
	}
}

func TestToggleKeyAndHotkey(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, runes("t"))
	if m.State().Toggle != panel.ToggleConnected {
		t.Fatalf("toggle = %v", m.State().Toggle)
	}
	next, _ := m.Update(HotkeyMsg{})
	m = next.(Model)
	if m.State().Toggle != panel.ToggleDisconnected {
		t.Fatalf("toggle = %v", m.State().Toggle)
	}
	if !strings.Contains(m.View(), "CONNECT") {
		t.Fatal("view lacks the toggle label")
	}
}

func TestTickFollowsExternalChange(t *testing.T) {
	m, sim := newTestModel(t)
	sim.Flip(1, voicemeeter.B1)

	next, cmd := m.Update(tickMsg{})
	m = next.(Model)
	if cmd == nil {
		t.Fatal("tick should reschedule itself")
	}
	if m.State().Toggle != panel.ToggleConnected {
		t.Fatalf("toggle = %v", m.State().Toggle)
	}
}

func TestQuitShutsDown(t *testing.T) {
	m, sim := newTestModel(t)

	next, cmd := m.Update(runes("q"))
	m = next.(Model)
	if cmd == nil {
		t.Fatal("quit should return tea.Quit")
	}
	if m.State().Session != panel.SessionClosed || sim.Running() || sim.LoggedIn() {
		t.Fatalf("session = %v running = %v logged in = %v", m.State().Session, sim.Running(), sim.LoggedIn())
	}
	if _, cmd := m.Update(tickMsg{}); cmd != nil {
		t.Fatal("ticks should stop after shutdown")
	}
}

func TestActivityKeepsLastLines(t *testing.T) {
	m, _ := newTestModel(t)
	for _, msg := range []string{"one", "two", "three"} {
		next, _ := m.Update(ActivityMsg(parser.Entry{Time: "10:00:00", Tag: "poll", Message: msg}))
		m = next.(Model)
	}
	if len(m.activity) != 2 || m.activity[0].Message != "two" || m.activity[1].Message != "three" {
		t.Fatalf("activity = %+v", m.activity)
	}
}

func TestConfigReload(t *testing.T) {
	m, _ := newTestModel(t)
	s := m.State().Settings
	s.Reserved = append(s.Reserved, "Headphones")

	next, _ := m.Update(ConfigMsg{Settings: s, PollInterval: 200 * time.Millisecond})
	m = next.(Model)
	if m.interval != 200*time.Millisecond {
		t.Fatalf("interval = %v", m.interval)
	}
	for _, name := range m.State().Outputs {
		if name == "Headphones" {
			t.Fatalf("outputs not refiltered: %q", m.State().Outputs)
		}
	}
}

func TestProgramExitShutsDown(t *testing.T) {
	sim := voicemeeter.NewSim([]string{"Microphone (Realtek)"}, []string{"Speakers (Realtek)"})
	s := panel.DefaultSettings()
	s.SettleDelay = 0
	loop := panel.NewLoop(s, sim)
	if st := loop.Initialize(); st.Session != panel.SessionOnline {
		t.Fatalf("session = %v", st.Session)
	}

	p := NewProgram(loop, Options{PollInterval: 20 * time.Millisecond},
		tea.WithInput(nil), tea.WithOutput(io.Discard), tea.WithoutRenderer(), tea.WithoutSignalHandler())
	done := make(chan error, 1)
	go func() { done <- p.Run() }()

	// Quit is the message bubbletea itself sends on SIGTERM.
	p.Quit()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("program did not exit")
	}

	if st := loop.State(); st.Session != panel.SessionClosed {
		t.Fatalf("session = %v", st.Session)
	}
	if sim.LoggedIn() || sim.Running() {
		t.Fatalf("after exit: logged in %v, running %v", sim.LoggedIn(), sim.Running())
	}
}
