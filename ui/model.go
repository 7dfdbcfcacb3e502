// Package ui is the terminal front end of the control panel.
package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/micha/vm-master-control/panel"
	"github.com/micha/vm-master-control/parser"
)

type focus int

const (
	focusOutputs focus = iota
	focusInputs
	focusApply
	focusToggle
	focusCount
)

// Messages other goroutines deliver with Program.Send.
type (
	// ActivityMsg is a new record from the log file.
	ActivityMsg parser.Entry

	// ConfigMsg carries reloaded settings.
	ConfigMsg struct {
		Settings     panel.Settings
		PollInterval time.Duration
	}

	// HotkeyMsg is a press of the global toggle hotkey.
	HotkeyMsg struct{}
)

type (
	connectMsg struct{}
	tickMsg    struct{}
)

// Options configures a Model.
type Options struct {
	PollInterval  time.Duration
	ActivityLines int
	Hotkey        string
}

// Model is the bubbletea model wrapping a panel.Loop.
type Model struct {
	loop  *panel.Loop
	state panel.State

	interval time.Duration
	hotkey   string

	focus  focus
	cursor [2]int // outputs, inputs

	activity    []parser.Entry
	maxActivity int

	keys  keyMap
	help  help.Model
	width int
}

// New returns a model driving loop. The session is opened by Init.
func New(loop *panel.Loop, opts Options) Model {
	if opts.PollInterval <= 0 {
		opts.PollInterval = 100 * time.Millisecond
	}
	if opts.ActivityLines <= 0 {
		opts.ActivityLines = 6
	}
	return Model{
		loop:        loop,
		state:       loop.State(),
		interval:    opts.PollInterval,
		hotkey:      opts.Hotkey,
		maxActivity: opts.ActivityLines,
		keys:        defaultKeys(),
		help:        help.New(),
	}
}

// State returns the panel state as last rendered.
func (m Model) State() panel.State { return m.state }

func (m Model) Init() tea.Cmd {
	return func() tea.Msg { return connectMsg{} }
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg { return tickMsg{} })
}

func (m Model) dispatch(ev panel.Event) Model {
	m.state = m.loop.Dispatch(ev)
	m.clampCursors()
	return m
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case connectMsg:
		m.state = m.loop.Initialize()
		m.clampCursors()
		return m, m.tick()

	case tickMsg:
		if m.state.Session == panel.SessionClosed {
			return m, nil
		}
		m = m.dispatch(panel.Ticked{})
		return m, m.tick()

	case HotkeyMsg:
		return m.dispatch(panel.ToggleRequested{}), nil

	case ConfigMsg:
		if msg.PollInterval > 0 {
			m.interval = msg.PollInterval
		}
		return m.dispatch(panel.SettingsChanged{Settings: msg.Settings}), nil

	case ActivityMsg:
		m.activity = append(m.activity, parser.Entry(msg))
		if over := len(m.activity) - m.maxActivity; over > 0 {
			m.activity = append(m.activity[:0:0], m.activity[over:]...)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.state = m.loop.Shutdown()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Next):
		m.focus = (m.focus + 1) % focusCount
	case key.Matches(msg, m.keys.Prev):
		m.focus = (m.focus + focusCount - 1) % focusCount
	case key.Matches(msg, m.keys.Up):
		m.move(-1)
	case key.Matches(msg, m.keys.Down):
		m.move(1)
	case key.Matches(msg, m.keys.Enter):
		return m.activate(), nil
	case key.Matches(msg, m.keys.Apply):
		return m.dispatch(panel.ApplyRequested{}), nil
	case key.Matches(msg, m.keys.Toggle):
		return m.dispatch(panel.ToggleRequested{}), nil
	case key.Matches(msg, m.keys.Reconnect):
		return m.dispatch(panel.ConnectRequested{}), nil
	case key.Matches(msg, m.keys.Refresh):
		return m.dispatch(panel.RefreshRequested{}), nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m Model) activate() Model {
	switch m.focus {
	case focusOutputs:
		if name, ok := pick(m.state.Outputs, m.cursor[0]); ok {
			return m.dispatch(panel.OutputSelected{Name: name})
		}
	case focusInputs:
		if name, ok := pick(m.state.Inputs, m.cursor[1]); ok {
			return m.dispatch(panel.MicSelected{Name: name})
		}
	case focusApply:
		return m.dispatch(panel.ApplyRequested{})
	case focusToggle:
		return m.dispatch(panel.ToggleRequested{})
	}
	return m
}

func (m *Model) move(delta int) {
	switch m.focus {
	case focusOutputs:
		m.cursor[0] = clamp(m.cursor[0]+delta, len(m.state.Outputs))
	case focusInputs:
		m.cursor[1] = clamp(m.cursor[1]+delta, len(m.state.Inputs))
	}
}

func (m *Model) clampCursors() {
	m.cursor[0] = clamp(m.cursor[0], len(m.state.Outputs))
	m.cursor[1] = clamp(m.cursor[1], len(m.state.Inputs))
}

func clamp(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

func pick(names []string, i int) (string, bool) {
	if i < 0 || i >= len(names) {
		return "", false
	}
	return names[i], true
}
