package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/micha/vm-master-control/panel"
)

var (
	// Nord palette
	nord0  = lipgloss.Color("#2E3440")
	nord2  = lipgloss.Color("#434C5E")
	nord3  = lipgloss.Color("#4C566A")
	nord4  = lipgloss.Color("#D8DEE9")
	nord8  = lipgloss.Color("#88C0D0")
	nord9  = lipgloss.Color("#81A1C1")
	nord10 = lipgloss.Color("#5E81AC")
	nord11 = lipgloss.Color("#BF616A")
	nord13 = lipgloss.Color("#EBCB8B")
	nord14 = lipgloss.Color("#A3BE8C")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(nord8)
	sectionStyle = lipgloss.NewStyle().MarginTop(1).Foreground(nord9)
	focusStyle   = lipgloss.NewStyle().Foreground(nord13)
	faintStyle   = lipgloss.NewStyle().Faint(true)
	btnStyle     = lipgloss.NewStyle().Padding(0, 1).Foreground(nord4).Background(nord2)
	btnFocus     = lipgloss.NewStyle().Padding(0, 1).Foreground(nord0).Background(nord13)
	connectStyle = lipgloss.NewStyle().Padding(0, 1).Foreground(nord0).Background(nord14)
	dropStyle    = lipgloss.NewStyle().Padding(0, 1).Foreground(nord0).Background(nord11)
	loadingStyle = lipgloss.NewStyle().Padding(0, 1).Foreground(nord4).Background(nord3)
)

func (m Model) View() string {
	b := &strings.Builder{}
	fmt.Fprintln(b, titleStyle.Render("Voicemeeter Master Control")+"  "+faintStyle.Render(m.state.Session.String()))

	fmt.Fprintln(b, sectionStyle.Render("Speakers / Headphones"))
	m.renderList(b, m.state.Outputs, m.state.Output, m.cursor[0], m.focus == focusOutputs)

	fmt.Fprintln(b, sectionStyle.Render("Microphone"))
	m.renderList(b, m.state.Inputs, m.state.Mic, m.cursor[1], m.focus == focusInputs)

	fmt.Fprintln(b)
	apply := btnStyle.Render("Apply Configuration")
	if m.focus == focusApply {
		apply = btnFocus.Render("Apply Configuration")
	}
	toggle := m.renderToggle()
	fmt.Fprintln(b, "  "+lipgloss.JoinHorizontal(lipgloss.Top, apply, "   ", toggle))

	fmt.Fprintln(b)
	fmt.Fprintln(b, "  "+renderStatus(m.state.Status))

	if len(m.activity) > 0 {
		fmt.Fprintln(b, sectionStyle.Render("Activity"))
		for _, e := range m.activity {
			line := e.Time + " "
			if e.Tag != "" {
				line += "[" + e.Tag + "] "
			}
			line += e.Message
			if e.IsError {
				line = lipgloss.NewStyle().Foreground(nord11).Render(line)
			} else {
				line = faintStyle.Render(line)
			}
			fmt.Fprintln(b, "  "+line)
		}
	}

	fmt.Fprintln(b)
	if m.hotkey != "" {
		fmt.Fprintln(b, faintStyle.Render(fmt.Sprintf("%s toggles the connection from anywhere", m.hotkey)))
	}
	fmt.Fprint(b, m.help.View(m.keys))
	return b.String()
}

func (m Model) renderList(b *strings.Builder, names []string, selected string, cursor int, focused bool) {
	if len(names) == 0 {
		fmt.Fprintln(b, "  "+faintStyle.Render("(no devices)"))
		return
	}
	for i, name := range names {
		dot := "( )"
		style := lipgloss.NewStyle().Foreground(nord4)
		if name == selected {
			dot = "(•)"
			style = style.Foreground(nord10)
		}
		prefix := "  "
		if focused && i == cursor {
			prefix = "› "
			style = focusStyle
		}
		fmt.Fprintln(b, prefix+style.Render(dot+" "+name))
	}
}

func (m Model) renderToggle() string {
	label := m.state.Toggle.Label()
	if m.focus == focusToggle {
		return btnFocus.Render(label)
	}
	switch m.state.Toggle {
	case panel.ToggleDisconnected:
		return connectStyle.Render(label)
	case panel.ToggleConnected:
		return dropStyle.Render(label)
	}
	return loadingStyle.Render(label)
}

func renderStatus(s panel.Status) string {
	c := nord4
	switch s.Severity {
	case panel.Success:
		c = nord14
	case panel.Warning:
		c = nord13
	case panel.Failure:
		c = nord11
	}
	return lipgloss.NewStyle().Foreground(c).Render(s.Text)
}
