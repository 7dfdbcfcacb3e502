package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/micha/vm-master-control/panel"
)

// Program runs a Model and closes the mixer session however the program
// ends: the quit key, SIGTERM, or the console window being closed.
type Program struct {
	*tea.Program
	loop *panel.Loop
}

// NewProgram returns a program driving loop.
func NewProgram(loop *panel.Loop, opts Options, popts ...tea.ProgramOption) *Program {
	return &Program{
		Program: tea.NewProgram(New(loop, opts), popts...),
		loop:    loop,
	}
}

// Run blocks until the program exits, then shuts the session down unless the
// model already did.
func (p *Program) Run() error {
	_, err := p.Program.Run()
	p.loop.Shutdown()
	return err
}
