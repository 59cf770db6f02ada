package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
)

// New creates a new TUI model
func New(deps Deps) (Model, error) {
	if deps.Resources == nil || deps.Profiles == nil || deps.Store == nil {
		return Model{}, errors.New("tui: resource service, profile service and session store are required")
	}
	return newModel(deps), nil
}

// Run starts the TUI and blocks until the user quits
func Run(deps Deps) error {
	m, err := New(deps)
	if err != nil {
		return err
	}

	// Pointer since Update uses a pointer receiver
	p := tea.NewProgram(&m, tea.WithAltScreen())
	m.confirmer.attach(p.Send)
	defer m.Cleanup()

	m.logger.Info("console started", "server", m.server)
	if _, err := p.Run(); err != nil {
		return err
	}
	m.logger.Info("console stopped")
	return nil
}
