// Package tui is the interactive dashboard: board columns, a live timer
// header, and the interruption-reason prompt. It owns the single event loop
// that drives the timer engine.
package tui

import (
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/avelkov/focusboard/internal/board"
	"github.com/avelkov/focusboard/internal/config"
	"github.com/avelkov/focusboard/internal/timer"
)

// DashboardModel is the top-level bubbletea model.
type DashboardModel struct {
	vault   *board.Vault
	manager *timer.Manager
	status  *StatusSink

	view     ViewState
	modal    *ReasonModal
	progress progress.Model

	lastRev       uint64
	width, height int
	err           error
}

// NewDashboardModel builds the dashboard over an opened vault and a wired
// timer manager.
func NewDashboardModel(v *board.Vault, m *timer.Manager, status *StatusSink) DashboardModel {
	d := DashboardModel{
		vault:    v,
		manager:  m,
		status:   status,
		view:     newViewState(),
		progress: progress.New(progress.WithDefaultGradient()),
		lastRev:  v.Revision(),
	}
	d.progress.Width = config.TargetTitleWidth
	return d
}

// Init starts the one-second tick pump.
func (m DashboardModel) Init() tea.Cmd {
	return tickCmd()
}

// Update dispatches messages to the tick and key handlers.
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)
	case TickMsg:
		return m.handleTick(msg)
	case tea.KeyMsg:
		if m.modal != nil {
			return m.handleModalKey(msg)
		}
		return m.handleNormalKey(msg)
	}
	return m, nil
}
