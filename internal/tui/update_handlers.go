package tui

import (
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/avelkov/focusboard/internal/config"
	"github.com/avelkov/focusboard/internal/models"
	"github.com/avelkov/focusboard/internal/timer"
)

func (m DashboardModel) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width, m.height = msg.Width, msg.Height
	if m.width > 0 {
		target := config.TargetTitleWidth
		if m.width < config.CompactModeThreshold {
			target = m.width / 2
		}
		if target < config.MinTitleWidth {
			target = config.MinTitleWidth
		}
		m.progress.Width = target
	}
	return m, nil
}

func (m DashboardModel) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	// External edits to the vault re-resolve durations for the active card.
	if rev := m.vault.Revision(); rev != m.lastRev {
		m.lastRev = rev
		m.manager.RefreshDurations()
	}

	m.manager.Tick()

	// A stop may have entered the awaiting-reason phase from any code path;
	// surface the prompt here so the check lives in one place.
	if m.manager.AwaitingReason() && m.modal == nil {
		m.modal = newReasonModal(m.manager.InterruptReasons())
	}

	if m.manager.IsRunning("", "") && m.manager.State().Mode != models.ModeStopwatch {
		newProg, progCmd := m.progress.Update(msg)
		m.progress = newProg.(progress.Model)
		return m, tea.Batch(tickCmd(), progCmd)
	}
	return m, tickCmd()
}

func (m DashboardModel) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if next, handled := m.handleNavigation(key); handled {
		return next, nil
	}
	if next, cmd, handled := m.handleTimerKeys(key); handled {
		return next, cmd
	}

	switch key {
	case "r":
		m.manager.Store().ForceReparse()
		m.status.Notify("Session log reparsed from documents.")
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m DashboardModel) handleNavigation(key string) (DashboardModel, bool) {
	cols := m.columns()
	switch key {
	case "left", "h":
		if m.view.focusedColIdx > 0 {
			m.view.focusedColIdx--
			m.view.focusedCardIdx = 0
		}
		return m, true
	case "right", "l":
		if m.view.focusedColIdx < len(cols)-1 {
			m.view.focusedColIdx++
			m.view.focusedCardIdx = 0
		}
		return m, true
	case "up", "k":
		if m.view.focusedCardIdx > 0 {
			m.view.focusedCardIdx--
		}
		return m, true
	case "down", "j":
		if m.view.focusedColIdx < len(cols) {
			if m.view.focusedCardIdx < len(cols[m.view.focusedColIdx].list.Cards)-1 {
				m.view.focusedCardIdx++
			}
		}
		return m, true
	}
	return m, false
}

func (m DashboardModel) handleTimerKeys(key string) (DashboardModel, tea.Cmd, bool) {
	switch key {
	case "p", "s":
		mode := models.ModePomodoro
		if key == "s" {
			mode = models.ModeStopwatch
		}
		card, _ := m.focusedCard()
		// Toggle handles the empty id: it reports "no card selected".
		m.manager.Toggle(mode, card.ID)
		if m.manager.AwaitingReason() && m.modal == nil {
			m.modal = newReasonModal(m.manager.InterruptReasons())
		}
		return m, nil, true
	case "x":
		m.manager.Stop(true)
		if m.manager.AwaitingReason() && m.modal == nil {
			m.modal = newReasonModal(m.manager.InterruptReasons())
		}
		return m, nil, true
	case "b":
		m.manager.SkipBreak()
		return m, nil, true
	}
	return m, nil, false
}

func (m DashboardModel) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.modal.cursor > 0 {
			m.modal.cursor--
		}
	case "down", "j":
		if m.modal.cursor < len(m.modal.reasons)-1 {
			m.modal.cursor++
		}
	case "enter":
		m.manager.ConfirmStop(m.modal.reasons[m.modal.cursor])
		m.modal = nil
	case "esc":
		// Dismissing the prompt resumes the paused session.
		m.manager.CancelStop()
		m.modal = nil
	}
	return m, nil
}

var _ timer.Notifier = (*StatusSink)(nil)
