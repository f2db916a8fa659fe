package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is the once-per-second pulse that drives the timer engine.
type TickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return TickMsg(t) })
}
