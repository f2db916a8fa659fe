package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/avelkov/focusboard/internal/config"
	"github.com/avelkov/focusboard/internal/models"
	"github.com/avelkov/focusboard/internal/timer"
	"github.com/avelkov/focusboard/internal/util"
)

// View renders the full dashboard: timer header, board columns, status bar,
// and the reason modal when a stop is awaiting input.
func (m DashboardModel) View() string {
	theme := DefaultTheme

	var sections []string
	sections = append(sections, m.renderHeader(theme))
	if m.modal != nil {
		sections = append(sections, m.renderReasonModal(theme))
	} else {
		sections = append(sections, m.renderColumns(theme))
	}
	sections = append(sections, m.renderStatusBar(theme))

	return theme.Base.Render(strings.Join(sections, "\n\n"))
}

func (m DashboardModel) renderHeader(theme Theme) string {
	state := m.manager.State()
	var content string
	var style lipgloss.Style

	switch state.Phase {
	case timer.PhaseRunning:
		switch state.Mode {
		case models.ModeBreak:
			content = fmt.Sprintf("☕ BREAK  %s remaining  [b] skip", util.FormatClock(m.manager.Remaining()))
			style = theme.Break
		case models.ModePomodoro:
			bar := m.progress.ViewAs(m.pomodoroProgress())
			content = fmt.Sprintf("🍅 POMODORO on %s  %s  %s remaining%s",
				m.cardTitle(state.TargetCardID), bar,
				util.FormatClock(m.manager.Remaining()), m.roundSuffix())
			style = theme.Focused
		default:
			content = fmt.Sprintf("⏱ STOPWATCH on %s  %s elapsed",
				m.cardTitle(state.TargetCardID), util.FormatClock(m.manager.Elapsed()))
			style = theme.Focused
		}
	case timer.PhaseAwaitingReason:
		content = "Paused — why the interruption?"
		style = theme.Break
	default:
		content = "[p] pomodoro  [s] stopwatch on selected card"
		style = theme.Dim
	}

	width := m.width
	if width <= 0 {
		width = 80
	}
	return theme.Header.Width(width - 4).Render(style.Render(content))
}

func (m DashboardModel) pomodoroProgress() float64 {
	d := m.manager.Durations().Pomodoro
	if d <= 0 {
		return 0
	}
	p := float64(m.manager.Elapsed()) / float64(d)
	if p > 1 {
		p = 1
	}
	return p
}

func (m DashboardModel) roundSuffix() string {
	if rounds := m.manager.Durations().AutoRounds; rounds > 0 {
		return fmt.Sprintf("  (round %d/%d)", m.manager.CurrentAutoRound()+1, rounds)
	}
	return ""
}

func (m DashboardModel) cardTitle(cardID string) string {
	if card, ok := m.vault.FindCard(cardID); ok {
		return ansi.Truncate(card.Title, config.TargetTitleWidth, config.TruncationSuffix)
	}
	return "?"
}

func (m DashboardModel) renderColumns(theme Theme) string {
	cols := m.columns()
	if len(cols) == 0 {
		return theme.Dim.Render("No boards in this vault yet.")
	}

	colWidth := config.TargetTitleWidth + 8
	if m.width > 0 && m.width/len(cols) < colWidth {
		colWidth = max(m.width/len(cols)-2, config.MinColumnWidth)
	}

	rendered := make([]string, 0, len(cols))
	for i, col := range cols {
		rendered = append(rendered, m.renderColumn(theme, i, col, colWidth))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m DashboardModel) renderColumn(theme Theme, idx int, col column, width int) string {
	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1).
		Width(width)
	if idx == m.view.focusedColIdx {
		frame = frame.BorderForeground(lipgloss.Color("205"))
	}

	var sb strings.Builder
	title := fmt.Sprintf("%s · %s", col.boardTitle, col.list.Title)
	sb.WriteString(theme.Highlight.Render(ansi.Truncate(title, width-2, config.TruncationSuffix)))
	sb.WriteString("\n")

	offset := m.view.cardScrollOffset[idx]
	visible := col.list.Cards
	if offset < len(visible) {
		visible = visible[offset:]
	}
	if len(visible) > config.MaxVisibleCards {
		visible = visible[:config.MaxVisibleCards]
	}

	for ci, card := range visible {
		style := theme.Card
		if card.Done {
			style = theme.DoneCard
		}
		cursor := "  "
		if idx == m.view.focusedColIdx && ci+offset == m.view.focusedCardIdx {
			cursor = "> "
			style = theme.Focused
		}
		running := ""
		if m.manager.IsRunning("", card.ID) {
			running = " ●"
		}
		line := cursor + ansi.Truncate(card.Title, width-8, config.TruncationSuffix) + running
		if total := m.manager.Store().TotalFocused(card.ID); total > 0 {
			line += theme.Dim.Render(" " + util.FormatDuration(total))
		}
		sb.WriteString(style.Render(line))
		sb.WriteString("\n")
	}
	if len(col.list.Cards) == 0 {
		sb.WriteString(theme.Dim.Render("  (empty)"))
		sb.WriteString("\n")
	}
	return frame.Render(sb.String())
}

func (m DashboardModel) renderReasonModal(theme Theme) string {
	var sb strings.Builder
	sb.WriteString(theme.Header.Render("Why was the session interrupted?"))
	sb.WriteString("\n\n")
	for i, reason := range m.modal.reasons {
		if i == m.modal.cursor {
			sb.WriteString(theme.Focused.Render("> " + reason))
		} else {
			sb.WriteString(theme.Card.Render("  " + reason))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(theme.Dim.Render("enter: record  esc: keep timing"))
	return theme.Modal.Render(sb.String())
}

func (m DashboardModel) renderStatusBar(theme Theme) string {
	help := "[p] pomodoro  [s] stopwatch  [x] stop  [b] skip break  [r] reparse  [q] quit"
	line := theme.Dim.Render(help)
	if m.status.Message != "" {
		line += "\n" + theme.Break.Render(m.status.Message)
	}
	if m.err != nil {
		line += "\n" + theme.Break.Render(m.err.Error())
	}
	return line
}
