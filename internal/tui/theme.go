package tui

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Base      lipgloss.Style
	Border    lipgloss.Color
	Header    lipgloss.Style
	Card      lipgloss.Style
	DoneCard  lipgloss.Style
	Break     lipgloss.Style
	Focused   lipgloss.Style
	Dim       lipgloss.Style
	Highlight lipgloss.Style
	Modal     lipgloss.Style
}

// DefaultTheme mirrors the stock terminal palette.
var DefaultTheme = Theme{
	Base:      lipgloss.NewStyle().Margin(1, 2),
	Border:    lipgloss.Color("63"),
	Header:    lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Align(lipgloss.Center),
	Card:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	DoneCard:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Strikethrough(true),
	Break:     lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
	Focused:   lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
	Dim:       lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	Highlight: lipgloss.NewStyle().Foreground(lipgloss.Color("63")),
	Modal:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("205")).Padding(0, 1),
}
