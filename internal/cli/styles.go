package cli

import "github.com/charmbracelet/lipgloss"

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	countStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)
