package ui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)

	normalStyle   = lipgloss.NewStyle()
	overdueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	completeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Faint(true)
	selectedStyle = lipgloss.NewStyle().Reverse(true)

	barFilledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	barEmptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	focusedLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	helpStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)
