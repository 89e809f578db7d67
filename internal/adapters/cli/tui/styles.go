package tui

import "github.com/charmbracelet/lipgloss"

var (
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	normalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	titleStyle    = lipgloss.NewStyle().Bold(true)
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)

	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
)

// SuccessMark returns a green check mark
func SuccessMark() string { return successStyle.Render("✓") }

// FailureMark returns a red cross
func FailureMark() string { return failureStyle.Render("✗") }

// WarningMark returns a yellow exclamation mark
func WarningMark() string { return warningStyle.Render("!") }
