// internal/tui/styles.go
package tui

import "github.com/charmbracelet/lipgloss"

var (
	styleHeader    = lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(lipgloss.Color("12"))
	styleCorrect   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	styleIncorrect = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	styleReview    = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	styleCursor    = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	styleSubtle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	stylePrompt    = lipgloss.NewStyle().Bold(true).Padding(1, 2)
	styleError     = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(0, 1)
	styleBox       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2)
)
