// Package ui renders CLI output, either styled for a terminal or as JSON.
package ui

import "github.com/charmbracelet/lipgloss"

// Message styles
var (
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	InfoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#0099FF"))
	WarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFAA00"))
	DimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	BoldStyle    = lipgloss.NewStyle().Bold(true)
)

// Icons prefixed to messages and section headers
const (
	LabelIcon    = "🏷️"
	SequenceIcon = "🔢"
	SuccessIcon  = "✅"
	ErrorIcon    = "❌"
	InfoIcon     = "ⓘ"
	WarningIcon  = "⚠️"
)
