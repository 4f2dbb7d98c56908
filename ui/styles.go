package ui

import (
	"github.com/charmbracelet/lipgloss"

	"mmclife/model"
)

var (
	colorRed    = lipgloss.Color("#FF5555")
	colorYellow = lipgloss.Color("#F1FA8C")
	colorGreen  = lipgloss.Color("#50FA7B")
	colorCyan   = lipgloss.Color("#8BE9FD")
	colorGray   = lipgloss.Color("#6272A4")
)

// Styles is the injected presentation set. The renderer never picks
// colors itself; it only selects one of these roles.
type Styles struct {
	Info    lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Title   lipgloss.Style
	Label   lipgloss.Style
}

// DefaultStyles returns the colored terminal style set.
func DefaultStyles() Styles {
	return Styles{
		Info:    lipgloss.NewStyle().Foreground(colorCyan),
		Success: lipgloss.NewStyle().Foreground(colorGreen),
		Warning: lipgloss.NewStyle().Foreground(colorYellow).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(colorRed).Bold(true),
		Title:   lipgloss.NewStyle().Foreground(colorCyan).Bold(true),
		Label:   lipgloss.NewStyle().Foreground(colorGray),
	}
}

// PlainStyles returns a style set that renders text unchanged, for
// -no-color runs and deterministic test output.
func PlainStyles() Styles {
	return Styles{
		Info:    lipgloss.NewStyle(),
		Success: lipgloss.NewStyle(),
		Warning: lipgloss.NewStyle(),
		Error:   lipgloss.NewStyle(),
		Title:   lipgloss.NewStyle(),
		Label:   lipgloss.NewStyle(),
	}
}

// ForHealth maps a health status to its emphasis style.
func (s Styles) ForHealth(h model.HealthStatus) lipgloss.Style {
	switch h {
	case model.HealthExcellent:
		return s.Success
	case model.HealthGood:
		return s.Warning
	}
	return s.Error
}

// ForPreEOL maps a Pre-EOL status to its emphasis style.
func (s Styles) ForPreEOL(p model.PreEOL) lipgloss.Style {
	switch p {
	case model.PreEOLNormal:
		return s.Success
	case model.PreEOLWarning:
		return s.Warning
	case model.PreEOLUrgent:
		return s.Error
	}
	return s.Label
}
