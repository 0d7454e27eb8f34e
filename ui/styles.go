package ui

import "github.com/charmbracelet/lipgloss"

// Palette. Colorblind-safe accents with shape markers alongside color.
var (
	// Primary is the accent/focus color.
	Primary = lipgloss.AdaptiveColor{Light: "#7D56F4", Dark: "#7D56F4"}

	// Clamped marks values where a min/max bound was binding.
	Clamped = lipgloss.AdaptiveColor{Light: "#F59E0B", Dark: "#F59E0B"}

	// Stepped marks values quantized to a step multiple.
	Stepped = lipgloss.AdaptiveColor{Light: "#3B82F6", Dark: "#3B82F6"}

	// TextPrimary is the main text color.
	TextPrimary = lipgloss.AdaptiveColor{Light: "#1a1a1a", Dark: "#dddddd"}

	// TextMuted is for hints and secondary columns.
	TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6B7280"}

	// Border is the default border color.
	Border = lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#3C3C3C"}
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary)

	tabStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(TextMuted)

	activeTabStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Bold(true).
			Foreground(TextPrimary).
			Background(lipgloss.AdaptiveColor{Light: "#dde4f0", Dark: "#3C3C4C"})

	headerRowStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextMuted).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(Border)

	valueStyle   = lipgloss.NewStyle().Foreground(TextPrimary)
	mutedStyle   = lipgloss.NewStyle().Foreground(TextMuted)
	clampedStyle = lipgloss.NewStyle().Foreground(Clamped)
	steppedStyle = lipgloss.NewStyle().Foreground(Stepped)

	statusStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Italic(true)
)
