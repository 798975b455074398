package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	// Primary colors
	ColorPrimary   = lipgloss.Color("#D4AF37") // Gold
	ColorSecondary = lipgloss.Color("#14B8A6") // Teal

	// Status colors
	ColorSuccess = lipgloss.Color("#22C55E") // Green
	ColorError   = lipgloss.Color("#EF4444") // Red
	ColorWarning = lipgloss.Color("#F59E0B") // Amber

	// Text colors
	ColorText   = lipgloss.Color("#F8FAFC") // Light
	ColorMuted  = lipgloss.Color("#94A3B8") // Muted gray
	ColorSubtle = lipgloss.Color("#64748B") // Subtle gray
)
