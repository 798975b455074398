package tui

import "github.com/charmbracelet/lipgloss"

// Common styles
var (
	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	StyleLabel = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true)

	StyleSuccess = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	StyleError = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	StyleWarning = lipgloss.NewStyle().
			Foreground(ColorWarning)

	StyleMuted = lipgloss.NewStyle().
			Foreground(ColorMuted)

	StyleSubtle = lipgloss.NewStyle().
			Foreground(ColorSubtle).
			Italic(true)
)

const logoASCII = " ___ _   ___   ____ _ _ __ _ __   __ _ \n" +
	"/ __| | | \\ \\ / / _` | '__| '_ \\ / _` |\n" +
	"\\__ \\ |_| |\\ V / (_| | |  | | | | (_| |\n" +
	"|___/\\__,_| \\_/ \\__,_|_|  |_| |_|\\__,_|"

// Logo returns the styled application logo.
func Logo() string {
	return StyleHeader.Render(logoASCII)
}
