// Package styles defines the shared lipgloss styles for the TUI.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	ColorPrimary = lipgloss.Color("170") // violet
	ColorAccent  = lipgloss.Color("39")  // blue
	ColorMuted   = lipgloss.Color("241")
	ColorError   = lipgloss.Color("196")
	ColorSuccess = lipgloss.Color("76")
	ColorWarn    = lipgloss.Color("214")

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary)

	Subtitle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	Selected = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	Normal = lipgloss.NewStyle()

	Muted = lipgloss.NewStyle().
		Foreground(ColorMuted)

	Error = lipgloss.NewStyle().
		Foreground(ColorError)

	Success = lipgloss.NewStyle().
		Foreground(ColorSuccess)

	Highlight = lipgloss.NewStyle().
			Foreground(ColorAccent)

	TabActive = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Underline(true)

	TabInactive = lipgloss.NewStyle().
			Foreground(ColorMuted)

	FilterPill = lipgloss.NewStyle().
			Foreground(ColorAccent)

	FilterPillActive = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("229")).
				Background(ColorAccent)

	StatusBar = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			Background(lipgloss.Color("236"))

	ReaderText = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))
)

// SpinnerFrames are the frames used by the inline loading spinner.
var SpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
