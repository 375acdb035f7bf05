package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var hasDarkBackground = termenv.HasDarkBackground()

func accentColor() lipgloss.Color {
	if hasDarkBackground {
		return lipgloss.Color("212")
	}
	return lipgloss.Color("205")
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor())

	paneBorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	focusedPaneStyle = paneBorderStyle.
				BorderForeground(accentColor())

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("247"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	noteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("179")).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	recordingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	speakingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	selectedItemStyle = lipgloss.NewStyle().
				Foreground(accentColor()).
				Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)
