package main

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var keyword = makeGradientText(lipgloss.NewStyle())

func makeGradientText(base lipgloss.Style) func(string) string {
	color := "#EE6FF8"
	if !termenv.HasDarkBackground() {
		color = "#8839EF"
	}
	style := base.Foreground(lipgloss.Color(color))
	return func(s string) string {
		return style.Render(s)
	}
}

func paragraph(s string) string {
	return lipgloss.NewStyle().
		Width(78).
		Padding(0, 0, 0, 2).
		Render(s)
}
