package tui

import "github.com/charmbracelet/lipgloss"

// Static styles for the frame around the content
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true)

	PaneBorderColor   = lipgloss.Color("#626262")
	ActiveBorderColor = lipgloss.Color("#04B575")

	SidebarTitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#96CEB4")).
				Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)
