package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorText     lipgloss.Color = "#cdd6f4"
	colorMuted    lipgloss.Color = "#a6adc8"
	colorBorder   lipgloss.Color = "#585b70"
	colorAccent   lipgloss.Color = "#89b4fa"
	colorSuccess  lipgloss.Color = "#a6e3a1"
	colorError    lipgloss.Color = "#f38ba8"
	colorWarn     lipgloss.Color = "#f9e2af"
	colorTabOff   lipgloss.Color = "#7f849c"
	colorSurface0 lipgloss.Color = "#313244"
	colorMantle   lipgloss.Color = "#181825"
)

var (
	headerBarStyle   = lipgloss.NewStyle().Background(colorMantle).Foreground(colorText)
	headerAppStyle   = lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Background(colorMantle)
	activeTabStyle   = lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Underline(true).Background(colorMantle)
	inactiveTabStyle = lipgloss.NewStyle().Foreground(colorTabOff).Background(colorMantle)
	tabSepStyle      = lipgloss.NewStyle().Foreground(colorBorder).Background(colorMantle)

	statusBarStyle    = lipgloss.NewStyle().Foreground(colorSuccess)
	statusErrBarStyle = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	footerStyle       = lipgloss.NewStyle()

	sectionTitleStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	cursorStyle       = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	selectedRowStyle  = lipgloss.NewStyle().Background(colorSurface0).Foreground(colorText)
	mutedStyle        = lipgloss.NewStyle().Foreground(colorMuted)
	warnStyle         = lipgloss.NewStyle().Foreground(colorWarn)
	destructiveStyle  = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	modalBorderStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorAccent).Padding(1, 2)
	alertBorderStyle  = modalBorderStyle.BorderForeground(colorError)
)
