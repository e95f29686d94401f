package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Color palette for the watch dashboard
var (
	// Primary colors
	PrimaryColor = lipgloss.Color("#43BF6D") // Green - headers, borders
	SuccessColor = lipgloss.Color("#43BF6D") // Green - online markers
	ErrorColor   = lipgloss.Color("#FF5555") // Red - errors, offline markers
	WarningColor = lipgloss.Color("#FFA500") // Orange - refresh in progress
	MutedColor   = lipgloss.Color("#626262") // Gray - secondary info
	TextColor    = lipgloss.Color("#FFFFFF") // White - main content
)

// Layout constants
const (
	MinTerminalWidth = 60  // Minimum supported terminal width
	MaxContentWidth  = 100 // Maximum content width before capping
)

// Shared styles for the watch dashboard
var (
	// TitleStyle is for the dashboard title bar
	TitleStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Bold(true).
			PaddingLeft(2)

	// ControllerNameStyle is for controller display names
	ControllerNameStyle = lipgloss.NewStyle().
				Foreground(TextColor).
				Bold(true)

	// ControllerMetaStyle is for model/firmware detail lines
	ControllerMetaStyle = lipgloss.NewStyle().
				Foreground(MutedColor)

	// PortNameStyle is for port labels
	PortNameStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	// PortOnlineStyle is for the online marker
	PortOnlineStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// PortOfflineStyle is for the offline marker
	PortOfflineStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// SensorValueStyle is for sensor readings
	SensorValueStyle = lipgloss.NewStyle().
				Foreground(TextColor)

	// SensorLabelStyle is for sensor names
	SensorLabelStyle = lipgloss.NewStyle().
				Foreground(MutedColor).
				Width(28)

	// StatusBarStyle is for the bottom status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			PaddingLeft(2)

	// RefreshingStyle is for the "refreshing" status text
	RefreshingStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorMessageStyle is for error message text
	ErrorMessageStyle = lipgloss.NewStyle().
				Foreground(ErrorColor)
)

// Status markers
const (
	OnlineMarker  = "●"
	OfflineMarker = "○"
	FailureMarker = "✗"
)

// GetTerminalWidth returns the current terminal width, with fallback
func GetTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < MinTerminalWidth {
		return MinTerminalWidth
	}
	if width > MaxContentWidth {
		return MaxContentWidth
	}
	return width
}

// ControllerBoxStyle returns the border style for one controller section
func ControllerBoxStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(PrimaryColor).
		Width(width - 2).
		Padding(0, 1)
}
