package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/mp3tagger/internal/tagging"
)

// Styles for the TUI and the summary
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	fileStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// levelStyle returns the style and prefix used for a progress level.
func levelStyle(level tagging.ProgressLevel) (lipgloss.Style, string) {
	switch level {
	case tagging.LevelError:
		return errorStyle, "✗"
	case tagging.LevelWarning:
		return warningStyle, "!"
	case tagging.LevelSuccess:
		return successStyle, "✓"
	case tagging.LevelInfo:
		return infoStyle, "›"
	default:
		return dimStyle, "•"
	}
}

// RenderEvent renders a progress event as one styled line.
func RenderEvent(event tagging.ProgressEvent) string {
	style, prefix := levelStyle(event.Level)
	return style.Render(prefix + " " + event.Message)
}
