package ui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	styleComplete   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	styleInProgress = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	styleTesting    = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	styleCritical   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	styleHigh       = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	styleHeader     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33"))
)

// StyleStatus colors a status cell when ANSI output is enabled.
func StyleStatus(status string) string {
	if !ansiEnabled() {
		return status
	}
	switch status {
	case "complete":
		return styleComplete.Render(status)
	case "in_progress":
		return styleInProgress.Render(status)
	case "testing":
		return styleTesting.Render(status)
	default:
		return status
	}
}

// StylePriority colors a priority cell by bucket when ANSI output is enabled.
func StylePriority(value string, bucket string) string {
	if !ansiEnabled() {
		return value
	}
	// Bucket labels carry their range, like "critical (9-10)".
	switch {
	case strings.HasPrefix(bucket, "critical"):
		return styleCritical.Render(value)
	case strings.HasPrefix(bucket, "high"):
		return styleHigh.Render(value)
	default:
		return value
	}
}

// StyleHeader renders a bold section header when ANSI output is enabled.
func StyleHeader(value string) string {
	if !ansiEnabled() {
		return value
	}
	return styleHeader.Render(value)
}

func ansiEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}
