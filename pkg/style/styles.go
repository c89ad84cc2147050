// Package style holds the lipgloss palette and styles of the console output.
package style

import (
	"github.com/arthur-debert/syncd/pkg/types"
	"github.com/charmbracelet/lipgloss"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	PathStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Italic(true)

	SymlinkStyle = lipgloss.NewStyle().
			Foreground(SymlinkColor).
			Bold(true)

	CodeStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)
)

// OutcomeStyle returns the style used to print an outcome label
func OutcomeStyle(outcome types.Outcome) lipgloss.Style {
	switch outcome {
	case types.OutcomeSkipped:
		return WarningStyle
	case types.OutcomeSymlink:
		return SymlinkStyle
	default:
		return SuccessStyle
	}
}
