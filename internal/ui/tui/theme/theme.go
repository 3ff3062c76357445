package theme

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the semantic colors and styles of the pager
type Theme struct {
	// Colors
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Subtle    lipgloss.AdaptiveColor
	Error     lipgloss.AdaptiveColor

	// Styles
	HeaderStyle  lipgloss.Style
	StatusStyle  lipgloss.Style
	FooterStyle  lipgloss.Style
	KeyHintStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
}

// DefaultTheme creates a default theme
func DefaultTheme() *Theme {
	primary := lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	secondary := lipgloss.AdaptiveColor{Light: "#4B56FD", Dark: "#4B56FD"}
	subtle := lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"}
	errColor := lipgloss.AdaptiveColor{Light: "#FF0000", Dark: "#FF4136"}

	return &Theme{
		Primary:   primary,
		Secondary: secondary,
		Subtle:    subtle,
		Error:     errColor,

		HeaderStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary).
			Padding(0, 1),

		StatusStyle: lipgloss.NewStyle().
			Foreground(subtle).
			Padding(0, 1),

		FooterStyle: lipgloss.NewStyle().
			Foreground(subtle).
			Padding(0, 1),

		KeyHintStyle: lipgloss.NewStyle().
			Foreground(secondary).
			Bold(true),

		ErrorStyle: lipgloss.NewStyle().
			Foreground(errColor).
			Padding(0, 1),
	}
}
