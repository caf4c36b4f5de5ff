package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// MenuTheme contains the visual styles of the selection menus.
type MenuTheme struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	ItemNormal  lipgloss.Style
	ItemActive  lipgloss.Style
	Description lipgloss.Style
	Controls    lipgloss.Style
}

// DefaultMenuTheme returns the default visual theme.
func DefaultMenuTheme() MenuTheme {
	return MenuTheme{
		Title:       lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true), // Hot pink
		Subtitle:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		ItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		ItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true), // Bright yellow
		Description: lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
		Controls:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// MonochromeMenuTheme returns a theme without colors.
func MonochromeMenuTheme() MenuTheme {
	return MenuTheme{
		Title:       lipgloss.NewStyle().Bold(true),
		Subtitle:    lipgloss.NewStyle(),
		ItemNormal:  lipgloss.NewStyle(),
		ItemActive:  lipgloss.NewStyle().Reverse(true),
		Description: lipgloss.NewStyle().Faint(true),
		Controls:    lipgloss.NewStyle().Faint(true),
	}
}

// Global theme variable (can be changed before a menu starts)
var menuTheme = DefaultMenuTheme()

// SetMenuTheme sets the global theme.
func SetMenuTheme(theme MenuTheme) {
	menuTheme = theme
}

// centerText pads a possibly styled line so it is centered in width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
