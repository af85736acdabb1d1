package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all lipgloss styles for terminal output
type Styles struct {
	enabled bool

	// Status styles
	Error   lipgloss.Style
	Warning lipgloss.Style

	// Statistics styles
	Header    lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	Separator lipgloss.Style

	// Icons (degraded to ASCII when not interactive)
	IconError   string
	IconWarning string
}

// NewStyles creates a new Styles instance
// When enabled is false, styles return text unchanged (for non-TTY output)
func NewStyles(enabled bool) *Styles {
	s := &Styles{enabled: enabled}

	if enabled {
		s.Error = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))    // Red
		s.Warning = lipgloss.NewStyle().Foreground(lipgloss.Color("11")) // Yellow

		s.Header = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")) // Cyan bold
		s.Label = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))              // Gray
		s.Value = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")) // White bold
		s.Separator = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))          // Gray

		s.IconError = "\u2717"   // ✗
		s.IconWarning = "\u26a0" // ⚠
	} else {
		s.Error = lipgloss.NewStyle()
		s.Warning = lipgloss.NewStyle()

		s.Header = lipgloss.NewStyle()
		s.Label = lipgloss.NewStyle()
		s.Value = lipgloss.NewStyle()
		s.Separator = lipgloss.NewStyle()

		s.IconError = "ERROR:"
		s.IconWarning = "WARN:"
	}

	return s
}

// Enabled returns whether styling is enabled
func (s *Styles) Enabled() bool {
	return s.enabled
}
