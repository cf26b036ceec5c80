package hypnogram

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title      lipgloss.Style
	header     lipgloss.Style
	stage      lipgloss.Style
	detail     lipgloss.Style
	warning    lipgloss.Style
	section    lipgloss.Style
	empty      lipgloss.Style
	barBracket lipgloss.Style
	barEmpty   lipgloss.Style
	stageFill  map[string]lipgloss.Style
	otherFill  lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true),
		header:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		stage:      lipgloss.NewStyle().Bold(true).Width(4),
		detail:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		warning:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		section:    lipgloss.NewStyle().MarginTop(1),
		empty:      lipgloss.NewStyle().Faint(true),
		barBracket: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		barEmpty:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		stageFill: map[string]lipgloss.Style{
			"W":   lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
			"N1":  lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
			"N2":  lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
			"N3":  lipgloss.NewStyle().Foreground(lipgloss.Color("27")),
			"REM": lipgloss.NewStyle().Foreground(lipgloss.Color("170")),
		},
		otherFill: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

func (s styles) fill(stage string) lipgloss.Style {
	if style, ok := s.stageFill[stage]; ok {
		return style
	}
	return s.otherFill
}
