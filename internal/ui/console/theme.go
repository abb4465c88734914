package console

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Title   lipgloss.Style
	Step    lipgloss.Style
	Success lipgloss.Style
	Warn    lipgloss.Style
	Fail    lipgloss.Style
	Faint   lipgloss.Style
}

func DefaultTheme() Theme {
	return Theme{
		Title:   lipgloss.NewStyle().Bold(true),
		Step:    lipgloss.NewStyle().Foreground(lipgloss.Color("63")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Warn:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Fail:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		Faint:   lipgloss.NewStyle().Faint(true),
	}
}

// PlainTheme renders every style as-is, for non-terminal output and tests.
func PlainTheme() Theme {
	plain := lipgloss.NewStyle()
	return Theme{
		Title:   plain,
		Step:    plain,
		Success: plain,
		Warn:    plain,
		Fail:    plain,
		Faint:   plain,
	}
}
