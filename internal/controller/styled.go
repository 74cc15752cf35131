package controller

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// StyledUI is a SimpleUI with terminal colors.
type StyledUI struct {
	*SimpleUI
}

// NewStyledUI creates a UI that colors paths, outcomes and warnings.
func NewStyledUI(cmd *cobra.Command) *StyledUI {
	return &StyledUI{
		SimpleUI: &SimpleUI{cmd: cmd, theme: styledTheme()},
	}
}

func styledTheme() theme {
	return theme{
		path:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		failure: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		heading: lipgloss.NewStyle().Bold(true),
	}
}
