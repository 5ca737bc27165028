package main

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/youjizi/proxy-manager/internal/proxy"
	"github.com/youjizi/proxy-manager/internal/tui"
)

var (
	dimStyle     = lipgloss.NewStyle().Faint(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")) // green
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")) // red
)

// printReport writes per-target result lines, green for success and red
// for failure.
func printReport(w io.Writer, lines []string) {
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "✓"):
			fmt.Fprintln(w, successStyle.Render(line))
		case strings.HasPrefix(line, "✗"):
			fmt.Fprintln(w, errorStyle.Render(line))
		default:
			fmt.Fprintln(w, line)
		}
	}
}

// resolveTargetNames decides which targets a batch command touches: an
// interactive pick, the explicit arguments, or every installed target.
// cancelled is true when the user quit the interactive picker.
func resolveTargetNames(cmd *cobra.Command, m *proxy.Manager, args []string, interactive bool, title string) (names []string, cancelled bool, err error) {
	if interactive {
		return pickTargets(cmd, m, title)
	}
	if len(args) > 0 {
		return args, false, nil
	}

	for _, t := range m.Targets() {
		if t.Installed {
			names = append(names, t.Name)
		}
	}
	return names, false, nil
}

// pickTargets presents the multi-select TUI over the current target list.
func pickTargets(cmd *cobra.Command, m *proxy.Manager, title string) ([]string, bool, error) {
	model := tui.NewTargetSelectModel(title, m.Targets())
	p := tea.NewProgram(model)
	finalModel, err := p.Run()
	if err != nil {
		return nil, false, fmt.Errorf("interactive selection: %w", err)
	}

	result := finalModel.(tui.TargetSelectModel)
	if result.Quitted() {
		fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
		return nil, true, nil
	}
	return result.Selected(), false, nil
}
