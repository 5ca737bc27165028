// Package tui holds the interactive terminal widgets for the CLI.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/youjizi/proxy-manager/internal/domain"
)

// TargetItem is one software entry in the selection list.
type TargetItem struct {
	Name      string
	Kind      domain.FormatKind
	Installed bool
	IsCustom  bool
	Selected  bool
}

// TargetSelectModel is a bubbletea model that lets the user pick which
// targets an enable/disable/reset run should touch. Targets that are not
// installed are shown but cannot be selected.
type TargetSelectModel struct {
	title   string
	items   []TargetItem
	cursor  int
	done    bool
	quitted bool
}

// NewTargetSelectModel creates a model over the given targets. Installed
// targets start selected.
func NewTargetSelectModel(title string, targets []domain.Target) TargetSelectModel {
	items := make([]TargetItem, 0, len(targets))
	for _, t := range targets {
		items = append(items, TargetItem{
			Name:      t.Name,
			Kind:      t.Kind,
			Installed: t.Installed,
			IsCustom:  t.IsCustom,
			Selected:  t.Installed,
		})
	}
	return TargetSelectModel{title: title, items: items}
}

// Selected returns the names of the targets the user chose.
func (m TargetSelectModel) Selected() []string {
	var names []string
	for _, it := range m.items {
		if it.Selected {
			names = append(names, it.Name)
		}
	}
	return names
}

// Done reports whether the user confirmed the selection.
func (m TargetSelectModel) Done() bool { return m.done }

// Quitted reports whether the user cancelled.
func (m TargetSelectModel) Quitted() bool { return m.quitted }

// Init satisfies tea.Model.
func (m TargetSelectModel) Init() tea.Cmd { return nil }

// Update satisfies tea.Model.
func (m TargetSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyUp:
			if m.cursor > 0 {
				m.cursor--
			}
		case tea.KeyDown:
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case tea.KeySpace:
			if len(m.items) > 0 && m.items[m.cursor].Installed {
				m.items[m.cursor].Selected = !m.items[m.cursor].Selected
			}
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		case tea.KeyEsc:
			m.quitted = true
			return m, tea.Quit
		case tea.KeyRunes:
			switch string(msg.Runes) {
			case "q":
				m.quitted = true
				return m, tea.Quit
			case "a":
				allSelected := true
				for _, it := range m.items {
					if it.Installed && !it.Selected {
						allSelected = false
						break
					}
				}
				for i := range m.items {
					if m.items[i].Installed {
						m.items[i].Selected = !allSelected
					}
				}
			}
		}
	}
	return m, nil
}

// View satisfies tea.Model.
func (m TargetSelectModel) View() string {
	if m.done || m.quitted {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).MarginBottom(1)
	cursorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	kindStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	missingStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")

	for i, item := range m.items {
		checkbox := "[ ]"
		if item.Selected {
			checkbox = "[x]"
		}

		label := item.Name
		if item.IsCustom {
			label += " *"
		}

		line := fmt.Sprintf("%s %s %s", checkbox, label, kindStyle.Render("("+string(item.Kind)+")"))
		if !item.Installed {
			line += " " + missingStyle.Render("not installed")
		}

		if i == m.cursor {
			line = cursorStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("space: toggle | enter: confirm | a: toggle all | q/esc: quit"))
	return b.String()
}
