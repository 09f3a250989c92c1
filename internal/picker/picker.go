// Package picker provides an interactive skill selector.
//
// The picker launches when `skillbook install` is run with no arguments
// in an interactive terminal. It is never activated for piped output.
package picker

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"

	"github.com/niuverse/skillbook/internal/skill"
	"github.com/niuverse/skillbook/internal/ui"
)

// ShouldRun returns true if the interactive picker should be launched.
func ShouldRun() bool {
	return term.IsTerminal(os.Stdout.Fd()) && term.IsTerminal(os.Stdin.Fd())
}

// Item is one selectable skill in the picker.
type Item struct {
	Name        string
	Description string
}

// ItemsFromSkills builds picker items from loaded skills.
func ItemsFromSkills(skills []*skill.Skill) []Item {
	items := make([]Item, 0, len(skills))
	for _, s := range skills {
		items = append(items, Item{
			Name:        s.Name,
			Description: s.ShortDescription(72),
		})
	}
	return items
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ui.Teal)

	selectedStyle = lipgloss.NewStyle().
			Foreground(ui.Teal).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(ui.White)

	checkedStyle = lipgloss.NewStyle().
			Foreground(ui.Green)

	dimStyle = lipgloss.NewStyle().
			Foreground(ui.DarkGray)

	helpStyle = lipgloss.NewStyle().
			Foreground(ui.Gray)
)

// model is the Bubble Tea model for the skill picker.
type model struct {
	title    string
	items    []Item
	filtered []int // indexes into items matching the filter
	cursor   int
	checked  map[string]bool
	filter   textinput.Model
	done     bool
	aborted  bool
}

func newModel(title string, items []Item) model {
	ti := textinput.New()
	ti.Placeholder = "type to filter"
	ti.Prompt = "/ "
	ti.Focus()

	m := model{
		title:   title,
		items:   items,
		checked: make(map[string]bool),
		filter:  ti,
	}
	m.applyFilter()
	return m
}

// applyFilter recomputes the visible item indexes
func (m *model) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	m.filtered = m.filtered[:0]
	for i, item := range m.items {
		if query == "" ||
			strings.Contains(strings.ToLower(item.Name), query) ||
			strings.Contains(strings.ToLower(item.Description), query) {
			m.filtered = append(m.filtered, i)
		}
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = len(m.filtered) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit

		case "enter":
			m.done = true
			return m, tea.Quit

		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case "down", "ctrl+n":
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
			}
			return m, nil

		case "tab", "ctrl+s":
			if len(m.filtered) > 0 {
				name := m.items[m.filtered[m.cursor]].Name
				m.checked[name] = !m.checked[name]
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m model) View() string {
	if m.done || m.aborted {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render(m.title) + "\n")
	b.WriteString("  " + ui.Divider(40) + "\n\n")
	b.WriteString("  " + m.filter.View() + "\n\n")

	if len(m.filtered) == 0 {
		b.WriteString(dimStyle.Render("  no matching skills") + "\n")
	}

	for pos, idx := range m.filtered {
		item := m.items[idx]

		cursor := "  "
		nameStyle := normalStyle
		if pos == m.cursor {
			cursor = selectedStyle.Render("> ")
			nameStyle = selectedStyle
		}

		check := dimStyle.Render("[ ]")
		if m.checked[item.Name] {
			check = checkedStyle.Render("[x]")
		}

		b.WriteString(fmt.Sprintf("  %s%s %s  %s\n",
			cursor, check, nameStyle.Render(item.Name), dimStyle.Render(item.Description)))
	}

	b.WriteString("\n" + helpStyle.Render("  tab: toggle • enter: confirm • esc: cancel") + "\n")
	return b.String()
}

// Run launches the picker and returns the names of the selected skills.
// A nil slice with nil error means the user cancelled.
func Run(title string, items []Item) ([]string, error) {
	p := tea.NewProgram(newModel(title, items))
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to run picker: %w", err)
	}

	m := final.(model)
	if m.aborted {
		return nil, nil
	}

	var selected []string
	for _, item := range m.items {
		if m.checked[item.Name] {
			selected = append(selected, item.Name)
		}
	}

	// Enter with nothing checked selects the item under the cursor
	if len(selected) == 0 && len(m.filtered) > 0 {
		selected = append(selected, m.items[m.filtered[m.cursor]].Name)
	}

	return selected, nil
}
