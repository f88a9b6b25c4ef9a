// Package tui is the interactive command picker. It renders on stderr so
// the payload channel stays free for command output, and returns the
// selection to the caller instead of executing anything itself.
package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/go-ports/see/internal/store"
)

var (
	primary   = lipgloss.Color("99")
	secondary = lipgloss.Color("240")
	accent    = lipgloss.Color("86")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primary).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(primary).
			Bold(true)

	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(secondary).
			Padding(0, 1)
)

const maxVisible = 15

type model struct {
	records  []*store.Record
	filtered []*store.Record
	cursor   int
	width    int

	searchInput textinput.Model

	choice *store.Record
}

func newModel(records []*store.Record) model {
	search := textinput.New()
	search.Placeholder = "Search commands..."
	search.Focus()

	return model{
		records:     records,
		filtered:    records,
		searchInput: search,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "up", "ctrl+k":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case "down", "ctrl+j":
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
			}
			return m, nil

		case "enter":
			if len(m.filtered) > 0 {
				m.choice = m.filtered[m.cursor]
			}
			return m, tea.Quit

		default:
			var cmd tea.Cmd
			m.searchInput, cmd = m.searchInput.Update(msg)
			m.filter()
			return m, cmd
		}
	}

	return m, nil
}

func (m *model) filter() {
	query := m.searchInput.Value()
	if query == "" {
		m.filtered = m.records
	} else {
		targets := make([]string, len(m.records))
		for i, rec := range m.records {
			targets[i] = rec.Alias + " " + rec.Description + " " + rec.Command
		}
		matches := fuzzy.Find(query, targets)
		m.filtered = make([]*store.Record, len(matches))
		for i, match := range matches {
			m.filtered[i] = m.records[match.Index]
		}
	}

	if m.cursor >= len(m.filtered) {
		m.cursor = max(0, len(m.filtered)-1)
	}
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("see: pick a command"))
	b.WriteString("\n")
	b.WriteString(borderStyle.Render(m.searchInput.View()))
	b.WriteString("\n\n")

	if len(m.filtered) == 0 {
		b.WriteString(mutedStyle.Render("  no matches"))
		b.WriteString("\n")
	}

	start := 0
	if m.cursor >= maxVisible {
		start = m.cursor - maxVisible + 1
	}
	end := min(start+maxVisible, len(m.filtered))

	for i := start; i < end; i++ {
		rec := m.filtered[i]
		label := fmt.Sprintf("[%d] %s", rec.ID, rec.Command)
		if rec.Alias != "" {
			label = fmt.Sprintf("[%d] (%s) %s", rec.ID, rec.Alias, rec.Command)
		}
		if m.width > 8 && len(label) > m.width-4 {
			label = label[:m.width-7] + "..."
		}

		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + label))
		} else {
			b.WriteString(normalStyle.Render("  " + label))
		}
		b.WriteString("\n")
		if i == m.cursor && rec.Description != "" {
			b.WriteString(mutedStyle.Render("      " + rec.Description))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(
		helpKeyStyle.Render("↑/↓") + " move  " +
			helpKeyStyle.Render("enter") + " run  " +
			helpKeyStyle.Render("esc") + " quit"))
	b.WriteString("\n")

	return b.String()
}

// Pick runs the picker over records and returns the selected record.
// ok is false when the user quit without choosing.
func Pick(records []*store.Record) (*store.Record, bool, error) {
	m := newModel(records)
	p := tea.NewProgram(m, tea.WithOutput(os.Stderr))

	final, err := p.Run()
	if err != nil {
		return nil, false, fmt.Errorf("tui.Pick: %w", err)
	}

	fm, ok := final.(model)
	if !ok || fm.choice == nil {
		return nil, false, nil
	}
	return fm.choice, true, nil
}
