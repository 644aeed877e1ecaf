package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// StopListModel - Interactive stop selection
// =============================================================================

// StopListModel is the bubbletea model for picking one stop by name.
// Typing narrows the list to names containing the typed text.
type StopListModel struct {
	Title    string
	Stops    []string
	Filter   string
	Cursor   int
	Offset   int
	Height   int
	Selected string
}

// NewStopListModel creates a stop picker over names.
func NewStopListModel(title string, names []string) StopListModel {
	return StopListModel{Title: title, Stops: names, Height: 15}
}

func (m StopListModel) Init() tea.Cmd {
	return nil
}

// visible returns the stops matching the current filter.
func (m StopListModel) visible() []string {
	if m.Filter == "" {
		return m.Stops
	}
	needle := strings.ToLower(m.Filter)
	var out []string
	for _, s := range m.Stops {
		if strings.Contains(strings.ToLower(s), needle) {
			out = append(out, s)
		}
	}
	return out
}

func (m StopListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyUp:
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case tea.KeyDown:
			if m.Cursor < len(m.visible())-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case tea.KeyEnter:
			if v := m.visible(); len(v) > 0 {
				m.Selected = v[m.Cursor]
				return m, tea.Quit
			}
		case tea.KeyBackspace:
			if m.Filter != "" {
				r := []rune(m.Filter)
				m.Filter = string(r[:len(r)-1])
				m.Cursor, m.Offset = 0, 0
			}
		case tea.KeyRunes, tea.KeySpace:
			m.Filter += string(msg.Runes)
			m.Cursor, m.Offset = 0, 0
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m StopListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  type to filter  esc quit"))
	b.WriteString("\n")
	b.WriteString("filter: " + StyleValue.Render(m.Filter))
	b.WriteString("\n\n")

	v := m.visible()
	end := min(m.Offset+m.Height, len(v))
	for i := m.Offset; i < end; i++ {
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render("▸ " + v[i]))
		} else {
			b.WriteString(listNormalStyle.Render("  " + v[i]))
		}
		b.WriteString("\n")
	}
	if len(v) == 0 {
		b.WriteString(listDimStyle.Render("  no matching stops"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", min(m.Cursor+1, len(v)), len(v))))
	return b.String()
}
