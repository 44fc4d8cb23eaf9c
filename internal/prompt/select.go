package prompt

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/user/cardcourier/internal/types"
)

// pageSize is the number of rows visible at once.
const pageSize = 10

var (
	questionStyle  = lipgloss.NewStyle().Bold(true)
	cursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	separatorStyle = lipgloss.NewStyle().Faint(true)
	answerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

// selectModel is a single-choice list. The cursor stops at the ends of the
// list and skips separators.
type selectModel struct {
	message   string
	choices   []types.Choice
	cursor    int
	offset    int
	chosen    bool
	cancelled bool
}

func newSelectModel(message string, choices []types.Choice) selectModel {
	m := selectModel{message: message, choices: choices, cursor: -1}
	m.cursor = m.next(-1, 1)
	return m
}

// next returns the nearest selectable index from start in direction dir,
// or the current cursor if there is none.
func (m selectModel) next(start, dir int) int {
	for i := start + dir; i >= 0 && i < len(m.choices); i += dir {
		if !m.choices[i].Separator {
			return i
		}
	}
	return m.cursor
}

func (m selectModel) Init() tea.Cmd {
	return nil
}

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		m.cursor = m.next(m.cursor, -1)
	case "down", "j":
		m.cursor = m.next(m.cursor, 1)
	case "home", "g":
		m.cursor = m.next(-1, 1)
	case "end", "G":
		m.cursor = m.next(len(m.choices), -1)
	case "enter":
		if m.cursor >= 0 {
			m.chosen = true
			return m, tea.Quit
		}
	case "ctrl+c", "esc", "q":
		m.cancelled = true
		return m, tea.Quit
	}

	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+pageSize {
		m.offset = m.cursor - pageSize + 1
	}
	return m, nil
}

func (m selectModel) View() string {
	var b strings.Builder
	b.WriteString(questionStyle.Render("? " + m.message))

	if m.chosen {
		b.WriteString(" " + answerStyle.Render(m.choices[m.cursor].Name) + "\n")
		return b.String()
	}
	if m.cancelled {
		b.WriteString("\n")
		return b.String()
	}
	b.WriteString("\n")

	end := min(m.offset+pageSize, len(m.choices))
	for i := m.offset; i < end; i++ {
		choice := m.choices[i]
		switch {
		case choice.Separator:
			b.WriteString("  " + separatorStyle.Render("──────────────") + "\n")
		case i == m.cursor:
			b.WriteString(cursorStyle.Render("❯ "+choice.Name) + "\n")
		default:
			b.WriteString("  " + choice.Name + "\n")
		}
	}
	if len(m.choices) > pageSize {
		b.WriteString(separatorStyle.Render("(move up and down to reveal more choices)") + "\n")
	}
	return b.String()
}
