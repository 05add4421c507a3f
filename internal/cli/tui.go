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
// IssueListModel - Interactive issue selection
// =============================================================================

// IssueListModel is the bubbletea model for interactive issue selection.
type IssueListModel struct {
	Issues   []any
	Cursor   int
	Selected any
	Height   int
	Offset   int
}

// NewIssueListModel creates a new issue list model.
func NewIssueListModel(issues []any) IssueListModel {
	return IssueListModel{
		Issues: issues,
		Cursor: 0,
		Height: 15,
		Offset: 0,
	}
}

func (m IssueListModel) Init() tea.Cmd {
	return nil
}

func (m IssueListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Issues)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Selected = m.Issues[m.Cursor]
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m IssueListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Issue"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Issues) {
		end = len(m.Issues)
	}

	for i := m.Offset; i < end; i++ {
		issue := m.Issues[i]
		line := fmt.Sprintf("#%-5d %s", numberField(issue, "number"), stringField(issue, "title"))

		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render("▸ " + line))
		} else {
			b.WriteString(listNormalStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	if len(m.Issues) > m.Height {
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render(fmt.Sprintf("%d-%d of %d", m.Offset+1, end, len(m.Issues))))
	}

	return b.String()
}

// pickIssue runs the interactive selection over issues. A nil result
// with a nil error means the user quit without choosing.
func pickIssue(issues []any) (any, error) {
	if len(issues) == 0 {
		printInfo("Nothing to pick from")
		return nil, nil
	}

	program := tea.NewProgram(NewIssueListModel(issues))
	final, err := program.Run()
	if err != nil {
		return nil, fmt.Errorf("run picker: %w", err)
	}

	model, ok := final.(IssueListModel)
	if !ok || model.Selected == nil {
		return nil, nil
	}
	return model.Selected, nil
}
