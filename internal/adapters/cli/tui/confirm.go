package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// ConfirmModel is the bubbletea model for a yes/no question
type ConfirmModel struct {
	question string
	yes      bool // cursor position, true = Yes
	answered bool
	answer   bool
	done     bool // program quit, answered or cancelled
}

// NewConfirmModel creates a prompt whose cursor starts on defaultYes
func NewConfirmModel(question string, defaultYes bool) ConfirmModel {
	return ConfirmModel{
		question: question,
		yes:      defaultYes,
	}
}

func (m ConfirmModel) Init() tea.Cmd {
	return nil
}

func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "left", "right", "h", "l", "tab":
			m.yes = !m.yes
		case "y", "Y":
			m.answered, m.answer, m.done = true, true, true
			return m, tea.Quit
		case "n", "N":
			m.answered, m.answer, m.done = true, false, true
			return m, tea.Quit
		case "enter":
			m.answered, m.answer, m.done = true, m.yes, true
			return m, tea.Quit
		case "q", "esc", "ctrl+c":
			m.answered, m.answer, m.done = false, false, true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m ConfirmModel) View() string {
	if m.done {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("? " + m.question))
	sb.WriteString("\n\n")

	yes, no := normalStyle.Render("  Yes"), normalStyle.Render("  No")
	if m.yes {
		yes = selectedStyle.Render("> Yes")
	} else {
		no = selectedStyle.Render("> No")
	}
	fmt.Fprintf(&sb, "%s   %s\n", yes, no)

	sb.WriteString(hintStyle.Render("\n(y/n, left/right to move, enter to select)"))
	sb.WriteString("\n")
	return sb.String()
}

// Answer returns the chosen value; cancelling counts as no
func (m ConfirmModel) Answer() bool {
	return m.answered && m.answer
}

// RunConfirm asks a yes/no question and returns the answer
func RunConfirm(question string, defaultYes bool) (bool, error) {
	model := NewConfirmModel(question, defaultYes)
	p := tea.NewProgram(model)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	return finalModel.(ConfirmModel).Answer(), nil
}
