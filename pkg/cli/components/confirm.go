package components

import (
	"github.com/dbsnap/dbsnap/pkg/cli/styles"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var confirmQuestionStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(styles.TextColor)

var confirmHintStyle = lipgloss.NewStyle().
	Foreground(styles.PrimaryTextColor)

type confirmModel struct {
	confirmed bool
	question  string
}

func (m confirmModel) Init() tea.Cmd { return nil }

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "y", "Y":
			m.confirmed = true

			return m, tea.Quit
		case "n", "N", "enter", "esc", "q", "ctrl+c":
			m.confirmed = false

			return m, tea.Quit
		}
	}

	return m, nil
}

func (m confirmModel) View() string {
	return Container(
		confirmQuestionStyle.Render(m.question) + " " + confirmHintStyle.Render("[y/N]"),
	)
}

// Confirm renders an interactive yes/no prompt. Anything other than an
// explicit "y" declines.
func Confirm(question string) (bool, error) {
	finalModel, err := tea.NewProgram(confirmModel{question: question}).Run()

	if err != nil {
		return false, err
	}

	return finalModel.(confirmModel).confirmed, nil
}
