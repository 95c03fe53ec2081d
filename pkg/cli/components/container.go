package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Container stacks rendered sections vertically with the margins every
// command uses for its output.
func Container(sections ...string) string {
	var builder strings.Builder

	for i, section := range sections {
		style := lipgloss.NewStyle().MarginTop(1)

		if i == 0 {
			style = style.MarginTop(2)
		}

		if i == len(sections)-1 {
			style = style.MarginBottom(1)
		}

		builder.WriteString(style.Render(section))
	}

	return builder.String()
}
