package components

import (
	"strings"

	"github.com/dbsnap/dbsnap/pkg/cli/styles"

	"github.com/charmbracelet/lipgloss"
)

// Dot leaders pad every name out to the same column before the description.
const listLeaderWidth = 12

type ListItem struct {
	Name        string
	Description string
}

var listNameStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(styles.PrimaryTextColor)

var listDescriptionStyle = lipgloss.NewStyle().
	Underline(true)

// TabularList renders name/description pairs with dot leaders so the
// descriptions start at a common column.
func TabularList(items []ListItem) string {
	longestName := 0

	for _, item := range items {
		if len(item.Name) > longestName {
			longestName = len(item.Name)
		}
	}

	var builder strings.Builder

	for i, item := range items {
		builder.WriteString(listNameStyle.Render(item.Name))
		builder.WriteString(" ")
		builder.WriteString(styles.LineSpacerStyle.Render(
			strings.Repeat("･", longestName-len(item.Name)+listLeaderWidth),
		))
		builder.WriteString(" ")
		builder.WriteString(listDescriptionStyle.Render(item.Description))

		if i < len(items)-1 {
			builder.WriteString("\n\n")
		}
	}

	return builder.String()
}
